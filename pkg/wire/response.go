package wire

import "fmt"

// ResponseCode represents a device response code. The codes are derived
// from HTTP status codes and carry the corresponding meaning.
type ResponseCode int

const (
	// CodeUnknown is reported for any code outside the known set.
	CodeUnknown ResponseCode = 0

	// CodeAccepted indicates the device accepted the request.
	CodeAccepted ResponseCode = 202

	// CodeBadRequest indicates a malformed request.
	CodeBadRequest ResponseCode = 400

	// CodeUnauthorized indicates the session is not authenticated.
	CodeUnauthorized ResponseCode = 401

	// CodeForbidden indicates the operation is not permitted.
	CodeForbidden ResponseCode = 403

	// CodeNotFound indicates the key does not exist on this firmware.
	CodeNotFound ResponseCode = 404

	// CodeMethodNotAllowed indicates the key does not support the operation.
	CodeMethodNotAllowed ResponseCode = 405

	// CodeURITooLong indicates the request line exceeded the device limit.
	CodeURITooLong ResponseCode = 414
)

// ResponseCodeFromInt maps an integer to a ResponseCode.
// Integers outside the known set map to CodeUnknown.
func ResponseCodeFromInt(n int) ResponseCode {
	switch c := ResponseCode(n); c {
	case CodeAccepted, CodeBadRequest, CodeUnauthorized, CodeForbidden,
		CodeNotFound, CodeMethodNotAllowed, CodeURITooLong:
		return c
	default:
		return CodeUnknown
	}
}

// String returns the response code name.
func (c ResponseCode) String() string {
	switch c {
	case CodeAccepted:
		return "ACCEPTED"
	case CodeBadRequest:
		return "BAD_REQUEST"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeForbidden:
		return "FORBIDDEN"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case CodeURITooLong:
		return "URI_TOO_LONG"
	default:
		return "UNKNOWN"
	}
}

// IsAccepted returns true if the code indicates success.
func (c ResponseCode) IsAccepted() bool {
	return c == CodeAccepted
}

// ResponseError is returned when the device answers a request with a
// non-Accepted response code.
type ResponseError struct {
	Code ResponseCode
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("device responded with %d %s", int(e.Code), e.Code)
}
