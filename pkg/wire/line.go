package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Line is a decoded inbound protocol line. Exactly one of the two shapes
// is populated: a key/value pair, or an error code when IsError is set.
type Line struct {
	// Key and Value are set for "<key> = <value>" lines.
	Key   string
	Value string

	// Code is set for "#<code>" lines. An unparseable code maps to
	// CodeUnknown rather than failing the parse.
	Code ResponseCode

	// IsError reports whether the line was an error line.
	IsError bool
}

// ParseLine decodes a single inbound line. The trailing newline and any
// surrounding whitespace must already be stripped by the transport.
func ParseLine(raw string) (Line, error) {
	if raw == "" {
		return Line{}, fmt.Errorf("empty line")
	}

	if raw[0] == '#' {
		n, err := strconv.Atoi(raw[1:])
		if err != nil {
			// Unparseable status is a protocol anomaly, not a parse
			// failure. Surface it as Unknown so the session can log it.
			return Line{IsError: true, Code: CodeUnknown}, nil
		}
		return Line{IsError: true, Code: ResponseCodeFromInt(n)}, nil
	}

	key, value, found := strings.Cut(raw, "=")
	if !found {
		return Line{}, fmt.Errorf("malformed line %q: missing separator", raw)
	}

	return Line{
		Key:   strings.TrimSpace(key),
		Value: strings.TrimSpace(value),
	}, nil
}

// EncodeRequestLine renders an outbound request line including the
// terminating newline. A request without a value reads the key; a request
// with a value writes it.
func EncodeRequestLine(key, value string) []byte {
	if value == "" {
		return []byte(key + "\n")
	}
	return []byte(key + " = " + value + "\n")
}

// PackPosition encodes an extension/turn pair as the bracketed hex payload
// of a position command: extension as 2-byte unsigned big-endian, turn as
// 2-byte signed big-endian.
func PackPosition(extension, turn int) string {
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[0:2], uint16(extension))
	binary.BigEndian.PutUint16(buf[2:4], uint16(int16(turn)))
	return EncodeBytes(buf[:])
}

// UnpackPosition decodes a payload produced by PackPosition.
func UnpackPosition(raw string) (extension, turn int, err error) {
	b, err := DecodeBytes(raw)
	if err != nil {
		return 0, 0, err
	}
	if len(b) != 4 {
		return 0, 0, fmt.Errorf("invalid position payload %q: want 4 bytes, got %d", raw, len(b))
	}
	extension = int(binary.BigEndian.Uint16(b[0:2]))
	turn = int(int16(binary.BigEndian.Uint16(b[2:4])))
	return extension, turn, nil
}
