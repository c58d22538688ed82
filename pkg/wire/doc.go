// Package wire defines the textual wire format of the TVM MotionMount
// protocol.
//
// The protocol is line oriented: every message is a single newline-terminated
// text line exchanged over a persistent TCP stream.
//
// # Line Types
//
//   - Outbound request: "<key>\n" or "<key> = <value>\n"
//   - Inbound response or notification: "<key> = <value>\n"
//   - Inbound error: "#<code>\n", where code is derived from HTTP status codes
//
// # Values
//
// Values are typed on the client side only; the wire carries plain text.
// The closed set of value types is Integer (decimal), String (quoted),
// Bytes (bracketed hex, e.g. "[deadbeef]"), Bool ("0"/"1") and Void
// (passthrough, used when only the round trip matters).
package wire
