package wire

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ValueType identifies how a wire value is converted to and from text.
// The set is closed; passing an unknown tag to the conversion functions
// is a programming error and panics.
type ValueType uint8

const (
	// ValueInteger is a decimal integer value.
	ValueInteger ValueType = 0

	// ValueString is a quoted string value. Exactly one leading and one
	// trailing quote are stripped on decode and added on encode.
	ValueString ValueType = 1

	// ValueBytes is a byte sequence encoded as bracketed hex ("[hh..]").
	ValueBytes ValueType = 2

	// ValueBool is a boolean encoded as "0" or "1".
	ValueBool ValueType = 3

	// ValueVoid passes the raw text through unchanged. Used for requests
	// where the caller discards the value and only the round trip matters.
	ValueVoid ValueType = 4
)

// String returns the value type name.
func (t ValueType) String() string {
	switch t {
	case ValueInteger:
		return "INTEGER"
	case ValueString:
		return "STRING"
	case ValueBytes:
		return "BYTES"
	case ValueBool:
		return "BOOL"
	case ValueVoid:
		return "VOID"
	default:
		return "UNKNOWN"
	}
}

// DecodeValue converts raw wire text into a typed value.
// The concrete type of the result depends on t: int for ValueInteger,
// string for ValueString, []byte for ValueBytes, bool for ValueBool and
// the unchanged raw string for ValueVoid.
func DecodeValue(raw string, t ValueType) (any, error) {
	switch t {
	case ValueInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q: %w", raw, err)
		}
		return n, nil

	case ValueString:
		return unquote(raw), nil

	case ValueBytes:
		return DecodeBytes(raw)

	case ValueBool:
		switch raw {
		case "0":
			return false, nil
		case "1":
			return true, nil
		default:
			return nil, fmt.Errorf("invalid bool value %q", raw)
		}

	case ValueVoid:
		return raw, nil

	default:
		panic(fmt.Sprintf("wire: unknown value type %d", t))
	}
}

// EncodeValue converts a typed value into raw wire text.
// The accepted concrete types mirror DecodeValue.
func EncodeValue(v any, t ValueType) (string, error) {
	switch t {
	case ValueInteger:
		n, ok := v.(int)
		if !ok {
			return "", fmt.Errorf("integer value required, got %T", v)
		}
		return strconv.Itoa(n), nil

	case ValueString:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("string value required, got %T", v)
		}
		return "\"" + s + "\"", nil

	case ValueBytes:
		b, ok := v.([]byte)
		if !ok {
			return "", fmt.Errorf("byte slice value required, got %T", v)
		}
		return EncodeBytes(b), nil

	case ValueBool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("bool value required, got %T", v)
		}
		if b {
			return "1", nil
		}
		return "0", nil

	case ValueVoid:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("string value required for void passthrough, got %T", v)
		}
		return s, nil

	default:
		panic(fmt.Sprintf("wire: unknown value type %d", t))
	}
}

// DecodeBytes parses a bracketed hex byte sequence such as "[deadbeef]".
func DecodeBytes(raw string) ([]byte, error) {
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, fmt.Errorf("invalid byte sequence %q: missing brackets", raw)
	}
	b, err := hex.DecodeString(raw[1 : len(raw)-1])
	if err != nil {
		return nil, fmt.Errorf("invalid byte sequence %q: %w", raw, err)
	}
	return b, nil
}

// EncodeBytes renders a byte slice as a bracketed hex sequence.
func EncodeBytes(b []byte) string {
	return "[" + hex.EncodeToString(b) + "]"
}

// unquote strips exactly one leading and one trailing double quote.
// Inner quotes are preserved.
func unquote(s string) string {
	s = strings.TrimPrefix(s, "\"")
	return strings.TrimSuffix(s, "\"")
}
