package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineKeyValue(t *testing.T) {
	line, err := ParseLine("mount/extension/current = 42")
	require.NoError(t, err)
	assert.False(t, line.IsError)
	assert.Equal(t, "mount/extension/current", line.Key)
	assert.Equal(t, "42", line.Value)
}

func TestParseLineValueContainingSeparator(t *testing.T) {
	// Only the first separator splits; quoted names may contain '='.
	line, err := ParseLine("configuration/name = \"a = b\"")
	require.NoError(t, err)
	assert.Equal(t, "configuration/name", line.Key)
	assert.Equal(t, "\"a = b\"", line.Value)
}

func TestParseLineError(t *testing.T) {
	line, err := ParseLine("#404")
	require.NoError(t, err)
	assert.True(t, line.IsError)
	assert.Equal(t, CodeNotFound, line.Code)
}

func TestParseLineUnknownErrorCode(t *testing.T) {
	line, err := ParseLine("#999")
	require.NoError(t, err)
	assert.True(t, line.IsError)
	assert.Equal(t, CodeUnknown, line.Code)
}

func TestParseLineUnparseableErrorCode(t *testing.T) {
	line, err := ParseLine("#abc")
	require.NoError(t, err)
	assert.True(t, line.IsError)
	assert.Equal(t, CodeUnknown, line.Code)
}

func TestParseLineMalformed(t *testing.T) {
	_, err := ParseLine("no separator here")
	assert.Error(t, err)

	_, err = ParseLine("")
	assert.Error(t, err)
}

func TestEncodeRequestLine(t *testing.T) {
	assert.Equal(t, []byte("configuration/name\n"), EncodeRequestLine("configuration/name", ""))
	assert.Equal(t, []byte("mount/extension/target = 50\n"), EncodeRequestLine("mount/extension/target", "50"))
}

func TestPackPositionRoundTrip(t *testing.T) {
	payload := PackPosition(42, -17)

	ext, turn, err := UnpackPosition(payload)
	require.NoError(t, err)
	assert.Equal(t, 42, ext)
	assert.Equal(t, -17, turn)
}

func TestPackPositionEncoding(t *testing.T) {
	// extension 42 = 0x002a unsigned, turn -17 = 0xffef signed big-endian.
	assert.Equal(t, "[002affef]", PackPosition(42, -17))
	assert.Equal(t, "[00000000]", PackPosition(0, 0))
	assert.Equal(t, "[0064ff9c]", PackPosition(100, -100))
}

func TestUnpackPositionErrors(t *testing.T) {
	_, _, err := UnpackPosition("[00]")
	assert.Error(t, err)

	_, _, err = UnpackPosition("not hex")
	assert.Error(t, err)
}

func TestResponseCodeFromInt(t *testing.T) {
	assert.Equal(t, CodeAccepted, ResponseCodeFromInt(202))
	assert.Equal(t, CodeURITooLong, ResponseCodeFromInt(414))
	assert.Equal(t, CodeUnknown, ResponseCodeFromInt(500))
}

func TestResponseError(t *testing.T) {
	err := &ResponseError{Code: CodeNotFound}
	assert.Equal(t, "device responded with 404 NOT_FOUND", err.Error())
	assert.False(t, CodeNotFound.IsAccepted())
	assert.True(t, CodeAccepted.IsAccepted())
}
