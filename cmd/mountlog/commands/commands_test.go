package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvm-protocol/motionmount-go/pkg/log"
)

func writeCapture(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.cbor")
	logger, err := log.NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())
	return path
}

func sampleEvents() []log.Event {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return []log.Event{
		{
			Timestamp:    base,
			ConnectionID: "aaaaaaaa-1111-2222-3333-444444444444",
			Direction:    log.DirectionOut,
			Category:     log.CategoryLine,
			RemoteAddr:   "192.168.1.34:23",
			Line:         &log.LineEvent{Key: "mount/extension/current"},
		},
		{
			Timestamp:    base.Add(50 * time.Millisecond),
			ConnectionID: "aaaaaaaa-1111-2222-3333-444444444444",
			Direction:    log.DirectionIn,
			Category:     log.CategoryLine,
			RemoteAddr:   "192.168.1.34:23",
			Line:         &log.LineEvent{Key: "mount/extension/current", Value: "42"},
		},
		{
			Timestamp:    base.Add(100 * time.Millisecond),
			ConnectionID: "aaaaaaaa-1111-2222-3333-444444444444",
			Direction:    log.DirectionIn,
			Category:     log.CategoryLine,
			RemoteAddr:   "192.168.1.34:23",
			Line:         &log.LineEvent{Key: "mount/isMoving", Value: "1", Notification: true},
		},
		{
			Timestamp:    base.Add(150 * time.Millisecond),
			ConnectionID: "aaaaaaaa-1111-2222-3333-444444444444",
			Direction:    log.DirectionIn,
			Category:     log.CategoryLine,
			RemoteAddr:   "192.168.1.34:23",
			Line:         &log.LineEvent{Code: 404},
		},
		{
			Timestamp:    base.Add(200 * time.Millisecond),
			ConnectionID: "aaaaaaaa-1111-2222-3333-444444444444",
			Category:     log.CategoryState,
			RemoteAddr:   "192.168.1.34:23",
			StateChange:  &log.StateChangeEvent{OldState: "READY", NewState: "DISCONNECTED", Reason: "requested"},
		},
	}
}

func TestRunView(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewOptions{}, &buf))

	out := buf.String()
	assert.Contains(t, out, "mount/extension/current = 42")
	assert.Contains(t, out, "mount/isMoving = 1 (notification)")
	assert.Contains(t, out, "#404")
	assert.Contains(t, out, "READY -> DISCONNECTED (requested)")
	assert.Contains(t, out, "[conn:aaaaaaaa]")
}

func TestRunViewDirectionFilter(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewOptions{Direction: "out"}, &buf))

	out := buf.String()
	assert.Contains(t, out, "mount/extension/current")
	assert.NotContains(t, out, "= 42")
	assert.NotContains(t, out, "#404")
}

func TestRunViewKeyFilter(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewOptions{Key: "mount/isMoving"}, &buf))

	assert.Contains(t, buf.String(), "mount/isMoving")
	assert.NotContains(t, buf.String(), "mount/extension/current")
}

func TestRunViewRejectsBadOptions(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	assert.Error(t, RunView(path, ViewOptions{Direction: "sideways"}, io.Discard))
	assert.Error(t, RunView(path, ViewOptions{Category: "bogus"}, io.Discard))
}

func TestRunExportJSONL(t *testing.T) {
	path := writeCapture(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "out.jsonl")

	require.NoError(t, RunExport(path, "jsonl", output))

	data, err := readFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(data), "\n")
	assert.Len(t, lines, len(sampleEvents()))
	assert.Contains(t, lines[1], "mount/extension/current")
}

func TestRunExportCSV(t *testing.T) {
	path := writeCapture(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, RunExport(path, "csv", output))

	data, err := readFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(data), "\n")
	// Header plus one row per event.
	assert.Len(t, lines, len(sampleEvents())+1)
	assert.Equal(t, "timestamp,connection_id,direction,category,key,value,code,notification", lines[0])
	assert.Contains(t, lines[4], "404")
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeCapture(t, sampleEvents())
	assert.Error(t, RunExport(path, "xml", ""))
}

func TestRunFilter(t *testing.T) {
	path := writeCapture(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	require.NoError(t, RunFilter(path, FilterOptions{
		Output:    output,
		Direction: "in",
		Category:  "line",
	}))

	reader, err := log.NewReader(output)
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, log.DirectionIn, event.Direction)
		assert.Equal(t, log.CategoryLine, event.Category)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestRunFilterTimeRange(t *testing.T) {
	path := writeCapture(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	require.NoError(t, RunFilter(path, FilterOptions{
		Output:    output,
		TimeStart: "2026-03-14T10:00:00.100Z",
	}))

	reader, err := log.NewReader(output)
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

func TestRunStats(t *testing.T) {
	path := writeCapture(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))

	out := buf.String()
	assert.Contains(t, out, "Total events:  5")
	assert.Contains(t, out, "Notifications: 1")
	assert.Contains(t, out, "Error lines:   1")
	assert.Contains(t, out, "Connections:   1")
	assert.Contains(t, out, "mount/extension/current")
}
