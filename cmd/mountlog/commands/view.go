// Package commands implements the mountlog CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/tvm-protocol/motionmount-go/pkg/log"
)

// ViewOptions specifies criteria for filtering events in the view command.
type ViewOptions struct {
	Direction string
	Category  string
	Key       string
	ConnID    string
}

// RunView prints the capture in human-readable format.
func RunView(path string, opts ViewOptions, w io.Writer) error {
	filter, err := buildFilter(opts.ConnID, opts.Direction, opts.Category, opts.Key, "", "")
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s", ts, connID, event.Direction, event.Category)

	switch {
	case event.Line != nil:
		formatLineDetails(w, event.Line)
	case event.StateChange != nil:
		fmt.Fprintf(w, " %s -> %s", event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			fmt.Fprintf(w, " (%s)", event.StateChange.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(w, " %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, " [%s]", event.Error.Context)
		}
	}
	fmt.Fprintln(w)
}

func formatLineDetails(w io.Writer, line *log.LineEvent) {
	switch {
	case line.Code != 0:
		fmt.Fprintf(w, " #%d", line.Code)
	case line.Value != "":
		fmt.Fprintf(w, " %s = %s", line.Key, line.Value)
	default:
		fmt.Fprintf(w, " %s", line.Key)
	}
	if line.Notification {
		fmt.Fprintf(w, " (notification)")
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// buildFilter assembles a log.Filter from command-line option strings.
func buildFilter(connID, direction, category, key, timeStart, timeEnd string) (log.Filter, error) {
	filter := log.Filter{ConnectionID: connID, Key: key}

	if direction != "" {
		d, err := parseDirection(direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if category != "" {
		c, err := parseCategory(category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	if timeStart != "" {
		t, err := parseTime(timeStart, "time-start")
		if err != nil {
			return log.Filter{}, err
		}
		filter.TimeStart = &t
	}
	if timeEnd != "" {
		t, err := parseTime(timeEnd, "time-end")
		if err != nil {
			return log.Filter{}, err
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

func parseDirection(s string) (log.Direction, error) {
	switch s {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("unknown direction: %s (supported: in, out)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch s {
	case "line":
		return log.CategoryLine, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (supported: line, state, error)", s)
	}
}
