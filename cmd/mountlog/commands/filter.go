package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/tvm-protocol/motionmount-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	ConnID    string
	Direction string
	Category  string
	Key       string
	TimeStart string
	TimeEnd   string
}

// RunFilter filters the capture and writes matching events to a new file.
func RunFilter(path string, opts FilterOptions) error {
	filter, err := buildFilter(opts.ConnID, opts.Direction, opts.Category,
		opts.Key, opts.TimeStart, opts.TimeEnd)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
	return nil
}

func parseTime(s, name string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %w", name, err)
	}
	return t, nil
}
