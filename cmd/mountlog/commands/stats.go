package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tvm-protocol/motionmount-go/pkg/log"
)

// Stats holds aggregate statistics about a capture.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Notifications     int
	ErrorLines        int
	KeyCounts         map[string]int
	Connections       map[string]*ConnectionStats
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	RemoteAddr string
}

// RunStats analyzes the capture and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		KeyCounts:         make(map[string]int),
		Connections:       make(map[string]*ConnectionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	stats.print(w)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.Line != nil {
		if event.Line.Notification {
			s.Notifications++
		}
		if event.Line.Code != 0 && event.Line.Code != 202 {
			s.ErrorLines++
		}
		if event.Line.Key != "" {
			s.KeyCounts[event.Line.Key]++
		}
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{
			FirstSeen:  event.Timestamp,
			LastSeen:   event.Timestamp,
			RemoteAddr: event.RemoteAddr,
		}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if conn.RemoteAddr == "" && event.RemoteAddr != "" {
		conn.RemoteAddr = event.RemoteAddr
	}
}

func (s *Stats) print(w io.Writer) {
	fmt.Fprintf(w, "Total events:  %d\n", s.TotalEvents)
	if !s.TimeRange.Start.IsZero() {
		fmt.Fprintf(w, "Time range:    %s - %s (%s)\n",
			s.TimeRange.Start.UTC().Format(time.RFC3339),
			s.TimeRange.End.UTC().Format(time.RFC3339),
			s.TimeRange.End.Sub(s.TimeRange.Start).Round(time.Millisecond))
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range []log.Category{log.CategoryLine, log.CategoryState, log.CategoryError} {
		if n := s.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-6s %d\n", c, n)
		}
	}

	fmt.Fprintln(w, "\nBy direction:")
	for _, d := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if n := s.EventsByDirection[d]; n > 0 {
			fmt.Fprintf(w, "  %-4s %d\n", d, n)
		}
	}

	fmt.Fprintf(w, "\nNotifications: %d\n", s.Notifications)
	fmt.Fprintf(w, "Error lines:   %d\n", s.ErrorLines)

	if len(s.KeyCounts) > 0 {
		fmt.Fprintln(w, "\nTop keys:")
		type keyCount struct {
			key   string
			count int
		}
		keys := make([]keyCount, 0, len(s.KeyCounts))
		for k, n := range s.KeyCounts {
			keys = append(keys, keyCount{k, n})
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].count != keys[j].count {
				return keys[i].count > keys[j].count
			}
			return keys[i].key < keys[j].key
		})
		for i, kc := range keys {
			if i == 10 {
				break
			}
			fmt.Fprintf(w, "  %-40s %d\n", kc.key, kc.count)
		}
	}

	fmt.Fprintf(w, "\nConnections:   %d\n", len(s.Connections))
	ids := make([]string, 0, len(s.Connections))
	for id := range s.Connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		conn := s.Connections[id]
		fmt.Fprintf(w, "  %s  %s  %d events  %s\n",
			shortenConnID(id), conn.RemoteAddr, conn.Events,
			conn.LastSeen.Sub(conn.FirstSeen).Round(time.Millisecond))
	}
}
