// Command mountlog is a tool for viewing and analyzing MotionMount
// protocol capture files.
//
// Capture files are created by mountctl with the -capture flag or by any
// program wiring a FileLogger into its Mount configuration.
//
// Usage:
//
//	mountlog <command> [flags] <file.cbor>
//
// Commands:
//
//	view     View a capture in human-readable format
//	export   Export a capture to JSONL or CSV
//	filter   Filter a capture and write the result to a new file
//	stats    Show statistics about a capture
//
// Examples:
//
//	# View all events
//	mountlog view session.cbor
//
//	# View only inbound notifications
//	mountlog view -direction in session.cbor
//
//	# Export to JSONL
//	mountlog export -format jsonl session.cbor
//
//	# Keep only one connection's events
//	mountlog filter -conn-id abc12345 -o filtered.cbor session.cbor
//
//	# Show statistics
//	mountlog stats session.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tvm-protocol/motionmount-go/cmd/mountlog/commands"
)

const usage = `mountlog - MotionMount protocol capture analyzer

Usage:
  mountlog <command> [flags] <file.cbor>

Commands:
  view     View a capture in human-readable format
  export   Export a capture to JSONL or CSV
  filter   Filter a capture and write the result to a new file
  stats    Show statistics about a capture

Use "mountlog <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	direction := fs.String("direction", "", "Filter by direction: in, out")
	category := fs.String("category", "", "Filter by category: line, state, error")
	key := fs.String("key", "", "Filter line events by property key")
	connID := fs.String("conn-id", "", "Filter by connection ID")
	_ = fs.Parse(args)

	path := requirePath(fs)
	err := commands.RunView(path, commands.ViewOptions{
		Direction: *direction,
		Category:  *category,
		Key:       *key,
		ConnID:    *connID,
	}, os.Stdout)
	exitOn(err)
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "jsonl", "Output format: jsonl, csv")
	output := fs.String("o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	path := requirePath(fs)
	exitOn(commands.RunExport(path, *format, *output))
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	output := fs.String("o", "", "Output file (required)")
	connID := fs.String("conn-id", "", "Filter by connection ID")
	direction := fs.String("direction", "", "Filter by direction: in, out")
	category := fs.String("category", "", "Filter by category: line, state, error")
	key := fs.String("key", "", "Filter line events by property key")
	timeStart := fs.String("time-start", "", "Events at or after this RFC3339 time")
	timeEnd := fs.String("time-end", "", "Events before this RFC3339 time")
	_ = fs.Parse(args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "filter: -o <output file> is required")
		os.Exit(1)
	}

	path := requirePath(fs)
	exitOn(commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		ConnID:    *connID,
		Direction: *direction,
		Category:  *category,
		Key:       *key,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}))
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	_ = fs.Parse(args)

	path := requirePath(fs)
	exitOn(commands.RunStats(path, os.Stdout))
}

func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one capture file argument")
		os.Exit(1)
	}
	return fs.Arg(0)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
