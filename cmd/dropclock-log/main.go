// Command dropclock-log is a tool for viewing and analyzing Dropclock timer
// traces.
//
// Trace files are written by dropclock when it runs with the -event-log
// flag. Each entry records one step in a timer's life: created, restored,
// expired, cancelled, and the outcome of its reminder and persistence side
// effects.
//
// Usage:
//
//	dropclock-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	dropclock-log view ~/.dropclock/events.dlog
//
//	# Follow one timer
//	dropclock-log view --timer 6f1c0d1e ~/.dropclock/events.dlog
//
//	# Only side-effect failures
//	dropclock-log view --failures events.dlog
//
//	# Export to CSV
//	dropclock-log export --format csv -o events.csv events.dlog
//
//	# Show statistics
//	dropclock-log stats events.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dropclock/dropclock-go/cmd/dropclock-log/commands"
)

const usage = `dropclock-log - Dropclock Timer Trace Analyzer

Usage:
  dropclock-log <command> [flags] <file.dlog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "dropclock-log <command> -help" for more information about a command.
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
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// tracePath returns the single positional argument or exits with usage.
func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `dropclock-log view - View trace file in human-readable format

Usage:
  dropclock-log view [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	timerID := fs.String("timer", "", "Filter by timer ID")
	kind := fs.String("kind", "", "Filter by event kind (created, cancelled, expired, restored, ...)")
	failures := fs.Bool("failures", false, "Show only reminder and persistence failures")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	filter := commands.ViewFilter{
		TimerID:      *timerID,
		FailuresOnly: *failures,
	}
	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fail(err)
		}
		filter.Kind = &k
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `dropclock-log export - Export trace file to JSONL or CSV format

Usage:
  dropclock-log export [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `dropclock-log filter - Filter trace file and write to new file

Usage:
  dropclock-log filter [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	timerID := fs.String("timer", "", "Filter by timer ID")
	kind := fs.String("kind", "", "Filter by event kind")
	failures := fs.Bool("failures", false, "Keep only reminder and persistence failures")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:       *output,
		TimerID:      *timerID,
		Kind:         *kind,
		FailuresOnly: *failures,
		TimeStart:    *timeStart,
		TimeEnd:      *timeEnd,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `dropclock-log stats - Show statistics about the trace file

Usage:
  dropclock-log stats <file.dlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
