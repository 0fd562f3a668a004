// Package cli wires the checklist commands to argument lists and exit codes.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amirbrooks/checklist/internal/checklist"
	"github.com/amirbrooks/checklist/internal/config"
	"github.com/amirbrooks/checklist/internal/journal"
	"github.com/amirbrooks/checklist/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
	ExitInternal = 10
)

type GlobalFlags struct {
	File    string
	Plain   bool
	Verbose bool
}

// Run dispatches one command invocation and returns the process exit code.
func Run(args []string) int {
	gf, rest, err := extractGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return ExitUsage
	}

	logger := newLogger(gf)

	if len(rest) == 0 {
		printHelp()
		return ExitUsage
	}

	cmd := rest[0]
	cmdArgs := rest[1:]

	switch cmd {
	case "help", "--help", "-h":
		printHelp()
		return ExitOK
	}

	path, err := config.Resolve(gf.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checklist:", err)
		return ExitInternal
	}
	logger.Debug("resolved checklist file", "path", path)

	st, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "checklist:", err)
		return ExitInternal
	}

	switch cmd {
	case "add":
		return cmdAdd(st, logger, cmdArgs)
	case "remove", "rm":
		return cmdRemove(st, logger, cmdArgs)
	case "list", "ls":
		return cmdList(st, gf, cmdArgs)
	case "check":
		return cmdCheck(st, logger, cmdArgs)
	case "uncheck":
		return cmdUncheck(logger, cmdArgs)
	case "history":
		return cmdHistory(st, cmdArgs)
	case "export":
		return cmdExport(st, cmdArgs)
	case "config", "cfg":
		return cmdConfig(gf, path, cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp()
		return ExitUsage
	}
}

func printHelp() {
	fmt.Print(`checklist — recurring tasks in one flat file

Usage:
  checklist [global flags] <command> [args]

Global flags:
  --file <path>   Checklist file (default: CHECKLIST_FILE or the user config dir)
  --plain         Plain table output, no color
  --verbose       Debug logging to stderr

Commands:
  add <name> <due-date> [interval|once]
  remove <name>
  list
  check <name>
  uncheck <name>
  history [-n <count>]
  export [--format yaml|json] [--out <path>]
  config show

Dates are YYYY-MM-DD. The interval is the number of days a task comes back
after being checked; "once" (or omitting it) makes the task one-off.
`)
}

func extractGlobalFlags(args []string) (GlobalFlags, []string, error) {
	gf := GlobalFlags{}
	out := make([]string, 0, len(args))
	skip := 0

	for i := 0; i < len(args); i++ {
		if skip > 0 {
			skip--
			continue
		}
		switch a := args[i]; a {
		case "--file":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--file requires a value")
			}
			gf.File = args[i+1]
			skip = 1
		case "--plain":
			gf.Plain = true
		case "--verbose":
			gf.Verbose = true
		default:
			out = append(out, a)
		}
	}
	return gf, out, nil
}

func newLogger(gf GlobalFlags) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: false,
		Prefix:          "checklist",
	})
	if gf.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// exitFor maps command errors to exit codes: bad input is a usage error,
// lookups that found nothing and duplicate names get their own codes, and
// anything else (I/O, corrupt file) is internal.
func exitFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ExitConflict
	case errors.Is(err, checklist.ErrInvalidName),
		errors.Is(err, checklist.ErrInvalidDate),
		errors.Is(err, checklist.ErrInvalidInterval),
		errors.Is(err, checklist.ErrDateRange):
		return ExitUsage
	default:
		return ExitInternal
	}
}

func cmdAdd(st *store.Store, logger *log.Logger, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: checklist add <name> <due-date> [interval|once]")
		return ExitUsage
	}
	interval := "0"
	if len(args) >= 3 {
		interval = args[2]
	}
	entry, err := st.Add(args[0], args[1], interval)
	if err != nil {
		fmt.Fprintln(os.Stderr, "add:", err)
		return exitFor(err)
	}
	logger.Debug("added task",
		"name", entry.Name,
		"due", entry.Due.Format(checklist.DateLayout),
		"interval", entry.Interval)
	return ExitOK
}

func cmdRemove(st *store.Store, logger *log.Logger, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: checklist remove <name>")
		return ExitUsage
	}
	if err := st.Remove(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, "remove:", err)
		return exitFor(err)
	}
	logger.Debug("removed task", "name", args[0])
	return ExitOK
}

func cmdList(st *store.Store, gf GlobalFlags, args []string) int {
	entries, err := st.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "list:", err)
		return exitFor(err)
	}
	fmt.Print(checklist.Table(entries, time.Now(), gf.Plain))
	return ExitOK
}

func cmdCheck(st *store.Store, logger *log.Logger, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: checklist check <name>")
		return ExitUsage
	}
	res, err := st.Check(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "check:", err)
		return exitFor(err)
	}
	if res.Next != nil {
		logger.Debug("rescheduled task",
			"name", res.Checked.Name,
			"due", res.Next.Due.Format(checklist.DateLayout))
	} else {
		logger.Debug("completed one-off task", "name", res.Checked.Name)
	}

	rec := journal.Record{
		Task:     res.Checked.Name,
		Due:      res.Checked.Due.Format(checklist.DateLayout),
		Interval: res.Checked.Interval,
	}
	if res.Next != nil {
		rec.NextDue = res.Next.Due.Format(checklist.DateLayout)
	}
	// The check itself already succeeded; a journal failure is only warned
	// about.
	if err := journal.Open(journal.PathFor(st.Path)).Append(rec); err != nil {
		logger.Warn("journal append failed", "err", err)
	}
	return ExitOK
}

func cmdUncheck(logger *log.Logger, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: checklist uncheck <name>")
		return ExitUsage
	}
	// Accepted but inert: kept as a stable part of the command surface until
	// reversing a check has defined semantics.
	logger.Debug("uncheck is accepted but has no effect", "name", args[0])
	return ExitOK
}
