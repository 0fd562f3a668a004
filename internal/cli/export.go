package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/checklist/internal/checklist"
	"github.com/amirbrooks/checklist/internal/config"
	"github.com/amirbrooks/checklist/internal/journal"
	"github.com/amirbrooks/checklist/internal/store"
)

type exportEntry struct {
	Name     string `json:"name" yaml:"name"`
	Due      string `json:"due" yaml:"due"`
	Interval int    `json:"interval" yaml:"interval"`
}

type exportDoc struct {
	Tasks []exportEntry `json:"tasks" yaml:"tasks"`
}

func cmdExport(st *store.Store, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	format := fs.String("format", "yaml", "Output format (yaml|json)")
	out := fs.String("out", "", "Write to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	entries, err := st.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		return exitFor(err)
	}

	doc := exportDoc{Tasks: make([]exportEntry, 0, len(entries))}
	for _, e := range entries {
		doc.Tasks = append(doc.Tasks, exportEntry{
			Name:     e.Name,
			Due:      e.Due.Format(checklist.DateLayout),
			Interval: e.Interval,
		})
	}

	var data []byte
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "yaml", "yml":
		data, err = yaml.Marshal(doc)
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	default:
		fmt.Fprintf(os.Stderr, "export: unknown format %q (use yaml or json)\n", *format)
		return ExitUsage
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		return ExitInternal
	}

	if *out == "" {
		_, err = os.Stdout.Write(data)
	} else {
		err = writeFileAtomic(*out, data)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		return ExitInternal
	}
	return ExitOK
}

func cmdHistory(st *store.Store, args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	count := fs.Int("n", 10, "Number of entries to show")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	records, err := journal.Open(journal.PathFor(st.Path)).Recent(*count)
	if err != nil {
		fmt.Fprintln(os.Stderr, "history:", err)
		return ExitInternal
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHECKED\tTASK\tWAS DUE\tNEXT DUE")
	for _, rec := range records {
		next := "-"
		if rec.NextDue != "" {
			next = rec.NextDue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.CheckedAt.Format("2006-01-02 15:04"), rec.Task, rec.Due, next)
	}
	_ = w.Flush()
	return ExitOK
}

func cmdConfig(gf GlobalFlags, path string, args []string) int {
	if len(args) == 0 || args[0] != "show" {
		fmt.Fprintln(os.Stderr, "Usage: checklist config show")
		return ExitUsage
	}

	cfgPath, err := config.ConfigPath()
	if err != nil {
		cfgPath = "(unavailable: " + err.Error() + ")"
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintf(w, "checklist_file\t%s\n", path)
	fmt.Fprintf(w, "journal_file\t%s\n", journal.PathFor(path))
	fmt.Fprintf(w, "config_file\t%s\n", cfgPath)
	fmt.Fprintf(w, "%s\t%s\n", config.EnvFile, os.Getenv(config.EnvFile))
	_ = w.Flush()
	return ExitOK
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) == "" {
		return errors.New("export path is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UTC().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
