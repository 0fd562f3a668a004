// Package store owns the whole-file read/rewrite cycle for one checklist
// file. Every command loads a fresh snapshot, transforms it in memory, and
// replaces the file in a single write; nothing is cached across invocations.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirbrooks/checklist/internal/checklist"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrDuplicate = errors.New("task already exists")
	timeNow      = func() time.Time { return time.Now() }
)

type Store struct {
	Path string
}

// Open returns a store over the given checklist file. The path is expected
// to exist already; path resolution ensures that before any command runs.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("checklist path is empty")
	}
	return &Store{Path: path}, nil
}

// Load reads the whole file and decodes every non-empty line. A single bad
// line fails the load; no command silently skips corrupt entries.
func (s *Store) Load() ([]checklist.Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	var entries []checklist.Entry
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := checklist.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("checklist line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Find returns the entry whose name field equals name exactly.
func Find(entries []checklist.Entry, name string) (checklist.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return checklist.Entry{}, false
}

// Add validates a new entry from raw arguments, rejects duplicate names,
// and prepends it so the newest entry sits on the first line.
func (s *Store) Add(name, due, interval string) (checklist.Entry, error) {
	entry, err := checklist.New(name, due, interval)
	if err != nil {
		return checklist.Entry{}, err
	}
	entries, err := s.Load()
	if err != nil {
		return checklist.Entry{}, err
	}
	if _, ok := Find(entries, entry.Name); ok {
		return checklist.Entry{}, fmt.Errorf("%w: %q", ErrDuplicate, entry.Name)
	}
	if err := s.rewrite(append([]checklist.Entry{entry}, entries...)); err != nil {
		return checklist.Entry{}, err
	}
	return entry, nil
}

// Remove drops every entry matching name, preserving the relative order of
// the survivors. The file is untouched when nothing matched.
func (s *Store) Remove(name string) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	kept := make([]checklist.Entry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.Name == name {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.rewrite(kept)
}

// CheckResult describes what a Check did: the entry that was completed, and
// the replacement entry when the task recurs (nil for one-off tasks).
type CheckResult struct {
	Checked checklist.Entry
	Next    *checklist.Entry
}

// Check completes the named task. A one-off task is simply removed. A
// recurring task is replaced by a copy due interval days from today, counted
// from today rather than the old due date. The removal and the replacement
// land in one file rewrite, so a crash cannot lose the task between steps.
func (s *Store) Check(name string) (CheckResult, error) {
	entries, err := s.Load()
	if err != nil {
		return CheckResult{}, err
	}
	idx := -1
	for i, e := range entries {
		if e.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return CheckResult{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	checked := entries[idx]
	kept := make([]checklist.Entry, 0, len(entries))
	kept = append(kept, entries[:idx]...)
	kept = append(kept, entries[idx+1:]...)

	res := CheckResult{Checked: checked}
	if checked.Recurring() {
		nextDue, err := checked.NextDue(timeNow())
		if err != nil {
			return CheckResult{}, err
		}
		next := checklist.Entry{Name: checked.Name, Due: nextDue, Interval: checked.Interval}
		// The replacement goes to the front, same as a fresh add.
		kept = append([]checklist.Entry{next}, kept...)
		res.Next = &next
	}
	if err := s.rewrite(kept); err != nil {
		return CheckResult{}, err
	}
	return res, nil
}

// rewrite serializes all entries and replaces the file via a temp file and
// rename, so a crash mid-write cannot truncate the checklist.
func (s *Store) rewrite(entries []checklist.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Encode())
		b.WriteByte('\n')
	}
	dir := filepath.Dir(s.Path)
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write checklist: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace checklist: %w", err)
	}
	return nil
}
