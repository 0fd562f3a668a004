// Package journal keeps an append-only NDJSON record of checked tasks next
// to the checklist file. It exists so completions stay traceable after the
// entry itself has been removed or rescheduled.
package journal

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const FileName = "journal.ndjson"

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var timeNow = func() time.Time { return time.Now().UTC() }

// Record is one completed check. NextDue is empty for one-off tasks.
type Record struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Due       string    `json:"due"`
	Interval  int       `json:"interval"`
	NextDue   string    `json:"next_due,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

type Journal struct {
	Path string
}

// PathFor returns the journal path for a given checklist file: a sibling
// NDJSON file in the same directory.
func PathFor(checklistPath string) string {
	return filepath.Join(filepath.Dir(checklistPath), FileName)
}

func Open(path string) *Journal {
	return &Journal{Path: path}
}

// Append writes one record as a single NDJSON line, creating the journal on
// first use. Missing ID and CheckedAt fields are filled in.
func (j *Journal) Append(rec Record) error {
	if rec.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("journal id: %w", err)
		}
		rec.ID = id
	}
	if rec.CheckedAt.IsZero() {
		rec.CheckedAt = timeNow()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal journal record: %w", err)
	}
	f, err := os.OpenFile(j.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append journal: %w", err)
	}
	return f.Close()
}

// Recent returns up to n records, newest first. A missing journal yields an
// empty result rather than an error.
func (j *Journal) Recent(n int) ([]Record, error) {
	f, err := os.Open(j.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse journal record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	// Stored oldest first; callers want newest first.
	for i, k := 0, len(records)-1; i < k; i, k = i+1, k-1 {
		records[i], records[k] = records[k], records[i]
	}
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

func newID() (string, error) {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
