package journal

import (
	"path/filepath"
	"testing"
)

func TestRecentOnMissingJournal(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), FileName))
	records, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), FileName))
	if err := j.Append(Record{Task: "gym", Due: "2024-01-01", Interval: 3, NextDue: "2024-01-04"}); err != nil {
		t.Fatal(err)
	}
	records, err := j.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID == "" {
		t.Fatal("record has no id")
	}
	if rec.CheckedAt.IsZero() {
		t.Fatal("record has no checked_at")
	}
	if rec.Task != "gym" || rec.Due != "2024-01-01" || rec.Interval != 3 || rec.NextDue != "2024-01-04" {
		t.Fatalf("record fields lost: %+v", rec)
	}
}

func TestRecentNewestFirstAndLimited(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), FileName))
	for _, task := range []string{"a", "b", "c"} {
		if err := j.Append(Record{Task: task, Due: "2024-01-01"}); err != nil {
			t.Fatal(err)
		}
	}
	records, err := j.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Task != "c" || records[1].Task != "b" {
		t.Fatalf("wrong order: %q then %q", records[0].Task, records[1].Task)
	}
}

func TestPathForSitsBesideChecklist(t *testing.T) {
	got := PathFor(filepath.Join("some", "dir", "checklist"))
	want := filepath.Join("some", "dir", FileName)
	if got != want {
		t.Fatalf("PathFor = %q, want %q", got, want)
	}
}
