package checklist

import (
	"strings"
	"testing"
	"time"
)

func TestTableEmptyRendersHeader(t *testing.T) {
	out := Table(nil, date(2024, time.January, 1), true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and rule only, got %d lines: %q", len(lines), out)
	}
	// Column widths default to the header labels themselves.
	if want := "task due until interval"; lines[0] != want {
		t.Fatalf("header %q, want %q", lines[0], want)
	}
	// Rule spans the summed widths plus the two inter-column spaces.
	if want := len("task") + len("due until") + len("interval") + 2; len(lines[1]) != want {
		t.Fatalf("rule length %d, want %d", len(lines[1]), want)
	}
	if lines[1] != strings.Repeat("-", len(lines[1])) {
		t.Fatalf("rule is not all dashes: %q", lines[1])
	}
}

func TestTableWidthsTrackData(t *testing.T) {
	entries := []Entry{
		{Name: "water the plants", Due: date(2024, time.January, 2), Interval: 3},
		{Name: "gym", Due: date(2024, time.January, 5), Interval: 0},
	}
	out := Table(entries, date(2024, time.January, 1), true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	// Name column grows to the longest name; date column to the full date.
	if want := "task             due until  interval"; lines[0] != want {
		t.Fatalf("header %q, want %q", lines[0], want)
	}
	if want := "water the plants 2024-01-02 3       "; lines[2] != want {
		t.Fatalf("row %q, want %q", lines[2], want)
	}
	if want := "gym              2024-01-05 once    "; lines[3] != want {
		t.Fatalf("row %q, want %q", lines[3], want)
	}
	for _, line := range lines {
		if line != lines[1] && len(line) != len(lines[0]) {
			t.Fatalf("misaligned line %q", line)
		}
	}
}

func TestTablePlainHasNoEscapes(t *testing.T) {
	entries := []Entry{{Name: "late", Due: date(2020, time.January, 1), Interval: 1}}
	out := Table(entries, date(2024, time.January, 1), true)
	if strings.Contains(out, "\x1b") {
		t.Fatalf("plain output contains escape sequences: %q", out)
	}
}
