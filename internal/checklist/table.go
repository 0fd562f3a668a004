package checklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var tableHeaders = [3]string{"task", "due until", "interval"}

var overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

// Table renders entries as an aligned three-column table. Each column is as
// wide as its widest formatted field, never narrower than its header label.
// Overdue rows are emphasized unless plain is set. An empty checklist still
// renders the header and rule.
func Table(entries []Entry, today time.Time, plain bool) string {
	widths := columnWidths(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %-*s %-*s\n",
		widths[0], tableHeaders[0],
		widths[1], tableHeaders[1],
		widths[2], tableHeaders[2])
	b.WriteString(strings.Repeat("-", widths[0]+widths[1]+widths[2]+2))
	b.WriteByte('\n')

	for _, e := range entries {
		row := fmt.Sprintf("%-*s %-*s %-*s",
			widths[0], e.Name,
			widths[1], e.Due.Format(DateLayout),
			widths[2], e.IntervalLabel())
		if !plain && e.Overdue(today) {
			row = overdueStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func columnWidths(entries []Entry) [3]int {
	widths := [3]int{len(tableHeaders[0]), len(tableHeaders[1]), len(tableHeaders[2])}
	for _, e := range entries {
		for i, field := range [3]string{e.Name, e.Due.Format(DateLayout), e.IntervalLabel()} {
			if len(field) > widths[i] {
				widths[i] = len(field)
			}
		}
	}
	return widths
}
