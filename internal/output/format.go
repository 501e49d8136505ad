// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"taskboard/internal/store"
	"taskboard/internal/task"
	"taskboard/internal/view"
)

// OverdueMarker follows an overdue due date. It is printed with or without
// color so the flag survives pipes.
const OverdueMarker = "(overdue)"

// statusColors highlight the status column.
var statusColors = map[task.Status]text.Colors{
	task.Pending:    {text.FgHiYellow},
	task.InProgress: {text.FgHiBlue},
	task.Completed:  {text.FgHiGreen},
}

// FormatTasks writes cards as a table, in the order given.
// Columns: position, ID, title, status, due date, created date.
func FormatTasks(w io.Writer, cards []view.Card, useColor bool) {
	overdue := color.New(color.FgHiRed, color.Bold)
	if !useColor {
		overdue.DisableColor()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.AppendHeader(table.Row{"#", "ID", "Title", "Status", "Due", "Created"})

	for i, c := range cards {
		badge := c.Badge
		if useColor {
			badge = statusColors[c.Status].Sprint(badge)
		}
		due := c.Due
		if c.Overdue {
			due = overdue.Sprint(due) + " " + OverdueMarker
		}
		t.AppendRow(table.Row{i + 1, c.ID, normalizeTitle(c.Title), badge, due, c.Created})
	}
	t.Render()
}

// FormatTask writes a single task in detail.
func FormatTask(w io.Writer, c view.Card) {
	fmt.Fprintf(w, "#%d  %s\n", c.ID, normalizeTitle(c.Title))
	fmt.Fprintf(w, "status:  %s\n", c.Badge)
	if c.Due != "" {
		due := c.Due
		if c.Overdue {
			due += " " + OverdueMarker
		}
		fmt.Fprintf(w, "due:     %s\n", due)
	}
	if c.Created != "" {
		fmt.Fprintf(w, "created: %s\n", c.Created)
	}
	if d := strings.TrimSpace(c.Description); d != "" {
		fmt.Fprintf(w, "\n%s\n", d)
	}
}

// FormatStats writes the per-status counters.
func FormatStats(w io.Writer, s store.Stats) {
	fmt.Fprintf(w, "%-12s %d\n", task.Pending.Label()+":", s.Pending)
	fmt.Fprintf(w, "%-12s %d\n", task.InProgress.Label()+":", s.InProgress)
	fmt.Fprintf(w, "%-12s %d\n", task.Completed.Label()+":", s.Completed)
	fmt.Fprintf(w, "%-12s %d\n", "Total:", s.Total())
}

// FormatGreeting writes the logged-in user greeting.
func FormatGreeting(w io.Writer, username string) {
	fmt.Fprintf(w, "Hello, %s\n", username)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
