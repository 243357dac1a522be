// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todo/internal/service"
)

const (
	// DoneMarker marks a completed task.
	DoneMarker = "[x]"

	// PendingMarker marks a task that is not done yet.
	PendingMarker = "[ ]"

	// EmptyDescription is shown for blank descriptions.
	EmptyDescription = "(no description)"
)

// Printer writes task lines, styling the completion marker when w is a
// color-capable terminal.
type Printer struct {
	w       io.Writer
	done    lipgloss.Style
	pending lipgloss.Style
}

// NewPrinter creates a Printer bound to w.
// With noColor set, output is plain text regardless of the terminal.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		done:    r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		pending: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Task formats one task line.
// Format: "{ID:>4}  {MARKER} {DESCRIPTION}\n" (4-wide right-aligned id, two spaces, marker, description)
func (p *Printer) Task(task service.Task) {
	marker := p.pending.Render(PendingMarker)
	if task.Done {
		marker = p.done.Render(DoneMarker)
	}
	fmt.Fprintf(p.w, "%4d  %s %s\n", task.ID, marker, normalizeDescription(task.Description))
}

// Tasks formats every task in order.
func (p *Printer) Tasks(tasks []service.Task) {
	for _, t := range tasks {
		p.Task(t)
	}
}

// normalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(no description)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return EmptyDescription
	}
	return desc
}
