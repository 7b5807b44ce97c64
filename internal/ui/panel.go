package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Out and Err are where OK, Fail and Panel write. Tests swap them.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

// OK prints a success line.
func OK(msg string) {
	t := Current()
	fmt.Fprintln(Out, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line to Err.
func Fail(msg string) {
	t := Current()
	fmt.Fprintln(Err, t.Error.Render(t.SymFail+" "+msg))
}

// Note prints a muted line.
func Note(msg string) {
	fmt.Fprintln(Out, Current().Muted.Render(msg))
}

// PanelString frames inner with the theme border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box around lines.
func Panel(lines []string) {
	fmt.Fprintln(Out, PanelString(strings.Join(lines, "\n")))
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// ShortID trims long ids to their first eight runes for display.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) > 8 {
		return string(r[:8])
	}
	return id
}
