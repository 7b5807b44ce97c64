package widget

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// row adapts model.Item to bubbles/list.Item.
type row struct {
	item model.Item
}

func (r row) FilterValue() string { return r.item.Value }

// itemDelegate renders one line per item; the selected row carries the
// "done" hint.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	t := ui.Current()
	text := r.item.Value
	if text == "" {
		text = t.Muted.Render("(empty)")
	}
	line := fmt.Sprintf("%s %s", t.Muted.Render(t.SymItem), text)
	if index == m.Index() {
		fmt.Fprintln(w, t.Selected.Render(t.SymCursor)+line+"  "+t.Help.Render("[done]"))
		return
	}
	fmt.Fprintln(w, strings.Repeat(" ", lipgloss.Width(t.SymCursor))+line)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := ui.Current()

	n := m.c.Len()
	header := fmt.Sprintf("%s   %s %d",
		t.Title.Render("Add tasks that still need to be done..."),
		t.Accent.Render("Total"), n,
	)

	inputBorder := t.BorderColor
	if m.focus == focusInput {
		inputBorder = t.Accent.GetForeground()
	}
	inputBox := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(inputBorder).
		Padding(0, 1).
		Render(m.input.View() + "  " + t.Accent.Render("[Add]"))

	var body string
	if n == 0 {
		body = t.Muted.Render("  nothing to do")
	} else {
		body = m.list.View()
	}

	var helpView string
	if m.focus == focusInput {
		helpView = m.help.View(inputKeys(m.keys))
	} else {
		helpView = m.help.View(listKeys(m.keys))
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = t.Error.Render(m.status)
		} else {
			status = t.Success.Render(t.SymOK + " " + m.status)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, inputBox, body, "", helpView, status)
	return ui.PanelString(content)
}
