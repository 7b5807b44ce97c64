// Package widget is the interactive task list: a text input for the draft,
// an "add" action, and one row per item with a "done" action.
package widget

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/state"
)

// ExitSignalMsg tells the model the process is about to be discarded.
type ExitSignalMsg struct {
	Signal os.Signal
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Option configures a Model.
type Option func(*Model)

// WithPersist sets the func called when an exit signal arrives.
func WithPersist(fn func() error) Option {
	return func(m *Model) { m.persist = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model implements tea.Model over a state.Container. The container is the
// single source of truth; the input and list views are rebuilt from it.
type Model struct {
	c       *state.Container
	persist func() error
	logger  *log.Logger

	input textinput.Model
	list  list.Model
	help  help.Model
	keys  keyMap
	focus focusArea

	width, height int
	status        string
	statusErr     bool
	quitting      bool
}

// New builds a model showing the current contents of c.
func New(c *state.Container, opts ...Option) Model {
	m := Model{
		c:       c,
		persist: func() error { return nil },
		logger:  log.New(io.Discard),
		keys:    defaultKeys(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "Input item here"
	m.input.SetValue(c.Input())
	m.input.CursorEnd()
	m.input.Focus()

	l := list.New(rows(c.Items()), itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = l.Styles.PaginationStyle.PaddingLeft(2)
	m.list = l

	m.resize()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case ExitSignalMsg:
		m.logger.Info("exit signal, saving", "signal", msg.Signal)
		if err := m.persist(); err != nil {
			m.logger.Error("save on exit failed", "err", err)
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			return m.toggleFocus(), nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		return m.addItem()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.c.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Done):
		return m.deleteSelected()
	case key.Matches(msg, m.keys.Toggle):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) addItem() (tea.Model, tea.Cmd) {
	it, err := m.c.AddItem()
	if err != nil {
		if errors.Is(err, state.ErrEmptyItem) {
			m.setStatus("Item cannot be empty", true)
			return m, nil
		}
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.logger.Debug("item added", "id", it.ID)
	m.input.SetValue("")
	cmd := m.refresh()
	m.list.Select(len(m.list.Items()) - 1)
	m.setStatus(fmt.Sprintf("added %q", it.Value), false)
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	r, ok := m.list.SelectedItem().(row)
	if !ok {
		return m, nil
	}
	idx := m.list.Index()
	if !m.c.DeleteItem(r.item.ID) {
		return m, nil
	}
	m.logger.Debug("item done", "id", r.item.ID)
	cmd := m.refresh()
	if n := len(m.list.Items()); n == 0 {
		m = m.toggleFocus()
	} else if idx >= n {
		m.list.Select(n - 1)
	}
	m.setStatus(fmt.Sprintf("done %q", r.item.Value), false)
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput && len(m.list.Items()) > 0 {
		m.focus = focusList
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

// refresh rebuilds the rows from the container.
func (m *Model) refresh() tea.Cmd {
	return m.list.SetItems(rows(m.c.Items()))
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// chrome is the number of lines around the list: header, input box, help
// and status.
const chrome = 9

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - chrome
	if m.help.ShowAll {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.input.Width = w - 6
	m.help.Width = w
	m.list.SetSize(w, h)
}

// State returns the container backing the model.
func (m Model) State() *state.Container { return m.c }

// Quitting reports whether the model asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

func rows(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, row{item: it})
	}
	return out
}
