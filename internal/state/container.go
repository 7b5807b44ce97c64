// Package state holds the task list state and the operations that mutate it.
package state

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/idilsaglam/tasklist/internal/model"
)

// ErrEmptyItem is returned by AddItem when empty drafts are rejected.
var ErrEmptyItem = errors.New("empty item")

const (
	maxIDAttempts  = 16
	minPrefixRunes = 4
)

// Option configures a Container.
type Option func(*Container)

// WithIDFunc overrides identifier generation. When fn keeps returning empty
// or taken ids, the container falls back to random UUIDs after
// maxIDAttempts draws.
func WithIDFunc(fn func() string) Option {
	return func(c *Container) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// RejectEmpty makes AddItem refuse blank drafts.
func RejectEmpty(reject bool) Option {
	return func(c *Container) {
		c.rejectEmpty = reject
	}
}

// Container owns the AppState. It is not safe for concurrent use; all calls
// are expected to come from one event loop.
type Container struct {
	st          model.AppState
	newID       func() string
	rejectEmpty bool
}

// New returns a container with an empty draft and an empty list.
func New(opts ...Option) *Container {
	c := &Container{
		st:    model.AppState{List: []model.Item{}},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetInput replaces the draft text.
func (c *Container) SetInput(text string) {
	c.st.NewItem = text
}

// Input returns the draft text.
func (c *Container) Input() string { return c.st.NewItem }

// AddItem appends the draft as a new item and clears the draft.
func (c *Container) AddItem() (model.Item, error) {
	if c.rejectEmpty && strings.TrimSpace(c.st.NewItem) == "" {
		return model.Item{}, ErrEmptyItem
	}
	it := model.Item{ID: c.uniqueID(), Value: c.st.NewItem}
	c.st.List = append(c.st.List, it)
	c.st.NewItem = ""
	return it, nil
}

// DeleteItem removes the item with the given id. It reports whether
// anything was removed; an unknown id leaves the list untouched.
func (c *Container) DeleteItem(id string) bool {
	for i, it := range c.st.List {
		if it.ID == id {
			c.st.List = append(c.st.List[:i:i], c.st.List[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the list.
func (c *Container) Items() []model.Item {
	out := make([]model.Item, len(c.st.List))
	copy(out, c.st.List)
	return out
}

// Len returns the number of items.
func (c *Container) Len() int { return len(c.st.List) }

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() model.AppState { return c.st.Clone() }

// Restore replaces the whole state. Items repeating an earlier id get a
// fresh one so ids stay unique.
func (c *Container) Restore(s model.AppState) {
	next := model.AppState{NewItem: s.NewItem, List: make([]model.Item, 0, len(s.List))}
	seen := make(map[string]bool, len(s.List))
	for _, it := range s.List {
		if it.ID == "" || seen[it.ID] {
			it.ID = c.freshID(seen)
		}
		seen[it.ID] = true
		next.List = append(next.List, it)
	}
	c.st = next
}

// Lookup resolves ref as an item id first, then as a 1-based position, then
// as an id prefix of at least four characters matching exactly one item.
func (c *Container) Lookup(ref string) (model.Item, bool) {
	for _, it := range c.st.List {
		if it.ID == ref {
			return it, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.st.List) {
		return c.st.List[n-1], true
	}
	if utf8.RuneCountInString(ref) < minPrefixRunes {
		return model.Item{}, false
	}
	var found model.Item
	matches := 0
	for _, it := range c.st.List {
		if strings.HasPrefix(it.ID, ref) {
			found = it
			matches++
		}
	}
	return found, matches == 1
}

func (c *Container) uniqueID() string {
	seen := make(map[string]bool, len(c.st.List))
	for _, it := range c.st.List {
		seen[it.ID] = true
	}
	return c.freshID(seen)
}

// freshID draws ids until the generator yields one not in seen.
func (c *Container) freshID(seen map[string]bool) string {
	for range maxIDAttempts {
		if id := c.newID(); id != "" && !seen[id] {
			return id
		}
	}
	for {
		if id := uuid.NewString(); !seen[id] {
			return id
		}
	}
}
