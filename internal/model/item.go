package model

// Item is the domain model for a todo entry.
// Created on add, never mutated, removed on delete.
type Item struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// AppState is the whole in-memory state of the task list: the draft
// input text and the ordered items.
type AppState struct {
	NewItem string `json:"newItem"`
	List    []Item `json:"list"`
}

// Clone returns a deep copy so callers can't alias the item slice.
func (s AppState) Clone() AppState {
	out := AppState{NewItem: s.NewItem, List: make([]Item, len(s.List))}
	copy(out.List, s.List)
	return out
}
