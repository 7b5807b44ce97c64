package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/idilsaglam/tasklist/internal/model"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestSetInput(t *testing.T) {
	tests := []string{"", "buy milk", "  padded  ", "ünïcödé ✔"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			c := New()
			c.SetInput(s)
			if got := c.Input(); got != s {
				t.Errorf("Input() = %q, want %q", got, s)
			}
		})
	}
}

func TestAddItemAppendsDraftAndResets(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	c.SetInput("first")
	if _, err := c.AddItem(); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	c.SetInput("second")
	it, err := c.AddItem()
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if it.Value != "second" || it.ID != "id-2" {
		t.Errorf("AddItem() = %+v, want id-2/second", it)
	}
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[1] != it {
		t.Errorf("last item = %+v, want %+v", items[1], it)
	}
	if c.Input() != "" {
		t.Errorf("Input() = %q after add, want empty", c.Input())
	}
}

func TestAddItemTwiceGivesDistinctIDs(t *testing.T) {
	c := New()
	a, _ := c.AddItem()
	b, _ := c.AddItem()
	if a.ID == b.ID {
		t.Errorf("ids collide: %q", a.ID)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestAddItemEmptyDraft(t *testing.T) {
	c := New()
	it, err := c.AddItem()
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if it.Value != "" {
		t.Errorf("Value = %q, want empty", it.Value)
	}

	strict := New(RejectEmpty(true))
	strict.SetInput("   ")
	if _, err := strict.AddItem(); !errors.Is(err, ErrEmptyItem) {
		t.Errorf("AddItem() error = %v, want ErrEmptyItem", err)
	}
	if strict.Len() != 0 || strict.Input() != "   " {
		t.Errorf("state changed on rejected add: len=%d input=%q", strict.Len(), strict.Input())
	}
}

func TestAddItemSkipsTakenIDs(t *testing.T) {
	ids := []string{"a", "a", "b"}
	i := 0
	c := New(WithIDFunc(func() string {
		id := ids[i]
		i++
		return id
	}))
	first, _ := c.AddItem()
	second, _ := c.AddItem()
	if first.ID != "a" || second.ID != "b" {
		t.Errorf("ids = %q, %q; want a, b", first.ID, second.ID)
	}
}

func TestAddItemStuckGeneratorFallsBack(t *testing.T) {
	c := New(WithIDFunc(func() string { return "same" }))
	first, _ := c.AddItem()
	second, _ := c.AddItem()
	if first.ID != "same" {
		t.Errorf("first id = %q, want same", first.ID)
	}
	if second.ID == "" || second.ID == "same" {
		t.Errorf("second id = %q, want a fresh one", second.ID)
	}
}

func TestDeleteItem(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	for _, v := range []string{"a", "b", "c"} {
		c.SetInput(v)
		c.AddItem()
	}

	if !c.DeleteItem("id-2") {
		t.Fatal("DeleteItem(id-2) = false, want true")
	}
	want := []model.Item{{ID: "id-1", Value: "a"}, {ID: "id-3", Value: "c"}}
	got := c.Items()
	if len(got) != len(want) {
		t.Fatalf("items = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDeleteItemAbsentIsNoop(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	c.SetInput("keep")
	c.AddItem()
	before := c.Items()

	if c.DeleteItem("missing") {
		t.Error("DeleteItem(missing) = true, want false")
	}
	after := c.Items()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("items changed: %+v -> %+v", before, after)
	}
}

func TestDeleteDoesNotAliasItems(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	c.AddItem()
	c.AddItem()
	held := c.Items()
	c.DeleteItem("id-1")
	if held[0].ID != "id-1" || held[1].ID != "id-2" {
		t.Errorf("copy returned by Items() was modified: %+v", held)
	}
}

func TestScenarioAddThenDone(t *testing.T) {
	c := New()
	c.SetInput("buy milk")
	if c.Input() != "buy milk" {
		t.Fatalf("Input() = %q", c.Input())
	}
	it, _ := c.AddItem()
	items := c.Items()
	if len(items) != 1 || items[0].Value != "buy milk" || c.Input() != "" {
		t.Fatalf("after add: items=%+v input=%q", items, c.Input())
	}
	c.DeleteItem(it.ID)
	if c.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", c.Len())
	}
}

func TestRestoreRepairsDuplicateIDs(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	c.Restore(model.AppState{
		NewItem: "draft",
		List: []model.Item{
			{ID: "x", Value: "one"},
			{ID: "x", Value: "two"},
			{ID: "", Value: "three"},
		},
	})

	items := c.Items()
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate id %q after restore", it.ID)
		}
		seen[it.ID] = true
	}
	if items[0].ID != "x" {
		t.Errorf("first id = %q, want x kept", items[0].ID)
	}
	if items[1].Value != "two" || items[2].Value != "three" {
		t.Errorf("order not preserved: %+v", items)
	}
	if c.Input() != "draft" {
		t.Errorf("Input() = %q, want draft", c.Input())
	}
}

func TestLookup(t *testing.T) {
	c := New(WithIDFunc(counterIDs()))
	c.SetInput("a")
	c.AddItem()
	c.SetInput("b")
	c.AddItem()

	tests := []struct {
		ref    string
		wantOK bool
		wantID string
	}{
		{"id-2", true, "id-2"},
		{"1", true, "id-1"},
		{"2", true, "id-2"},
		{"0", false, ""},
		{"3", false, ""},
		{"nope", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			it, ok := c.Lookup(tt.ref)
			if ok != tt.wantOK || it.ID != tt.wantID {
				t.Errorf("Lookup(%q) = %+v, %v; want %q, %v", tt.ref, it, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestLookupByPrefix(t *testing.T) {
	ids := []string{"2f77cdd6-aaaa", "2f77beef-bbbb", "9c01d00d-cccc", "12345678-dddd"}
	i := 0
	c := New(WithIDFunc(func() string {
		id := ids[i]
		i++
		return id
	}))
	for range ids {
		c.AddItem()
	}

	tests := []struct {
		ref    string
		wantOK bool
		wantID string
	}{
		{"2f77cdd6", true, "2f77cdd6-aaaa"},
		{"9c01", true, "9c01d00d-cccc"},
		{"2f7", false, ""},
		{"2f7b", false, ""},
		{"2f78beef", true, "2f77beef-bbbb"},
		{"2f77cdd6-aaaa-more", false, ""},
		{"12345678", true, "12345678-dddd"},
		{"2", true, "2f77beef-bbbb"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			it, ok := c.Lookup(tt.ref)
			if ok != tt.wantOK || it.ID != tt.wantID {
				t.Errorf("Lookup(%q) = %+v, %v; want %q, %v", tt.ref, it, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
