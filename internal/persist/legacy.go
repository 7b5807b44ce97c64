package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/idilsaglam/tasklist/internal/model"
)

// Keys of the old per-field layout, one JSON-encoded entry per state field,
// stored without a namespace.
const (
	legacyNewItemKey = "newItem"
	legacyListKey    = "list"
)

// decodeLegacyInput parses a stored draft. Anything that isn't a JSON
// string is taken verbatim.
func decodeLegacyInput(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return raw
	}
	return s
}

type legacyItem struct {
	ID    json.RawMessage `json:"id"`
	Value string          `json:"value"`
}

// decodeLegacyList parses a stored list. Ids were numbers; their shortest
// decimal form becomes the string id.
func decodeLegacyList(raw string) ([]model.Item, error) {
	var in []legacyItem
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("parse list: %w", err)
	}
	out := make([]model.Item, 0, len(in))
	for i, it := range in {
		id, err := legacyID(it.ID)
		if err != nil {
			return nil, fmt.Errorf("list[%d].id: %w", i, err)
		}
		out = append(out, model.Item{ID: id, Value: it.Value})
	}
	return out, nil
}

func legacyID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
