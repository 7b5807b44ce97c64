package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tasklist/internal/model"
)

// CurrentVersion is the record layout written by Persist.
const CurrentVersion = 1

// Record is the persisted form of model.AppState.
type Record struct {
	Version int          `json:"version"`
	NewItem string       `json:"newItem"`
	List    []model.Item `json:"list"`
}

func recordFrom(s model.AppState) Record {
	list := s.List
	if list == nil {
		list = []model.Item{}
	}
	return Record{Version: CurrentVersion, NewItem: s.NewItem, List: list}
}

// State converts the record back to in-memory state.
func (r Record) State() model.AppState {
	s := model.AppState{NewItem: r.NewItem, List: make([]model.Item, len(r.List))}
	copy(s.List, r.List)
	return s
}

const schemaURL = "https://github.com/idilsaglam/tasklist/schema/state.v1.json"

// RecordSchema is the JSON Schema every stored record must satisfy.
const RecordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "tasklist state",
  "type": "object",
  "required": ["version", "newItem", "list"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "newItem": {"type": "string"},
    "list": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "value"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "value": {"type": "string"}
        }
      }
    }
  }
}`

var recordSchema = jsonschema.MustCompileString(schemaURL, RecordSchema)

// SchemaError is a record that failed schema validation.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// decodeRecord parses and validates raw. Newer versions are reported with
// ErrUnsupportedVersion before schema validation.
func decodeRecord(raw string) (Record, error) {
	var obj interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}
	if m, ok := obj.(map[string]interface{}); ok {
		if v, ok := m["version"].(float64); ok && int(v) > CurrentVersion {
			return Record{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(v))
		}
	}
	if err := recordSchema.Validate(obj); err != nil {
		return Record{}, schemaError(err)
	}
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// schemaError reduces a jsonschema error tree to its first leaf.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{
		Path:    strings.TrimPrefix(ve.InstanceLocation, "/"),
		Message: ve.Message,
	}
}
