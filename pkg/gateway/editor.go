package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type FieldKind string

const (
	FieldString  FieldKind = "string"
	FieldSecret  FieldKind = "secret"
	FieldInteger FieldKind = "integer"
	FieldFloat   FieldKind = "float"
	FieldBoolean FieldKind = "boolean"
	FieldJson    FieldKind = "json"
)

// FieldSpec declares one editable field of a resource: its payload name,
// a human label, the kind hint that drives coercion, and whether the
// active form requires it
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Default  string
}

// Draft holds the in-progress, unpersisted edit state for a create or
// update. Field writes touch only the draft; the persisted list is
// never mutated through it
type Draft struct {
	fields []FieldSpec
	values map[string]string
	id     *int64
}

func newDraft(fields []FieldSpec, id *int64) *Draft {
	values := map[string]string{}
	for _, field := range fields {
		values[field.Name] = field.Default
	}
	return &Draft{
		fields: fields,
		values: values,
		id:     id,
	}
}

// Id returns the identity of the entity being edited, or nil when the
// draft is for a record that does not exist yet
func (d *Draft) Id() *int64 {
	return d.id
}

func (d *Draft) Fields() []FieldSpec {
	return d.fields
}

func (d *Draft) Get(name string) string {
	return d.values[name]
}

func (d *Draft) Set(name string, raw string) error {
	if _, ok := d.values[name]; !ok {
		return fmt.Errorf("failed to find a field named '%s'", name)
	}
	d.values[name] = raw
	return nil
}

// Payload coerces the draft's raw values into the request body. Required
// fields must be non-empty; an empty optional numeric coerces to an
// explicit null; other empty optional fields are omitted. A json field
// that fails to parse blocks submission here, before any network call
func (d *Draft) Payload() (map[string]any, error) {
	payload := map[string]any{}
	for _, field := range d.fields {
		raw := d.values[field.Name]
		if raw == "" {
			if field.Required {
				return nil, fmt.Errorf("failed to validate draft: field[%s] is required", field.Name)
			}
			switch field.Kind {
			case FieldInteger, FieldFloat:
				payload[field.Name] = nil
			}
			continue
		}
		switch field.Kind {
		case FieldInteger:
			value, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to validate draft: field[%s] should be an integer: %s", field.Name, err)
			}
			payload[field.Name] = value
		case FieldFloat:
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to validate draft: field[%s] should be a number: %s", field.Name, err)
			}
			payload[field.Name] = value
		case FieldBoolean:
			value, ok := parseBooleanField(raw)
			if !ok {
				return nil, fmt.Errorf("failed to validate draft: field[%s] should be a boolean", field.Name)
			}
			payload[field.Name] = value
		case FieldJson:
			if !json.Valid([]byte(raw)) {
				return nil, fmt.Errorf("failed to validate draft: field[%s] is not valid json", field.Name)
			}
			payload[field.Name] = json.RawMessage(raw)
		default:
			payload[field.Name] = raw
		}
	}
	return payload, nil
}

// parseBooleanField accepts the same vocabulary the interactive form's
// boolean validator does, so a form-validated value can never fail
// coercion at submit
func parseBooleanField(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

type EditorState string

const (
	EditorClosed          EditorState = "closed"
	EditorEditingNew      EditorState = "editing_new"
	EditorEditingExisting EditorState = "editing_existing"
)

func NewEditor[T Entity](fields []FieldSpec, mutator *Mutator[T]) *Editor[T] {
	return &Editor[T]{
		fields:  fields,
		mutator: mutator,
	}
}

// Editor owns the draft lifecycle of one page's side-panel form: closed
// until an add or modify action opens a draft, back to closed on cancel
// or a successful submit. Whether a submit creates or updates is
// inferred from the presence of the identity on the draft
type Editor[T Entity] struct {
	fields  []FieldSpec
	mutator *Mutator[T]
	draft   *Draft
}

func (e *Editor[T]) State() EditorState {
	switch {
	case e.draft == nil:
		return EditorClosed
	case e.draft.id == nil:
		return EditorEditingNew
	default:
		return EditorEditingExisting
	}
}

func (e *Editor[T]) Draft() *Draft {
	return e.draft
}

// Open starts a draft for a new record with every field at its default
func (e *Editor[T]) Open() *Draft {
	e.draft = newDraft(e.fields, nil)
	return e.draft
}

// OpenExisting starts a draft seeded by cloning a persisted entity; the
// clone is taken through a serialisation round-trip so that edits can
// never reach the listed entity before a successful submit
func (e *Editor[T]) OpenExisting(entity T) (*Draft, error) {
	encoded, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to clone entity: %s", err)
	}
	var snapshot map[string]any
	if err := json.Unmarshal(encoded, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to clone entity: %s", err)
	}
	id := entity.EntityId()
	draft := newDraft(e.fields, &id)
	for _, field := range e.fields {
		value, ok := snapshot[field.Name]
		if !ok || value == nil {
			draft.values[field.Name] = ""
			continue
		}
		rendered, err := renderFieldValue(field, value)
		if err != nil {
			return nil, err
		}
		draft.values[field.Name] = rendered
	}
	e.draft = draft
	return draft, nil
}

// Cancel discards the draft without touching the gateway
func (e *Editor[T]) Cancel() {
	e.draft = nil
}

// Submit validates and persists the draft, clearing it only on success;
// on any failure (including a declined confirmation) the draft is kept
// so the user can edit and retry
func (e *Editor[T]) Submit(ctx context.Context) (*T, error) {
	if e.draft == nil {
		return nil, ErrorNoDraft
	}
	payload, err := e.draft.Payload()
	if err != nil {
		return nil, err
	}
	var result *T
	if e.draft.id == nil {
		result, err = e.mutator.Create(ctx, payload)
	} else {
		result, err = e.mutator.Update(ctx, *e.draft.id, payload)
	}
	if err != nil {
		return nil, err
	}
	e.draft = nil
	return result, nil
}

func renderFieldValue(field FieldSpec, value any) (string, error) {
	switch field.Kind {
	case FieldJson:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to render field[%s]: %s", field.Name, err)
		}
		return string(encoded), nil
	default:
		switch v := value.(type) {
		case string:
			return v, nil
		case bool:
			return strconv.FormatBool(v), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		default:
			return fmt.Sprintf("%v", v), nil
		}
	}
}
