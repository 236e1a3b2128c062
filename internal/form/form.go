// Package form holds in-progress field values for an entity being created or
// edited. A Schema enumerates the recognized fields and their defaults; a
// State is one draft built from it.
package form

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrNotAList     = errors.New("form field is not a list")
)

// Field describes one recognized field. Default must be a string or a
// []string; list fields are the ones whose default is a []string.
type Field struct {
	Name    string
	Default any
}

type Schema struct {
	fields []Field
	index  map[string]int
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

// Fields returns the recognized fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Schema) isList(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	_, list := s.fields[i].Default.([]string)
	return list
}

// New returns a State holding the schema defaults.
func (s *Schema) New() *State {
	st := &State{schema: s}
	st.Reset()
	return st
}

type State struct {
	schema *Schema
	values map[string]any
}

// Reset restores every field to its default.
func (st *State) Reset() {
	st.values = make(map[string]any, len(st.schema.fields))
	for _, f := range st.schema.fields {
		st.values[f.Name] = cloneValue(f.Default)
	}
}

// Set assigns a single recognized field.
func (st *State) Set(name string, value any) error {
	if !st.schema.Has(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if st.schema.isList(name) {
		list, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotAList, name)
		}
		st.values[name] = cloneValue(list)
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("form field %s expects text, got %T", name, value)
	}
	st.values[name] = s
	return nil
}

// HandleChange is the text-input change handler: name/value as they arrive
// from an input element.
func (st *State) HandleChange(name, value string) error {
	if st.schema.isList(name) {
		return fmt.Errorf("%w: %s is a list", ErrNotAList, name)
	}
	return st.Set(name, value)
}

// SetValues overwrites the recognized keys of values and ignores the rest, so
// a stored document (which also carries its id) can be loaded for editing.
func (st *State) SetValues(values map[string]any) error {
	for name, v := range values {
		if !st.schema.Has(name) {
			continue
		}
		if st.schema.isList(name) {
			list, err := toStrings(v)
			if err != nil {
				return fmt.Errorf("form field %s: %w", name, err)
			}
			v = list
		}
		if err := st.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Bind copies submitted HTML form values. Only recognized names are read;
// list fields take every submitted value in order, missing text fields keep
// their current value.
func (st *State) Bind(values url.Values) {
	for _, f := range st.schema.fields {
		submitted, ok := values[f.Name]
		if !ok {
			continue
		}
		if st.schema.isList(f.Name) {
			list := make([]string, 0, len(submitted))
			for _, v := range submitted {
				if v != "" {
					list = append(list, v)
				}
			}
			st.values[f.Name] = list
			continue
		}
		if len(submitted) > 0 {
			st.values[f.Name] = submitted[0]
		}
	}
}

func (st *State) Get(name string) any {
	v, ok := st.values[name]
	if !ok {
		return nil
	}
	return cloneValue(v)
}

func (st *State) String(name string) string {
	s, _ := st.values[name].(string)
	return s
}

func (st *State) Strings(name string) []string {
	list, _ := st.values[name].([]string)
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Append adds an entry to a list field. Empty entries are ignored.
func (st *State) Append(name, entry string) error {
	if !st.schema.isList(name) {
		return fmt.Errorf("%w: %s", ErrNotAList, name)
	}
	if entry == "" {
		return nil
	}
	st.values[name] = append(st.Strings(name), entry)
	return nil
}

// RemoveAt drops the entry at index from a list field. Out of range indexes
// leave the list unchanged.
func (st *State) RemoveAt(name string, index int) error {
	if !st.schema.isList(name) {
		return fmt.Errorf("%w: %s", ErrNotAList, name)
	}
	list, _ := st.values[name].([]string)
	if index < 0 || index >= len(list) {
		return nil
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	st.values[name] = out
	return nil
}

// Values returns a copy of all field values.
func (st *State) Values() map[string]any {
	out := make(map[string]any, len(st.values))
	for k, v := range st.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Decode writes the draft into out, a pointer to a struct with mapstructure
// tags matching the field names.
func (st *State) Decode(out any) error {
	return mapstructure.Decode(st.Values(), out)
}

// Load reads an entity struct back into the draft.
func (st *State) Load(in any) error {
	values := map[string]any{}
	if err := mapstructure.Decode(in, &values); err != nil {
		return fmt.Errorf("load form values: %w", err)
	}
	return st.SetValues(values)
}

func cloneValue(v any) any {
	if list, ok := v.([]string); ok {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	return v
}

func toStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list entry %v is not text", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotAList, v)
	}
}
