// Package form holds the editable state of one document request form, takes
// ordered snapshots of it, and checks its constraints before submission.
package form

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-l4doc/pkg/model"
)

// ErrUnknownField is returned when a value targets a field the form lacks.
var ErrUnknownField = errors.New("form: unknown field")

// Form is the current input state of one form. It is safe for concurrent use:
// the prompt layer may keep editing while a submission snapshots it.
type Form struct {
	id    string
	model model.FormModel

	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty form with the given element id. String defaults from
// the model are applied.
func New(id string, m model.FormModel) *Form {
	f := &Form{id: id, model: m, values: make(map[string]string, len(m.Fields))}
	f.applyDefaults()
	return f
}

// ID returns the form element identifier, e.g. "contratoForm".
func (f *Form) ID() string {
	return f.id
}

// Model returns the form's field model.
func (f *Form) Model() model.FormModel {
	return f.model
}

// Set stores a field value.
func (f *Form) Set(name, value string) error {
	if _, ok := f.model.Field(name); !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownField, name, f.id)
	}
	f.mu.Lock()
	f.values[name] = value
	f.mu.Unlock()
	return nil
}

// Fill stores several values. Unknown names are reported together and no
// value is written when any is unknown.
func (f *Form) Fill(values map[string]string) error {
	var unknown []string
	for name := range values {
		if _, ok := f.model.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %q in %s", ErrUnknownField, unknown, f.id)
	}
	f.mu.Lock()
	for name, value := range values {
		f.values[name] = value
	}
	f.mu.Unlock()
	return nil
}

// Value returns the current value of a field ("" when unset).
func (f *Form) Value(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name]
}

// Reset clears every value and re-applies defaults.
func (f *Form) Reset() {
	f.mu.Lock()
	f.values = make(map[string]string, len(f.model.Fields))
	f.mu.Unlock()
	f.applyDefaults()
}

// Snapshot returns every field in form order, unset fields as "".
func (f *Form) Snapshot() Record {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var rec Record
	for _, field := range f.model.Fields {
		rec.Set(field.Name, f.values[field.Name])
	}
	return rec
}

func (f *Form) applyDefaults() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range f.model.Fields {
		if field.Default == nil {
			continue
		}
		f.values[field.Name] = fmt.Sprint(field.Default)
	}
}
