package form

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one name/value pair of a Record.
type Entry struct {
	Name  string
	Value string
}

// Record is the flat, ordered snapshot of a form's field values taken at
// submission time. The zero value is an empty record ready to use.
type Record struct {
	entries []Entry
	index   map[string]int
}

// RecordOf builds a Record from pairs in the given order.
func RecordOf(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r.Set(e.Name, e.Value)
	}
	return r
}

// Set assigns value to name. A new name is appended; an existing one keeps its
// position.
func (r *Record) Set(name, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if idx, ok := r.index[name]; ok {
		r.entries[idx].Value = value
		return
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Value: value})
}

// Get returns the value stored for name.
func (r Record) Get(name string) (string, bool) {
	idx, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.entries[idx].Value, true
}

// Len reports the number of fields.
func (r Record) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the pairs in order.
func (r Record) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Names returns field names in order.
func (r Record) Names() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Name)
	}
	return out
}

// First returns the first field of the record.
func (r Record) First() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[0], true
}

// Map returns the values as an unordered map.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.entries))
	for _, e := range r.entries {
		out[e.Name] = e.Value
	}
	return out
}

// MarshalJSON encodes the record as a flat JSON object of strings, keeping
// field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, fmt.Errorf("form: encode key %q: %w", e.Name, err)
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("form: encode value of %q: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
