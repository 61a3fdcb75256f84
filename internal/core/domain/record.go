package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawGrid is a spreadsheet range as returned by the gateway: rows of text cells.
// Rows may be shorter than the header row.
type RawGrid [][]string

// Cell returns the value at row i, column j, or "" when the cell is missing.
func (g RawGrid) Cell(i, j int) string {
	if i < 0 || i >= len(g) || j < 0 || j >= len(g[i]) {
		return ""
	}
	return g[i][j]
}

// Record is one data row keyed by header. Keys keep header order.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(n int) Record {
	return Record{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// RecordOf builds a record from alternating key/value pairs. A trailing key without value maps to "".
func RecordOf(pairs ...string) Record {
	r := NewRecord(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		r.Set(pairs[i], value)
	}
	return r
}

// Set stores value under key. A repeated key keeps its first position and takes the new value.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Lookup is Get with a case-insensitive fallback on the key.
func (r Record) Lookup(key string) (string, bool) {
	if v, ok := r.values[key]; ok {
		return v, true
	}
	for _, k := range r.keys {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return r.values[k], true
		}
	}
	return "", false
}

// Value returns the value under key or "".
func (r Record) Value(key string) string {
	return r.values[key]
}

// Keys returns the field names in header order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// IsBlank reports whether every field is empty.
func (r Record) IsBlank() bool {
	for _, k := range r.keys {
		if strings.TrimSpace(r.values[k]) != "" {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as an object whose keys follow header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
