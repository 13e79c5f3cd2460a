package model

import (
	"bytes"
	"encoding/json"
)

// RawRow is one source row keyed by the file's column headers. Header order is
// preserved. A header whose cell was missing from the row holds no value and
// serializes as null.
type RawRow struct {
	keys  []string
	cells map[string]*string
}

// NewRawRow returns an empty row.
func NewRawRow() RawRow {
	return RawRow{cells: make(map[string]*string)}
}

// Set stores value under header. A repeated header keeps its first position
// and takes the latest value.
func (r *RawRow) Set(header, value string) {
	r.put(header, &value)
}

// SetMissing records header with no cell value.
func (r *RawRow) SetMissing(header string) {
	r.put(header, nil)
}

func (r *RawRow) put(header string, value *string) {
	if r.cells == nil {
		r.cells = make(map[string]*string)
	}
	if _, ok := r.cells[header]; !ok {
		r.keys = append(r.keys, header)
	}
	r.cells[header] = value
}

// Get returns the cell under header. ok is false when the header is absent or
// its cell is missing.
func (r RawRow) Get(header string) (value string, ok bool) {
	v := r.cells[header]
	if v == nil {
		return "", false
	}
	return *v, true
}

// Keys returns the headers in source order.
func (r RawRow) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of headers.
func (r RawRow) Len() int { return len(r.keys) }

// MarshalJSON writes the row as a JSON object in header order.
func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.cells[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
