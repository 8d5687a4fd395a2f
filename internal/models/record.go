package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one normalized statement row: the source header names mapped to
// their cell values, in source column order, plus the derived debit flag.
// A Record is not modified after construction.
type Record struct {
	keys   []string
	values map[string]string
	debit  bool
}

// NewRecord zips headers to cells positionally. Cells beyond the header
// length are ignored; a repeated header name keeps its first position and
// its last value. The debit flag is set when the trimmed value of
// debitColumn is non-empty.
func NewRecord(headers, cells []string, debitColumn string) Record {
	r := Record{
		keys:   make([]string, 0, len(headers)),
		values: make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		if i >= len(cells) {
			break
		}
		if _, seen := r.values[h]; !seen {
			r.keys = append(r.keys, h)
		}
		r.values[h] = cells[i]
	}
	r.debit = strings.TrimSpace(r.values[debitColumn]) != ""
	return r
}

// RecordFromMap builds a record with an explicit key order and flag, as read
// back from the JSON interchange format.
func RecordFromMap(keys []string, values map[string]string, debit bool) Record {
	r := Record{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]string, len(keys)),
		debit:  debit,
	}
	for _, k := range keys {
		if _, seen := r.values[k]; seen {
			continue
		}
		r.keys = append(r.keys, k)
		r.values[k] = values[k]
	}
	return r
}

// Get returns the value of a field, or "" when the record has no such field.
func (r Record) Get(field string) string {
	return r.values[field]
}

// Lookup returns the value of a field and whether it exists.
func (r Record) Lookup(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Keys returns the field names in source column order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Values returns the cell values in source column order.
func (r Record) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

// IsDebit is the derived flag: true when the debit cell was non-empty.
func (r Record) IsDebit() bool {
	return r.debit
}

// Len returns the number of fields, excluding the derived flag.
func (r Record) Len() int {
	return len(r.keys)
}

// MarshalJSON writes the fields in source order followed by the derived flag.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, k := range r.keys {
		if err := writeJSONPair(&buf, k, r.values[k]); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	if err := writeJSONPair(&buf, DebitFlagKey, r.debit); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key string, value interface{}) error {
	if err := writeJSONValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSONValue(buf, value)
}

// writeJSONValue encodes without HTML escaping so descriptions such as
// "A&B STORES" survive unchanged.
func writeJSONValue(buf *bytes.Buffer, value interface{}) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// UnmarshalJSON reads an object keeping its key order. String values are
// taken as is, other scalars by their literal text and null as "".
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	keys := []string{}
	values := map[string]string{}
	debit := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record field '%s': %w", key, err)
		}

		if key == DebitFlagKey {
			if b, ok := raw.(bool); ok {
				debit = b
				continue
			}
		}

		value := ""
		switch v := raw.(type) {
		case nil:
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = fmt.Sprintf("%t", v)
		default:
			return fmt.Errorf("record field '%s' must be a scalar", key)
		}
		keys = append(keys, key)
		values[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = RecordFromMap(keys, values, debit)
	return nil
}

// ToRows rebuilds the tabular view of records: the header of the first
// record followed by one row per record. The derived flag is not included.
func ToRows(records []Record) (header []string, rows [][]string) {
	if len(records) == 0 {
		return nil, nil
	}
	header = records[0].Keys()
	rows = make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = r.Get(h)
		}
		rows = append(rows, row)
	}
	return header, rows
}
