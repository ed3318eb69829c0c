package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single column/value pair within a result row.
type Field struct {
	Column string
	Value  any
}

// Row is one record of a query result. Result rows have no fixed schema
// (columns vary per query), so a row is an ordered sequence of fields
// rather than a struct; the JSON codec below preserves the column order
// the collaborator sent.
type Row []Field

// Get returns the value of the named column.
func (r Row) Get(column string) (any, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes a JSON object into a Row, keeping field order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}

	row := Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row: non-string key %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		row = append(row, Field{Column: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}

// MarshalJSON encodes the row back to a JSON object in field order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// QueryResult is the outcome of one natural-language query. Exactly one of
// {SQL, Rows, Response} or {Error} is meaningful, governed by Success. It is
// held only as the current result in memory; the ledger keeps its digest.
type QueryResult struct {
	Success  bool   `json:"success"`
	SQL      string `json:"sql_query,omitempty"`
	Rows     []Row  `json:"results,omitempty"`
	Response string `json:"response,omitempty"`
	Count    int    `json:"results_count,omitempty"`
	Error    string `json:"error,omitempty"`
}
