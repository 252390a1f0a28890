package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// ReadJSON reads an array of objects (or a single object) into a table.
// Columns are the union of keys in the order they first appear; absent keys
// and nulls are missing values.
func ReadJSON(r io.Reader) (*core.Table, error) {
	data, err := io.ReadAll(NewCleanReader(r))
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for _, k := range rec.keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	builders := make([]*columnBuilder, len(names))
	for i, name := range names {
		b := &columnBuilder{name: name}
		for _, rec := range records {
			appendJSONValue(b, rec.values[name])
		}
		builders[i] = b
	}

	return buildTable(builders)
}

// jsonRecord is one decoded object with its keys in document order.
type jsonRecord struct {
	keys   []string
	values map[string]any
}

func decodeRecords(data []byte) ([]jsonRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] != '[' {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		return []jsonRecord{rec}, nil
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	var records []jsonRecord
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return records, nil
}

// decodeObject reads one JSON object from dec, keeping key order.
func decodeObject(dec *json.Decoder) (jsonRecord, error) {
	tok, err := dec.Token()
	if err != nil {
		return jsonRecord{}, fmt.Errorf("invalid json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return jsonRecord{}, fmt.Errorf("invalid json: expected object, got %v", tok)
	}

	rec := jsonRecord{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return jsonRecord{}, fmt.Errorf("invalid json: %w", err)
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return jsonRecord{}, fmt.Errorf("invalid json: %w", err)
		}
		if _, dup := rec.values[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.values[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return jsonRecord{}, fmt.Errorf("invalid json: %w", err)
	}
	return rec, nil
}

func appendJSONValue(b *columnBuilder, v any) {
	switch val := v.(type) {
	case nil:
		b.appendNull()
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			b.appendText(val.String())
			return
		}
		b.appendParsed(f, val.String())
	case string:
		b.appendText(val)
	case bool:
		b.appendText(fmt.Sprint(val))
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			b.appendText(fmt.Sprint(val))
			return
		}
		b.appendText(string(raw))
	}
}
