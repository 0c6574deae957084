package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"userstore/internal/domain"
)

var emptyDocument = []byte(`{"users":[]}`)

func isBlank(b []byte) bool { return len(bytes.TrimSpace(b)) == 0 }

// decodeStrict decodes exactly one JSON value from b, keeping numbers as
// json.Number.
func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after document")
	}
	return nil
}

// decodeDocument parses the stored bytes. A blank file is an empty
// collection, as is an object without "users".
func decodeDocument(b []byte) (domain.Document, error) {
	doc := domain.Document{Users: []domain.User{}}
	if isBlank(b) {
		return doc, nil
	}

	var top map[string]json.RawMessage
	if err := decodeStrict(b, &top); err != nil {
		return doc, err
	}
	if top == nil {
		return doc, errors.New("document is null")
	}
	raw, ok := top["users"]
	if !ok || string(raw) == "null" {
		return doc, nil
	}
	if err := decodeStrict(raw, &doc.Users); err != nil {
		return doc, err
	}
	if doc.Users == nil {
		doc.Users = []domain.User{}
	}
	return doc, nil
}

// encodeDocument renders doc with two-space indentation and without HTML
// escaping so stored strings stay as the caller sent them.
func encodeDocument(doc domain.Document) ([]byte, error) {
	if doc.Users == nil {
		doc.Users = []domain.User{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
