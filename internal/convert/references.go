// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pdiddy/refconvert/pkg/types"
)

var (
	// ErrNotFound is returned when a reference file is missing or unreadable.
	ErrNotFound = errors.New("reference file not found")
	// ErrParse is returned when a reference file is not a JSON object of
	// string values, including files that are not valid UTF-8.
	ErrParse = errors.New("malformed reference file")
	// ErrWrite is returned when an HTML fragment cannot be written.
	ErrWrite = errors.New("cannot write output")
)

// LoadReferences reads the JSON object at path and returns its entries in
// document order. Every value must be a string.
func LoadReferences(path string) (types.ReferenceSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading references %s: %w: %w", path, ErrNotFound, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("parsing references %s: %w: %w", path, ErrParse, errors.New("invalid UTF-8"))
	}
	set, err := parseReferences(data)
	if err != nil {
		return nil, fmt.Errorf("parsing references %s: %w: %w", path, ErrParse, err)
	}
	return set, nil
}

// parseReferences walks the token stream rather than unmarshaling into a map
// so that key order survives; ties in year ordering depend on it. A repeated
// key keeps its first position and takes the last value.
func parseReferences(data []byte) (types.ReferenceSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errors.New("empty document")
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top-level value is not an object")
	}

	set := types.ReferenceSet{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("value for %q is not a string", key)
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("value for %q: %w", key, err)
		}

		if i, dup := seen[key]; dup {
			set[i].Text = text
			continue
		}
		seen[key] = len(set)
		set = append(set, types.Citation{Key: key, Text: text})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level object")
		}
		return nil, err
	}
	return set, nil
}
