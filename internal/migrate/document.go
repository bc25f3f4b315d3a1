// Package migrate upgrades site documents of any historical schema version
// to the current one.
//
// Documents are handled as untyped decoded JSON until the last step of the
// chain has run, then decoded into a typed *site.Site.
package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/gorewood/lunchlady/internal/site"
)

// Unversioned is the version reported for documents written before the
// schemaVersion field existed.
const Unversioned = -1

var (
	// ErrMalformed is returned when a document cannot be parsed or a
	// migration precondition does not hold.
	ErrMalformed = errors.New("malformed site document")

	// ErrUnknownSchemaVersion is returned for documents written by a newer
	// build than this one.
	ErrUnknownSchemaVersion = errors.New("unknown schema version")
)

// Document is a decoded site document of unknown version.
type Document struct {
	// Fields holds the top-level JSON object.
	Fields map[string]any
	// SectionKeys is the key order of the sections object as it appeared in
	// the source text. Go maps do not keep it, and version 1 derives the
	// initial section order from it.
	SectionKeys []string
}

// Parse decodes raw JSON into a Document, recording the observed order of
// the sections object.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrMalformed)
	}

	var shape struct {
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	keys, err := objectKeys(shape.Sections)
	if err != nil {
		return nil, fmt.Errorf("%w: sections: %w", ErrMalformed, err)
	}

	renameLegacyFields(fields)
	return &Document{Fields: fields, SectionKeys: keys}, nil
}

// Field names written by the first builds of the tool, at version 0 and
// before, mapped to their current names.
var (
	legacySiteFields = map[string]string{
		"siteVersion": "schemaVersion",
		"css":         "resolvedStylesheets",
		"divs":        "resolvedFragments",
	}
	legacySectionFields = map[string]string{
		"name":       "displayName",
		"keyName":    "key",
		"entries":    "entryKeys",
		"entryOrder": "entryOrderMode",
	}
	legacyEntryFields = map[string]string{
		"file":    "sourceFile",
		"keyName": "key",
		"date":    "publishDate",
	}
)

// renameLegacyFields rewrites old field names in place. A current name
// already present wins and the old field is dropped. Values of the wrong
// shape are left for the migration steps to reject.
func renameLegacyFields(fields map[string]any) {
	renameKeys(fields, legacySiteFields)
	if sections, ok := fields["sections"].(map[string]any); ok {
		for _, raw := range sections {
			if sec, ok := raw.(map[string]any); ok {
				renameKeys(sec, legacySectionFields)
			}
		}
	}
	if entries, ok := fields["entries"].(map[string]any); ok {
		for _, raw := range entries {
			if entry, ok := raw.(map[string]any); ok {
				renameKeys(entry, legacyEntryFields)
			}
		}
	}
}

func renameKeys(m map[string]any, names map[string]string) {
	for old, current := range names {
		v, ok := m[old]
		if !ok {
			continue
		}
		if _, has := m[current]; !has {
			m[current] = v
		}
		delete(m, old)
	}
}

// Version returns the document's schema version, or Unversioned when the
// field is absent.
func (d *Document) Version() (int, error) {
	raw, ok := d.Fields["schemaVersion"]
	if !ok || raw == nil {
		return Unversioned, nil
	}

	var v float64
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: schemaVersion %q", ErrMalformed, n)
		}
		v = f
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return 0, fmt.Errorf("%w: schemaVersion must be a number, got %T", ErrMalformed, raw)
	}

	if v != math.Trunc(v) || v < 0 {
		return 0, fmt.Errorf("%w: schemaVersion %v is not a version number", ErrMalformed, v)
	}
	if v > site.SchemaVersion {
		return 0, fmt.Errorf("%w: document is version %v, this build supports up to %d",
			ErrUnknownSchemaVersion, v, site.SchemaVersion)
	}
	return int(v), nil
}

// sections returns the sections object, creating it when absent.
func (d *Document) sections() (map[string]any, error) {
	raw, ok := d.Fields["sections"]
	if !ok || raw == nil {
		m := map[string]any{}
		d.Fields["sections"] = m
		return m, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("sections must be an object, got %T", raw)
	}
	return m, nil
}

// objectKeys returns the keys of a JSON object in source order. A missing
// or null value yields no keys.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
