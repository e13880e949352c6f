// Package fieldspec loads the ordered field -> type mapping that drives row
// building. Key order is significant: it is the positional mapping onto
// input columns, so the readers below keep document order instead of
// decoding into a Go map.
package fieldspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type is the declared type tag of a field.
type Type int

const (
	String Type = iota
	Integer
	Float
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	default:
		return "String"
	}
}

// ParseType accepts String, Integer or Float in any letter case.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "float", "double":
		return Float, nil
	}
	return String, fmt.Errorf("unknown field type %q (valid: String, Integer, Float)", s)
}

// Field is one configured column.
type Field struct {
	Name string
	Type Type
}

// Spec is the ordered list of configured fields.
type Spec []Field

// ErrDuplicateField is wrapped when a key appears twice.
var ErrDuplicateField = errors.New("duplicate field")

// New builds a Spec and rejects empty or repeated names.
func New(fields ...Field) (Spec, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.New("field name must not be empty")
		}
		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return Spec(fields), nil
}

// Default is the funding dataset layout.
func Default() Spec {
	return Spec{
		{Name: "City", Type: String},
		{Name: "Funding", Type: Integer},
		{Name: "Homes", Type: Integer},
	}
}

// Index returns the position of the named field, or -1.
func (s Spec) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Names returns field names in order.
func (s Spec) Names() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Name
	}
	return out
}

// FirstOf returns the index of the first field with type t, or -1.
func (s Spec) FirstOf(t Type) int {
	for i, f := range s {
		if f.Type == t {
			return i
		}
	}
	return -1
}

// LoadFile reads a spec from a .json, .yaml or .yml file.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field spec: %w", err)
	}

	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err = ParseYAML(data)
	default:
		spec, err = ParseJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse field spec %s: %w", path, err)
	}
	return spec, nil
}

// ParseJSON reads a flat object of "name": "Type" pairs, keeping key order.
func ParseJSON(r io.Reader) (Spec, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		tag, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: type must be a string, got %v", name, valTok)
		}

		t, err := ParseType(tag)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: strings.TrimSpace(name), Type: t})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return New(fields...)
}

// ParseYAML reads a flat mapping of name: Type pairs, keeping key order.
func ParseYAML(data []byte) (Spec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at line %d", m.Line)
	}

	fields := make([]Field, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("field %q: type must be a scalar (line %d)", key.Value, val.Line)
		}
		t, err := ParseType(val.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key.Value, err)
		}
		fields = append(fields, Field{Name: strings.TrimSpace(key.Value), Type: t})
	}
	return New(fields...)
}
