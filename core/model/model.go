// Package model defines the content-model records consumed by schema
// translation and loads them from a JSON export.
//
// A content model is an ordered list of content types, each carrying an
// ordered list of typed field definitions. The model is read-only input:
// it is materialized once per build pass and never mutated.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Sys carries a record's system metadata.
type Sys struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// ContentTypeItem is one content type declared in the model.
type ContentTypeItem struct {
	Sys          Sys               `json:"sys"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	DisplayField string            `json:"displayField,omitempty"`
	Fields       []FieldDefinition `json:"fields"`
}

// DisplayName returns the human name, falling back to the stable
// identifier when the model carries none.
func (c ContentTypeItem) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Sys.ID
}

// Model is a full content-model export.
type Model struct {
	Items []ContentTypeItem `json:"items"`
}

// Load reads a content model from a JSON export file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a content model from JSON bytes.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}

	if err := Validate(&m); err != nil {
		return nil, fmt.Errorf("validate model: %w", err)
	}

	return &m, nil
}

// Validate checks the structural basics translation depends on. It does
// not judge content-model correctness beyond what is needed to pick a
// translation rule.
func Validate(m *Model) error {
	var errs []string

	for i, item := range m.Items {
		if item.Sys.ID == "" {
			errs = append(errs, fmt.Sprintf("items[%d]: content type has no sys.id", i))
			continue
		}
		for _, field := range item.Fields {
			if err := validateField(field); err != nil {
				errs = append(errs, fmt.Sprintf("content type %q: %v", item.DisplayName(), err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateField(field FieldDefinition) error {
	if field.ID == "" {
		return fmt.Errorf("field has no id")
	}
	switch field.Type {
	case KindArray:
		if field.Items == nil {
			return fmt.Errorf("field %q: array type requires items", field.ID)
		}
		if field.Items.Type == KindArray {
			return fmt.Errorf("field %q: nested arrays are not supported by the source model", field.ID)
		}
	case KindLink:
		if field.LinkType == "" {
			return fmt.Errorf("field %q: link type requires linkType", field.ID)
		}
	}
	return nil
}
