// Package translate turns content-model field definitions into graph type
// descriptors.
//
// Translation is a pure function of its inputs: a field definition maps to
// a type expression plus optional link resolution metadata. Reference
// fields resolve to a named type, a synthesized union, or a generic
// fallback depending on their declared target constraints.
package translate

import (
	"fmt"

	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
)

// Scalar names emitted for primitive kinds.
const (
	ScalarDate = "Date"
	ScalarJSON = "JSON"
)

// UnknownFieldTypeError reports a field kind with no translation rule.
// This is a hard failure: unsupported content-model features surface
// immediately instead of silently mis-typing data.
type UnknownFieldTypeError struct {
	Kind    model.FieldKind
	FieldID string
}

func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("field %q: no translation rule for field type %q", e.FieldID, e.Kind)
}

// Translator translates field definitions. Unions synthesized for
// polymorphic references are declared through the registrar and
// deduplicated by the union registry.
type Translator struct {
	namer     Namer
	unions    *UnionRegistry
	registrar graph.Registrar
}

// New creates a translator that declares synthesized unions to registrar.
func New(namer Namer, unions *UnionRegistry, registrar graph.Registrar) *Translator {
	return &Translator{namer: namer, unions: unions, registrar: registrar}
}

// Translate produces the full type descriptor for one field definition.
// The required marker is applied exactly once, after any array wrapping.
func (t *Translator) Translate(field model.FieldDefinition) (graph.TypeDescriptor, error) {
	desc, err := t.translateBase(field)
	if err != nil {
		return graph.TypeDescriptor{}, err
	}
	if field.Required {
		desc = desc.Required()
	}
	return desc, nil
}

func (t *Translator) translateBase(field model.FieldDefinition) (graph.TypeDescriptor, error) {
	switch field.Type {
	case model.KindArray:
		return t.translateArray(field)
	case model.KindLink:
		return t.TranslateLink(field.ID, field)
	default:
		return t.translatePrimitive(field)
	}
}

// translateArray translates the element definition and wraps it in a
// list. Link elements route through the link translator with the array's
// field id, since the foreign-key name belongs to the array field, not
// the item definition.
func (t *Translator) translateArray(field model.FieldDefinition) (graph.TypeDescriptor, error) {
	if field.Items == nil {
		return graph.TypeDescriptor{}, fmt.Errorf("field %q: array has no items definition", field.ID)
	}

	items := *field.Items
	var desc graph.TypeDescriptor
	var err error
	if items.Type == model.KindLink {
		desc, err = t.TranslateLink(field.ID, items)
	} else {
		desc, err = t.Translate(items)
	}
	if err != nil {
		return graph.TypeDescriptor{}, err
	}

	return desc.List(), nil
}

// TranslateLink resolves a reference field into a named type, a
// synthesized union, or a generic fallback.
//
// fieldID is the id of the field owning the reference; for an
// array-of-links that is the array field, whose validations live on the
// item definition passed as def.
func (t *Translator) TranslateLink(fieldID string, def model.FieldDefinition) (graph.TypeDescriptor, error) {
	link := graph.NodeLink(fieldID)

	targets := def.LinkValidations()
	if len(targets) == 0 {
		return graph.TypeDescriptor{Type: t.namer.FallbackName(def.LinkType), Link: link}, nil
	}

	if len(targets) == 1 {
		return graph.TypeDescriptor{Type: t.namer.TypeName(targets[0]), Link: link}, nil
	}

	name := t.namer.UnionName(targets)
	members := make([]string, len(targets))
	for i, id := range targets {
		members[i] = t.namer.TypeName(id)
	}
	if err := t.unions.Ensure(name, members, t.registrar); err != nil {
		return graph.TypeDescriptor{}, fmt.Errorf("field %q: %w", fieldID, err)
	}

	return graph.TypeDescriptor{Type: name, Link: link}, nil
}

// translatePrimitive maps a primitive kind to its type descriptor. The
// switch is exhaustive over the closed kind set; anything else is an
// UnknownFieldTypeError.
func (t *Translator) translatePrimitive(field model.FieldDefinition) (graph.TypeDescriptor, error) {
	var name string
	switch field.Type {
	case model.KindSymbol:
		name = "String"
	case model.KindInteger:
		name = "Int"
	case model.KindNumber:
		name = "Float"
	case model.KindBoolean:
		name = "Boolean"
	case model.KindDate:
		name = ScalarDate
	case model.KindObject:
		name = ScalarJSON
	case model.KindText:
		name = t.namer.TypeName("text")
	case model.KindLocation:
		name = t.namer.TypeName("location")
	case model.KindRichText:
		name = t.namer.TypeName("richText")
	default:
		return graph.TypeDescriptor{}, &UnknownFieldTypeError{Kind: field.Type, FieldID: field.ID}
	}
	return graph.TypeDescriptor{Type: name}, nil
}
