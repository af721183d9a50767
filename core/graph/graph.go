// Package graph defines the type-system declarations produced by schema
// translation and the registrar they are submitted to.
package graph

import (
	"fmt"
	"sort"
	"strings"
)

// LinkExtension is the field-level resolution metadata an external
// resolution engine follows at data-fetch time: look up the target record
// by identifier, reading the identifier from the named source field.
type LinkExtension struct {
	By   string `json:"by"`
	From string `json:"from"`
}

// NodeLink builds the extension for a foreign-key style reference stored
// under the conventional "<fieldID>___NODE" key.
func NodeLink(fieldID string) *LinkExtension {
	return &LinkExtension{By: "id", From: fieldID + "___NODE"}
}

// TypeDescriptor is the universal result of translating one field: a
// type-system expression plus optional link resolution metadata.
//
// Type is never empty. "Name" is a bare type, "Name!" a required value,
// "[Name]" a list; list and required wrapping are each applied exactly
// once, in that order.
type TypeDescriptor struct {
	Type string         `json:"type"`
	Link *LinkExtension `json:"link,omitempty"`
}

// List wraps the descriptor's type expression in a list.
func (d TypeDescriptor) List() TypeDescriptor {
	d.Type = "[" + d.Type + "]"
	return d
}

// Required appends the required marker to the descriptor's type
// expression.
func (d TypeDescriptor) Required() TypeDescriptor {
	d.Type += "!"
	return d
}

// Field is one declared field on an object type.
type Field struct {
	Name string
	TypeDescriptor
}

// ObjectType declares a named object type with an ordered field list.
type ObjectType struct {
	Name       string
	Fields     []Field
	Interfaces []string
}

// InterfaceType declares a named interface with an ordered field list.
type InterfaceType struct {
	Name   string
	Fields []Field
}

// UnionType declares a union of named object types.
type UnionType struct {
	Name    string
	Members []string
}

// Registrar receives type-system declarations. The schema builder and the
// link translator submit declarations through this interface; the host's
// type-registration surface implements it.
type Registrar interface {
	DeclareScalar(name string) error
	DeclareInterface(iface InterfaceType) error
	DeclareObject(obj ObjectType) error
	DeclareUnion(union UnionType) error
}

// Registry is a collecting Registrar. It rejects duplicate type names so
// a build pass cannot silently shadow an earlier declaration; scalars are
// idempotent.
type Registry struct {
	scalars    []string
	interfaces []InterfaceType
	objects    []ObjectType
	unions     []UnionType
	names      map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// DeclareScalar records a scalar type. Declaring the same scalar twice is
// a no-op.
func (r *Registry) DeclareScalar(name string) error {
	if kind, exists := r.names[name]; exists {
		if kind == "scalar" {
			return nil
		}
		return fmt.Errorf("type %q already declared as %s", name, kind)
	}
	r.names[name] = "scalar"
	r.scalars = append(r.scalars, name)
	return nil
}

// DeclareInterface records an interface declaration.
func (r *Registry) DeclareInterface(iface InterfaceType) error {
	if err := r.claim(iface.Name, "interface"); err != nil {
		return err
	}
	r.interfaces = append(r.interfaces, iface)
	return nil
}

// DeclareObject records an object type declaration.
func (r *Registry) DeclareObject(obj ObjectType) error {
	if err := r.claim(obj.Name, "object"); err != nil {
		return err
	}
	r.objects = append(r.objects, obj)
	return nil
}

// DeclareUnion records a union type declaration.
func (r *Registry) DeclareUnion(union UnionType) error {
	if err := r.claim(union.Name, "union"); err != nil {
		return err
	}
	r.unions = append(r.unions, union)
	return nil
}

func (r *Registry) claim(name, kind string) error {
	if existing, exists := r.names[name]; exists {
		return fmt.Errorf("type %q already declared as %s", name, existing)
	}
	r.names[name] = kind
	return nil
}

// Has reports whether a type with the given name has been declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Objects returns the declared object types sorted by name.
func (r *Registry) Objects() []ObjectType {
	out := make([]ObjectType, len(r.objects))
	copy(out, r.objects)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Interfaces returns the declared interfaces sorted by name.
func (r *Registry) Interfaces() []InterfaceType {
	out := make([]InterfaceType, len(r.interfaces))
	copy(out, r.interfaces)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unions returns the declared union types sorted by name.
func (r *Registry) Unions() []UnionType {
	out := make([]UnionType, len(r.unions))
	copy(out, r.unions)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the total number of declared types.
func (r *Registry) Len() int {
	return len(r.names)
}

// SDL renders every declaration as schema definition language. Output is
// deterministic: scalars, then interfaces, objects and unions, each group
// sorted by name. Link metadata is rendered as a trailing comment so the
// emitted schema stays valid SDL.
func (r *Registry) SDL() string {
	var b strings.Builder

	scalars := append([]string(nil), r.scalars...)
	sort.Strings(scalars)
	for _, s := range scalars {
		fmt.Fprintf(&b, "scalar %s\n\n", s)
	}

	interfaces := append([]InterfaceType(nil), r.interfaces...)
	sort.Slice(interfaces, func(i, j int) bool { return interfaces[i].Name < interfaces[j].Name })
	for _, iface := range interfaces {
		fmt.Fprintf(&b, "interface %s {\n", iface.Name)
		writeFields(&b, iface.Fields)
		b.WriteString("}\n\n")
	}

	for _, obj := range r.Objects() {
		b.WriteString("type " + obj.Name)
		if len(obj.Interfaces) > 0 {
			b.WriteString(" implements " + strings.Join(obj.Interfaces, " & "))
		}
		b.WriteString(" {\n")
		writeFields(&b, obj.Fields)
		b.WriteString("}\n\n")
	}

	for _, union := range r.Unions() {
		fmt.Fprintf(&b, "union %s = %s\n\n", union.Name, strings.Join(union.Members, " | "))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeFields(b *strings.Builder, fields []Field) {
	for _, f := range fields {
		fmt.Fprintf(b, "  %s: %s", f.Name, f.Type)
		if f.Link != nil {
			fmt.Fprintf(b, " # link %s=%s", f.Link.By, f.Link.From)
		}
		b.WriteString("\n")
	}
}
