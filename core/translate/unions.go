package translate

import "github.com/zakariaelas/contentgraph/core/graph"

// UnionRegistry deduplicates synthesized union declarations within one
// schema build. It is owned by the builder and passed by reference to the
// translator, so nothing leaks across builds and concurrent builds in one
// process each see their own registry.
type UnionRegistry struct {
	declared map[string]bool
}

// NewUnionRegistry creates an empty registry.
func NewUnionRegistry() *UnionRegistry {
	return &UnionRegistry{declared: make(map[string]bool)}
}

// Ensure declares the union to the registrar the first time its name is
// seen; later requests for the same name reuse the existing declaration.
func (r *UnionRegistry) Ensure(name string, members []string, registrar graph.Registrar) error {
	if r.declared[name] {
		return nil
	}
	if err := registrar.DeclareUnion(graph.UnionType{Name: name, Members: members}); err != nil {
		return err
	}
	r.declared[name] = true
	return nil
}

// Has reports whether a union with the given name has been declared.
func (r *UnionRegistry) Has(name string) bool {
	return r.declared[name]
}

// Len returns the number of declared unions.
func (r *UnionRegistry) Len() int {
	return len(r.declared)
}
