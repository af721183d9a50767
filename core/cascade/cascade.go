// Package cascade provides a prefix-indexed store for scoped value lookup
// along a tree traversal path.
//
// A traversal step registers a value for the subtree rooted at its node;
// any descendant can later recover the nearest ancestor's value without the
// value being threaded through every call in between. Sibling subtrees never
// share a path prefix beyond their common ancestor, so "string starts-with"
// exactly captures "is an ancestor path of".
package cascade

import (
	"fmt"
	"strings"
)

// Node is one step of a traversal path. Prev points at the parent step,
// nil at the root.
type Node struct {
	Key  string
	Prev *Node
}

// InvalidPathError reports a traversal node with a missing key. This is a
// programming error in the caller: every node on a path must carry a key.
type InvalidPathError struct {
	// Depth is the distance from the node passed in to the offending
	// ancestor (0 = the node itself).
	Depth int
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("cascade: path node at depth %d has no key", e.Depth)
}

// Context stores values keyed by tree position. The zero value is not
// usable; create one with New.
//
// T must be comparable: Has compares primitives by value and pointer types
// by reference.
type Context[T comparable] struct {
	cascade  map[string]T
	fallback T
}

// New creates an empty context. fallback is returned by Get when no stored
// path is an ancestor of the queried node.
func New[T comparable](fallback T) *Context[T] {
	return &Context[T]{
		cascade:  make(map[string]T),
		fallback: fallback,
	}
}

// PathOf returns the colon-joined path from the root to node. The walk is
// iterative so arbitrarily deep traversal paths cannot exhaust the stack.
func (c *Context[T]) PathOf(node *Node) (string, error) {
	var keys []string
	depth := 0
	for n := node; n != nil; n = n.Prev {
		if n.Key == "" {
			return "", &InvalidPathError{Depth: depth}
		}
		keys = append(keys, n.Key)
		depth++
	}

	// keys were collected leaf-first; reverse so the root comes first and
	// an ancestor's path is a string prefix of every descendant's path.
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}

	return strings.Join(keys, ":"), nil
}

// Set stores value for node's subtree. It overwrites a previous value for
// the exact same path but never touches descendant entries.
func (c *Context[T]) Set(node *Node, value T) error {
	path, err := c.PathOf(node)
	if err != nil {
		return err
	}
	c.cascade[path] = value
	return nil
}

// Get returns the value stored for the nearest ancestor of node (including
// node itself). When no stored path covers node, the configured fallback is
// returned with ok=false.
func (c *Context[T]) Get(node *Node) (value T, ok bool, err error) {
	target, err := c.PathOf(node)
	if err != nil {
		return c.fallback, false, err
	}

	best := -1
	for path, v := range c.cascade {
		if !isAncestorPath(path, target) {
			continue
		}
		if len(path) > best {
			best = len(path)
			value = v
		}
	}
	if best < 0 {
		return c.fallback, false, nil
	}
	return value, true, nil
}

// Has reports whether value is stored anywhere in the context, regardless
// of path.
func (c *Context[T]) Has(value T) bool {
	for _, v := range c.cascade {
		if v == value {
			return true
		}
	}
	return false
}

// Len returns the number of stored entries.
func (c *Context[T]) Len() int {
	return len(c.cascade)
}

// isAncestorPath reports whether path covers target: equal, or a prefix
// ending at a segment boundary.
func isAncestorPath(path, target string) bool {
	if !strings.HasPrefix(target, path) {
		return false
	}
	return len(target) == len(path) || target[len(path)] == ':'
}
