// Package richtext walks rich-text documents and collects the entity
// references embedded in them.
//
// A rich-text field stores a JSON document tree; nodes of certain kinds
// carry a target entity reference in their data. Resolution of a
// rich-text field's links sub-objects filters a node index by the ids
// collected here.
package richtext

import (
	"encoding/json"
	"fmt"
)

// Node kinds that carry an embedded entity reference.
const (
	NodeEntryBlock     = "embedded-entry-block"
	NodeEntryInline    = "embedded-entry-inline"
	NodeEntryHyperlink = "entry-hyperlink"
	NodeAssetBlock     = "embedded-asset-block"
	NodeAssetHyperlink = "asset-hyperlink"
)

// Document is one node of a rich-text document tree. The root node is
// itself a Document with nodeType "document".
type Document struct {
	NodeType string     `json:"nodeType"`
	Content  []Document `json:"content,omitempty"`
	Data     NodeData   `json:"data,omitempty"`
	Value    string     `json:"value,omitempty"`
}

// NodeData carries a node's payload; only the target reference is
// interpreted here.
type NodeData struct {
	Target *Target `json:"target,omitempty"`
}

// Target is an embedded entity reference.
type Target struct {
	Sys struct {
		ID       string `json:"id"`
		Type     string `json:"type,omitempty"`
		LinkType string `json:"linkType,omitempty"`
	} `json:"sys"`
}

// References are the embedded entity ids of a document, grouped the way
// the links sub-objects expose them.
type References struct {
	AssetBlocks     []string
	AssetHyperlinks []string
	EntryBlocks     []string
	EntryInlines    []string
	EntryHyperlinks []string
}

// AssetIDs returns every referenced asset id.
func (r References) AssetIDs() []string {
	return append(append([]string(nil), r.AssetBlocks...), r.AssetHyperlinks...)
}

// EntryIDs returns every referenced entry id.
func (r References) EntryIDs() []string {
	ids := append([]string(nil), r.EntryBlocks...)
	ids = append(ids, r.EntryInlines...)
	return append(ids, r.EntryHyperlinks...)
}

// Parse decodes a rich-text document from its raw JSON form.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse rich text document: %w", err)
	}
	return &doc, nil
}

// Extract walks the document tree and collects embedded entity
// references. The walk is iterative over an explicit stack; document
// depth is author-controlled input.
func Extract(doc *Document) References {
	var refs References
	if doc == nil {
		return refs
	}

	stack := []*Document{doc}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id := targetID(n); id != "" {
			switch n.NodeType {
			case NodeAssetBlock:
				refs.AssetBlocks = append(refs.AssetBlocks, id)
			case NodeAssetHyperlink:
				refs.AssetHyperlinks = append(refs.AssetHyperlinks, id)
			case NodeEntryBlock:
				refs.EntryBlocks = append(refs.EntryBlocks, id)
			case NodeEntryInline:
				refs.EntryInlines = append(refs.EntryInlines, id)
			case NodeEntryHyperlink:
				refs.EntryHyperlinks = append(refs.EntryHyperlinks, id)
			}
		}

		for i := len(n.Content) - 1; i >= 0; i-- {
			stack = append(stack, &n.Content[i])
		}
	}

	return refs
}

func targetID(n *Document) string {
	if n.Data.Target == nil {
		return ""
	}
	return n.Data.Target.Sys.ID
}
