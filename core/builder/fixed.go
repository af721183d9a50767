package builder

import (
	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
	"github.com/zakariaelas/contentgraph/core/translate"
)

// declareFixedTypes declares the schema surface every build carries
// regardless of the content model: scalars, the reference and entry
// capability interfaces, system metadata, the asset type, the geographic
// point, the plain text wrapper, and the rich-text document with its
// link-resolution sub-objects.
func declareFixedTypes(namer translate.Namer, registrar graph.Registrar) error {
	for _, scalar := range []string{translate.ScalarDate, translate.ScalarJSON} {
		if err := registrar.DeclareScalar(scalar); err != nil {
			return err
		}
	}

	asset := namer.FallbackName(model.LinkTypeAsset)
	entry := namer.FallbackName(model.LinkTypeEntry)
	reference := namer.TypeName("reference")
	sys := namer.TypeName("sys")

	interfaces := []graph.InterfaceType{
		{
			Name: reference,
			Fields: []graph.Field{
				{Name: "contentful_id", TypeDescriptor: graph.TypeDescriptor{Type: "ID!"}},
			},
		},
		{
			Name: entry,
			Fields: []graph.Field{
				{Name: "contentful_id", TypeDescriptor: graph.TypeDescriptor{Type: "ID!"}},
				{Name: "sys", TypeDescriptor: graph.TypeDescriptor{Type: sys}},
			},
		},
	}
	for _, iface := range interfaces {
		if err := registrar.DeclareInterface(iface); err != nil {
			return err
		}
	}

	objects := []graph.ObjectType{
		{
			Name: sys,
			Fields: []graph.Field{
				{Name: "id", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
				{Name: "type", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
			},
		},
		{
			Name: asset,
			Fields: []graph.Field{
				{Name: "contentful_id", TypeDescriptor: graph.TypeDescriptor{Type: "ID!"}},
				{Name: "title", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
				{Name: "description", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
				{Name: "url", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
				{Name: "fileName", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
				{Name: "contentType", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
			},
			Interfaces: []string{reference, "Node"},
		},
		{
			Name: namer.TypeName("location"),
			Fields: []graph.Field{
				{Name: "lat", TypeDescriptor: graph.TypeDescriptor{Type: "Float!"}},
				{Name: "lon", TypeDescriptor: graph.TypeDescriptor{Type: "Float!"}},
			},
		},
		{
			Name: namer.TypeName("text"),
			Fields: []graph.Field{
				{Name: "raw", TypeDescriptor: graph.TypeDescriptor{Type: "String"}},
			},
		},
		{
			Name: namer.TypeName("richTextAssets"),
			Fields: []graph.Field{
				{Name: "block", TypeDescriptor: graph.TypeDescriptor{Type: "[" + asset + "]"}},
				{Name: "hyperlink", TypeDescriptor: graph.TypeDescriptor{Type: "[" + asset + "]"}},
			},
		},
		{
			Name: namer.TypeName("richTextEntries"),
			Fields: []graph.Field{
				{Name: "inline", TypeDescriptor: graph.TypeDescriptor{Type: "[" + entry + "]"}},
				{Name: "block", TypeDescriptor: graph.TypeDescriptor{Type: "[" + entry + "]"}},
				{Name: "hyperlink", TypeDescriptor: graph.TypeDescriptor{Type: "[" + entry + "]"}},
			},
		},
		{
			Name: namer.TypeName("richTextLinks"),
			Fields: []graph.Field{
				{Name: "assets", TypeDescriptor: graph.TypeDescriptor{Type: namer.TypeName("richTextAssets")}},
				{Name: "entries", TypeDescriptor: graph.TypeDescriptor{Type: namer.TypeName("richTextEntries")}},
			},
		},
		{
			Name: namer.TypeName("richText"),
			Fields: []graph.Field{
				{Name: "raw", TypeDescriptor: graph.TypeDescriptor{Type: translate.ScalarJSON}},
				{Name: "links", TypeDescriptor: graph.TypeDescriptor{Type: namer.TypeName("richTextLinks")}},
			},
		},
	}
	for _, obj := range objects {
		if err := registrar.DeclareObject(obj); err != nil {
			return err
		}
	}

	return nil
}
