package builder

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
	"github.com/zakariaelas/contentgraph/core/translate"
)

func buildModel(items ...model.ContentTypeItem) *model.Model {
	return &model.Model{Items: items}
}

func findObject(t *testing.T, registry *graph.Registry, name string) graph.ObjectType {
	t.Helper()
	for _, obj := range registry.Objects() {
		if obj.Name == name {
			return obj
		}
	}
	t.Fatalf("object %q not declared", name)
	return graph.ObjectType{}
}

func fieldType(t *testing.T, obj graph.ObjectType, name string) string {
	t.Helper()
	for _, f := range obj.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	t.Fatalf("field %q not on %q", name, obj.Name)
	return ""
}

func TestBuildRoundTrip(t *testing.T) {
	// One required Symbol, one optional Integer, one single-target link:
	// String!, Int, ContentfulPerson, and no union declared.
	m := buildModel(model.ContentTypeItem{
		Sys:  model.Sys{ID: "blogPost"},
		Name: "Blog Post",
		Fields: []model.FieldDefinition{
			{ID: "title", Type: model.KindSymbol, Required: true},
			{ID: "views", Type: model.KindInteger},
			{ID: "author", Type: model.KindLink, LinkType: "Entry",
				Validations: []model.Validation{{LinkContentType: []string{"person"}}}},
		},
	})

	registry := graph.NewRegistry()
	b := New(Options{}, zerolog.Nop())
	stats, err := b.Build(m, registry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	obj := findObject(t, registry, "ContentfulBlogPost")
	if got := fieldType(t, obj, "title"); got != "String!" {
		t.Errorf("title = %q, want String!", got)
	}
	if got := fieldType(t, obj, "views"); got != "Int" {
		t.Errorf("views = %q, want Int", got)
	}
	if got := fieldType(t, obj, "author"); got != "ContentfulPerson" {
		t.Errorf("author = %q, want ContentfulPerson", got)
	}

	if len(registry.Unions()) != 0 {
		t.Errorf("Unions() = %v, want none", registry.Unions())
	}
	if stats.ContentTypes != 1 {
		t.Errorf("stats.ContentTypes = %d, want 1", stats.ContentTypes)
	}
	if stats.Unions != 0 {
		t.Errorf("stats.Unions = %d, want 0", stats.Unions)
	}
}

func TestBuildIdentityAndInterfaces(t *testing.T) {
	m := buildModel(model.ContentTypeItem{
		Sys:    model.Sys{ID: "person"},
		Name:   "Person",
		Fields: []model.FieldDefinition{{ID: "name", Type: model.KindSymbol}},
	})

	registry := graph.NewRegistry()
	if _, err := New(Options{}, zerolog.Nop()).Build(m, registry); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	obj := findObject(t, registry, "ContentfulPerson")
	if got := fieldType(t, obj, "contentful_id"); got != "ID!" {
		t.Errorf("contentful_id = %q, want ID!", got)
	}
	if got := fieldType(t, obj, "sys"); got != "ContentfulSys" {
		t.Errorf("sys = %q, want ContentfulSys", got)
	}

	want := []string{"ContentfulReference", "ContentfulEntry", "Node"}
	if len(obj.Interfaces) != len(want) {
		t.Fatalf("Interfaces = %v, want %v", obj.Interfaces, want)
	}
	for i := range want {
		if obj.Interfaces[i] != want[i] {
			t.Errorf("Interfaces[%d] = %q, want %q", i, obj.Interfaces[i], want[i])
		}
	}
}

func TestBuildSkipsDisabledAndOmitted(t *testing.T) {
	m := buildModel(model.ContentTypeItem{
		Sys:  model.Sys{ID: "page"},
		Name: "Page",
		Fields: []model.FieldDefinition{
			{ID: "title", Type: model.KindSymbol},
			{ID: "legacy", Type: model.KindSymbol, Disabled: true},
			{ID: "internal", Type: model.KindSymbol, Omitted: true},
			// Skipped fields never reach the translator, even with an
			// unknown kind.
			{ID: "broken", Type: "Hologram", Disabled: true},
		},
	})

	registry := graph.NewRegistry()
	if _, err := New(Options{}, zerolog.Nop()).Build(m, registry); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	obj := findObject(t, registry, "ContentfulPage")
	for _, f := range obj.Fields {
		switch f.Name {
		case "legacy", "internal", "broken":
			t.Errorf("skipped field %q appears in emitted field map", f.Name)
		}
	}
}

func TestBuildUseNameForID(t *testing.T) {
	m := buildModel(model.ContentTypeItem{
		Sys:    model.Sys{ID: "2wKn6yEnZewu2SCCkus4as"},
		Name:   "Blog Post",
		Fields: []model.FieldDefinition{{ID: "title", Type: model.KindSymbol}},
	})

	registry := graph.NewRegistry()
	if _, err := New(Options{UseNameForID: true}, zerolog.Nop()).Build(m, registry); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	findObject(t, registry, "ContentfulBlogPost")
}

func TestBuildContentTypeErrorAttribution(t *testing.T) {
	m := buildModel(
		model.ContentTypeItem{
			Sys:    model.Sys{ID: "good"},
			Name:   "Good",
			Fields: []model.FieldDefinition{{ID: "title", Type: model.KindSymbol}},
		},
		model.ContentTypeItem{
			Sys:    model.Sys{ID: "bad"},
			Name:   "Bad Type",
			Fields: []model.FieldDefinition{{ID: "weird", Type: "Hologram"}},
		},
	)

	registry := graph.NewRegistry()
	_, err := New(Options{}, zerolog.Nop()).Build(m, registry)
	if err == nil {
		t.Fatal("Build() expected error")
	}

	var ctErr *ContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("Build() error = %T, want *ContentTypeError", err)
	}
	if ctErr.Name != "Bad Type" {
		t.Errorf("ContentTypeError.Name = %q, want display name %q", ctErr.Name, "Bad Type")
	}
	if !strings.Contains(err.Error(), "weird") {
		t.Errorf("error %q does not name the offending field", err)
	}

	var unknownErr *translate.UnknownFieldTypeError
	if !errors.As(err, &unknownErr) {
		t.Error("ContentTypeError does not wrap the original UnknownFieldTypeError")
	}
}

func TestBuildFixedTypes(t *testing.T) {
	registry := graph.NewRegistry()
	if _, err := New(Options{}, zerolog.Nop()).Build(buildModel(), registry); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, name := range []string{
		"ContentfulSys",
		"ContentfulAsset",
		"ContentfulLocation",
		"ContentfulText",
		"ContentfulRichText",
		"ContentfulRichTextLinks",
		"ContentfulRichTextAssets",
		"ContentfulRichTextEntries",
	} {
		findObject(t, registry, name)
	}

	rt := findObject(t, registry, "ContentfulRichText")
	if got := fieldType(t, rt, "raw"); got != "JSON" {
		t.Errorf("richText.raw = %q, want JSON", got)
	}
	if got := fieldType(t, rt, "links"); got != "ContentfulRichTextLinks" {
		t.Errorf("richText.links = %q", got)
	}
}

func TestBuildUnionDedupAcrossContentTypes(t *testing.T) {
	link := func(id string) model.FieldDefinition {
		return model.FieldDefinition{ID: id, Type: model.KindLink, LinkType: "Entry",
			Validations: []model.Validation{{LinkContentType: []string{"person", "company"}}}}
	}
	m := buildModel(
		model.ContentTypeItem{Sys: model.Sys{ID: "a"}, Name: "A",
			Fields: []model.FieldDefinition{link("owner")}},
		model.ContentTypeItem{Sys: model.Sys{ID: "b"}, Name: "B",
			Fields: []model.FieldDefinition{link("holder")}},
	)

	registry := graph.NewRegistry()
	stats, err := New(Options{}, zerolog.Nop()).Build(m, registry)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := len(registry.Unions()); got != 1 {
		t.Errorf("len(Unions()) = %d, want 1 (same member sequence dedups)", got)
	}
	if stats.Unions != 1 {
		t.Errorf("stats.Unions = %d, want 1", stats.Unions)
	}
}

func TestBuildRichTextField(t *testing.T) {
	m := buildModel(model.ContentTypeItem{
		Sys:  model.Sys{ID: "article"},
		Name: "Article",
		Fields: []model.FieldDefinition{
			{ID: "body", Type: model.KindRichText},
		},
	})

	registry := graph.NewRegistry()
	if _, err := New(Options{}, zerolog.Nop()).Build(m, registry); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	obj := findObject(t, registry, "ContentfulArticle")
	if got := fieldType(t, obj, "body"); got != "ContentfulRichText" {
		t.Errorf("body = %q, want ContentfulRichText", got)
	}
}
