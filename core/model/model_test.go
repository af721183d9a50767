package model

import (
	"strings"
	"testing"
)

func TestParseModel(t *testing.T) {
	data := []byte(`{
		"items": [
			{
				"sys": {"id": "blogPost"},
				"name": "Blog Post",
				"displayField": "title",
				"fields": [
					{"id": "title", "type": "Symbol", "required": true},
					{"id": "views", "type": "Integer"},
					{"id": "author", "type": "Link", "linkType": "Entry",
						"validations": [{"linkContentType": ["person"]}]},
					{"id": "tags", "type": "Array", "items": {"id": "tags", "type": "Symbol"}}
				]
			}
		]
	}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(m.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(m.Items))
	}

	item := m.Items[0]
	if item.Sys.ID != "blogPost" {
		t.Errorf("Sys.ID = %q, want %q", item.Sys.ID, "blogPost")
	}
	if item.DisplayName() != "Blog Post" {
		t.Errorf("DisplayName() = %q, want %q", item.DisplayName(), "Blog Post")
	}
	if len(item.Fields) != 4 {
		t.Fatalf("len(Fields) = %d, want 4", len(item.Fields))
	}

	title := item.Fields[0]
	if title.Type != KindSymbol || !title.Required {
		t.Errorf("title = %+v, want required Symbol", title)
	}

	author := item.Fields[2]
	if got := author.LinkValidations(); len(got) != 1 || got[0] != "person" {
		t.Errorf("author.LinkValidations() = %v, want [person]", got)
	}

	tags := item.Fields[3]
	if tags.Items == nil || tags.Items.Type != KindSymbol {
		t.Errorf("tags.Items = %+v, want Symbol items", tags.Items)
	}
}

func TestValidationSingleVsList(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []string
	}{
		{
			name:     "single name",
			json:     `{"linkContentType": "person"}`,
			expected: []string{"person"},
		},
		{
			name:     "list of names",
			json:     `{"linkContentType": ["person", "company"]}`,
			expected: []string{"person", "company"},
		},
		{
			name:     "unrelated rule",
			json:     `{"size": {"max": 5}}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Validation
			if err := v.UnmarshalJSON([]byte(tt.json)); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}

			got := v.LinkContentTypes()
			if len(got) != len(tt.expected) {
				t.Fatalf("LinkContentTypes() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("LinkContentTypes()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestFieldSkip(t *testing.T) {
	tests := []struct {
		name     string
		field    FieldDefinition
		expected bool
	}{
		{"enabled", FieldDefinition{ID: "a"}, false},
		{"disabled", FieldDefinition{ID: "a", Disabled: true}, true},
		{"omitted", FieldDefinition{ID: "a", Omitted: true}, true},
		{"both", FieldDefinition{ID: "a", Disabled: true, Omitted: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.Skip(); got != tt.expected {
				t.Errorf("Skip() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "missing sys id",
			json: `{"items": [{"name": "Broken", "fields": []}]}`,
			want: "no sys.id",
		},
		{
			name: "array without items",
			json: `{"items": [{"sys": {"id": "a"}, "name": "A", "fields": [{"id": "list", "type": "Array"}]}]}`,
			want: "array type requires items",
		},
		{
			name: "link without linkType",
			json: `{"items": [{"sys": {"id": "a"}, "name": "A", "fields": [{"id": "ref", "type": "Link"}]}]}`,
			want: "link type requires linkType",
		},
		{
			name: "field without id",
			json: `{"items": [{"sys": {"id": "a"}, "name": "A", "fields": [{"type": "Symbol"}]}]}`,
			want: "field has no id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDisplayNameFallback(t *testing.T) {
	item := ContentTypeItem{Sys: Sys{ID: "blogPost"}}
	if got := item.DisplayName(); got != "blogPost" {
		t.Errorf("DisplayName() = %q, want sys id fallback %q", got, "blogPost")
	}
}
