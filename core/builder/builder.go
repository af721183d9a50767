// Package builder assembles the full graph schema from a content model.
//
// One build pass declares the fixed interfaces and object types every
// schema carries, then one object type per content type in the model.
// A pass owns its own union registry, so union deduplication is scoped to
// the pass and nothing leaks between builds.
package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zakariaelas/contentgraph/core/graph"
	"github.com/zakariaelas/contentgraph/core/model"
	"github.com/zakariaelas/contentgraph/core/translate"
)

// Options configure a builder.
type Options struct {
	// UseNameForID emits object types named after the content type's
	// display name instead of its stable identifier.
	UseNameForID bool

	// Prefix overrides the emitted type-name prefix. Empty means the
	// translate default.
	Prefix string
}

// Stats summarize one build pass.
type Stats struct {
	ContentTypes  int
	TypesDeclared int
	Unions        int
	Duration      time.Duration
}

// ContentTypeError wraps a failure while translating one content type,
// attributed with the type's display name so the offending model entry
// can be located without inspecting internals. One bad content type
// aborts the whole batch.
type ContentTypeError struct {
	Name string
	Err  error
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("translate content type %q: %v", e.Name, e.Err)
}

func (e *ContentTypeError) Unwrap() error {
	return e.Err
}

// Builder builds graph schemas from content models.
type Builder struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a builder.
func New(opts Options, logger zerolog.Logger) *Builder {
	return &Builder{opts: opts, logger: logger}
}

// Build runs one synchronous pass over the model, declaring every type to
// the registrar. The pass either completes or returns the first error.
func (b *Builder) Build(m *model.Model, registrar graph.Registrar) (Stats, error) {
	start := time.Now()
	log := b.logger.With().Str("build_id", uuid.New().String()).Logger()

	namer := translate.Namer{Prefix: b.opts.Prefix}
	unions := translate.NewUnionRegistry()
	translator := translate.New(namer, unions, registrar)

	if err := declareFixedTypes(namer, registrar); err != nil {
		return Stats{}, fmt.Errorf("declare fixed types: %w", err)
	}

	for _, item := range m.Items {
		if err := b.buildContentType(translator, namer, item, registrar); err != nil {
			log.Error().Err(err).Str("content_type", item.DisplayName()).Msg("content type translation failed")
			return Stats{}, &ContentTypeError{Name: item.DisplayName(), Err: err}
		}
		log.Debug().Str("content_type", item.DisplayName()).Msg("content type translated")
	}

	stats := Stats{
		ContentTypes: len(m.Items),
		Unions:       unions.Len(),
		Duration:     time.Since(start),
	}
	if r, ok := registrar.(*graph.Registry); ok {
		stats.TypesDeclared = r.Len()
	}

	log.Info().
		Int("content_types", stats.ContentTypes).
		Int("unions", stats.Unions).
		Dur("duration", stats.Duration).
		Msg("schema build complete")

	return stats, nil
}

// buildContentType assembles the object type for one content type:
// identity field, system metadata, the translated enabled fields, and the
// marker interfaces.
func (b *Builder) buildContentType(translator *translate.Translator, namer translate.Namer, item model.ContentTypeItem, registrar graph.Registrar) error {
	source := item.Sys.ID
	if b.opts.UseNameForID {
		source = item.Name
	}
	typeName := namer.TypeName(translate.Identifier(source))

	fields := []graph.Field{
		{Name: "contentful_id", TypeDescriptor: graph.TypeDescriptor{Type: "ID!"}},
		{Name: "sys", TypeDescriptor: graph.TypeDescriptor{Type: namer.TypeName("sys")}},
	}

	for _, field := range item.Fields {
		if field.Skip() {
			continue
		}
		desc, err := translator.Translate(field)
		if err != nil {
			return err
		}
		fields = append(fields, graph.Field{Name: field.ID, TypeDescriptor: desc})
	}

	return registrar.DeclareObject(graph.ObjectType{
		Name:   typeName,
		Fields: fields,
		Interfaces: []string{
			namer.TypeName("reference"),
			namer.FallbackName(model.LinkTypeEntry),
			"Node",
		},
	})
}
