package schema

import "context"

// Vocabulary is the compile/evaluate pair a schema node runs for a given
// vocabulary URI. The set of vocabularies in this engine is closed (core,
// applicator, unevaluated, and validation; the other Draft 2020-12
// vocabularies carry only annotations and have no implementation), so a
// slice of static implementations is used rather than a dynamic plugin
// registry.
type Vocabulary interface {
	// URI is the canonical vocabulary URI, e.g.
	// "https://json-schema.org/draft/2020-12/vocab/core".
	URI() string

	// OnInit walks raw's recognized keywords and populates n.Raw with
	// their compiled shape (Value, *Node, []*Node, or *NodeMap), deferring
	// $ref linking via c. $dynamicRef is not linked at compile time.
	OnInit(n *Node, raw *Object, c *compileState) error

	// Evaluate runs this vocabulary's keywords against instance, threading
	// and contributing to scope. It returns false (never an error) for an
	// ordinary validation failure; errors are reserved for malformed
	// references encountered only at evaluation time ($dynamicRef).
	Evaluate(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error)
}

// Canonical vocabulary URIs.
const (
	CoreVocabularyURL          = "https://json-schema.org/draft/2020-12/vocab/core"
	ApplicatorVocabularyURL    = "https://json-schema.org/draft/2020-12/vocab/applicator"
	UnevaluatedVocabularyURL   = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	ValidationVocabularyURL    = "https://json-schema.org/draft/2020-12/vocab/validation"
	FormatAnnotationURL        = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	FormatAssertionURL         = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	ContentVocabularyURL       = "https://json-schema.org/draft/2020-12/vocab/content"
	MetaDataVocabularyURL      = "https://json-schema.org/draft/2020-12/vocab/meta-data"
)

// dispatchOrder is the fixed, stable vocabulary evaluation order the spec
// requires: core first (so $ref/$dynamicRef validate before anything else
// sees the instance), then applicator (so properties/items/allOf etc.
// populate the dynamic scope's evaluated sets), then unevaluated (so it can
// see everything applicators contributed), then validation last.
//
// This is declared as a literal, not assembled via per-file init()
// registration, because Go runs init() funcs in file-name alphabetical
// order within a package — core.go's init would run after applicator.go's,
// silently breaking this order.
var dispatchOrder = []Vocabulary{
	coreVocabulary{},
	applicatorVocabulary{},
	unevaluatedVocabulary{},
	validationVocabulary{},
}

// MetaSchema identifies the set of active vocabularies for the schemas
// compiled under it. Unlike the full JSON Schema meta-schema document, this
// engine does not validate schemas against their meta-schema (an explicit
// Non-goal) — it only reads $vocabulary to decide which vocabularies run.
type MetaSchema struct {
	URI         string
	Vocabularies map[string]bool // URI -> required(true)/optional(false)
}

// active returns the Vocabulary implementations enabled by m, in
// dispatchOrder. A nil/empty MetaSchema enables every vocabulary this
// engine implements (the bundled default).
func (m *MetaSchema) active() []Vocabulary {
	if m == nil || len(m.Vocabularies) == 0 {
		return dispatchOrder
	}
	out := make([]Vocabulary, 0, len(dispatchOrder))
	for _, v := range dispatchOrder {
		if enabled, declared := m.Vocabularies[v.URI()]; declared && enabled {
			out = append(out, v)
		} else if !declared {
			// Vocabularies this engine always treats as structurally
			// necessary (core) run regardless of an explicit declaration,
			// matching real-world Draft 2020-12 meta-schemas which always
			// require core.
			if v.URI() == CoreVocabularyURL {
				out = append(out, v)
			}
		}
	}
	return out
}

// defaultMetaSchema is the bundled Draft 2020-12 meta-schema, used whenever
// a schema has no $schema and no parent meta-schema to inherit.
var defaultMetaSchema = &MetaSchema{
	URI: Version,
	Vocabularies: map[string]bool{
		CoreVocabularyURL:        true,
		ApplicatorVocabularyURL:  true,
		UnevaluatedVocabularyURL: true,
		ValidationVocabularyURL:  true,
		FormatAnnotationURL:      true,
		ContentVocabularyURL:     true,
		MetaDataVocabularyURL:    true,
	},
}

// Version is the URI of the Draft 2020-12 core schema dialect this engine
// implements.
const Version = "https://json-schema.org/draft/2020-12/schema"
