package schema

// registerBundledMetaSchemas preloads the Draft 2020-12 meta-schema and its
// eight vocabulary documents at their canonical URIs, so that an
// unresolved $schema reference to any of them succeeds without requiring a
// network fetch.
func registerBundledMetaSchemas(r *Registry) {
	for _, uri := range []string{
		Version,
		CoreVocabularyURL,
		ApplicatorVocabularyURL,
		UnevaluatedVocabularyURL,
		ValidationVocabularyURL,
		FormatAnnotationURL,
		FormatAssertionURL,
		ContentVocabularyURL,
		MetaDataVocabularyURL,
	} {
		r.Preload(uri, bundledMetaSchemaDocument(uri))
	}
}

// bundledMetaSchemaDocument returns a minimal placeholder document
// declaring $vocabulary for uri. This engine never validates schemas
// against their meta-schema (an explicit Non-goal), so the document only
// needs to exist and carry $vocabulary for resolveMetaSchema to read.
func bundledMetaSchemaDocument(uri string) Value {
	obj := newObject()
	obj.Set("$id", String(uri))

	vocab := newObject()
	for _, v := range []string{
		CoreVocabularyURL, ApplicatorVocabularyURL, UnevaluatedVocabularyURL,
		ValidationVocabularyURL, FormatAnnotationURL, ContentVocabularyURL,
		MetaDataVocabularyURL,
	} {
		vocab.Set(v, Bool(true))
	}
	obj.Set("$vocabulary", ObjectValue(vocab))
	return ObjectValue(obj)
}

// resolveMetaSchema looks up the meta-schema document at uri in the
// registry and turns its $vocabulary map into a *MetaSchema. Unknown URIs
// (not preloaded) fall back to defaultMetaSchema, since this engine bundles
// every meta-schema it understands and has no fetch hook (network access
// is out of scope).
func (c *Compiler) resolveMetaSchema(uri string) *MetaSchema {
	if uri == "" {
		return defaultMetaSchema
	}
	entry, ok := c.registry.lookup(uri)
	if !ok || !entry.hasRaw {
		return defaultMetaSchema
	}
	obj := entry.raw.Object()
	if obj == nil {
		return defaultMetaSchema
	}
	vocabVal, ok := obj.Get("$vocabulary")
	if !ok || vocabVal.Kind() != KindObject {
		return defaultMetaSchema
	}
	m := &MetaSchema{URI: uri, Vocabularies: make(map[string]bool)}
	for _, k := range vocabVal.Object().Keys() {
		v, _ := vocabVal.Object().Get(k)
		m.Vocabularies[k] = v.Kind() == KindBool && v.Bool()
	}
	return m
}
