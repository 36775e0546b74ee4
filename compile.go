package schema

import (
	"fmt"
	"strings"
)

// absoluteSchemes are the URI schemes this engine treats as absolute for
// both $id and $ref base resolution.
var absoluteSchemes = []string{"http://", "https://", "file://", "urn:"}

func hasAbsoluteScheme(uri string) bool {
	for _, s := range absoluteSchemes {
		if strings.HasPrefix(uri, s) {
			return true
		}
	}
	return false
}

// Compiler compiles raw schema documents into Node graphs against a shared
// Registry. A single Compiler should run one Compile call to completion
// before the resulting Node graph is exposed to concurrent Validate calls.
type Compiler struct {
	registry *Registry
}

// NewCompiler creates a Compiler backed by registry. If registry is nil, a
// fresh one (preloaded with bundled meta-schemas) is created.
func NewCompiler(registry *Registry) *Compiler {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Compiler{registry: registry}
}

// Registry exposes the compiler's backing registry so a caller can Preload
// additional externally-loaded documents before Compile.
func (c *Compiler) Registry() *Registry { return c.registry }

// compileState threads per-Compile-call bookkeeping: a queue of closures
// that link $ref targets once the whole document tree has compiled, so
// that a forward or circular reference always finds its target already
// registered.
type compileState struct {
	compiler *Compiler
	deferred *[]func() error
}

func (c *compileState) defer_(fn func() error) {
	*c.deferred = append(*c.deferred, fn)
}

// Compile compiles raw into a Node graph, registering any $id-bearing
// subschema into the compiler's registry, and fully draining deferred
// $ref linking before returning.
func (c *Compiler) Compile(raw Value) (*Node, error) {
	var deferred []func() error
	cs := &compileState{compiler: c, deferred: &deferred}

	root, err := c.compileNode(raw, nil, cs)
	if err != nil {
		return nil, err
	}
	for _, fn := range deferred {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Compile builds a fresh registry preloaded with any externally supplied
// documents and compiles raw against it in one step.
func Compile(raw Value, preload map[string]Value) (*Node, error) {
	registry := NewRegistry()
	for uri, doc := range preload {
		registry.Preload(uri, doc)
	}
	return NewCompiler(registry).Compile(raw)
}

// compileNode compiles one schema document (boolean or object) into a Node,
// opening a new lexical scope when the document carries $id, registering
// any $anchor/$dynamicAnchor it declares, and running every active
// vocabulary's OnInit over its keywords.
func (c *Compiler) compileNode(raw Value, parent *Node, cs *compileState) (*Node, error) {
	if raw.Kind() == KindBool {
		if raw.Bool() {
			raw = ObjectValue(newObject())
		} else {
			notObj := newObject()
			notObj.Set("not", ObjectValue(newObject()))
			raw = ObjectValue(notObj)
		}
	}
	if raw.Kind() != KindObject {
		return nil, &SchemaError{Reason: fmt.Sprintf("schema must be an object or boolean, got %s", raw.Kind())}
	}
	rawObj := raw.Object()

	n := &Node{Raw: make(map[string]any, rawObj.Len()), Parent: parent, compiler: c}

	if schemaVal, ok := rawObj.Get("$schema"); ok && schemaVal.Kind() == KindString {
		n.MetaSchema = c.resolveMetaSchema(schemaVal.String())
	} else if parent != nil {
		n.MetaSchema = parent.MetaSchema
	} else {
		n.MetaSchema = defaultMetaSchema
	}

	_, hasID := rawObj.Get("$id")
	if parent == nil || hasID {
		n.Scope = newLexicalScope(n)
	} else {
		n.Scope = parent.Scope
	}

	if hasID {
		idVal, _ := rawObj.Get("$id")
		if idVal.Kind() != KindString {
			return nil, &SchemaError{Keyword: "$id", Reason: "must be a string"}
		}
		uri, err := c.resolveID(idVal.String(), parent)
		if err != nil {
			return nil, err
		}
		n.URI = uri
		c.registry.register(uri, n)
	}

	if anchorVal, ok := rawObj.Get("$anchor"); ok {
		if anchorVal.Kind() != KindString {
			return nil, &SchemaError{Keyword: "$anchor", Reason: "must be a string"}
		}
		n.Scope.Anchors[anchorVal.String()] = n
	}
	if dynAnchorVal, ok := rawObj.Get("$dynamicAnchor"); ok {
		if dynAnchorVal.Kind() != KindString {
			return nil, &SchemaError{Keyword: "$dynamicAnchor", Reason: "must be a string"}
		}
		n.Scope.DynamicAnchors[dynAnchorVal.String()] = n
	}

	// Every raw keyword starts life as a plain annotation Value; the
	// vocabulary loop below overrides the ones it recognizes with a
	// compiled subschema shape (*Node, []*Node, or *NodeMap).
	for _, k := range rawObj.Keys() {
		v, _ := rawObj.Get(k)
		n.Raw[k] = v
	}

	for _, v := range n.MetaSchema.active() {
		if err := v.OnInit(n, rawObj, cs); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// resolveID resolves a (possibly relative) $id against the nearest
// ancestor scope carrying an absolute base URI, splitting on "/" (or ":"
// for urn: URIs), dropping the base's last segment, and appending id. An
// id that already carries an absolute scheme is returned unchanged.
func (c *Compiler) resolveID(id string, parent *Node) (string, error) {
	if hasAbsoluteScheme(id) {
		return id, nil
	}

	p := parent
	var rootURI string
	for p != nil {
		candidate := p.Scope.Root.URI
		if candidate != "" && hasAbsoluteScheme(candidate) {
			rootURI = candidate
			break
		}
		p = p.Parent
	}
	if rootURI == "" {
		// No ancestor carries an absolute base URI (e.g. a standalone
		// document with a relative $id and no externally supplied base).
		// Leave the id as given rather than failing to compile.
		return id, nil
	}

	delimiter := "/"
	if strings.HasPrefix(rootURI, "urn:") {
		delimiter = ":"
	}
	parts := strings.Split(rootURI, delimiter)
	base := strings.Join(parts[:len(parts)-1], delimiter)
	return base + delimiter + id, nil
}

// ensureCompiled compiles entry's raw document in place if it hasn't been
// compiled yet, registers the result, and returns the compiled node. Used
// when a reference targets a URI that was only preloaded as raw JSON.
func (c *Compiler) ensureCompiled(uri string, entry *registryEntry) (*Node, error) {
	if entry.compiled != nil {
		return entry.compiled, nil
	}
	node, err := c.Compile(entry.raw)
	if err != nil {
		return nil, err
	}
	if node.URI == "" {
		node.URI = uri
	}
	c.registry.register(uri, node)
	return node, nil
}
