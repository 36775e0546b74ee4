package schema

import (
	"sync"
)

// Node is the compiled representation of one schema document (or
// subschema). Its Raw map holds, per keyword, either a Value (for leaf
// keywords and annotations) or a compiled subschema shape: *Node, []*Node,
// or *NodeMap, depending on which applicator/core keyword it is.
type Node struct {
	Raw map[string]any

	Parent *Node
	Scope  *LexicalScope
	URI    string

	MetaSchema *MetaSchema

	// compiler lets a node re-resolve a $dynamicRef at evaluation time
	// without threading a Compiler through context.Context on every call.
	compiler *Compiler
}

// NodeMap is an insertion-order-preserving name -> *Node map, used for
// properties, patternProperties, and dependentSchemas.
type NodeMap struct {
	keys []string
	vals map[string]*Node
}

func newNodeMap() *NodeMap {
	return &NodeMap{vals: make(map[string]*Node)}
}

func (m *NodeMap) Set(name string, n *Node) {
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = n
}

func (m *NodeMap) Get(name string) (*Node, bool) {
	n, ok := m.vals[name]
	return n, ok
}

func (m *NodeMap) Keys() []string { return m.keys }

// Field returns the raw value stored for keyword, and whether it is present.
func (n *Node) Field(keyword string) (any, bool) {
	v, ok := n.Raw[keyword]
	return v, ok
}

// Value returns keyword's Raw entry as a Value, or the zero Value if absent
// or not a leaf keyword.
func (n *Node) Value(keyword string) (Value, bool) {
	v, ok := n.Raw[keyword]
	if !ok {
		return Value{}, false
	}
	val, ok := v.(Value)
	return val, ok
}

// SubNode returns keyword's Raw entry as a *Node (single-subschema shape).
func (n *Node) SubNode(keyword string) (*Node, bool) {
	v, ok := n.Raw[keyword]
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Node)
	return sub, ok
}

// SubNodes returns keyword's Raw entry as a []*Node (list-subschema shape).
func (n *Node) SubNodes(keyword string) ([]*Node, bool) {
	v, ok := n.Raw[keyword]
	if !ok {
		return nil, false
	}
	sub, ok := v.([]*Node)
	return sub, ok
}

// SubNodeMap returns keyword's Raw entry as a *NodeMap (named-map shape).
func (n *Node) SubNodeMap(keyword string) (*NodeMap, bool) {
	v, ok := n.Raw[keyword]
	if !ok {
		return nil, false
	}
	sub, ok := v.(*NodeMap)
	return sub, ok
}

// LexicalScope is opened at the root and at every node bearing $id. It owns
// the anchor tables for everything compiled within it until a nested $id
// opens a new scope.
type LexicalScope struct {
	Root           *Node
	Anchors        map[string]*Node
	DynamicAnchors map[string]*Node
}

func newLexicalScope(root *Node) *LexicalScope {
	return &LexicalScope{
		Root:           root,
		Anchors:        make(map[string]*Node),
		DynamicAnchors: make(map[string]*Node),
	}
}

// registryEntry holds either a not-yet-compiled raw document or its
// compiled Node, so that $ref targets can be registered before they are
// actually needed.
type registryEntry struct {
	raw      Value
	hasRaw   bool
	compiled *Node
}

// Registry maps absolute URIs to schema nodes, compiling lazily the first
// time a $ref resolves to a URI that was preloaded only as raw JSON.
//
// Compilation mutates the registry (lazy-compiling referenced raw schemas
// during resolve), so all registry access is serialized behind mu. Validate
// touches the registry only when re-resolving a $dynamicRef whose reference
// carries a URI part; those lookups take mu like any other access.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewRegistry returns an empty registry preloaded with the bundled Draft
// 2020-12 meta-schemas at their canonical URIs.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*registryEntry)}
	registerBundledMetaSchemas(r)
	return r
}

// Preload registers a raw (not yet compiled) schema document at uri, so a
// later $ref/$dynamicRef to uri can resolve and compile it on demand.
func (r *Registry) Preload(uri string, raw Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[uri] = &registryEntry{raw: raw, hasRaw: true}
}

func (r *Registry) lookup(uri string) (*registryEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[uri]
	return e, ok
}

func (r *Registry) register(uri string, n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[uri] = &registryEntry{compiled: n}
}
