package schema

import (
	"context"

	"github.com/dragonfly-schema/draft202012/internal/schemactx"
)

// coreVocabulary implements the Core vocabulary: $id, $schema, $ref,
// $anchor, $dynamicRef, $dynamicAnchor, $vocabulary, $defs, $comment.
//
// $id, $schema, $anchor, and $dynamicAnchor are handled directly in
// compileNode, since they are structural to opening a node's lexical scope
// and must run before any vocabulary dispatch can even begin. What's left
// for this vocabulary's OnInit is: compiling $defs's subschemas, and
// deferring $ref's eager compile-time linking. $dynamicRef is deliberately
// NOT linked here — its target depends on the dynamic scope stack and is
// re-resolved fresh on every evaluation.
type coreVocabulary struct{}

func (coreVocabulary) URI() string { return CoreVocabularyURL }

func (coreVocabulary) OnInit(n *Node, raw *Object, cs *compileState) error {
	if defsVal, ok := raw.Get("$defs"); ok {
		if defsVal.Kind() != KindObject {
			return &SchemaError{Keyword: "$defs", URI: n.URI, Reason: "must be an object"}
		}
		defs := newNodeMap()
		for _, name := range defsVal.Object().Keys() {
			sub, _ := defsVal.Object().Get(name)
			child, err := cs.compiler.compileNode(sub, n, cs)
			if err != nil {
				return err
			}
			defs.Set(name, child)
		}
		n.Raw["$defs"] = defs
	}

	if refVal, ok := raw.Get("$ref"); ok {
		if refVal.Kind() != KindString {
			return &SchemaError{Keyword: "$ref", URI: n.URI, Reason: "must be a string"}
		}
		reference := refVal.String()
		node := n
		cs.defer_(func() error {
			target, err := cs.compiler.resolveReference(node, reference, false, nil)
			if err != nil {
				return err
			}
			node.Raw["$ref"] = target
			return nil
		})
	}

	// $dynamicRef is left as the plain string Value the default pass
	// already stored; Evaluate re-splits and re-resolves it every time.

	return nil
}

func (coreVocabulary) Evaluate(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	if refField, ok := n.Raw["$ref"]; ok {
		target, ok := refField.(*Node)
		if !ok {
			return false, &ReferenceError{Reference: "$ref", Reason: "reference was never linked at compile time"}
		}
		ok2, err := target.Evaluate(ctx, instance, scope)
		if err != nil {
			return false, err
		}
		if !ok2 {
			return false, nil
		}
	}

	if dynRefVal, ok := n.Value("$dynamicRef"); ok {
		target, err := n.compiler.resolveReference(n, dynRefVal.String(), true, scope)
		if err != nil {
			schemactx.TraceLoggerFromContext(ctx).Debug("dynamicRef resolution failed",
				"reference", dynRefVal.String(), "error", err)
			return false, err
		}
		ok2, err := target.Evaluate(ctx, instance, scope)
		if err != nil {
			return false, err
		}
		if !ok2 {
			return false, nil
		}
	}

	return true, nil
}

