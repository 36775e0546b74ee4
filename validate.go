package schema

import "context"

// Validate is the package-level entry point: it evaluates instance against
// the compiled root node, with no caller dynamic scope (this is a fresh
// top-level evaluation). The returned error is non-nil only for a failure
// while re-resolving a $dynamicRef at evaluation time (a *ReferenceError, or
// a *SchemaError from compiling a preloaded document on demand); ordinary
// validation failure is always a plain `false`.
func Validate(ctx context.Context, node *Node, instance Value) (bool, error) {
	return node.Evaluate(ctx, instance, nil)
}

// Evaluate opens a fresh DynamicScope frame for this activation, runs every
// active vocabulary in the fixed dispatch order (core, applicator,
// unevaluated, validation), short-circuiting to false on the first to fail,
// and on success merges this frame's evaluated sets into previous.
func (n *Node) Evaluate(ctx context.Context, instance Value, previous *DynamicScope) (bool, error) {
	s := newDynamicScope(n.Scope, previous)

	for _, v := range n.MetaSchema.active() {
		ok, err := v.Evaluate(ctx, n, instance, s)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	s.mergeInto(previous)
	return true, nil
}
