package schema

import "context"

// unevaluatedVocabulary implements unevaluatedItems and unevaluatedProperties.
// It must run after the Applicator vocabulary has populated the DynamicScope's
// evaluated-item/property sets for this activation, hence its place in
// dispatchOrder immediately following Applicator.
//
// Evaluate iterates the instance, skips anything already marked evaluated by
// a sibling keyword, validates the rest against the unevaluated subschema,
// and marks it evaluated on success too, so a later sibling or an enclosing
// schema reached via $ref treats it as covered.
type unevaluatedVocabulary struct{}

func (unevaluatedVocabulary) URI() string { return UnevaluatedVocabularyURL }

func (unevaluatedVocabulary) OnInit(n *Node, raw *Object, cs *compileState) error {
	for _, kw := range []string{"unevaluatedItems", "unevaluatedProperties"} {
		v, ok := raw.Get(kw)
		if !ok {
			continue
		}
		child, err := cs.compiler.compileNode(v, n, cs)
		if err != nil {
			return err
		}
		n.Raw[kw] = child
	}
	return nil
}

func (unevaluatedVocabulary) Evaluate(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	if instance.Kind() == KindArray {
		if sub, ok := n.SubNode("unevaluatedItems"); ok {
			items := instance.Array()
			for i, item := range items {
				if scope.hasItem(i) {
					continue
				}
				ok2, err := sub.Evaluate(ctx, item, scope)
				if err != nil {
					return false, err
				}
				if !ok2 {
					return false, nil
				}
				scope.markItem(i)
			}
		}
	}

	if instance.Kind() == KindObject {
		if sub, ok := n.SubNode("unevaluatedProperties"); ok {
			obj := instance.Object()
			for _, key := range obj.Keys() {
				if scope.hasProperty(key) {
					continue
				}
				val, _ := obj.Get(key)
				ok2, err := sub.Evaluate(ctx, val, scope)
				if err != nil {
					return false, err
				}
				if !ok2 {
					return false, nil
				}
				scope.markProperty(key)
			}
		}
	}

	return true, nil
}

