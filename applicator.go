package schema

import "context"

// applicatorVocabulary implements allOf, anyOf, oneOf, not, if/then/else,
// properties, patternProperties, additionalProperties, items, prefixItems,
// contains, dependentSchemas, propertyNames.
type applicatorVocabulary struct{}

func (applicatorVocabulary) URI() string { return ApplicatorVocabularyURL }

var singleSchemaKeywords = []string{"items", "contains", "additionalProperties", "propertyNames", "if", "then", "else", "not"}
var listSchemaKeywords = []string{"prefixItems", "allOf", "anyOf", "oneOf"}
var mapSchemaKeywords = []string{"properties", "patternProperties", "dependentSchemas"}

func (applicatorVocabulary) OnInit(n *Node, raw *Object, cs *compileState) error {
	for _, kw := range singleSchemaKeywords {
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

	for _, kw := range listSchemaKeywords {
		v, ok := raw.Get(kw)
		if !ok {
			continue
		}
		if v.Kind() != KindArray {
			return &SchemaError{Keyword: kw, URI: n.URI, Reason: "must be an array"}
		}
		children := make([]*Node, 0, len(v.Array()))
		for _, sub := range v.Array() {
			child, err := cs.compiler.compileNode(sub, n, cs)
			if err != nil {
				return err
			}
			children = append(children, child)
		}
		n.Raw[kw] = children
	}

	for _, kw := range mapSchemaKeywords {
		v, ok := raw.Get(kw)
		if !ok {
			continue
		}
		if v.Kind() != KindObject {
			return &SchemaError{Keyword: kw, URI: n.URI, Reason: "must be an object"}
		}
		m := newNodeMap()
		for _, name := range v.Object().Keys() {
			if kw == "patternProperties" {
				if _, err := compilePattern(name); err != nil {
					return &SchemaError{Keyword: kw, URI: n.URI, Reason: err.Error(), Cause: err}
				}
			}
			sub, _ := v.Object().Get(name)
			child, err := cs.compiler.compileNode(sub, n, cs)
			if err != nil {
				return err
			}
			m.Set(name, child)
		}
		n.Raw[kw] = m
	}

	return nil
}

func (applicatorVocabulary) Evaluate(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	if sub, ok := n.SubNode("not"); ok {
		ok2, err := sub.Evaluate(ctx, instance, scope)
		if err != nil {
			return false, err
		}
		if ok2 {
			return false, nil
		}
	}

	if subs, ok := n.SubNodes("oneOf"); ok {
		count := 0
		for _, sub := range subs {
			ok2, err := sub.Evaluate(ctx, instance, scope)
			if err != nil {
				return false, err
			}
			if ok2 {
				count++
			}
		}
		if count != 1 {
			return false, nil
		}
	}

	if subs, ok := n.SubNodes("anyOf"); ok {
		count := 0
		for _, sub := range subs {
			ok2, err := sub.Evaluate(ctx, instance, scope)
			if err != nil {
				return false, err
			}
			if ok2 {
				count++
			}
		}
		if count == 0 {
			return false, nil
		}
	}

	if subs, ok := n.SubNodes("allOf"); ok {
		for _, sub := range subs {
			ok2, err := sub.Evaluate(ctx, instance, scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
		}
	}

	if ifSub, ok := n.SubNode("if"); ok {
		result, err := ifSub.Evaluate(ctx, instance, scope)
		if err != nil {
			return false, err
		}
		if result {
			if thenSub, ok := n.SubNode("then"); ok {
				ok2, err := thenSub.Evaluate(ctx, instance, scope)
				if err != nil {
					return false, err
				}
				if !ok2 {
					return false, nil
				}
			}
		} else {
			if elseSub, ok := n.SubNode("else"); ok {
				ok2, err := elseSub.Evaluate(ctx, instance, scope)
				if err != nil {
					return false, err
				}
				if !ok2 {
					return false, nil
				}
			}
		}
	}

	if instance.Kind() == KindArray {
		if ok, err := evaluateArrayApplicators(ctx, n, instance, scope); !ok || err != nil {
			return ok, err
		}
	}

	if instance.Kind() == KindObject {
		if ok, err := evaluateObjectApplicators(ctx, n, instance, scope); !ok || err != nil {
			return ok, err
		}
	}

	return true, nil
}

func evaluateArrayApplicators(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	items := instance.Array()
	locallyEvaluated := make(map[int]struct{})

	prefixCount := 0
	if prefix, ok := n.SubNodes("prefixItems"); ok {
		prefixCount = len(prefix)
		for i, sub := range prefix {
			if i >= len(items) {
				break
			}
			ok2, err := sub.Evaluate(ctx, items[i], scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
			locallyEvaluated[i] = struct{}{}
		}
	}

	if itemsSub, ok := n.SubNode("items"); ok {
		for i := prefixCount; i < len(items); i++ {
			ok2, err := itemsSub.Evaluate(ctx, items[i], scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
			locallyEvaluated[i] = struct{}{}
		}
	}

	if containsSub, ok := n.SubNode("contains"); ok {
		minContains := 1
		if v, ok := n.Value("minContains"); ok {
			minContains = int(v.Number())
		}
		maxContains := -1 // unbounded
		if v, ok := n.Value("maxContains"); ok {
			maxContains = int(v.Number())
		}

		count := 0
		for i, item := range items {
			ok2, err := containsSub.Evaluate(ctx, item, scope)
			if err != nil {
				return false, err
			}
			if ok2 {
				count++
				locallyEvaluated[i] = struct{}{}
			}
		}
		if count < minContains {
			return false, nil
		}
		if maxContains >= 0 && count > maxContains {
			return false, nil
		}
	}

	for i := range locallyEvaluated {
		scope.markItem(i)
	}
	return true, nil
}

func evaluateObjectApplicators(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	obj := instance.Object()

	if propertyNamesSub, ok := n.SubNode("propertyNames"); ok {
		for _, key := range obj.Keys() {
			ok2, err := propertyNamesSub.Evaluate(ctx, String(key), scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
		}
	}

	if dependentSchemas, ok := n.SubNodeMap("dependentSchemas"); ok {
		for _, propName := range dependentSchemas.Keys() {
			if _, present := obj.Get(propName); !present {
				continue
			}
			sub, _ := dependentSchemas.Get(propName)
			ok2, err := sub.Evaluate(ctx, instance, scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
		}
	}

	locallyEvaluated := make(map[string]struct{})

	if patternProps, ok := n.SubNodeMap("patternProperties"); ok {
		for _, pattern := range patternProps.Keys() {
			re, err := compilePattern(pattern)
			if err != nil {
				return false, &SchemaError{Keyword: "patternProperties", URI: n.URI, Reason: err.Error(), Cause: err}
			}
			sub, _ := patternProps.Get(pattern)
			for _, key := range obj.Keys() {
				if !re.MatchString(key) {
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
				locallyEvaluated[key] = struct{}{}
			}
		}
	}

	if properties, ok := n.SubNodeMap("properties"); ok {
		for _, key := range properties.Keys() {
			val, present := obj.Get(key)
			if !present {
				continue
			}
			sub, _ := properties.Get(key)
			ok2, err := sub.Evaluate(ctx, val, scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
			locallyEvaluated[key] = struct{}{}
		}
	}

	if additionalSub, ok := n.SubNode("additionalProperties"); ok {
		for _, key := range obj.Keys() {
			if _, done := locallyEvaluated[key]; done {
				continue
			}
			val, _ := obj.Get(key)
			ok2, err := additionalSub.Evaluate(ctx, val, scope)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
			locallyEvaluated[key] = struct{}{}
		}
	}

	for key := range locallyEvaluated {
		scope.markProperty(key)
	}
	return true, nil
}

