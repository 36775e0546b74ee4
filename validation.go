package schema

import (
	"context"
	"math"
	"unicode/utf8"
)

// validationVocabulary implements type, const, enum, and the numeric,
// string, array, and object assertion keywords.
//
// multipleOf compares with a small epsilon (1e-5) to tolerate floating-point
// error. String length is counted in Unicode code points
// (utf8.RuneCountInString), not bytes or UTF-16 units.
type validationVocabulary struct{}

func (validationVocabulary) URI() string { return ValidationVocabularyURL }

func (validationVocabulary) OnInit(n *Node, raw *Object, cs *compileState) error {
	if patVal, ok := raw.Get("pattern"); ok {
		if patVal.Kind() != KindString {
			return &SchemaError{Keyword: "pattern", URI: n.URI, Reason: "must be a string"}
		}
		if _, err := compilePattern(patVal.String()); err != nil {
			return &SchemaError{Keyword: "pattern", URI: n.URI, Reason: err.Error(), Cause: err}
		}
	}
	return nil
}

func (validationVocabulary) Evaluate(ctx context.Context, n *Node, instance Value, scope *DynamicScope) (bool, error) {
	if typeVal, ok := n.Value("type"); ok {
		if typeVal.Kind() == KindArray {
			matched := false
			for _, t := range typeVal.Array() {
				if checkType(t.String(), instance) {
					matched = true
					break
				}
			}
			if !matched {
				return false, nil
			}
		} else {
			if !checkType(typeVal.String(), instance) {
				return false, nil
			}
		}
	}

	if constVal, ok := n.Value("const"); ok {
		if !DeepEqual(instance, constVal) {
			return false, nil
		}
	}

	if enumVal, ok := n.Value("enum"); ok {
		found := false
		for _, item := range enumVal.Array() {
			if DeepEqual(instance, item) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	switch instance.Kind() {
	case KindNumber:
		if !checkNumericBounds(n, instance.Number()) {
			return false, nil
		}
	case KindString:
		if !checkStringBounds(n, instance.String()) {
			return false, nil
		}
	case KindArray:
		if !checkArrayBounds(n, instance.Array()) {
			return false, nil
		}
	case KindObject:
		if !checkObjectBounds(n, instance.Object()) {
			return false, nil
		}
	}

	return true, nil
}

func checkType(want string, instance Value) bool {
	switch want {
	case "null":
		return instance.Kind() == KindNull
	case "string":
		return instance.Kind() == KindString
	case "object":
		return instance.Kind() == KindObject
	case "array":
		return instance.Kind() == KindArray
	case "boolean":
		return instance.Kind() == KindBool
	case "integer":
		return instance.Kind() == KindNumber && instance.IsInteger()
	case "number":
		return instance.Kind() == KindNumber
	}
	return false
}

func checkNumericBounds(n *Node, num float64) bool {
	if v, ok := n.Value("minimum"); ok && num < v.Number() {
		return false
	}
	if v, ok := n.Value("maximum"); ok && num > v.Number() {
		return false
	}
	if v, ok := n.Value("exclusiveMaximum"); ok && num >= v.Number() {
		return false
	}
	if v, ok := n.Value("exclusiveMinimum"); ok && num <= v.Number() {
		return false
	}
	if v, ok := n.Value("multipleOf"); ok {
		multiple := v.Number()
		mod := math.Mod(num, multiple)
		if mod < 0 {
			mod += multiple
		}
		if !(mod == 0 || (multiple-mod) < 0.00001) {
			return false
		}
	}
	return true
}

func checkStringBounds(n *Node, s string) bool {
	length := utf8.RuneCountInString(s)
	if v, ok := n.Value("minLength"); ok && length < int(v.Number()) {
		return false
	}
	if v, ok := n.Value("maxLength"); ok && length > int(v.Number()) {
		return false
	}
	if v, ok := n.Value("pattern"); ok {
		re, err := compilePattern(v.String())
		if err != nil {
			return false
		}
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}

func checkArrayBounds(n *Node, items []Value) bool {
	if v, ok := n.Value("minItems"); ok && len(items) < int(v.Number()) {
		return false
	}
	if v, ok := n.Value("maxItems"); ok && len(items) > int(v.Number()) {
		return false
	}
	if v, ok := n.Value("uniqueItems"); ok && v.Bool() {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if DeepEqual(items[i], items[j]) {
					return false
				}
			}
		}
	}
	return true
}

func checkObjectBounds(n *Node, obj *Object) bool {
	if v, ok := n.Value("minProperties"); ok && obj.Len() < int(v.Number()) {
		return false
	}
	if v, ok := n.Value("maxProperties"); ok && obj.Len() > int(v.Number()) {
		return false
	}
	if v, ok := n.Value("required"); ok {
		for _, req := range v.Array() {
			if _, present := obj.Get(req.String()); !present {
				return false
			}
		}
	}
	if v, ok := n.Value("dependentRequired"); ok {
		for _, key := range v.Object().Keys() {
			if _, present := obj.Get(key); !present {
				continue
			}
			reqList, _ := v.Object().Get(key)
			for _, req := range reqList.Array() {
				if _, present := obj.Get(req.String()); !present {
					return false
				}
			}
		}
	}
	return true
}

