package schema

import (
	"fmt"
	"math"

	"github.com/valyala/fastjson"

	"github.com/dragonfly-schema/draft202012/internal/pool"
)

// Kind tags the variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged-union JSON value model the rest of the package
// operates on. It is deliberately distinct from encoding/json's map[string]any
// because it keeps object member order and keeps booleans distinct from
// numbers, both of which the evaluator's semantics depend on.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  *Object
}

// Object is an insertion-order-preserving string-keyed map.
type Object struct {
	keys []string
	vals map[string]Value
}

func newObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set appends key (or overwrites in place if already present) to the object.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the member names in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func Null() Value                { return Value{kind: KindNull} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Number(n float64) Value     { return Value{kind: KindNumber, num: n} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Array(items []Value) Value  { return Value{kind: KindArray, arr: items} }
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) Bool() bool      { return v.b }
func (v Value) Number() float64 { return v.num }
func (v Value) String() string  { return v.str }
func (v Value) Array() []Value  { return v.arr }
func (v Value) Object() *Object { return v.obj }

// IsInteger reports whether a numeric value has zero fractional part.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber {
		return false
	}
	return v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0)
}

// ParseValue parses JSON text into an order-preserving Value using
// valyala/fastjson, whose Object.Visit callback iterates members in their
// original source order.
func ParseValue(data []byte) (Value, error) {
	var p fastjson.Parser
	fv, err := p.ParseBytes(data)
	if err != nil {
		return Value{}, fmt.Errorf("jsonschema: parse: %w", err)
	}
	return fromFastJSON(fv), nil
}

func fromFastJSON(fv *fastjson.Value) Value {
	if fv == nil {
		return Null()
	}
	switch fv.Type() {
	case fastjson.TypeNull:
		return Null()
	case fastjson.TypeTrue:
		return Bool(true)
	case fastjson.TypeFalse:
		return Bool(false)
	case fastjson.TypeNumber:
		return Number(fv.GetFloat64())
	case fastjson.TypeString:
		return String(string(fv.GetStringBytes()))
	case fastjson.TypeArray:
		items, _ := fv.Array()
		out := make([]Value, len(items))
		for i, it := range items {
			out[i] = fromFastJSON(it)
		}
		return Array(out)
	case fastjson.TypeObject:
		slicePool := pool.PairSlice()
		pairs := slicePool.Get()
		fv.GetObject().Visit(func(key []byte, v *fastjson.Value) {
			pairs = append(pairs, pool.Pair{Name: string(key), Value: fromFastJSON(v)})
		})
		obj := newObject()
		for _, p := range pairs {
			obj.Set(p.Name, p.Value.(Value))
		}
		slicePool.Put(pairs)
		return ObjectValue(obj)
	default:
		return Null()
	}
}

// ValueFromAny converts a Go-native value (as produced by encoding/json's
// map[string]any decoding, or hand-built by a caller) into a Value.
//
// Object member order is not preserved along this path since Go maps have
// no ordering of their own; callers that need the ordering invariant should
// go through ParseValue instead.
func ValueFromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case int:
		return Number(float64(x))
	case string:
		return String(x)
	case []any:
		out := make([]Value, len(x))
		for i, it := range x {
			out[i] = ValueFromAny(it)
		}
		return Array(out)
	case map[string]any:
		obj := newObject()
		for k, val := range x {
			obj.Set(k, ValueFromAny(val))
		}
		return ObjectValue(obj)
	case Value:
		return x
	default:
		return Null()
	}
}

// DeepEqual is the equality rule used by const, enum, and uniqueItems:
// types must match exactly (bool and number are never equal), arrays
// compare element-wise, objects compare by key set and value.
func DeepEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !DeepEqual(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !DeepEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
