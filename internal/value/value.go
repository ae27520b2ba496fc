// Package value provides the dynamically-typed value used at the tool call
// boundary: a JSON-like recursive sum type over strings, numbers, integers,
// booleans, arrays, objects and null.
//
// Values are immutable. Constructors copy their inputs structurally and
// accessors hand out copies, so a Value never aliases caller-owned memory.
package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBool
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:    "null",
	KindString:  "string",
	KindNumber:  "number",
	KindInteger: "integer",
	KindBool:    "boolean",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a dynamically-typed value. The zero Value is Null.
type Value struct {
	kind Kind
	s    string
	n    float64
	i    int64
	b    bool
	arr  []Value
	obj  Object
}

// Object maps field names to values.
type Object map[string]Value

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a floating point value.
func Number(f float64) Value { return Value{kind: KindNumber, n: f} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array returns an array value holding a copy of vs.
func Array(vs ...Value) Value {
	arr := make([]Value, len(vs))
	copy(arr, vs)
	return Value{kind: KindArray, arr: arr}
}

// ObjectOf returns an object value holding a copy of o.
func ObjectOf(o Object) Value {
	return Value{kind: KindObject, obj: o.Clone()}
}

// EmptyObject returns an object value with no fields.
func EmptyObject() Value {
	return Value{kind: KindObject, obj: Object{}}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsNumber returns v as a float64. Integers are widened.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindInteger:
		return float64(v.i), true
	}
	return 0, false
}

// AsInteger returns the integer held by v. Numbers are not narrowed.
func (v Value) AsInteger() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsArray returns a copy of the elements held by v.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out, true
}

// AsObject returns a copy of the fields held by v.
func (v Value) AsObject() (Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj.Clone(), true
}

// Len returns the number of elements of an array or fields of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th array element, or Null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Null()
	}
	return v.arr[i]
}

// Field returns the named object field.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	f, ok := v.obj[name]
	return f, ok
}

// Any converts v into plain Go values: nil, string, float64, int64, bool,
// []any and map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindInteger:
		return v.i
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Any()
		}
		return out
	case KindObject:
		return v.obj.Any()
	}
	return nil
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v.Any())
	}
	return string(data)
}

// Equal reports whether a and b are structurally identical. Integer and
// Number are distinct kinds and never compare equal to each other.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.s == b.s
	case KindNumber:
		return a.n == b.n
	case KindInteger:
		return a.i == b.i
	case KindBool:
		return a.b == b.b
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.obj.Equal(b.obj)
	}
	return false
}

// Clone returns a shallow copy of o. Values are immutable, so the copy
// shares no mutable state with o.
func (o Object) Clone() Object {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Keys returns the field names of o in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the named field.
func (o Object) Get(name string) (Value, bool) {
	v, ok := o[name]
	return v, ok
}

// Value wraps o as an object Value.
func (o Object) Value() Value { return ObjectOf(o) }

// Any converts o into a map[string]any.
func (o Object) Any() map[string]any {
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = v.Any()
	}
	return out
}

// Equal reports whether o and other hold the same fields and values.
func (o Object) Equal(other Object) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		w, ok := other[k]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}

// Equal reports whether v and other are structurally identical.
func (v Value) Equal(other Value) bool { return Equal(v, other) }
