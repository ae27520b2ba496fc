package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrUnsupportedType is returned when a Go value has no dynamic equivalent.
var ErrUnsupportedType = errors.New("unsupported type")

// ErrNotObject is returned when an object was expected.
var ErrNotObject = errors.New("value is not an object")

// FromAny converts a JSON-like Go value into a Value. Maps and slices are
// copied deeply.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Object:
		return ObjectOf(t), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Integer(int64(t)), nil
	case int8:
		return Integer(int64(t)), nil
	case int16:
		return Integer(int64(t)), nil
	case int32:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Integer(int64(t)), nil
	case uint16:
		return Integer(int64(t)), nil
	case uint32:
		return Integer(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case json.Number:
		return fromNumber(t)
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return Value{kind: KindArray, arr: arr}, nil
	case []Value:
		return Array(t...), nil
	case []string:
		arr := make([]Value, len(t))
		for i, s := range t {
			arr[i] = String(s)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case []float64:
		arr := make([]Value, len(t))
		for i, f := range t {
			arr[i] = Number(f)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj, err := ObjectFromAny(t)
		if err != nil {
			return Null(), err
		}
		return Value{kind: KindObject, obj: obj}, nil
	}
	return Null(), fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

// ObjectFromAny converts a map[string]any into an Object.
func ObjectFromAny(m map[string]any) (Object, error) {
	obj := make(Object, len(m))
	for k, e := range m {
		v, err := FromAny(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		obj[k] = v
	}
	return obj, nil
}

// MustObject is ObjectFromAny for literals known to be valid. It panics on
// error.
func MustObject(m map[string]any) Object {
	obj, err := ObjectFromAny(m)
	if err != nil {
		panic(err)
	}
	return obj
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Null(), fmt.Errorf("%w: integer %d out of range", ErrUnsupportedType, u)
	}
	return Integer(int64(u)), nil
}

// fromNumber keeps integral literals exact: a literal without fraction or
// exponent becomes an Integer and must fit in int64; everything else is a
// Number.
func fromNumber(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := n.Int64()
		if err != nil {
			return Null(), fmt.Errorf("%w: integer %s out of range", ErrUnsupportedType, s)
		}
		return Integer(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Null(), fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Number(f), nil
}

// Parse decodes a single JSON document into a Value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Null(), err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null(), errors.New("unexpected data after JSON value")
	}
	return FromAny(raw)
}

// ParseObject decodes a JSON object into an Object.
func ParseObject(data []byte) (Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.kind)
	}
	return v.obj, nil
}

// MarshalJSON implements json.Marshaler. Non-finite numbers fail.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("%w: non-finite number %v", ErrUnsupportedType, v.n)
		}
		return json.Marshal(v.n)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindObject:
		return v.obj.MarshalJSON()
	}
	return json.Marshal(v.Any())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are emitted in ascending order.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(o))
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*o = nil
		return nil
	}
	parsed, err := ParseObject(data)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
