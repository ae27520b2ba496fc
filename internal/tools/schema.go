package tools

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"toolbridge/internal/value"
)

// Conform checks raw against the schema and returns the object that will be
// decoded into the tool's parameters: required fields must be present and
// non-null, declared fields must have their declared kind and belong to their
// enum, and absent optional fields receive their declared default. Integral
// numbers are accepted for integer fields. Undeclared fields pass through
// untouched.
func (s ToolSchema) Conform(raw value.Object) (value.Object, error) {
	out := raw.Clone()

	for _, name := range s.Required {
		if v, ok := out[name]; !ok || v.IsNull() {
			return nil, fmt.Errorf("%w: %s", ErrMissingRequiredArg, name)
		}
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := s.Properties[name]
		v, ok := out[name]
		if !ok || v.IsNull() {
			delete(out, name)
			if prop.Default != nil {
				def, err := value.FromAny(prop.Default)
				if err != nil {
					return nil, fmt.Errorf("%s: bad default: %w", name, err)
				}
				out[name] = def
			}
			continue
		}

		conformed, err := conformKind(name, prop.Type, v)
		if err != nil {
			return nil, err
		}
		if prop.Type == "array" && prop.Items != nil {
			if conformed, err = conformItems(name, prop.Items.Type, conformed); err != nil {
				return nil, err
			}
		}
		if len(prop.Enum) > 0 && !inEnum(conformed, prop.Enum) {
			return nil, fmt.Errorf("%w: %s must be one of %s, got %s",
				ErrInvalidEnumValue, name, formatEnum(prop.Enum), conformed)
		}
		out[name] = conformed
	}

	return out, nil
}

func conformKind(name, typ string, v value.Value) (value.Value, error) {
	switch typ {
	case "":
		return v, nil
	case "string":
		if v.Kind() == value.KindString {
			return v, nil
		}
	case "number":
		if v.Kind() == value.KindNumber || v.Kind() == value.KindInteger {
			return v, nil
		}
	case "integer":
		if v.Kind() == value.KindInteger {
			return v, nil
		}
		if f, ok := v.AsNumber(); ok && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return value.Integer(int64(f)), nil
		}
	case "boolean":
		if v.Kind() == value.KindBool {
			return v, nil
		}
	case "array":
		if v.Kind() == value.KindArray {
			return v, nil
		}
	case "object":
		if v.Kind() == value.KindObject {
			return v, nil
		}
	default:
		return v, fmt.Errorf("%w: %s has unknown schema type %q", ErrInvalidArgType, name, typ)
	}
	return v, fmt.Errorf("%w: %s must be %s, got %s", ErrInvalidArgType, name, typ, v.Kind())
}

func conformItems(name, typ string, arr value.Value) (value.Value, error) {
	elems, _ := arr.AsArray()
	for i, e := range elems {
		c, err := conformKind(fmt.Sprintf("%s[%d]", name, i), typ, e)
		if err != nil {
			return arr, err
		}
		elems[i] = c
	}
	return value.Array(elems...), nil
}

func inEnum(v value.Value, enum []any) bool {
	for _, e := range enum {
		allowed, err := value.FromAny(e)
		if err != nil {
			continue
		}
		if value.Equal(v, allowed) {
			return true
		}
		a, aok := v.AsNumber()
		b, bok := allowed.AsNumber()
		if aok && bok && a == b {
			return true
		}
	}
	return false
}

func formatEnum(enum []any) string {
	parts := make([]string, len(enum))
	for i, e := range enum {
		parts[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
