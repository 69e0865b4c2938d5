// Package content holds the untyped content tree behind the site and the
// path-addressed mutation engine every edit goes through.
package content

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a content tree. The set of implementations is closed:
// Null, Bool, Number, String, List and Object.
type Value interface {
	Kind() Kind
	clone() Value
}

type (
	Null   struct{}
	Bool   bool
	Number float64
	String string
	List   []Value
	Object map[string]Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (List) Kind() Kind   { return KindList }
func (Object) Kind() Kind { return KindObject }

func (v Null) clone() Value   { return v }
func (v Bool) clone() Value   { return v }
func (v Number) clone() Value { return v }
func (v String) clone() Value { return v }

func (l List) clone() Value {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	for i, v := range l {
		out[i] = Clone(v)
	}
	return out
}

func (o Object) clone() Value {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = Clone(v)
	}
	return out
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int reports the number as an int when it is integral and fits.
func (n Number) Int() (int, bool) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func (n Number) String() string {
	if i, ok := n.Int(); ok {
		return strconv.Itoa(i)
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Clone returns a deep copy of v that shares no mutable structure with it.
// A nil v clones to Null.
func Clone(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v.clone()
}

// Equal reports whether a and b are structurally equal. Nil counts as Null.
func Equal(a, b Value) bool {
	a, b = orNull(a), orNull(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv := b.(Object)
		if len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	}
	return false
}

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}

// From converts decoded Go data (the shapes produced by ojg, encoding/json
// and yaml.v3) into a Value.
func From(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return Clone(v), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Number(v), nil
	case int8:
		return Number(v), nil
	case int16:
		return Number(v), nil
	case int32:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint:
		return Number(v), nil
	case uint8:
		return Number(v), nil
	case uint16:
		return Number(v), nil
	case uint32:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case float32:
		return Number(v), nil
	case float64:
		return Number(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("convert number %q: %w", v, err)
		}
		return Number(f), nil
	case []any:
		out := make(List, len(v))
		for i, e := range v {
			ev, err := From(e)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(v))
		for k, e := range v {
			ev, err := From(e)
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	case map[any]any:
		out := make(Object, len(v))
		for k, e := range v {
			ev, err := From(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = ev
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported content type %T", x)
	}
}

// MustFrom is From for literals known to be valid. It panics on error.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Native converts v into plain Go data: map[string]any, []any, string,
// int64 for integral numbers, float64, bool and nil.
func Native(v Value) any {
	switch x := orNull(v).(type) {
	case Bool:
		return bool(x)
	case Number:
		if i, ok := x.Int(); ok {
			return int64(i)
		}
		return float64(x)
	case String:
		return string(x)
	case List:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Native(e)
		}
		return out
	case Object:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Native(e)
		}
		return out
	default:
		return nil
	}
}

// Text returns the string held by v, or "" for any other kind.
func Text(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return ""
}

// Field returns o[key] when v is an Object holding key, and Null otherwise.
func Field(v Value, key string) Value {
	if o, ok := v.(Object); ok {
		if f, ok := o[key]; ok && f != nil {
			return f
		}
	}
	return Null{}
}

// Truthy mirrors how the page decides visibility: false, null, 0 and ""
// are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch x := orNull(v).(type) {
	case Null:
		return false
	case Bool:
		return bool(x)
	case Number:
		return x != 0
	case String:
		return x != ""
	default:
		return true
	}
}
