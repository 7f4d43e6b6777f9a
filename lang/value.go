package lang

//go:generate go tool stringer --linecomment --type Kind --output value_string.go

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNull   Kind = iota // null
	KindString             // string
	KindInt                // int
	KindFloat              // float
	KindBool               // bool
	KindList               // list
	KindMap                // map
	KindObject             // object
)

// Object is a host value whose named fields are visible to expressions.
//
// An Object that also implements [fmt.Stringer] controls its text form, and
// one that implements Equal(Object) bool controls value equality.
type Object interface {
	Field(name string) (Value, bool)
}

// Value is an immutable tagged union of the kinds an expression can produce.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	list []Value
	dict map[string]Value
	obj  Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}

	return v
}

// List returns a list value holding vs.
func List(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}

	return Value{kind: KindList, list: vs}
}

// Map returns a map value holding m.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}

	return Value{kind: KindMap, dict: m}
}

// ObjectOf returns an object value wrapping o, or null if o is nil.
func ObjectOf(o Object) Value {
	if o == nil {
		return Null()
	}

	return Value{kind: KindObject, obj: o}
}

// ValueOf converts a native Go value into a [Value].
// Types without a dedicated kind are converted to their fmt text form.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case *Value:
		if v == nil {
			return Null()
		}

		return *v
	case string:
		return String(v)
	case []byte:
		return String(string(v))
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return unsigned(uint64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return unsigned(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case []Value:
		return List(v...)
	case []any:
		return List(convertSlice(v)...)
	case []string:
		return List(convertSlice(v)...)
	case []int:
		return List(convertSlice(v)...)
	case []int64:
		return List(convertSlice(v)...)
	case []float64:
		return List(convertSlice(v)...)
	case map[string]Value:
		return Map(v)
	case map[string]any:
		return Map(convertMap(v))
	case map[string]string:
		return Map(convertMap(v))
	case Object:
		return ObjectOf(v)
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}

// unsigned converts u to an Int, or to a Float if it exceeds the int64 range.
func unsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}

	return Int(int64(u))
}

func convertSlice[T any](s []T) []Value {
	out := make([]Value, len(s))
	for i, e := range s {
		out[i] = ValueOf(e)
	}

	return out
}

func convertMap[T any](m map[string]T) map[string]Value {
	out := make(map[string]Value, len(m))
	for k, e := range m {
		out[k] = ValueOf(e)
	}

	return out
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsFloat returns the floating-point number held by v.
func (v Value) AsFloat() (float64, bool) { return v.flt, v.kind == KindFloat }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.num != 0, v.kind == KindBool }

// AsList returns the elements held by v. The slice must not be modified.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the entries held by v. The map must not be modified.
func (v Value) AsMap() (map[string]Value, bool) { return v.dict, v.kind == KindMap }

// AsObject returns the object held by v.
func (v Value) AsObject() (Object, bool) { return v.obj, v.kind == KindObject }

// number returns v as a float64 if it is an integer or a float.
func (v Value) number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindFloat:
		return v.flt, true
	default:
		return 0, false
	}
}

// Len returns the number of elements of a list or map, or the number of runes
// of a string. Other kinds have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.dict)
	case KindString:
		return utf8.RuneCountInString(v.str)
	default:
		return 0
	}
}

// String returns the text form of v, which is what substitutions emit.
func (v Value) String() string {
	var sb strings.Builder

	v.write(&sb)

	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")

	case KindString:
		sb.WriteString(v.str)

	case KindInt:
		sb.WriteString(strconv.FormatInt(v.num, 10))

	case KindFloat:
		sb.WriteString(formatFloat(v.flt))

	case KindBool:
		sb.WriteString(strconv.FormatBool(v.num != 0))

	case KindList:
		sb.WriteByte('[')

		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}

			e.write(sb)
		}

		sb.WriteByte(']')

	case KindMap:
		sb.WriteByte('{')

		for i, k := range slices.Sorted(maps.Keys(v.dict)) {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(k)
			sb.WriteByte('=')
			v.dict[k].write(sb)
		}

		sb.WriteByte('}')

	case KindObject:
		if s, ok := v.obj.(fmt.Stringer); ok {
			sb.WriteString(s.String())
		} else {
			fmt.Fprintf(sb, "%v", v.obj)
		}
	}
}

// formatFloat renders f in its shortest form with at least one fractional
// digit.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}

	return s + ".0"
}

// Any returns the native Go form of v: nil, string, int64, float64, bool,
// []any, map[string]any or the wrapped [Object].
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.num != 0
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}

		return out
	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, e := range v.dict {
			out[k] = e.Any()
		}

		return out
	case KindObject:
		return v.obj
	default:
		return nil
	}
}

// Equal reports whether v and w hold equal values.
// Numbers compare numerically regardless of kind, lists and maps compare
// element-wise, and objects use their Equal method when they have one.
func (v Value) Equal(w Value) bool {
	if a, ok := v.number(); ok {
		b, ok := w.number()

		return ok && a == b
	}

	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true

	case KindString:
		return v.str == w.str

	case KindBool:
		return v.num == w.num

	case KindList:
		return slices.EqualFunc(v.list, w.list, Value.Equal)

	case KindMap:
		return maps.EqualFunc(v.dict, w.dict, Value.Equal)

	case KindObject:
		if eq, ok := v.obj.(interface{ Equal(Object) bool }); ok {
			return eq.Equal(w.obj)
		}

		return reflect.DeepEqual(v.obj, w.obj)
	}

	return false
}
