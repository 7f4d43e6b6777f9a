package lang

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// dummyObject is a host record exposing two fields.
type dummyObject struct {
	field1 *string
	field2 int
}

func newDummy(field1 string, field2 int) dummyObject {
	return dummyObject{field1: &field1, field2: field2}
}

func (d dummyObject) Field(name string) (Value, bool) {
	switch name {
	case "field1":
		if d.field1 == nil {
			return Null(), true
		}

		return String(*d.field1), true
	case "field2":
		return Int(int64(d.field2)), true
	default:
		return Value{}, false
	}
}

func (d dummyObject) String() string {
	f1 := "null"
	if d.field1 != nil {
		f1 = *d.field1
	}

	return fmt.Sprintf("DummyObject(field1=%s, field2=%d)", f1, d.field2)
}

func (d dummyObject) Equal(o Object) bool {
	other, ok := o.(dummyObject)
	if !ok || d.field2 != other.field2 {
		return false
	}

	if d.field1 == nil || other.field1 == nil {
		return d.field1 == other.field1
	}

	return *d.field1 == *other.field1
}

func textFunc(fn func(string) string) Func {
	return func(v Value) (Value, error) {
		if v.IsNull() {
			return String(fn("")), nil
		}

		return String(fn(v.String())), nil
	}
}

func newTestResolver() *Resolver {
	funcs := NewRegistry()
	funcs.Register("upperCase", textFunc(func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
	}))
	funcs.Register("lowerCase", textFunc(strings.ToLower))
	funcs.Register("buildDummyObject", func(v Value) (Value, error) {
		return ObjectOf(newDummy(v.String(), 42)), nil
	})

	scope := NewScope(map[string]Value{
		"variableString": String("hello world"),
		"variableMap": Map(map[string]Value{
			"field1": String("toto"),
			"field2": Int(42),
			"nothing": Null(),
		}),
		"variableList":    List(Int(1), Int(2), Int(3)),
		"variableNested":  List(Map(map[string]Value{"b": List(String("x"), String("y"))})),
		"variableNumber":  Int(123),
		"variableBoolean": Bool(true),
		"variableObject":  ObjectOf(newDummy("hello", 42)),
		"variableObject2": ObjectOf(newDummy("hello", 42)),
		"variableNull":    ObjectOf(dummyObject{field2: 42}),
		"args[0]":         String("positional"),
	})

	return NewResolver(scope, funcs)
}

func TestResolve_Literals(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		expr string
		want Value
	}{
		{"", String("")},
		{`""`, String("")},
		{"null", Null()},
		{"123", Int(123)},
		{"-7", Int(-7)},
		{"12.3", Float(12.3)},
		{"-0.5", Float(-0.5)},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{`"hello world"`, String("hello world")},
		{`"a.b[1]"`, String("a.b[1]")},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Resolve(tt.expr)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.expr, err)
			}

			if got.Kind() != tt.want.Kind() || !got.Equal(tt.want) {
				t.Errorf("Resolve(%q) = %v (%s), want %v (%s)",
					tt.expr, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestResolve_IntegerIndependentOfScope(t *testing.T) {
	for _, scope := range []Scope{{}, ScopeOf(map[string]any{"x": 1})} {
		v, err := NewResolver(scope, nil).Resolve("9001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if i, ok := v.AsInt(); !ok || i != 9001 {
			t.Errorf("expected 9001, got %v", v)
		}
	}
}

func TestResolveText_Null(t *testing.T) {
	r := newTestResolver()

	for _, expr := range []string{"null", "variableNull.field1"} {
		got, err := r.ResolveText(expr)
		if err != nil {
			t.Fatalf("ResolveText(%q) error: %v", expr, err)
		}

		if got != "null" {
			t.Errorf("ResolveText(%q) = %q, want %q", expr, got, "null")
		}
	}

	got, err := r.ResolveText("")
	if err != nil || got != "" {
		t.Errorf("ResolveText(\"\") = %q, %v; want empty", got, err)
	}
}

func TestResolve_Variables(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		expr string
		want string
	}{
		{"variableString", "hello world"},
		{"variableMap.field1", "toto"},
		{`variableMap["field1"]`, "toto"},
		{`variableMap[ "field1" ]`, "toto"},
		{"variableMap.field2", "42"},
		{"variableMap.nothing", "null"},
		{"variableMap.size", "3"},
		{"variableList[1]", "1"},
		{"variableList[2]", "2"},
		{"variableList[3]", "3"},
		{"variableList[1.9]", "1"},
		{"variableList[variableList[2]]", "2"},
		{"variableList.length", "3"},
		{"variableList.size", "3"},
		{"variableNumber", "123"},
		{"variableBoolean", "true"},
		{"variableObject", "DummyObject(field1=hello, field2=42)"},
		{"variableObject.field1", "hello"},
		{"variableObject.field1.length", "5"},
		{"variableObject.field2", "42"},
		{`variableObject["field2"]`, "42"},
		{"variableNested[1].b[2]", "y"},
		{"variableNested[1].b.length", "2"},
		{"args[0]", "positional"},
		{"args[0].length", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.ResolveText(tt.expr)
			if err != nil {
				t.Fatalf("ResolveText(%q) error: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("ResolveText(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestResolve_ObjectEquality(t *testing.T) {
	r := newTestResolver()

	got, err := r.Resolve("variableObject")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Equal(ObjectOf(newDummy("hello", 42))) {
		t.Errorf("expected variableObject to equal a fresh DummyObject, got %v", got)
	}
}

func TestResolve_Errors(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		expr    string
		kind    error
		message string
		cause   string
	}{
		{
			expr:    `fvfdjn"dcd"`,
			kind:    ErrUnresolvedExpression,
			message: `Unresolved expression fvfdjn"dcd"`,
		},
		{
			expr:    "variableNotDefined",
			kind:    ErrUnresolvedExpression,
			message: "Unresolved expression variableNotDefined",
		},
		{
			expr:    "variableNull.field1.length",
			kind:    ErrNullField,
			message: "Expression variableNull.field1 is null. Could not resolve field length",
		},
		{
			expr:    "variableObject.toto",
			kind:    ErrUnknownProperty,
			message: "Unknown property toto in variable variableObject",
			cause:   "Unknown property toto",
		},
		{
			expr:    `variableObject["toto"]`,
			kind:    ErrUnknownProperty,
			message: `Unknown property "toto" in variable variableObject`,
			cause:   "Unknown property toto",
		},
		{
			expr:    "variableMap.toto",
			kind:    ErrUnknownProperty,
			message: "Unknown property toto in variable variableMap",
		},
		{
			expr:    `variableMap["toto"]`,
			kind:    ErrUnknownProperty,
			message: `Unknown property "toto" in variable variableMap`,
		},
		{
			expr:    `variableMap["field1.x"]`,
			kind:    ErrUnknownProperty,
			message: `Unknown property "field1.x" in variable variableMap`,
			cause:   "Unknown property field1.x",
		},
		{
			expr:    "variableList[4]",
			kind:    ErrUnknownProperty,
			message: "Unknown property 4 in variable variableList",
		},
		{
			expr:    "variableNumber.length",
			kind:    ErrUnknownProperty,
			message: "Unknown property length in variable variableNumber",
		},
		{
			expr:    "variableNull.field1[1]",
			kind:    ErrUnknownVariable,
			message: "Unknown variable variableNull.field1",
		},
		{
			expr:    "variableNotDefined.field",
			kind:    ErrUnresolvedExpression,
			message: "Unresolved expression variableNotDefined.field",
			cause:   "Unresolved expression variableNotDefined",
		},
		{
			expr:    `functionNotDefined("value")`,
			kind:    ErrUnknownFunction,
			message: `Unknown function functionNotDefined() in expression functionNotDefined("value")`,
		},
		{
			expr:    "upperCase(lrelk)",
			kind:    ErrUnresolvedExpression,
			message: "Unresolved expression upperCase(lrelk)",
			cause:   "Unresolved expression lrelk",
		},
		{
			expr:    `variableObject >= buildDummyObject("hello")`,
			kind:    ErrUnsupportedComparison,
			message: `Unresolved comparison expression variableObject >= buildDummyObject("hello")`,
			cause:   "Unsupported comparison >=",
		},
		{
			expr:    "nb equals 1",
			kind:    ErrUnresolvedExpression,
			message: "Unresolved expression nb equals 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := r.Resolve(tt.expr)
			if err == nil {
				t.Fatalf("Resolve(%q) expected error", tt.expr)
			}

			if !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("expected error to match ErrInvalidExpression, got %v", err)
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("expected error to match %v, got %v", tt.kind, err)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if e.Message() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, e.Message())
			}

			if tt.cause == "" {
				return
			}

			var cause *Error
			if !errors.As(errors.Unwrap(err), &cause) {
				t.Fatalf("expected *Error cause, got %v", errors.Unwrap(err))
			}

			if cause.Message() != tt.cause {
				t.Errorf("expected cause %q, got %q", tt.cause, cause.Message())
			}
		})
	}
}

func TestResolve_Functions(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		expr string
		want string
	}{
		{`upperCase(   "hello world")`, "HELLO_WORLD"},
		{"upperCase(  variableString)", "HELLO_WORLD"},
		{"upperCase(variableObject.field1   )", "HELLO"},
		{`upperCase(  variableMap["field1"])`, "TOTO"},
		{"upperCase(variableNumber)", "123"},
		{"upperCase(null)", ""},
		{`upperCase("a)b")`, "A)B"},
		{"lowerCase(upperCase(  variableString))", "hello_world"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.ResolveText(tt.expr)
			if err != nil {
				t.Fatalf("ResolveText(%q) error: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("ResolveText(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestResolve_FunctionError_IsWrapped(t *testing.T) {
	funcs := NewRegistry()
	funcs.Register("fail", func(Value) (Value, error) {
		return Value{}, errors.New("boom")
	})

	_, err := NewResolver(Scope{}, funcs).Resolve("fail(1)")
	if err == nil {
		t.Fatal("expected error")
	}

	if got, want := err.Error(), "Unresolved expression fail(1): boom"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResolve_Comparisons(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		expr string
		want bool
	}{
		// strings
		{`variableString=="hello world"`, true},
		{`variableString != "hello world"`, false},
		{`variableString<"aaa"`, false},
		{`variableString > "aaa"`, true},
		{`variableMap.field1=="toto"`, true},
		{`variableMap.field1 != "toto"`, false},
		{`variableMap.field1 <= "toto"`, true},
		{`variableMap.field1 >= "toto"`, true},
		{`"a<b" == "a<b"`, true},
		// booleans
		{"variableBoolean==true", true},
		{"variableBoolean != true", false},
		// numbers
		{"  variableNumber == 123", true},
		{"variableNumber!=123   ", false},
		{"variableNumber >= 123.5", false},
		{"variableNumber >= 123", true},
		{"variableNumber < 123", false},
		{"variableNumber < 123.5", true},
		{"2 == 2.0", true},
		{"variableList.length > 2", true},
		// objects
		{`variableObject == buildDummyObject("hello")`, true},
		{`variableObject == buildDummyObject("hello2")`, false},
		{`variableObject != buildDummyObject("hello")`, false},
		{`variableObject != buildDummyObject("hello2")`, true},
		{"variableObject == variableObject2", true},
		{"variableObject2 == variableObject", true},
		// functions on both sides
		{"upperCase(variableString) == upperCase(variableString)", true},
		// null
		{"variableString == null", false},
		{"variableString != null", true},
		{"variableNull.field1 == null", true},
		{"null == null", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Resolve(tt.expr)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.expr, err)
			}

			if b, ok := got.AsBool(); !ok || b != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestResolve_ComparisonOperandError_Propagates(t *testing.T) {
	_, err := newTestResolver().Resolve("missing == 1")
	if err == nil {
		t.Fatal("expected error")
	}

	var e *Error
	if !errors.As(err, &e) || e.Message() != "Unresolved expression missing" {
		t.Errorf("expected operand error to propagate, got %v", err)
	}
}

func TestResolve_ScopeKeyShadowsSyntax(t *testing.T) {
	r := NewResolver(NewScope(map[string]Value{"a.b": String("literal key")}), nil)

	got, err := r.ResolveText("a.b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "literal key" {
		t.Errorf("expected direct scope lookup, got %q", got)
	}
}

func BenchmarkResolve_Chain(b *testing.B) {
	r := newTestResolver()

	for b.Loop() {
		_, _ = r.Resolve(`upperCase(variableNested[1].b[2]) == "Y"`)
	}
}
