package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tmplgen/log"
)

// Resolver evaluates expressions against a [Scope] and a set of [Funcs].
// A Resolver holds no mutable state and may be used concurrently.
type Resolver struct {
	scope  Scope
	funcs  Funcs
	logger log.Logger
	ctx    context.Context
}

// NewResolver returns a resolver for scope and funcs. A nil funcs has no
// functions.
func NewResolver(scope Scope, funcs Funcs, opts ...Option) *Resolver {
	r := &Resolver{
		scope: scope,
		funcs: funcs,
		ctx:   context.Background(),
	}

	applyOptions(r, opts...)

	return r
}

// Scope returns the scope expressions are resolved against.
func (r *Resolver) Scope() Scope { return r.scope }

// ResolveText resolves expr and returns the text form of the result.
func (r *Resolver) ResolveText(expr string) (string, error) {
	v, err := r.Resolve(expr)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

// Resolve evaluates expr.
//
// The empty expression is the empty string, "null" is null, and a name bound
// in the scope is its value, even if the name would otherwise parse as
// something else. Beyond that the first matching rule wins, in this order:
// integer, float, boolean, field access (a.b), index access (a[i]), quoted
// string, function call (f(x)) and comparison (x op y).
func (r *Resolver) Resolve(expr string) (Value, error) {
	v, rule, err := r.resolve(expr)
	if r.logger.Enabled(r.ctx, log.LevelTrace) {
		attrs := []slog.Attr{
			slog.String("expression", expr),
			slog.String("rule", rule),
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		} else {
			attrs = append(attrs, slog.String("kind", v.Kind().String()))
		}

		r.logger.TraceContext(r.ctx, "resolve", attrs...)
	}

	return v, err
}

func (r *Resolver) resolve(expr string) (Value, string, error) {
	switch expr {
	case "":
		return String(""), "empty", nil
	case "null":
		return Null(), "null", nil
	}

	if v, ok := r.scope.Lookup(expr); ok {
		return v, "variable", nil
	}

	switch {
	case isIntLiteral(expr):
		i, err := strconv.ParseInt(expr, 10, 64)
		if err != nil {
			return Value{}, "int", unresolved(expr).Wrap(err)
		}

		return Int(i), "int", nil

	case isFloatLiteral(expr):
		f, err := strconv.ParseFloat(expr, 64)
		if err != nil {
			return Value{}, "float", unresolved(expr).Wrap(err)
		}

		return Float(f), "float", nil

	case expr == "true" || expr == "false":
		return Bool(expr == "true"), "bool", nil
	}

	if p, ok := splitPostfix(expr); ok {
		if p.bracket {
			v, err := r.index(expr, p)

			return v, "index", err
		}

		v, err := r.field(expr, p)

		return v, "field", err
	}

	if isQuoted(expr) {
		return String(expr[1 : len(expr)-1]), "string", nil
	}

	if name, arg, ok := splitCall(expr); ok {
		v, err := r.call(expr, name, arg)

		return v, "call", err
	}

	for _, op := range operators {
		i := indexUnquoted(expr, string(op))
		if i < 0 {
			continue
		}

		left := strings.TrimSpace(expr[:i])
		right := strings.TrimSpace(expr[i+len(op):])

		if left == "" || right == "" {
			continue
		}

		v, err := r.compare(expr, op, left, right)

		return v, "comparison", err
	}

	return Value{}, "none", unresolved(expr)
}

// field resolves obj.member.
func (r *Resolver) field(expr string, p postfix) (Value, error) {
	obj, err := r.Resolve(p.object)
	if err != nil {
		return Value{}, unresolved(expr).Wrap(err)
	}

	if obj.IsNull() {
		return Value{}, ErrNullField.
			Errorf("Expression %s is null. Could not resolve field %s", p.object, p.member).
			With(slog.String("expression", expr))
	}

	v, err := lookupField(obj, p.member)
	if err != nil {
		return Value{}, ErrUnknownProperty.
			Errorf("Unknown property %s in variable %s", p.member, p.object).
			Wrap(err)
	}

	return v, nil
}

// index resolves obj[member].
func (r *Resolver) index(expr string, p postfix) (Value, error) {
	obj, err := r.Resolve(p.object)
	if err != nil {
		return Value{}, unresolved(expr).Wrap(err)
	}

	if obj.IsNull() {
		return Value{}, ErrUnknownVariable.Errorf("Unknown variable %s", p.object).
			With(slog.String("expression", expr))
	}

	member := strings.TrimSpace(p.member)

	v, err := r.element(obj, member)
	if err != nil {
		return Value{}, ErrUnknownProperty.
			Errorf("Unknown property %s in variable %s", member, p.object).
			Wrap(err)
	}

	return v, nil
}

// element returns the element of obj selected by the index expression key.
// Lists are indexed from 1.
func (r *Resolver) element(obj Value, key string) (Value, error) {
	idx, err := r.Resolve(key)
	if err != nil {
		return Value{}, err
	}

	if list, ok := obj.AsList(); ok {
		if n, ok := idx.number(); ok {
			i := int64(n)
			if i < 1 || i > int64(len(list)) {
				return Value{}, ErrUnknownProperty.
					Errorf("Index %d out of range for list of size %d", i, len(list))
			}

			return list[i-1], nil
		}
	}

	if name, ok := idx.AsString(); ok {
		return lookupField(obj, name)
	}

	return Value{}, ErrUnknownProperty.Errorf("Unknown property %s", idx)
}

// lookupField returns the field name of obj.
func lookupField(obj Value, name string) (Value, error) {
	if strings.Contains(name, ".") {
		return Value{}, ErrUnknownProperty.Errorf("Unknown property %s", name)
	}

	isSize := name == "size" || name == "length"

	switch obj.Kind() {
	case KindMap:
		m, _ := obj.AsMap()
		if v, ok := m[name]; ok {
			return v, nil
		}

		if isSize {
			return Int(int64(len(m))), nil
		}

	case KindList, KindString:
		if isSize {
			return Int(int64(obj.Len())), nil
		}

	case KindObject:
		o, _ := obj.AsObject()
		if v, ok := o.Field(name); ok {
			return v, nil
		}
	}

	return Value{}, ErrUnknownProperty.Errorf("Unknown property %s", name)
}

// call resolves name(arg).
func (r *Resolver) call(expr, name, arg string) (Value, error) {
	var fn Func
	if r.funcs != nil {
		fn, _ = r.funcs.Lookup(name)
	}

	if fn == nil {
		return Value{}, ErrUnknownFunction.
			Errorf("Unknown function %s() in expression %s", name, expr).
			With(slog.String("function", name))
	}

	in, err := r.Resolve(strings.TrimSpace(arg))
	if err != nil {
		return Value{}, unresolved(expr).Wrap(err)
	}

	out, err := fn(in)
	if err != nil {
		return Value{}, unresolved(expr).Wrap(err).With(slog.String("function", name))
	}

	return out, nil
}

// compare resolves left op right.
func (r *Resolver) compare(expr string, op Operator, left, right string) (Value, error) {
	lv, err := r.Resolve(left)
	if err != nil {
		return Value{}, err
	}

	rv, err := r.Resolve(right)
	if err != nil {
		return Value{}, err
	}

	ok, err := Compare(op, lv, rv)
	if err != nil {
		return Value{}, ErrUnresolvedExpression.
			Errorf("Unresolved comparison expression %s", expr).
			Wrap(err)
	}

	return Bool(ok), nil
}
