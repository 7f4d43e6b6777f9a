package gen

import (
	"iter"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ardnew/tmplgen/lang"
)

// ParsedIf is a conditional region. Then and Else are nil when the clause is
// absent.
type ParsedIf struct {
	Condition string
	Then      *string
	Else      *string
}

// Eval resolves the condition and then the selected clause. A condition whose
// text form is "true" selects Then; any other result selects Else. An absent
// clause yields the empty string.
func (p *ParsedIf) Eval(r *lang.Resolver) (string, error) {
	cond, err := r.ResolveText(p.Condition)
	if err != nil {
		return "", err
	}

	branch := p.Else
	if cond == "true" {
		branch = p.Then
	}

	if branch == nil {
		return "", nil
	}

	return r.ResolveText(*branch)
}

var stepPattern = regexp.MustCompile(`\s+step\s+`)

// ParsedFor is a loop region with resolved bounds. The progression from Start
// to End is inclusive; the sign of Step selects its direction.
type ParsedFor struct {
	Index string
	Start int64
	End   int64
	Step  int64
	Body  string
}

// ParseFor parses the loop header spec of the region text, which is
// "[index =] start..end [step n]", and resolves its bounds with r.
func ParseFor(text, spec, body string, r *lang.Resolver) (*ParsedFor, error) {
	invalid := lang.ErrInvalidFor.Errorf("Invalid for expression: %s", text).
		With(slog.String("expression", text))

	f := &ParsedFor{Step: 1, Body: body}

	parts := stepPattern.Split(strings.TrimSpace(spec), -1)
	if len(parts) > 2 {
		return nil, invalid
	}

	if len(parts) == 2 {
		step, err := bound(r, parts[1])
		if err != nil {
			return nil, invalid.Wrap(err)
		}

		f.Step = step
	}

	rng := parts[0]
	if assign := strings.Split(rng, "="); len(assign) > 1 {
		if len(assign) > 2 {
			return nil, invalid
		}

		f.Index = strings.TrimSpace(assign[0])
		if !lang.IsIdentifier(f.Index) {
			return nil, invalid
		}

		rng = assign[1]
	}

	ends := strings.Split(rng, "..")
	if len(ends) != 2 {
		return nil, invalid
	}

	var err error

	if f.Start, err = bound(r, ends[0]); err != nil {
		return nil, invalid.Wrap(err)
	}

	if f.End, err = bound(r, ends[1]); err != nil {
		return nil, invalid.Wrap(err)
	}

	if f.Step == 0 {
		return nil, invalid.Wrap(lang.ErrInvalidFor.Errorf("Step must not be zero"))
	}

	return f, nil
}

// Indices returns the progression of loop index values.
func (f *ParsedFor) Indices() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		stride := f.Step
		if stride < 0 {
			stride = -stride
		}

		if f.Step > 0 {
			for i := f.Start; i <= f.End; i += stride {
				if !yield(i) || i > math.MaxInt64-stride {
					return
				}
			}

			return
		}

		for i := f.Start; i >= f.End; i -= stride {
			if !yield(i) || i < math.MinInt64+stride {
				return
			}
		}
	}
}

// Scope returns the scope of one iteration.
func (f *ParsedFor) Scope(parent lang.Scope, i int64) lang.Scope {
	if f.Index == "" {
		return parent
	}

	return parent.With(f.Index, lang.Int(i))
}

// bound resolves expr and converts the result to an integer. Numbers are
// truncated and everything else is parsed from its text form.
func bound(r *lang.Resolver, expr string) (int64, error) {
	v, err := r.Resolve(strings.TrimSpace(expr))
	if err != nil {
		return 0, err
	}

	switch v.Kind() {
	case lang.KindInt:
		i, _ := v.AsInt()

		return i, nil

	case lang.KindFloat:
		f, _ := v.AsFloat()

		return int64(f), nil

	case lang.KindNull:
		return 0, lang.ErrInvalidFor.Errorf("Bound %s is null", expr)
	}

	i, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return 0, lang.ErrInvalidFor.Errorf("Bound %s is not an integer", expr).Wrap(err)
	}

	return i, nil
}
