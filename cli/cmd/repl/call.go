package repl

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/tmplgen/lang"
)

// templateFunc is bound by the generator while rendering, so it is not one
// of its registered functions.
const templateFunc = "template"

// previewWidth is the number of runes of a value shown in listings.
const previewWidth = 40

// call is a function call whose argument list encloses the cursor.
type call struct {
	name string
	arg  string // argument text up to the cursor
}

// callAt returns the innermost call in s whose opening parenthesis is before
// the byte offset cursor and still open at it.
func callAt(s string, cursor int) (call, bool) {
	depth := 0

	for i := cursor - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++

			continue

		case '(':
			if depth > 0 {
				depth--

				continue
			}
		default:
			continue
		}

		name := strings.TrimRightFunc(s[:i], unicode.IsSpace)
		j := strings.LastIndexFunc(name, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})

		if j >= 0 {
			_, size := utf8.DecodeRuneInString(name[j:])
			j += size
		} else {
			j = 0
		}

		if name[j:] == "" {
			return call{}, false
		}

		return call{name: name[j:], arg: strings.TrimSpace(s[i+1 : cursor])}, true
	}

	return call{}, false
}

// isFunc reports whether name can be called.
func (e env) isFunc(name string) bool {
	if name == templateFunc {
		return true
	}

	_, ok := e.gen.Lookup(name)

	return ok
}

// params returns the parameter name and result kind of the function name.
// Result kinds are found by calling the function with null.
func (e env) params(name string) (param, result string) {
	if name == templateFunc {
		return "path", lang.KindString.String()
	}

	fn, ok := e.gen.Lookup(name)
	if !ok {
		return "", ""
	}

	v, err := fn(lang.Null())
	if err != nil {
		return "value", "value"
	}

	return "value", v.Kind().String()
}

// signature returns the plain signature of name, such as
// "upperCase(value) string".
func (e env) signature(name string) string {
	param, result := e.params(name)

	return name + "(" + param + ") " + result
}

// hint renders the signature of the call under the cursor followed by its
// result for the argument typed so far.
func (e env) hint(ctx context.Context, c call) string {
	if !e.isFunc(c.name) {
		return ""
	}

	param, result := e.params(c.name)

	line := nameStyle.Render(c.name) + hintStyle.Render("(") +
		paramStyle.Render(param) + hintStyle.Render(") "+result)

	if out, ok := e.preview(ctx, c); ok {
		line += hintStyle.Render(" = " + out)
	}

	return line
}

// preview resolves c with its partial argument. Includes are never
// previewed.
func (e env) preview(ctx context.Context, c call) (string, bool) {
	if c.arg == "" || c.name == templateFunc {
		return "", false
	}

	v, err := e.gen.Resolve(ctx, e.scope, c.name+"("+c.arg+")")
	if err != nil {
		return "", false
	}

	return preview(v, previewWidth), true
}

// preview returns the kind and text form of v, truncated to width runes.
func preview(v lang.Value, width int) string {
	text := v.String()
	if utf8.RuneCountInString(text) > width {
		text = string([]rune(text)[:width]) + "..."
	}

	return v.Kind().String() + " " + text
}
