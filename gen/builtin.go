package gen

import (
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/word"
)

// Builtins returns a new registry holding the built-in functions.
//
// Every case function maps null to "" and applies to the text form of any
// other value. isEmpty reports whether its argument is null, an empty list,
// an empty map, or has an empty text form.
func Builtins() *lang.Registry {
	r := lang.NewRegistry()

	for name, fn := range map[string]func(string) string{
		"upperCase":        word.Upper,
		"label":            word.Label,
		"lowerCase":        word.Lower,
		"capitalizedLabel": word.CapitalizedLabel,
		"camelCase":        word.Camel,
		"kebabCase":        word.Kebab,
		"pascalCase":       word.Pascal,
		"snakeCase":        word.Snake,
		"dotCase":          word.Dot,
		"titleCase":        word.Title,
	} {
		r.Register(name, textFunc(fn))
	}

	r.Register("isEmpty", isEmpty)

	return r
}

func textFunc(fn func(string) string) lang.Func {
	return func(v lang.Value) (lang.Value, error) {
		if v.IsNull() {
			return lang.String(fn("")), nil
		}

		return lang.String(fn(v.String())), nil
	}
}

func isEmpty(v lang.Value) (lang.Value, error) {
	switch v.Kind() {
	case lang.KindNull:
		return lang.Bool(true), nil
	case lang.KindList, lang.KindMap:
		return lang.Bool(v.Len() == 0), nil
	}

	return lang.Bool(v.String() == ""), nil
}
