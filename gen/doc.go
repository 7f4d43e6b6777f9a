// Package gen renders templates.
//
// A template is text containing three kinds of region:
//
//	${expr}                               substitution
//	$if{cond} then {expr} else {expr}     conditional, either clause optional
//	$for([i =] a..b [step n]) {expr}      inclusive loop
//
// Every braced part is an expression of package [lang]; a region ends at the
// first closing brace, so regions do not nest. Conditionals are found first,
// then loops outside them, then substitutions outside both. The rendered text
// of a region is spliced in place and never scanned again.
//
// The function template(path) renders another template file with the current
// scope, including the loop index inside a loop body. Paths are looked up
// next to the including template, then along the search path.
//
// A [Generator] starts with the functions of [Builtins]. [Generator.Register]
// adds more or replaces them.
package gen
