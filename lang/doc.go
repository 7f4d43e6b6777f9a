// Package lang implements the expression language embedded in templates.
//
// An expression is resolved against a [Scope] of named [Value]s and a set of
// unary [Func]s by a [Resolver]. The language has no operators beyond a
// single comparison and no assignment:
//
//	name                 // variable
//	42  -1  12.5         // integer and float literals
//	true  false  null    // boolean and null literals
//	"text"               // string literal, no escapes
//	user.name            // field of a map or object
//	items[1]             // first element of a list
//	user["name"]         // field named by a string
//	items.length         // element count of a list, map or string
//	upperCase(name)      // function call with one argument
//	count >= 10          // comparison: <= >= == != < >
//
// Field and index segments chain left to right, so a.b[1].c resolves a, then
// its field b, then the first element of that, then its field c.
//
// # Values
//
// Host values enter a scope through [ValueOf], which converts Go natives, or
// as an [Object], which exposes named fields through an explicit lookup
// method instead of reflection.
//
// # Errors
//
// Every failure is an [*Error] matching [ErrInvalidExpression] with
// [errors.Is]. The kind sentinels, such as [ErrUnknownProperty], classify it
// further. [Error.Message] returns the failure at the level it was reported,
// and the wrapped cause explains it:
//
//	Unresolved expression upperCase(missing): Unresolved expression missing
package lang
