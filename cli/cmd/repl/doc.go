// Package repl implements an interactive session that resolves expressions
// and renders template text against a fixed scope of values.
//
// Input is read in one of two modes. In eval mode a line is an expression,
// or template text if it contains a region such as ${...}. In control mode a
// line is one of the session commands listed by help. Esc toggles between
// them, and each mode keeps its own unsubmitted line.
//
// Submitted lines are saved to a history file under the cache directory and
// recalled with the arrow keys.
package repl
