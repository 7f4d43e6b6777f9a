package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The helpers in this file recognize the syntactic shapes of an expression.
// Byte offsets returned are always on rune boundaries.

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }

// identEnd returns the offset just past the identifier starting at i, or i if
// there is none.
func identEnd(s string, i int) int {
	r, n := utf8.DecodeRuneInString(s[i:])
	if n == 0 || !isIdentStart(r) {
		return i
	}

	for i += n; i < len(s); i += n {
		if r, n = utf8.DecodeRuneInString(s[i:]); !isIdentPart(r) {
			break
		}
	}

	return i
}

// isIdent reports whether s is exactly one identifier.
func isIdent(s string) bool { return s != "" && identEnd(s, 0) == len(s) }

// closing returns the offset of the delimiter closing the one at s[i], which
// must be '(' or '['. Quoted text is skipped and nested pairs are balanced.
// It returns -1 if the delimiter is never closed.
func closing(s string, i int) int {
	var stack []byte

	for ; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return -1
			}

			i += end + 1

		case '(', '[':
			stack = append(stack, c)

		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pair(c) {
				return -1
			}

			if stack = stack[:len(stack)-1]; len(stack) == 0 {
				return i
			}
		}
	}

	return -1
}

func pair(c byte) byte {
	if c == ')' {
		return '('
	}

	return '['
}

// postfix describes the last segment of a postfix chain such as a.b[1].c.
type postfix struct {
	object  string // text of the chain without its last segment
	member  string // field name or bracket contents of the last segment
	bracket bool   // last segment is [member]
}

// splitPostfix reports whether expr is an identifier followed by one or more
// ".field" or "[index]" segments, and if so splits off the last segment.
// Whitespace is permitted only inside brackets.
func splitPostfix(expr string) (postfix, bool) {
	i := identEnd(expr, 0)
	if i == 0 {
		return postfix{}, false
	}

	var (
		last postfix
		segs int
	)

	for i < len(expr) {
		start := i

		switch expr[i] {
		case '.':
			end := identEnd(expr, i+1)
			if end == i+1 {
				return postfix{}, false
			}

			last = postfix{object: expr[:start], member: expr[i+1 : end]}
			i = end

		case '[':
			end := closing(expr, i)
			if end < 0 {
				return postfix{}, false
			}

			last = postfix{object: expr[:start], member: expr[i+1 : end], bracket: true}
			i = end + 1

		default:
			return postfix{}, false
		}

		segs++
	}

	return last, segs > 0
}

// splitCall reports whether expr is a call name(arg) where the parenthesis
// closing the one after name is the final character.
func splitCall(expr string) (name, arg string, ok bool) {
	i := identEnd(expr, 0)
	if i == 0 || i == len(expr) || expr[i] != '(' {
		return "", "", false
	}

	if closing(expr, i) != len(expr)-1 {
		return "", "", false
	}

	return expr[:i], expr[i+1 : len(expr)-1], true
}

// indexUnquoted returns the offset of the first occurrence of sub in s that
// is not inside a quoted string, or -1.
func indexUnquoted(s, sub string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return -1
			}

			i += end + 1

			continue
		}

		if strings.HasPrefix(s[i:], sub) {
			return i
		}
	}

	return -1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isIntLiteral reports whether s matches -?[0-9]+.
func isIntLiteral(s string) bool { return isDigits(strings.TrimPrefix(s, "-")) }

// isFloatLiteral reports whether s matches -?[0-9]+\.[0-9]+.
func isFloatLiteral(s string) bool {
	whole, frac, ok := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	return ok && isDigits(whole) && isDigits(frac)
}

// isQuoted reports whether s is a double-quoted string without inner quotes.
func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' &&
		!strings.Contains(s[1:len(s)-1], `"`)
}

// IsIdentifier reports whether s is a valid variable or function name.
func IsIdentifier(s string) bool { return isIdent(s) }
