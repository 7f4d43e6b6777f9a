package lang

import (
	"cmp"
	"log/slog"
)

// Operator is a comparison operator.
type Operator string

// Operators in the order they are searched for in an expression, so that
// "<=" and ">=" are never split as "<" and ">".
const (
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
)

var operators = [...]Operator{
	OpLessEqual,
	OpGreaterEqual,
	OpEqual,
	OpNotEqual,
	OpLess,
	OpGreater,
}

// Compare applies op to left and right.
//
// Numbers of either kind compare as float64 and strings compare
// lexicographically. Any other pair is only comparable for equality, using
// [Value.Equal].
func Compare(op Operator, left, right Value) (bool, error) {
	if a, ok := left.number(); ok {
		if b, ok := right.number(); ok {
			return op.holds(cmp.Compare(a, b)), nil
		}
	}

	if a, ok := left.AsString(); ok {
		if b, ok := right.AsString(); ok {
			return op.holds(cmp.Compare(a, b)), nil
		}
	}

	switch op {
	case OpEqual:
		return left.Equal(right), nil
	case OpNotEqual:
		return !left.Equal(right), nil
	}

	return false, ErrUnsupportedComparison.Errorf("Unsupported comparison %s", op).
		With(
			slog.String("left", left.Kind().String()),
			slog.String("right", right.Kind().String()),
		)
}

// holds reports whether op is satisfied by the result c of a three-way
// comparison.
func (op Operator) holds(c int) bool {
	switch op {
	case OpLessEqual:
		return c <= 0
	case OpGreaterEqual:
		return c >= 0
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpLess:
		return c < 0
	case OpGreater:
		return c > 0
	default:
		return false
	}
}
