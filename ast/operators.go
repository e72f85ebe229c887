package ast

import (
	"fmt"
	"math"
	"reflect"
)

// BinaryOp applies Operation to Left and Right.
type BinaryOp struct {
	readOnly
	Operation string
	Left      Expression
	Right     Expression
}

// NewBinaryOp returns a BinaryOp.
func NewBinaryOp(operation string, left, right Expression) *BinaryOp {
	return &BinaryOp{Operation: operation, Left: left, Right: right}
}

// IsBinaryOperator reports whether op is supported by BinaryOp.
func IsBinaryOperator(op string) bool {
	switch op {
	case "&&", "||", "+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">=", "^", "&":
		return true
	}
	return false
}

// Eval evaluates Left first. && and || return one of their operand values
// and skip Right when Left decides the result. Any operator outside the
// supported set panics with ErrInternalInvariant.
func (b *BinaryOp) Eval(scope any) (any, error) {
	left, err := b.Left.Eval(scope)
	if err != nil {
		return nil, err
	}
	switch b.Operation {
	case "&&":
		if !Truthy(left) {
			return left, nil
		}
		return b.Right.Eval(scope)
	case "||":
		if Truthy(left) {
			return left, nil
		}
		return b.Right.Eval(scope)
	}
	right, err := b.Right.Eval(scope)
	if err != nil {
		return nil, err
	}

	switch b.Operation {
	case "+":
		return add(left, right)
	case "-", "*", "/", "%":
		return arithmetic(b.Operation, left, right)
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "<", ">", "<=", ">=":
		return compare(b.Operation, left, right)
	case "^", "&":
		return bitwise(b.Operation, left, right)
	}
	panic(fmt.Errorf("%w: operator %q not handled", ErrInternalInvariant, b.Operation))
}

func (b *BinaryOp) Visit(v Visitor) any { return v.VisitBinaryOp(b) }

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func operandError(op string, left, right any) error {
	return fmt.Errorf("%w: %T %s %T", ErrInvalidOperand, left, op, right)
}

func add(left, right any) (any, error) {
	_, ls := left.(string)
	_, rs := right.(string)
	if ls || rs {
		return fmt.Sprint(left) + fmt.Sprint(right), nil
	}
	return arithmetic("+", left, right)
}

func arithmetic(op string, left, right any) (any, error) {
	if !isFloat(left) && !isFloat(right) {
		l, lok := toInt64(left)
		r, rok := toInt64(right)
		if lok && rok {
			if n, ok := intArithmetic(op, l, r); ok {
				return n, nil
			}
			if r == 0 {
				return nil, fmt.Errorf("%w: integer division by zero", ErrInvalidOperand)
			}
		}
	}

	l, lok := toFloat64(left)
	r, rok := toFloat64(right)
	if !lok || !rok {
		return nil, operandError(op, left, right)
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return l / r, nil
	}
	return nil, operandError(op, left, right)
}

// intArithmetic applies op to l and r. It reports false on a zero divisor or
// when the result overflows int64, in which case arithmetic uses float64.
func intArithmetic(op string, l, r int64) (int64, bool) {
	switch op {
	case "+":
		s := l + r
		return s, (l >= 0) != (r >= 0) || (s >= 0) == (l >= 0)
	case "-":
		d := l - r
		return d, (l >= 0) == (r >= 0) || (d >= 0) == (l >= 0)
	case "*":
		if l == 0 || r == 0 {
			return 0, true
		}
		p := l * r
		if p/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
			return 0, false
		}
		return p, true
	}
	if r == 0 {
		return 0, false
	}
	if op == "/" {
		if l == math.MinInt64 && r == -1 {
			return 0, false
		}
		return l / r, true
	}
	return l % r, true
}

func equal(left, right any) bool {
	if !isFloat(left) && !isFloat(right) {
		if c, ok := compareInts(left, right); ok {
			return c == 0
		}
	}
	if l, ok := toFloat64(left); ok {
		if r, ok := toFloat64(right); ok {
			return l == r
		}
	}
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if reflect.ValueOf(left).Comparable() && reflect.ValueOf(right).Comparable() {
		return left == right
	}
	return reflect.DeepEqual(left, right)
}

func compare(op string, left, right any) (bool, error) {
	var c int
	ls, lok := left.(string)
	rs, rok := right.(string)
	switch {
	case lok && rok:
		switch {
		case ls < rs:
			c = -1
		case ls > rs:
			c = 1
		}
	case !isFloat(left) && !isFloat(right):
		n, ok := compareInts(left, right)
		if !ok {
			return false, operandError(op, left, right)
		}
		c = n
	default:
		l, lok := toFloat64(left)
		r, rok := toFloat64(right)
		if !lok || !rok {
			return false, operandError(op, left, right)
		}
		switch op {
		case "<":
			return l < r, nil
		case ">":
			return l > r, nil
		case "<=":
			return l <= r, nil
		default:
			return l >= r, nil
		}
	}

	switch op {
	case "<":
		return c < 0, nil
	case ">":
		return c > 0, nil
	case "<=":
		return c <= 0, nil
	default:
		return c >= 0, nil
	}
}

func bitwise(op string, left, right any) (any, error) {
	l, lok := toInt64(left)
	r, rok := toInt64(right)
	if !lok || !rok {
		return nil, operandError(op, left, right)
	}
	if op == "^" {
		return l ^ r, nil
	}
	return l & r, nil
}
