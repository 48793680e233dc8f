// Package eval implements the two expression visitors from spec §4.3:
// Arithmetic reduces +, -, *, / over numeric leaves; Logic reduces the
// comparison operators ==, =/, =<, <, >=, > to a boolean. Both share the
// same shape — a binary node evaluates its children and applies its
// operator, a leaf yields its number — dispatched with a type switch in
// place of original_source's Visitor classes
// (prolog/mathlogicinterpreter.py's MathInterpreter/LogicInterpreter).
package eval

import (
	"fmt"

	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// ErrTypeMismatch is returned when an expression leaf fails to resolve to
// a number — spec §7's "type error in arithmetic/comparison" case, e.g. a
// variable that is still unbound when its value is needed.
type ErrTypeMismatch struct {
	Leaf term.Expr
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("eval: operand %q did not resolve to a number", e.Leaf.String())
}

// ErrUnknownOperator is returned for an operator string outside the set
// spec §4.3 defines for the given visitor.
type ErrUnknownOperator struct {
	Op string
}

func (e *ErrUnknownOperator) Error() string {
	return fmt.Sprintf("eval: unknown operator %q", e.Op)
}

// Arithmetic evaluates e to a Number, resolving variable leaves through s.
func Arithmetic(e term.Expr, s *subst.Substitution) (float64, error) {
	switch n := e.(type) {
	case term.NumberLeaf:
		return n.Value, nil
	case term.VarLeaf:
		return leafValue(n, s)
	case term.BinaryExpr:
		left, err := Arithmetic(n.Left, s)
		if err != nil {
			return 0, err
		}
		right, err := Arithmetic(n.Right, s)
		if err != nil {
			return 0, err
		}
		return arithmeticOp(n.Op, left, right)
	default:
		return 0, &ErrTypeMismatch{Leaf: e}
	}
}

func arithmeticOp(op string, left, right float64) (float64, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		return left / right, nil
	default:
		return 0, &ErrUnknownOperator{Op: op}
	}
}

// Logic evaluates e, a comparison expression, resolving variable leaves
// through s, and reports whether it holds.
func Logic(e term.Expr, s *subst.Substitution) (bool, error) {
	bin, ok := e.(term.BinaryExpr)
	if !ok {
		return false, &ErrUnknownOperator{Op: e.String()}
	}
	left, err := Arithmetic(bin.Left, s)
	if err != nil {
		return false, err
	}
	right, err := Arithmetic(bin.Right, s)
	if err != nil {
		return false, err
	}
	switch bin.Op {
	case "==":
		return left == right, nil
	case "=/":
		return left != right, nil
	case "=<":
		return left <= right, nil
	case "<":
		return left < right, nil
	case ">=":
		return left >= right, nil
	case ">":
		return left > right, nil
	default:
		return false, &ErrUnknownOperator{Op: bin.Op}
	}
}

func leafValue(v term.VarLeaf, s *subst.Substitution) (float64, error) {
	resolved := s.Walk(term.NewVariable(v.Name))
	n, ok := resolved.(*term.Number)
	if !ok {
		return 0, &ErrTypeMismatch{Leaf: v}
	}
	return n.Value, nil
}
