package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

func expr(op string, l, r term.Expr) term.Expr {
	return term.BinaryExpr{Op: op, Left: l, Right: r}
}

func num(v float64) term.Expr { return term.NumberLeaf{Value: v} }

func TestArithmeticOperatorPrecedenceIsCallerBuilt(t *testing.T) {
	// 2 + 3 * 4 must arrive here already shaped as +(2, *(3,4)).
	e := expr("+", num(2), expr("*", num(3), num(4)))
	v, err := Arithmetic(e, subst.Empty())
	require.NoError(t, err)
	assert.Equal(t, float64(14), v)
}

func TestArithmeticAllFourOperators(t *testing.T) {
	cases := []struct {
		op   string
		want float64
	}{
		{"+", 7}, {"-", 3}, {"*", 10}, {"/", 2.5},
	}
	for _, c := range cases {
		v, err := Arithmetic(expr(c.op, num(5), num(2)), subst.Empty())
		require.NoError(t, err)
		assert.Equal(t, c.want, v)
	}
}

func TestArithmeticResolvesVariableLeaf(t *testing.T) {
	s := subst.Empty().Bind("X", term.NewNumber(10))
	v, err := Arithmetic(term.VarLeaf{Name: "X"}, s)
	require.NoError(t, err)
	assert.Equal(t, float64(10), v)
}

func TestArithmeticUnboundVariableIsTypeError(t *testing.T) {
	_, err := Arithmetic(term.VarLeaf{Name: "X"}, subst.Empty())
	require.Error(t, err)
	var mismatch *ErrTypeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestLogicOperators(t *testing.T) {
	cases := []struct {
		op   string
		l, r float64
		want bool
	}{
		{"==", 3, 3, true}, {"==", 3, 4, false},
		{"=/", 3, 4, true}, {"=/", 3, 3, false},
		{"=<", 3, 3, true}, {"=<", 4, 3, false},
		{"<", 2, 3, true}, {"<", 3, 3, false},
		{">=", 3, 3, true}, {">=", 2, 3, false},
		{">", 4, 3, true}, {">", 3, 3, false},
	}
	for _, c := range cases {
		got, err := Logic(expr(c.op, num(c.l), num(c.r)), subst.Empty())
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%v %s %v", c.l, c.op, c.r)
	}
}

func TestLogicUnknownOperatorErrors(t *testing.T) {
	_, err := Logic(expr("<>", num(1), num(2)), subst.Empty())
	require.Error(t, err)
	var unknown *ErrUnknownOperator
	assert.ErrorAs(t, err, &unknown)
}
