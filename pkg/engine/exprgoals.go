package engine

import (
	"github.com/maxevg/prolog/pkg/eval"
	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// solveArithmetic implements spec §4.5 item 6: evaluate the right-hand
// side; if the target variable is unbound, bind it to the resulting
// number; if bound to an equal number, succeed with no new binding;
// otherwise fail.
func (r *resolver) solveArithmetic(g *term.Arithmetic, sub *subst.Substitution) <-chan Answer {
	val, err := eval.Arithmetic(g.Expr, sub)
	if err != nil {
		r.log.Warn("arithmetic type error", "expr", g.Expr.String(), "error", err)
		return closed()
	}

	current := sub.Walk(term.NewVariable(g.VarName))
	if v, ok := current.(*term.Variable); ok {
		return single(sub.Bind(v.Name, term.NewNumber(val)))
	}
	if n, ok := current.(*term.Number); ok && n.Value == val {
		return single(sub)
	}
	return closed()
}

// solveLogic implements spec §4.5 item 7: succeed with no new binding
// when the comparison holds, otherwise fail.
func (r *resolver) solveLogic(g *term.Logic, sub *subst.Substitution) <-chan Answer {
	holds, err := eval.Logic(g.Expr, sub)
	if err != nil {
		r.log.Warn("comparison type error", "expr", g.Expr.String(), "error", err)
		return closed()
	}
	if holds {
		return single(sub)
	}
	return closed()
}
