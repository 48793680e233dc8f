package engine

import (
	"fmt"

	"github.com/maxevg/prolog/pkg/term"
)

// standardizeApart renames every non-wildcard variable in rule to a name
// unique to this activation id, so that a clause invoked recursively
// never collides with an earlier, still-live activation of itself (spec
// §4.4, §9). The wildcard "_" is left as-is: each of its occurrences
// already denotes an independent, always-discarded binding, renamed or
// not.
func standardizeApart(rule term.Rule, id int64) (head, body term.Term) {
	mapping := map[string]string{}
	return renameTerm(rule.Head, id, mapping), renameTerm(rule.Body, id, mapping)
}

func freshName(name string, id int64, mapping map[string]string) string {
	if name == "_" {
		return name
	}
	if fresh, ok := mapping[name]; ok {
		return fresh
	}
	fresh := fmt.Sprintf("%s#%d", name, id)
	mapping[name] = fresh
	return fresh
}

func renameTerm(t term.Term, id int64, mapping map[string]string) term.Term {
	switch v := t.(type) {
	case *term.Variable:
		return term.NewVariable(freshName(v.Name, id, mapping))
	case *term.Number:
		return v
	case *term.Compound:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, id, mapping)
		}
		return term.NewCompound(v.Functor, args...)
	case *term.Dot:
		return term.NewDot(renameTerm(v.Head, id, mapping), renameTerm(v.Tail, id, mapping))
	case *term.Bar:
		list := renameTerm(v.List, id, mapping).(*term.Dot)
		return term.NewBar(list, renameTerm(v.Tail, id, mapping))
	case *term.Conjunction:
		goals := make([]term.Term, len(v.Goals))
		for i, g := range v.Goals {
			goals[i] = renameTerm(g, id, mapping)
		}
		return term.NewConjunction(goals...)
	case *term.Arithmetic:
		return &term.Arithmetic{VarName: freshName(v.VarName, id, mapping), Expr: renameExpr(v.Expr, id, mapping)}
	case *term.Logic:
		return &term.Logic{Expr: renameExpr(v.Expr, id, mapping)}
	default:
		return v // True/False/Cut markers carry no variables
	}
}

func renameExpr(e term.Expr, id int64, mapping map[string]string) term.Expr {
	switch v := e.(type) {
	case term.VarLeaf:
		return term.VarLeaf{Name: freshName(v.Name, id, mapping)}
	case term.BinaryExpr:
		return term.BinaryExpr{Op: v.Op, Left: renameExpr(v.Left, id, mapping), Right: renameExpr(v.Right, id, mapping)}
	default:
		return e
	}
}
