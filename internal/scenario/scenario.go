// Package scenario builds the small, self-contained programs used by
// cmd/prologcore's non-interactive driver — one scenario per literal
// end-to-end case in spec.md §8. There is no scanner/parser in scope (see SPEC_FULL.md's Non-goals),
// so every scenario's clauses and query are built directly with the
// pkg/term constructors rather than read from source text.
package scenario

import "github.com/maxevg/prolog/pkg/term"

// Scenario is a named, runnable program: the clauses to load and the goal
// to solve against them.
type Scenario struct {
	Name  string
	Desc  string
	Rules []term.Rule
	Goal  term.Term
}

// All lists the scenarios in the fixed order SPEC_FULL.md §13 enumerates
// them, so `prologcore facts` prints them in a stable order.
func All() []Scenario {
	return []Scenario{Family(), ListLen(), CutMax(), Arithmetic(), Greet(), Dynamic()}
}

// ByName looks up a scenario, returning ok=false for an unknown name.
func ByName(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Family is spec.md §8 scenario 1: facts only, multiple solutions.
func Family() Scenario {
	rules := []term.Rule{
		term.NewFact(term.NewCompound("parent", term.Atom("tom"), term.Atom("bob"))),
		term.NewFact(term.NewCompound("parent", term.Atom("tom"), term.Atom("liz"))),
		term.NewFact(term.NewCompound("parent", term.Atom("bob"), term.Atom("ann"))),
	}
	goal := term.NewCompound("parent", term.Atom("tom"), term.NewVariable("Child"))
	return Scenario{Name: "family", Desc: "facts only, multiple solutions in clause order", Rules: rules, Goal: goal}
}

// ListLen is spec.md §8 scenario 2: recursion over a list.
func ListLen() Scenario {
	lenFact := term.NewFact(term.NewCompound("len", term.NilAtom(), term.NewNumber(0)))
	head := term.NewCompound("len", term.NewDot(term.NewVariable("_"), term.NewVariable("T")), term.NewVariable("N"))
	body := term.NewConjunction(
		term.NewCompound("len", term.NewVariable("T"), term.NewVariable("M")),
		&term.Arithmetic{VarName: "N", Expr: term.BinaryExpr{Op: "+", Left: term.VarLeaf{Name: "M"}, Right: term.NumberLeaf{Value: 1}}},
	)
	rules := []term.Rule{lenFact, term.NewRule(head, body)}
	goal := term.NewCompound("len", term.List(term.Atom("a"), term.Atom("b"), term.Atom("c"), term.Atom("d")), term.NewVariable("N"))
	return Scenario{Name: "listlen", Desc: "length/2 defined by recursion over a list", Rules: rules, Goal: goal}
}

// CutMax is spec.md §8 scenario 3: cut correctness.
func CutMax() Scenario {
	head1 := term.NewCompound("max", term.NewVariable("X"), term.NewVariable("Y"), term.NewVariable("X"))
	body1 := term.NewConjunction(
		&term.Logic{Expr: term.BinaryExpr{Op: ">=", Left: term.VarLeaf{Name: "X"}, Right: term.VarLeaf{Name: "Y"}}},
		term.Atom("!"),
	)
	head2 := term.NewCompound("max", term.NewVariable("_"), term.NewVariable("Y"), term.NewVariable("Y"))
	rules := []term.Rule{term.NewRule(head1, body1), term.NewFact(head2)}
	goal := term.NewCompound("max", term.NewNumber(7), term.NewNumber(2), term.NewVariable("Z"))
	return Scenario{Name: "cutmax", Desc: "max/3 committing to its first clause via !", Rules: rules, Goal: goal}
}

// Arithmetic is spec.md §8 scenario 4: `is` evaluation.
func Arithmetic() Scenario {
	expr := term.BinaryExpr{
		Op:   "+",
		Left: term.NumberLeaf{Value: 2},
		Right: term.BinaryExpr{
			Op: "*", Left: term.NumberLeaf{Value: 3}, Right: term.NumberLeaf{Value: 4},
		},
	}
	goal := &term.Arithmetic{VarName: "X", Expr: expr}
	return Scenario{Name: "arithmetic", Desc: "X is 2 + 3 * 4, no clauses needed", Rules: nil, Goal: goal}
}

// Greet is spec.md §8 scenario 5: write/nl side effects.
func Greet() Scenario {
	body := term.NewConjunction(term.NewCompound("write", term.Atom("hello, world")), term.Atom("nl"))
	rules := []term.Rule{term.NewRule(term.Atom("greet"), body)}
	return Scenario{Name: "greet", Desc: "write/1 and nl/0 side effects", Rules: rules, Goal: term.Atom("greet")}
}

// Dynamic is spec.md §8 scenario 6: assertz visibility within one proof.
func Dynamic() Scenario {
	body := term.NewConjunction(
		term.NewCompound("assertz", term.NewCompound("seen", term.NewNumber(1))),
		term.NewCompound("assertz", term.NewCompound("seen", term.NewNumber(2))),
		term.NewCompound("seen", term.NewVariable("X")),
	)
	goal := term.NewConjunction(body.Goals...)
	return Scenario{Name: "dynamic", Desc: "assertz/1 visible to later goals in the same proof", Rules: nil, Goal: goal}
}
