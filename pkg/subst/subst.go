// Package subst implements the unifier described in spec §4.1/§4.2: a
// persistent substitution from variable names to terms, the match
// (unification) operation, deep substitution, and composition.
//
// Unification and substitution are implemented here rather than as
// methods on term.Term so that term stays a small, import-free data
// package — the same separation the teacher's core.go draws between Term
// and Substitution.
package subst

import (
	"github.com/maxevg/prolog/pkg/term"
)

// Occurs-check failure, like any other unification failure, is reported
// through UnifyWithOccursCheck's ordinary bool return rather than as a Go
// error — it is logical failure, not an error condition (spec §7).

// Substitution is an immutable mapping from variable name to term. Every
// extending operation (Bind) returns a new Substitution holding its own
// copy of the bindings and leaves the old one untouched, so a choice point
// can hold a reference to a substitution and keep using it after a deeper
// branch extends a derived copy.
type Substitution struct {
	bindings map[string]term.Term
}

// Empty returns a substitution with no bindings.
func Empty() *Substitution {
	return &Substitution{bindings: map[string]term.Term{}}
}

// Size returns the number of bindings.
func (s *Substitution) Size() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Lookup returns the term directly bound to name, if any.
func (s *Substitution) Lookup(name string) (term.Term, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.bindings[name]
	return t, ok
}

// Bind returns a new Substitution extending s with name -> t. Binding the
// wildcard is a no-op (spec: "_ never appears as a key in any persisted
// substitution").
func (s *Substitution) Bind(name string, t term.Term) *Substitution {
	if name == "_" {
		return s
	}
	next := make(map[string]term.Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		next[k] = v
	}
	next[name] = t
	return &Substitution{bindings: next}
}

// Walk follows a chain of variable bindings until it reaches an unbound
// variable or a non-variable term.
func (s *Substitution) Walk(t term.Term) term.Term {
	for {
		v, ok := t.(*term.Variable)
		if !ok {
			return t
		}
		bound, ok := s.Lookup(v.Name)
		if !ok {
			return t
		}
		t = bound
	}
}

// Apply performs the deep "substitute" operation: it returns a new term
// with every variable replaced by Walk's resolution of it, recursively
// through args, list cells, and expression leaves.
func Apply(s *Substitution, t term.Term) term.Term {
	resolved := s.Walk(t)
	switch v := resolved.(type) {
	case *term.Variable:
		return v
	case *term.Number:
		return v
	case *term.Compound:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]term.Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Apply(s, a)
		}
		return term.NewCompound(v.Functor, args...)
	case *term.Dot:
		return term.NewDot(Apply(s, v.Head), Apply(s, v.Tail))
	case *term.Bar:
		return Apply(s, v.Fold())
	case *term.Conjunction:
		goals := make([]term.Term, len(v.Goals))
		for i, g := range v.Goals {
			goals[i] = Apply(s, g)
		}
		return term.NewConjunction(goals...)
	case *term.Arithmetic:
		return &term.Arithmetic{VarName: v.VarName, Expr: applyExpr(s, v.Expr)}
	case *term.Logic:
		return &term.Logic{Expr: applyExpr(s, v.Expr)}
	default:
		return resolved
	}
}

func applyExpr(s *Substitution, e term.Expr) term.Expr {
	switch v := e.(type) {
	case term.VarLeaf:
		resolved := s.Walk(term.NewVariable(v.Name))
		if n, ok := resolved.(*term.Number); ok {
			return term.NumberLeaf{Value: n.Value}
		}
		return v
	case term.BinaryExpr:
		return term.BinaryExpr{Op: v.Op, Left: applyExpr(s, v.Left), Right: applyExpr(s, v.Right)}
	default:
		return e
	}
}

// Unify computes the most general unifier of a and b, extending base.
// It returns (extended substitution, true) on success or (nil, false) on
// failure — unification failure is ordinary logical failure, not a Go
// error, per spec §7.
//
// The traversal is strict left-to-right through compound argument lists,
// because a later argument's match may depend on bindings an earlier
// argument's match produced (spec §4.2). Unify omits the occurs check, as
// the source engine does (spec §9); use UnifyWithOccursCheck where a
// caller has opted into it (internal/config's OccursCheck tunable).
func Unify(a, b term.Term, base *Substitution) (*Substitution, bool) {
	return unify(a, b, base, false)
}

// UnifyWithOccursCheck behaves as Unify, but refuses to bind a variable to
// a term that already contains it, failing (as ordinary logical failure)
// rather than building a cyclic substitution.
func UnifyWithOccursCheck(a, b term.Term, base *Substitution) (*Substitution, bool) {
	return unify(a, b, base, true)
}

func unify(a, b term.Term, base *Substitution, occursCheck bool) (*Substitution, bool) {
	if base == nil {
		base = Empty()
	}
	a = base.Walk(a)
	b = base.Walk(b)

	if av, ok := a.(*term.Variable); ok {
		return bindVar(av, b, base, occursCheck)
	}
	if bv, ok := b.(*term.Variable); ok {
		return bindVar(bv, a, base, occursCheck)
	}

	switch at := a.(type) {
	case *term.Number:
		bt, ok := b.(*term.Number)
		if !ok || at.Value != bt.Value {
			return nil, false
		}
		return base, true

	case *term.Compound:
		bt, ok := b.(*term.Compound)
		if !ok || at.Functor != bt.Functor || len(at.Args) != len(bt.Args) {
			return nil, false
		}
		cur := base
		for i := range at.Args {
			var success bool
			cur, success = unify(at.Args[i], bt.Args[i], cur, occursCheck)
			if !success {
				return nil, false
			}
		}
		return cur, true

	case *term.Dot:
		return unifyDot(at, normalizeList(b), base, occursCheck)

	case *term.Bar:
		return unify(at.Fold(), b, base, occursCheck)

	default:
		// Markers and expression-bearing goals are not unification
		// targets in this core; structural identity is the only
		// sensible fallback.
		if a == b {
			return base, true
		}
		return nil, false
	}
}

// normalizeList folds a Bar into its equivalent Dot/tail form so Dot-vs-Bar
// unification goes through the same elementwise path as Dot-vs-Dot.
func normalizeList(t term.Term) term.Term {
	if b, ok := t.(*term.Bar); ok {
		return b.Fold()
	}
	return t
}

func unifyDot(a *term.Dot, b term.Term, base *Substitution, occursCheck bool) (*Substitution, bool) {
	if bv, ok := b.(*term.Variable); ok {
		return bindVar(bv, a, base, occursCheck)
	}
	bd, ok := b.(*term.Dot)
	if !ok {
		return nil, false
	}
	cur, ok := unify(a.Head, bd.Head, base, occursCheck)
	if !ok {
		return nil, false
	}
	return unify(a.Tail, bd.Tail, cur, occursCheck)
}

func bindVar(v *term.Variable, t term.Term, base *Substitution, occursCheck bool) (*Substitution, bool) {
	if v.IsWildcard() {
		return base, true
	}
	// Binding a variable to itself is a no-op, not a new binding.
	if ov, ok := t.(*term.Variable); ok && ov.Name == v.Name {
		return base, true
	}
	if occursCheck && occursIn(base, v.Name, t) {
		return nil, false
	}
	return base.Bind(v.Name, t), true
}

// occursIn reports whether name appears, after resolving base's existing
// bindings, anywhere inside t — the check Unify skips by default and
// UnifyWithOccursCheck applies before every new binding.
func occursIn(base *Substitution, name string, t term.Term) bool {
	t = base.Walk(t)
	switch v := t.(type) {
	case *term.Variable:
		return v.Name == name
	case *term.Compound:
		for _, a := range v.Args {
			if occursIn(base, name, a) {
				return true
			}
		}
		return false
	case *term.Dot:
		return occursIn(base, name, v.Head) || occursIn(base, name, v.Tail)
	case *term.Bar:
		return occursIn(base, name, v.Fold())
	default:
		return false
	}
}

// Merge composes s2 on top of s1: every binding in s1 has s2 applied to
// its image, then s2's own bindings are added. A key bound in both to
// terms that fail to unify is a composition failure.
func Merge(s1, s2 *Substitution) (*Substitution, bool) {
	result := &Substitution{bindings: make(map[string]term.Term, s1.Size()+s2.Size())}
	if s1 != nil {
		for name, t := range s1.bindings {
			result.bindings[name] = Apply(s2, t)
		}
	}
	for name, t := range s2.bindings {
		if existing, ok := result.Lookup(name); ok {
			merged, ok := Unify(existing, t, result)
			if !ok {
				return nil, false
			}
			result = merged
			continue
		}
		result = result.Bind(name, t)
	}
	return result, true
}

// Project returns a new Substitution containing only the bindings whose
// names appear in vars, skipping the wildcard — the final step of spec
// §4.6's query-projection convention, used when a driver wants to display
// only a query's own variables.
func Project(s *Substitution, vars []string) *Substitution {
	out := Empty()
	for _, name := range vars {
		if name == "_" {
			continue
		}
		if t, ok := s.Lookup(name); ok {
			out = out.Bind(name, Apply(s, t))
		}
	}
	return out
}

// Names returns the bound variable names in s, in map-iteration order.
// Callers that need a stable order should sort the result themselves.
func (s *Substitution) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		names = append(names, k)
	}
	return names
}
