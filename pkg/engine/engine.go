// Package engine implements the resolution engine of spec §4.5/§4.6: a
// depth-first SLD resolver over a store.Database, producing a lazy,
// ordered sequence of answer substitutions, plus the eleven built-in
// goals (fail, !, write/1, nl/0, tab/0, is/2, the six comparisons,
// asserta/1, assertz/1, retract/1).
//
// The "lazy answer stream" spec §9 asks for is realized with goroutines
// and unbuffered channels, one goroutine per active goal — the same
// generator idiom the teacher's pkg/minikanren core.go uses for its own
// Goal/Stream abstraction (Goal func(ctx, store) *Stream). A context
// cancellation propagated through every send/receive lets a consumer that
// stops pulling early reclaim every still-blocked producer goroutine.
package engine

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/maxevg/prolog/internal/config"
	"github.com/maxevg/prolog/pkg/store"
	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// Marker distinguishes an ordinary successful Answer from the CUT
// sentinel the resolver uses to drive backtracking (spec §4.5 item 5).
// Plain exhaustion — spec's FALSE marker — is represented the idiomatic
// Go way: the answer channel simply closes, rather than as a value on it.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerCut
)

// Answer is one item from the internal answer stream: either a successful
// substitution, or a CUT signal carrying no substitution.
type Answer struct {
	Subst  *subst.Substitution
	Marker Marker
}

// Engine ties a resolver to one database. It is not safe for concurrent
// queries against the same database (spec §5: "each top-level query must
// have exclusive access to the database for its duration"); serialize
// calls to Solve from a single goroutine, one query at a time.
type Engine struct {
	db  *store.Database
	log hclog.Logger
	cfg config.Config
}

// Option configures an Engine at construction time.
type Option func(*options)

type options struct {
	logger hclog.Logger
	cfg    config.Config
}

// WithLogger installs a structured logger; resolution emits Trace records
// for successful clause tries and cut commits, and Warn records
// for arithmetic/comparison type errors. The default is a null logger, so
// using the engine as a library stays silent unless a caller opts in.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConfig installs resolution tunables assembled via internal/config
// (occurs check, max substitution depth, max solutions). The default
// Config is the zero value: the source engine's own permissive behavior.
func WithConfig(c config.Config) Option {
	return func(o *options) { o.cfg = c }
}

// New builds an Engine over db.
func New(db *store.Database, opts ...Option) *Engine {
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{db: db, log: o.logger, cfg: o.cfg}
}

// Database returns the engine's underlying database, e.g. so a driver can
// read StreamRead() after each answer.
func (e *Engine) Database() *store.Database { return e.db }

// Solution is one answer to a Solve call: the query's own free variables,
// bound and fully substituted, in first-occurrence order, with the
// wildcard excluded — spec §4.6's query-projection contract.
type Solution struct {
	sub  *subst.Substitution
	vars []string
}

// Binding is one variable = value pair of a Solution.
type Binding struct {
	Name  string
	Value term.Term
}

// Bindings returns the solution's bindings in the query's own
// left-to-right variable order, skipping any query variable the answer
// leaves unbound and always skipping "_".
func (s Solution) Bindings() []Binding {
	out := make([]Binding, 0, len(s.vars))
	for _, name := range s.vars {
		if t, ok := s.sub.Lookup(name); ok {
			out = append(out, Binding{Name: name, Value: subst.Apply(s.sub, t)})
		}
	}
	return out
}

// Solve resolves goal against the engine's database and returns a lazy
// stream of solutions, in clause-declaration, left-to-right-conjunction
// order (spec §8's clause-order invariant). It resets the database's
// output buffer first, matching the REPL-level "reset_stream at each new
// top-level query" contract described in spec §4.4 — the driver reads
// accumulated write/nl/tab output via Database().StreamRead() between
// solutions.
//
// Solve never errors for an empty database: spec's Non-goal list excludes
// a global occurs check, but says nothing against solving a bare
// arithmetic/comparison goal with zero clauses loaded — original_source's
// driver does exactly that (§12 of SPEC_FULL.md), so resolution of `is`
// and comparison goals works the same whether or not any clauses exist.
func (e *Engine) Solve(ctx context.Context, goal term.Term) <-chan Solution {
	e.db.ResetStream()
	vars := collectVarNames(goal)
	r := &resolver{db: e.db, log: e.log, cfg: e.cfg}

	answers := r.solve(ctx, goal, subst.Empty())
	out := make(chan Solution)
	go func() {
		defer close(out)
		count := 0
		for ans := range answers {
			if ans.Marker == MarkerCut {
				// A top-level cut exhausts the search immediately; it is
				// the search terminating, not itself an answer.
				return
			}
			select {
			case out <- Solution{sub: ans.Subst, vars: vars}:
			case <-ctx.Done():
				return
			}
			count++
			if r.cfg.MaxSolutions > 0 && count >= r.cfg.MaxSolutions {
				return
			}
		}
	}()
	return out
}

// resolver carries the state threaded through one Solve call's recursive
// descent: the database clauses are tried against, the logger, and the
// resolution tunables from internal/config.
type resolver struct {
	db  *store.Database
	log hclog.Logger
	cfg config.Config
}

// unify picks the occurs-check-aware or plain unifier according to the
// resolver's configuration.
func (r *resolver) unify(a, b term.Term, base *subst.Substitution) (*subst.Substitution, bool) {
	if r.cfg.OccursCheck {
		return subst.UnifyWithOccursCheck(a, b, base)
	}
	return subst.Unify(a, b, base)
}

// solve dispatches on goal's concrete type — the resolution algorithm of
// spec §4.5, items 1-11.
func (r *resolver) solve(ctx context.Context, goal term.Term, sub *subst.Substitution) <-chan Answer {
	switch g := goal.(type) {
	case *term.Conjunction:
		return r.solveConjunction(ctx, g.Goals, sub)
	case *term.Arithmetic:
		return r.solveArithmetic(g, sub)
	case *term.Logic:
		return r.solveLogic(g, sub)
	case *term.Compound:
		return r.solveCompound(ctx, g, sub)
	default:
		if term.IsTrue(goal) {
			return single(sub)
		}
		// FALSE, CUT (as a bare goal rather than "!"), or any other
		// marker reaching here is not a solvable goal.
		return closed()
	}
}

func (r *resolver) solveCompound(ctx context.Context, g *term.Compound, sub *subst.Substitution) <-chan Answer {
	if bi, ok := builtins[builtinKey(g.Functor, len(g.Args))]; ok {
		return bi(ctx, r, g.Args, sub)
	}
	return r.solveUserPredicate(ctx, g, sub)
}

// solveUserPredicate implements spec §4.5 item 1: walk the live clause
// list in order, standardize each candidate apart, attempt to unify the
// goal with its head, and recurse into the body on success. A CUT
// emerging from a clause's body is absorbed here — the clause activation
// is the cut barrier (spec §4.5 item 5, §9) — so it stops trying further
// clauses of this predicate but does not itself propagate CUT to its own
// caller.
func (r *resolver) solveUserPredicate(ctx context.Context, goal *term.Compound, sub *subst.Substitution) <-chan Answer {
	out := make(chan Answer)
	go func() {
		defer close(out)
		for _, rule := range r.db.Rules() {
			id := r.db.NextCounter()
			freshHead, freshBody := standardizeApart(rule, id)

			unified, ok := r.unify(goal, freshHead, sub)
			if !ok {
				continue
			}
			r.log.Trace("clause try succeeded", "goal", goal.String(), "clause", rule.String())

			cutSeen := false
			for ans := range r.solve(ctx, freshBody, unified) {
				if ans.Marker == MarkerCut {
					cutSeen = true
					break
				}
				select {
				case out <- ans:
				case <-ctx.Done():
					return
				}
			}
			if cutSeen {
				r.log.Trace("cut committed clause", "goal", goal.String())
				return
			}
		}
	}()
	return out
}

// single returns a stream yielding exactly one successful answer.
func single(sub *subst.Substitution) <-chan Answer {
	ch := make(chan Answer, 1)
	ch <- Answer{Subst: sub}
	close(ch)
	return ch
}

// closed returns a stream with no answers at all (logical failure).
func closed() <-chan Answer {
	ch := make(chan Answer)
	close(ch)
	return ch
}

// cutStream returns a stream yielding one success, then the CUT sentinel,
// matching spec §4.5 item 5's "cut yields an empty substitution and then,
// on the next request, yields CUT."
func cutStream(sub *subst.Substitution) <-chan Answer {
	ch := make(chan Answer, 2)
	ch <- Answer{Subst: sub}
	ch <- Answer{Marker: MarkerCut}
	close(ch)
	return ch
}

// collectVarNames walks t depth-first and returns the non-wildcard
// variable names it contains, in first-occurrence order. It is used both
// to decide which bindings a Solution reports (spec §4.6) and, per
// SPEC_FULL.md §12, as the single uniform printer basis regardless of
// whether a query argument is a plain variable or a list pattern.
func collectVarNames(t term.Term) []string {
	seen := map[string]bool{}
	var names []string
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch v := t.(type) {
		case *term.Variable:
			if v.IsWildcard() || seen[v.Name] {
				return
			}
			seen[v.Name] = true
			names = append(names, v.Name)
		case *term.Compound:
			for _, a := range v.Args {
				walk(a)
			}
		case *term.Dot:
			walk(v.Head)
			walk(v.Tail)
		case *term.Bar:
			walk(v.Fold())
		case *term.Conjunction:
			for _, g := range v.Goals {
				walk(g)
			}
		case *term.Arithmetic:
			if v.VarName != "_" && !seen[v.VarName] {
				seen[v.VarName] = true
				names = append(names, v.VarName)
			}
			walkExpr(v.Expr, seen, &names)
		case *term.Logic:
			walkExpr(v.Expr, seen, &names)
		}
	}
	walk(t)
	return names
}

func walkExpr(e term.Expr, seen map[string]bool, names *[]string) {
	switch v := e.(type) {
	case term.VarLeaf:
		if v.Name != "_" && !seen[v.Name] {
			seen[v.Name] = true
			*names = append(*names, v.Name)
		}
	case term.BinaryExpr:
		walkExpr(v.Left, seen, names)
		walkExpr(v.Right, seen, names)
	}
}
