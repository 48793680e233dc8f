package engine

import (
	"context"
	"fmt"

	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// builtinFunc is a built-in goal's implementation: given the call's
// already-unevaluated argument terms and the substitution in force, it
// returns the goal's answer stream. Built-ins that touch the database
// (write/nl/tab/assert*/retract) mutate it with immediate visibility to
// later clause lookups in the same proof, per spec §4.5's closing
// paragraph.
type builtinFunc func(ctx context.Context, r *resolver, args []term.Term, sub *subst.Substitution) <-chan Answer

func builtinKey(functor string, arity int) string {
	return fmt.Sprintf("%s/%d", functor, arity)
}

// builtins dispatches the eight built-in goals recognized by functor/arity
// (spec §6's abstract-syntax list, minus is/2 and the comparisons, which
// arrive as the dedicated term.Arithmetic/term.Logic nodes and are
// handled directly by resolver.solve).
var builtins = map[string]builtinFunc{
	builtinKey("fail", 0):    biFail,
	builtinKey("!", 0):       biCut,
	builtinKey("write", 1):   biWrite,
	builtinKey("nl", 0):      biNl,
	builtinKey("tab", 0):     biTab,
	builtinKey("asserta", 1): biAssertA,
	builtinKey("assertz", 1): biAssertZ,
	builtinKey("retract", 1): biRetract,
}

// biFail is the primitive that deliberately produces no solutions (spec
// §7: this is not an error).
func biFail(_ context.Context, _ *resolver, _ []term.Term, _ *subst.Substitution) <-chan Answer {
	return closed()
}

// biCut implements "!": succeed once, then surface the CUT sentinel on
// the next request (spec §4.5 item 5).
func biCut(_ context.Context, _ *resolver, _ []term.Term, sub *subst.Substitution) <-chan Answer {
	return cutStream(sub)
}

// biWrite appends T's printed form, fully substituted, to the database's
// output buffer (spec §4.5 item 8).
func biWrite(_ context.Context, r *resolver, args []term.Term, sub *subst.Substitution) <-chan Answer {
	r.db.Write(subst.Apply(sub, args[0]).String())
	return single(sub)
}

func biNl(_ context.Context, r *resolver, _ []term.Term, sub *subst.Substitution) <-chan Answer {
	r.db.Nl()
	return single(sub)
}

func biTab(_ context.Context, r *resolver, _ []term.Term, sub *subst.Substitution) <-chan Answer {
	r.db.Tab()
	return single(sub)
}

// biAssertA inserts T, fully substituted, as a fact at the front of the
// clause list.
func biAssertA(_ context.Context, r *resolver, args []term.Term, sub *subst.Substitution) <-chan Answer {
	r.db.AssertA(subst.Apply(sub, args[0]))
	return single(sub)
}

// biAssertZ inserts T, fully substituted, as a fact at the end of the
// clause list.
func biAssertZ(_ context.Context, r *resolver, args []term.Term, sub *subst.Substitution) <-chan Answer {
	r.db.AssertZ(subst.Apply(sub, args[0]))
	return single(sub)
}

// biRetract removes the first clause whose head unifies with T (spec §4.4,
// §9 — body is not consulted), yielding the unifier merged into the
// current substitution, or failing logically if nothing matched.
func biRetract(_ context.Context, r *resolver, args []term.Term, sub *subst.Substitution) <-chan Answer {
	pattern := subst.Apply(sub, args[0])
	unifier, ok := r.db.Retract(pattern)
	if !ok {
		return closed()
	}
	merged, ok := subst.Merge(sub, unifier)
	if !ok {
		return closed()
	}
	return single(merged)
}
