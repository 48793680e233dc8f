package engine

import (
	"context"

	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// solveConjunction implements spec §4.5 item 2 as a sequence of
// flat-mapped streams: solve goals[0], and for each of its answers solve
// the remainder of the conjunction under that answer's substitution;
// backtrack into goals[0] only once the remainder is fully exhausted.
//
// Cut propagation rides the same recursion: a CUT observed from either
// goals[0] or the remainder is forwarded to this call's own caller and
// this call stops immediately — it never asks goals[0] for another
// alternative once a cut has fired anywhere to its right, which is
// exactly "the conjunction must stop backtracking into goals to the left
// of the cut" (spec §4.5 item 5).
func (r *resolver) solveConjunction(ctx context.Context, goals []term.Term, sub *subst.Substitution) <-chan Answer {
	if len(goals) == 0 {
		return single(sub)
	}

	out := make(chan Answer)
	go func() {
		defer close(out)
		for ans := range r.solve(ctx, goals[0], sub) {
			if ans.Marker == MarkerCut {
				select {
				case out <- ans:
				case <-ctx.Done():
				}
				return
			}

			cutFromRest := false
			for restAns := range r.solveConjunction(ctx, goals[1:], ans.Subst) {
				select {
				case out <- restAns:
				case <-ctx.Done():
					return
				}
				if restAns.Marker == MarkerCut {
					cutFromRest = true
					break
				}
			}
			if cutFromRest {
				return
			}
		}
	}()
	return out
}
