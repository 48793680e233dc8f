// Package answer holds the single "solution to printable string" renderer
// SPEC_FULL.md §12 asks for, so cmd/prologcore prints a solution
// identically whether its query argument was a plain variable or a list
// pattern.
package answer

import (
	"fmt"
	"strings"

	"github.com/maxevg/prolog/pkg/engine"
)

// Format renders sol's bindings as "name = value, ..." pairs, or "true."
// for a query with no free variables — matching original_source's driver
// (spec §12): walk the query's own variables, skip "_", print each.
func Format(sol engine.Solution) string {
	bindings := sol.Bindings()
	if len(bindings) == 0 {
		return "true."
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Value.String())
	}
	return strings.Join(parts, ", ") + "."
}
