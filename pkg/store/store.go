// Package store implements the rule database of spec §4.4: an ordered,
// mutable clause list with asserta/assertz/retract, the append-only output
// buffer the write/nl/tab built-ins append to, and the fresh-variable
// counter the resolver uses to standardize clauses apart on every
// invocation.
//
// The database is owned exclusively by one engine.Engine at a time (spec
// §5); it guards its own state with a mutex in the teacher's style so that
// a caller who does introduce concurrency gets a safe, if serialized,
// Database rather than silent corruption.
package store

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/maxevg/prolog/pkg/subst"
	"github.com/maxevg/prolog/pkg/term"
)

// Database holds the live clause list plus accumulated side-effect output.
// Clause order is observable and semantic (spec §3): solvers must walk
// Rules() in the order stored here.
type Database struct {
	mu      sync.RWMutex
	rules   []term.Rule
	out     bytes.Buffer
	counter int64 // monotonically increasing fresh-variable/activation id
}

// New returns an empty database.
func New() *Database {
	return &Database{}
}

// Append extends the clause list — used for the initial load of a
// program. Validation failures for individual rules (a nil Head, for
// instance) are collected and returned together via go-multierror rather
// than aborting at the first bad clause, mirroring how a batch program
// load should report every error it finds in one pass.
func (d *Database) Append(rules ...term.Rule) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result *multierror.Error
	for i, r := range rules {
		if r.Head == nil {
			result = multierror.Append(result, &InvalidRuleError{Index: i})
			continue
		}
		d.rules = append(d.rules, r)
	}
	return result.ErrorOrNil()
}

// InvalidRuleError reports a malformed clause encountered during Append.
type InvalidRuleError struct {
	Index int
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("store: clause at index %d has a nil head", e.Index)
}

// Rules returns a snapshot of the current clause list. Resolution must
// take this snapshot once per clause-selection attempt so that an assert
// performed mid-proof becomes visible to the *next* lookup without
// invalidating a lookup already in progress.
func (d *Database) Rules() []term.Rule {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]term.Rule, len(d.rules))
	copy(out, d.rules)
	return out
}

// ResetStream clears the output buffer — spec §3: "reset_stream empties
// [out] at each new top-level query." The fresh-variable counter is left
// as it is, so activation ids stay unique across queries.
func (d *Database) ResetStream() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.Reset()
}

// AssertA prepends a clause (fact form: Body is term.True).
func (d *Database) AssertA(head term.Term) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = append([]term.Rule{term.NewFact(head)}, d.rules...)
}

// AssertZ appends a clause (fact form: Body is term.True).
func (d *Database) AssertZ(head term.Term) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = append(d.rules, term.NewFact(head))
}

// Retract removes the first clause whose head unifies with pattern,
// regardless of its body (spec §9: retracting a non-fact rule is defined
// only as "remove first clause whose head unifies"). It returns the
// unifier and true on success, or (nil, false) if nothing matched — a
// missing pattern is logical failure, not an error (spec §7).
func (d *Database) Retract(pattern term.Term) (*subst.Substitution, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.rules {
		if s, ok := subst.Unify(pattern, r.Head, subst.Empty()); ok {
			d.rules = append(d.rules[:i:i], d.rules[i+1:]...)
			return s, true
		}
	}
	return nil, false
}

// Write appends s to the output buffer.
func (d *Database) Write(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.WriteString(s)
}

// Nl appends a newline to the output buffer.
func (d *Database) Nl() { d.Write("\n") }

// Tab appends a tab to the output buffer.
func (d *Database) Tab() { d.Write("\t") }

// StreamRead returns the accumulated output and clears the buffer.
func (d *Database) StreamRead() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.out.String()
	d.out.Reset()
	return s
}

// NextCounter returns a fresh integer, unique within this database, used by
// package engine to standardize a clause's variables apart on every
// invocation (spec §4.4, §9: "each clause invocation must rewrite
// variables with unique identities").
func (d *Database) NextCounter() int64 {
	return atomic.AddInt64(&d.counter, 1)
}
