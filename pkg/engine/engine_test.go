package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxevg/prolog/internal/config"
	"github.com/maxevg/prolog/pkg/store"
	"github.com/maxevg/prolog/pkg/term"
)

func drain(t *testing.T, ch <-chan Solution) []Solution {
	t.Helper()
	var sols []Solution
	for s := range ch {
		sols = append(sols, s)
		if len(sols) > 1000 {
			t.Fatal("drain: too many solutions, suspected infinite backtracking")
		}
	}
	return sols
}

func bindingString(b []Binding) map[string]string {
	out := map[string]string{}
	for _, bind := range b {
		out[bind.Name] = bind.Value.String()
	}
	return out
}

// Scenario 1 (spec §8): facts only, multiple solutions in clause order.
func TestScenarioFactsOnly(t *testing.T) {
	db := store.New()
	require.NoError(t, db.Append(
		term.NewFact(term.NewCompound("likes", term.Atom("a"), term.Atom("b"))),
		term.NewFact(term.NewCompound("likes", term.Atom("b"), term.Atom("c"))),
	))
	e := New(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	query := term.NewCompound("likes", term.NewVariable("X"), term.NewVariable("Y"))
	sols := drain(t, e.Solve(ctx, query))

	require.Len(t, sols, 2)
	assert.Equal(t, map[string]string{"X": "a", "Y": "b"}, bindingString(sols[0].Bindings()))
	assert.Equal(t, map[string]string{"X": "b", "Y": "c"}, bindingString(sols[1].Bindings()))
}

// Scenario 2: recursion over a list.
func TestScenarioListLength(t *testing.T) {
	db := store.New()
	// len([], 0).
	require.NoError(t, db.Append(term.NewFact(term.NewCompound("len", term.NilAtom(), term.NewNumber(0)))))
	// len([_|T], N) :- len(T, M), N is M+1.
	head := term.NewCompound("len", term.NewDot(term.NewVariable("_"), term.NewVariable("T")), term.NewVariable("N"))
	body := term.NewConjunction(
		term.NewCompound("len", term.NewVariable("T"), term.NewVariable("M")),
		&term.Arithmetic{VarName: "N", Expr: term.BinaryExpr{Op: "+", Left: term.VarLeaf{Name: "M"}, Right: term.NumberLeaf{Value: 1}}},
	)
	require.NoError(t, db.Append(term.NewRule(head, body)))

	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	list := term.List(term.Atom("a"), term.Atom("b"), term.Atom("c"))
	query := term.NewCompound("len", list, term.NewVariable("N"))
	sols := drain(t, e.Solve(ctx, query))

	require.Len(t, sols, 1)
	assert.Equal(t, map[string]string{"N": "3"}, bindingString(sols[0].Bindings()))
}

// Scenario 3: cut correctness — max/3 must never try its second clause
// once the first commits.
func maxDatabase(t *testing.T) *store.Database {
	db := store.New()
	// max(X,Y,X) :- X >= Y, !.
	head1 := term.NewCompound("max", term.NewVariable("X"), term.NewVariable("Y"), term.NewVariable("X"))
	body1 := term.NewConjunction(
		&term.Logic{Expr: term.BinaryExpr{Op: ">=", Left: term.VarLeaf{Name: "X"}, Right: term.VarLeaf{Name: "Y"}}},
		term.Atom("!"),
	)
	// max(_,Y,Y).
	head2 := term.NewCompound("max", term.NewVariable("_"), term.NewVariable("Y"), term.NewVariable("Y"))
	require.NoError(t, db.Append(term.NewRule(head1, body1), term.NewFact(head2)))
	return db
}

func TestScenarioCutMax(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := maxDatabase(t)
	e := New(db)
	query := term.NewCompound("max", term.NewNumber(3), term.NewNumber(5), term.NewVariable("Z"))
	sols := drain(t, e.Solve(ctx, query))
	require.Len(t, sols, 1)
	assert.Equal(t, map[string]string{"Z": "5"}, bindingString(sols[0].Bindings()))

	db2 := maxDatabase(t)
	e2 := New(db2)
	query2 := term.NewCompound("max", term.NewNumber(7), term.NewNumber(2), term.NewVariable("Z"))
	sols2 := drain(t, e2.Solve(ctx, query2))
	require.Len(t, sols2, 1, "cut must prevent the second max/3 clause from ever being tried")
	assert.Equal(t, map[string]string{"Z": "7"}, bindingString(sols2[0].Bindings()))
}

// Scenario 4: arithmetic.
func TestScenarioArithmetic(t *testing.T) {
	db := store.New()
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expr := term.BinaryExpr{Op: "+", Left: term.NumberLeaf{Value: 2}, Right: term.BinaryExpr{Op: "*", Left: term.NumberLeaf{Value: 3}, Right: term.NumberLeaf{Value: 4}}}
	query := &term.Arithmetic{VarName: "X", Expr: expr}
	sols := drain(t, e.Solve(ctx, query))
	require.Len(t, sols, 1)
	assert.Equal(t, map[string]string{"X": "14"}, bindingString(sols[0].Bindings()))
}

// Scenario 5: side effects via write/nl.
func TestScenarioGreetSideEffects(t *testing.T) {
	db := store.New()
	body := term.NewConjunction(term.NewCompound("write", term.Atom("hello")), term.Atom("nl"))
	require.NoError(t, db.Append(term.NewRule(term.Atom("greet"), body)))

	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sols := drain(t, e.Solve(ctx, term.Atom("greet")))
	require.Len(t, sols, 1)
	assert.Equal(t, "hello\n", db.StreamRead())
}

// Scenario 6: dynamic database, asserts visible within the same proof.
func TestScenarioDynamicAssert(t *testing.T) {
	db := store.New()
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	body := term.NewConjunction(
		term.NewCompound("assertz", term.NewCompound("f", term.NewNumber(1))),
		term.NewCompound("assertz", term.NewCompound("f", term.NewNumber(2))),
		term.NewCompound("f", term.NewVariable("X")),
	)
	query := term.NewConjunction(body.Goals...)
	sols := drain(t, e.Solve(ctx, query))

	require.Len(t, sols, 2)
	assert.Equal(t, map[string]string{"X": "1"}, bindingString(sols[0].Bindings()))
	assert.Equal(t, map[string]string{"X": "2"}, bindingString(sols[1].Bindings()))
}

func TestFailBuiltinProducesNoSolutions(t *testing.T) {
	db := store.New()
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sols := drain(t, e.Solve(ctx, term.Atom("fail")))
	assert.Empty(t, sols)
}

func TestRetractRemovesFirstMatchAndIsVisibleMidProof(t *testing.T) {
	db := store.New()
	require.NoError(t, db.Append(
		term.NewFact(term.NewCompound("f", term.NewNumber(1))),
		term.NewFact(term.NewCompound("f", term.NewNumber(2))),
	))
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	query := term.NewConjunction(
		term.NewCompound("retract", term.NewCompound("f", term.NewNumber(1))),
		term.NewCompound("f", term.NewVariable("X")),
	)
	sols := drain(t, e.Solve(ctx, query))
	require.Len(t, sols, 1)
	assert.Equal(t, map[string]string{"X": "2"}, bindingString(sols[0].Bindings()))
}

func TestArithmeticAlreadyBoundMatchingSucceedsWithNoNewBinding(t *testing.T) {
	db := store.New()
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	query := term.NewConjunction(
		&term.Arithmetic{VarName: "X", Expr: term.NumberLeaf{Value: 4}},
		&term.Arithmetic{VarName: "X", Expr: term.BinaryExpr{Op: "+", Left: term.VarLeaf{Name: "X"}, Right: term.NumberLeaf{Value: 0}}},
	)
	sols := drain(t, e.Solve(ctx, query))
	require.Len(t, sols, 1)
	assert.Equal(t, map[string]string{"X": "4"}, bindingString(sols[0].Bindings()))
}

func TestArithmeticAlreadyBoundMismatchFails(t *testing.T) {
	db := store.New()
	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	query := term.NewConjunction(
		&term.Arithmetic{VarName: "X", Expr: term.NumberLeaf{Value: 4}},
		&term.Arithmetic{VarName: "X", Expr: term.NumberLeaf{Value: 5}},
	)
	sols := drain(t, e.Solve(ctx, query))
	assert.Empty(t, sols)
}

func TestRenamingIndependenceAcrossRecursiveCalls(t *testing.T) {
	db := store.New()
	// count(0).
	// count(N) :- N > 0, M is N - 1, count(M).
	require.NoError(t, db.Append(term.NewFact(term.NewCompound("count", term.NewNumber(0)))))
	body := term.NewConjunction(
		&term.Logic{Expr: term.BinaryExpr{Op: ">", Left: term.VarLeaf{Name: "N"}, Right: term.NumberLeaf{Value: 0}}},
		&term.Arithmetic{VarName: "M", Expr: term.BinaryExpr{Op: "-", Left: term.VarLeaf{Name: "N"}, Right: term.NumberLeaf{Value: 1}}},
		term.NewCompound("count", term.NewVariable("M")),
	)
	require.NoError(t, db.Append(term.NewRule(term.NewCompound("count", term.NewVariable("N")), body)))

	e := New(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sols := drain(t, e.Solve(ctx, term.NewCompound("count", term.NewNumber(3))))
	require.Len(t, sols, 1, "each recursive activation must get fresh variable identities")
}

func TestMaxSolutionsCapsOutputStream(t *testing.T) {
	db := store.New()
	require.NoError(t, db.Append(
		term.NewFact(term.NewCompound("color", term.Atom("red"))),
		term.NewFact(term.NewCompound("color", term.Atom("green"))),
		term.NewFact(term.NewCompound("color", term.Atom("blue"))),
	))
	e := New(db, WithConfig(config.New(config.WithMaxSolutions(2))))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sols := drain(t, e.Solve(ctx, term.NewCompound("color", term.NewVariable("X"))))
	assert.Len(t, sols, 2)
}

func TestOccursCheckOptionRejectsCyclicUnification(t *testing.T) {
	r := &resolver{db: store.New(), cfg: config.New(config.WithOccursCheck())}
	x := term.NewVariable("X")
	_, ok := r.unify(x, term.NewCompound("f", x), nil)
	assert.False(t, ok, "occurs check must reject X = f(X)")

	rPlain := &resolver{db: store.New()}
	_, ok = rPlain.unify(x, term.NewCompound("f", x), nil)
	assert.True(t, ok, "without the option, the resolver matches the source engine's permissive default")
}
