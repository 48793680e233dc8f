package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomIsZeroArityCompound(t *testing.T) {
	a := Atom("foo")
	assert.Equal(t, 0, a.Arity())
	assert.Equal(t, "foo", a.String())
	assert.False(t, a.IsVar())
}

func TestCompoundString(t *testing.T) {
	c := NewCompound("likes", Atom("a"), Atom("b"))
	assert.Equal(t, "likes(a, b)", c.String())
}

func TestWildcardVariable(t *testing.T) {
	v := NewVariable("_")
	require.True(t, v.IsVar())
	assert.True(t, v.IsWildcard())

	named := NewVariable("X")
	assert.False(t, named.IsWildcard())
}

func TestListBuildsProperDotChain(t *testing.T) {
	l := List(Atom("a"), Atom("b"), Atom("c"))
	assert.Equal(t, "[a, b, c]", l.String())

	d, ok := l.(*Dot)
	require.True(t, ok)
	assert.Equal(t, "a", d.Head.String())
}

func TestNilAtom(t *testing.T) {
	assert.True(t, IsNil(NilAtom()))
	assert.False(t, IsNil(Atom("[]x")))
	assert.False(t, IsNil(Atom("foo")))
}

func TestBarFoldsIntoExplicitTailDotChain(t *testing.T) {
	// [a, b | T]
	list := NewDot(Atom("a"), NewDot(Atom("b"), NilAtom()))
	tail := NewVariable("T")
	bar := NewBar(list, tail)

	folded := bar.Fold()
	d, ok := folded.(*Dot)
	require.True(t, ok)
	assert.Equal(t, "a", d.Head.String())

	d2, ok := d.Tail.(*Dot)
	require.True(t, ok)
	assert.Equal(t, "b", d2.Head.String())
	assert.Same(t, Term(tail), d2.Tail)

	assert.Equal(t, "[a, b | T]", bar.String())
}

func TestBarWithNilTailFoldsToProperList(t *testing.T) {
	bar := NewBar(&Dot{Head: Atom("a"), Tail: NilAtom()}, NilAtom())
	assert.True(t, IsNil(bar.Fold().(*Dot).Tail))
}

func TestRuleStringFactVsClause(t *testing.T) {
	fact := NewFact(Atom("p"))
	assert.Equal(t, "p.", fact.String())

	rule := NewRule(Atom("p"), NewConjunction(Atom("q"), Atom("r")))
	assert.Equal(t, "p :- q, r.", rule.String())
}

func TestMarkersAreDistinctSingletons(t *testing.T) {
	assert.True(t, IsTrue(True))
	assert.True(t, IsFalse(False))
	assert.True(t, IsCut(Cut))
	assert.False(t, IsTrue(False))
	assert.NotEqual(t, True, False)
}
