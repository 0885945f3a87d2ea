package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEvalSetWordBindsAndReturnsValue exercises the frame trampoline
// for the simplest possible call: an infix action fulfilling both its
// arguments from the feed, with its result bound to a set-word.
func TestEvalSetWordBindsAndReturnsValue(t *testing.T) {
	i := New(Options{})
	out, err := i.Eval("a: 1 + 2")
	require.NoError(t, err)
	require.Equal(t, HeartInteger, out.Heart)
	require.Equal(t, int64(3), out.AsInteger())

	bound, ok := i.rt.lib.Get(i.rt.symbols.Intern("a"))
	require.True(t, ok, "a should now be bound in lib")
	require.Equal(t, int64(3), bound.AsInteger())
}

// TestEvalNoLookaheadGroupsLeftToRight proves fulfillStep's tight fetch
// for an enfix action's own right-hand argument: "*" must not steal
// the literal 2 out from under "+" before "+" returns control.
func TestEvalNoLookaheadGroupsLeftToRight(t *testing.T) {
	i := New(Options{})
	out, err := i.Eval("1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, int64(9), out.AsInteger())
}

// TestEvalElseConsumesIfResult exercises else's DefersLookback wiring:
// else is itself enfix, attaching to if's own output rather than being
// fetched as an ordinary trailing value.
func TestEvalElseConsumesIfResult(t *testing.T) {
	i := New(Options{})

	out, err := i.Eval("if true [10] else [20]")
	require.NoError(t, err)
	require.Equal(t, int64(10), out.AsInteger())

	out, err = i.Eval("if false [10] else [20]")
	require.NoError(t, err)
	require.Equal(t, int64(20), out.AsInteger())
}

// TestEvalRefinementReordering drives a user-defined function through
// the real frame trampoline with its refinements invoked out of
// declaration order, covering both the pickup pass and the pickup
// ordering fix together: c's argument must come from the value right
// after a, and b's from the value after that, matching the order they
// were written at the callsite rather than the order function declared
// them in.
func TestEvalRefinementReordering(t *testing.T) {
	i := New(Options{})
	_, err := i.Eval(`foo: function [a /b [integer!] /c [integer!]] [if c [reduce [a b c]] else [reduce [a b]]]`)
	require.NoError(t, err)

	out, err := i.Eval("foo/c/b 10 20 30")
	require.NoError(t, err)
	require.Equal(t, HeartBlock, out.Heart)
	require.Equal(t, 3, out.Node1.Len())
	require.Equal(t, int64(10), out.Node1.At(0).AsInteger(), "a")
	require.Equal(t, int64(30), out.Node1.At(1).AsInteger(), "b takes the second trailing value")
	require.Equal(t, int64(20), out.Node1.At(2).AsInteger(), "c takes the first trailing value")

	out, err = i.Eval("foo/b 10 20")
	require.NoError(t, err)
	require.Equal(t, HeartBlock, out.Heart)
	require.Equal(t, 2, out.Node1.Len(), "c was never supplied, so the else branch omits it entirely")
	require.Equal(t, int64(10), out.Node1.At(0).AsInteger(), "a")
	require.Equal(t, int64(20), out.Node1.At(1).AsInteger(), "b")
}

// TestEvalReturnUnwindsToItsOwnCall exercises the one throwing surface
// in this tree: return must unwind past an intervening if call to the
// function call that's actually running, not to whichever frame merely
// shares its calling word.
func TestEvalReturnUnwindsToItsOwnCall(t *testing.T) {
	i := New(Options{})
	_, err := i.Eval(`pick-branch: function [flag] [if flag [return 1] 2]`)
	require.NoError(t, err)

	out, err := i.Eval("pick-branch true")
	require.NoError(t, err)
	require.Equal(t, int64(1), out.AsInteger())

	out, err = i.Eval("pick-branch false")
	require.NoError(t, err)
	require.Equal(t, int64(2), out.AsInteger())
}

// TestEvalReduceWithGenericPredicate exercises reduce end to end through
// Eval, first over enfix sub-expressions and then with reduce/predicate
// using a generic-dispatch predicate rather than a native.
func TestEvalReduceWithGenericPredicate(t *testing.T) {
	i := New(Options{})

	out, err := i.Eval("reduce [1 + 2 10 * 10]")
	require.NoError(t, err)
	require.Equal(t, 2, out.Node1.Len())
	require.Equal(t, int64(3), out.Node1.At(0).AsInteger())
	require.Equal(t, int64(100), out.Node1.At(1).AsInteger())

	out, err = i.Eval("reduce/predicate [1 2 3] :negate")
	require.NoError(t, err)
	require.Equal(t, 3, out.Node1.Len())
	require.Equal(t, int64(-1), out.Node1.At(0).AsInteger())
	require.Equal(t, int64(-2), out.Node1.At(1).AsInteger())
	require.Equal(t, int64(-3), out.Node1.At(2).AsInteger())
}
