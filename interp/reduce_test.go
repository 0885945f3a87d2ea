package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceEvaluatesEachElement(t *testing.T) {
	i := New(Options{})
	out, err := i.Eval("reduce [1 + 2 3 * 4]")
	require.NoError(t, err)
	require.Equal(t, HeartBlock, out.Heart)
	require.Equal(t, 2, out.Node1.Len())
	require.Equal(t, int64(3), out.Node1.At(0).AsInteger())
	require.Equal(t, int64(12), out.Node1.At(1).AsInteger())
}

func TestReduceWithPredicateAppliesPredicateToEachValue(t *testing.T) {
	i := New(Options{})
	out, err := i.Eval("reduce/predicate [[1] [2]] :lock")
	require.NoError(t, err)
	require.Equal(t, HeartBlock, out.Heart)
	require.Equal(t, 2, out.Node1.Len())
	for idx := 0; idx < 2; idx++ {
		elem := out.Node1.At(idx)
		require.NotZero(t, elem.Node1.Flags&StubAutoLocked, "predicate's result (the locked series) should be what reduce collects")
	}
}

func TestReduceRejectsNonBlockArgument(t *testing.T) {
	i := New(Options{})
	_, err := i.Eval("reduce 5")
	require.Error(t, err)
	fail, ok := err.(*Failure)
	require.True(t, ok)
	require.Equal(t, ErrBadCast, fail.ID)
}

func TestReduceDirectAPISkipsVoidAndRaisesOnNull(t *testing.T) {
	i := New(Options{})
	root := &Frame{Feed: &Feed{Specifier: &Specifier{Overlay: i.rt.lib}}}

	block := newTestBlock(i, NewInteger(1), NewVoid(), NewInteger(2))
	out, fail := Reduce(i, root, &block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Node1.Len() != 2 {
		t.Errorf("expected 2 reduced elements, got %d", out.Node1.Len())
	}

	nullBlock := newTestBlock(i, NewNullIsotope())
	if _, fail := Reduce(i, root, &nullBlock, nil); fail == nil || fail.ID != ErrNeedNonNull {
		t.Error("expected reduce of a null-producing element to raise need-non-null")
	}
}
