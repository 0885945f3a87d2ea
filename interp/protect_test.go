package interp

import "testing"

func TestProtectRejectsAppendThenUnprotectAllows(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1))

	protected, fail := DispatchGeneric(i, VerbProtect, block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if _, fail := DispatchGeneric(i, VerbAppend, protected, []Cell{NewInteger(2)}); fail == nil {
		t.Fatal("expected append on a protected series to fail")
	} else if fail.ID != ErrSeriesProtected {
		t.Errorf("expected series-protected, got %s", fail.ID)
	}

	unprotected, fail := DispatchGeneric(i, VerbUnprotect, protected, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if _, fail := DispatchGeneric(i, VerbAppend, unprotected, []Cell{NewInteger(2)}); fail != nil {
		t.Errorf("expected append to succeed after unprotect, got %s", fail.ID)
	}
}

func TestLockRejectsUnprotect(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1))

	locked, fail := DispatchGeneric(i, VerbLock, block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if _, fail := DispatchGeneric(i, VerbAppend, locked, []Cell{NewInteger(2)}); fail == nil || fail.ID != ErrSeriesAutoLocked {
		t.Fatalf("expected a locked series to reject append as auto-locked, got %v", fail)
	}
	if _, fail := DispatchGeneric(i, VerbUnprotect, locked, nil); fail == nil {
		t.Fatal("expected unprotect on a locked series to fail")
	} else if fail.ID != ErrSeriesFrozen {
		t.Errorf("expected series-frozen rejecting unprotect of a lock, got %s", fail.ID)
	}
}

func TestFreezeShallowRejectsMutation(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1))

	frozen, fail := DispatchGeneric(i, VerbFreeze, block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if frozen.Node1.Flags&StubFrozenShallow == 0 {
		t.Fatal("expected shallow freeze to set StubFrozenShallow")
	}
	if _, fail := DispatchGeneric(i, VerbRemove, frozen, nil); fail == nil || fail.ID != ErrSeriesFrozen {
		t.Fatalf("expected remove on a frozen series to fail frozen, got %v", fail)
	}
}

func TestFreezeDeepWalksNestedSeries(t *testing.T) {
	i := New(Options{})
	inner := newTestBlock(i, NewInteger(1))
	outer := newTestBlock(i, inner)

	frozen, fail := DispatchGeneric(i, VerbFreeze, outer, []Cell{NewLogic(true)})
	if fail != nil {
		t.Fatal(fail)
	}
	if fail := frozen.Node1.CheckMutable(); fail == nil {
		t.Error("expected the outer series to be frozen")
	}
	nested := frozen.Node1.At(0)
	if fail := nested.Node1.CheckMutable(); fail == nil {
		t.Error("expected freeze/deep to reach the nested block too")
	}
}

func TestProtectLockFreezeFromSource(t *testing.T) {
	i := New(Options{})
	out, err := i.Eval("protect [1 2 3]")
	if err != nil {
		t.Fatal(err)
	}
	if out.Node1.Flags&StubProtected == 0 {
		t.Error("expected `protect [1 2 3]` to set StubProtected on the block it returns")
	}

	out, err = i.Eval("freeze/deep [1 2 3]")
	if err != nil {
		t.Fatal(err)
	}
	if fail := out.Node1.CheckMutable(); fail == nil {
		t.Error("expected `freeze/deep [1 2 3]` to leave the result immutable")
	}
}
