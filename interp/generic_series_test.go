package interp

import "testing"

func newTestBlock(i *Interpreter, vals ...Cell) Cell {
	s := i.rt.pool.NewArray(FlavorArray, len(vals))
	for _, v := range vals {
		s.Append(v)
	}
	i.rt.pool.Manage(s)
	c := Cell{Heart: HeartBlock}
	c.setNode1(s)
	return c
}

func TestSeriesLengthAndHead(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1), NewInteger(2), NewInteger(3))

	n, fail := DispatchGeneric(i, VerbLength, block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if n.AsInteger() != 3 {
		t.Errorf("expected length 3, got %d", n.AsInteger())
	}

	skipped, fail := DispatchGeneric(i, VerbSkip, block, []Cell{NewInteger(1)})
	if fail != nil {
		t.Fatal(fail)
	}
	n, fail = DispatchGeneric(i, VerbLength, skipped, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if n.AsInteger() != 2 {
		t.Errorf("expected length 2 after skip 1, got %d", n.AsInteger())
	}

	head, fail := DispatchGeneric(i, VerbHead, skipped, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	n, fail = DispatchGeneric(i, VerbLength, head, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if n.AsInteger() != 3 {
		t.Errorf("expected length 3 back at head, got %d", n.AsInteger())
	}
}

func TestSeriesPickAndTail(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(10), NewInteger(20), NewInteger(30))

	v, fail := DispatchGeneric(i, VerbPick, block, []Cell{NewInteger(2)})
	if fail != nil {
		t.Fatal(fail)
	}
	if v.AsInteger() != 20 {
		t.Errorf("expected pick 2 = 20, got %d", v.AsInteger())
	}

	tail, fail := DispatchGeneric(i, VerbTail, block, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	missing, fail := DispatchGeneric(i, VerbPick, tail, []Cell{NewInteger(1)})
	if fail != nil {
		t.Fatal(fail)
	}
	if !missing.IsNullIsotope() {
		t.Errorf("expected pick past tail to be null, got %v", missing)
	}
}

func TestSeriesAppendRemoveCopy(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1), NewInteger(2))

	appended, fail := DispatchGeneric(i, VerbAppend, block, []Cell{NewInteger(3)})
	if fail != nil {
		t.Fatal(fail)
	}
	n, _ := DispatchGeneric(i, VerbLength, appended, nil)
	if n.AsInteger() != 3 {
		t.Errorf("expected length 3 after append, got %d", n.AsInteger())
	}

	cp, fail := DispatchGeneric(i, VerbCopy, appended, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if cp.Node1 == appended.Node1 {
		t.Error("copy must allocate a new stub, not alias the original")
	}

	removed, fail := DispatchGeneric(i, VerbRemove, appended, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	n, _ = DispatchGeneric(i, VerbLength, removed, nil)
	if n.AsInteger() != 2 {
		t.Errorf("expected length 2 after removing head element, got %d", n.AsInteger())
	}
	first, _ := DispatchGeneric(i, VerbPick, removed, []Cell{NewInteger(1)})
	if first.AsInteger() != 2 {
		t.Errorf("expected 2 at head after removing the 1, got %d", first.AsInteger())
	}
}

func TestSeriesProtectedRejectsMutation(t *testing.T) {
	i := New(Options{})
	block := newTestBlock(i, NewInteger(1))
	block.Node1.Flags |= StubProtected

	if _, fail := DispatchGeneric(i, VerbAppend, block, []Cell{NewInteger(2)}); fail == nil {
		t.Error("expected append on a protected series to fail")
	} else if fail.ID != ErrSeriesProtected {
		t.Errorf("expected series-protected, got %s", fail.ID)
	}
}

func TestTextHeartHasNoPickDispatcher(t *testing.T) {
	i := New(Options{})
	s := i.rt.pool.NewBytes(FlavorString, 4)
	s.Bytes = append(s.Bytes, "abcd"...)
	s.Used = len(s.Bytes)
	i.rt.pool.Manage(s)
	text := Cell{Heart: HeartText}
	text.setNode1(s)

	if _, fail := DispatchGeneric(i, VerbPick, text, []Cell{NewInteger(1)}); fail == nil {
		t.Error("expected text! to have no PICK dispatcher registered")
	}

	n, fail := DispatchGeneric(i, VerbLength, text, nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if n.AsInteger() != 4 {
		t.Errorf("expected byte length 4, got %d", n.AsInteger())
	}
}
