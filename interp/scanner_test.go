package interp

import "testing"

func scanOneTop(t *testing.T, src string) Cell {
	t.Helper()
	i := New(Options{})
	top, fail := newScanner(i.rt.pool, i.rt.symbols, src, "test").scanTop()
	if fail != nil {
		t.Fatal(fail)
	}
	if top.Len() != 1 {
		t.Fatalf("expected exactly one top-level cell for %q, got %d", src, top.Len())
	}
	return *top.At(0)
}

func TestScanPlainWord(t *testing.T) {
	cell := scanOneTop(t, "foo")
	if cell.Heart != HeartWord {
		t.Fatalf("expected word!, got %s", cell.Heart)
	}
}

func TestScanTwoSegmentPath(t *testing.T) {
	cell := scanOneTop(t, "reduce/predicate")
	if cell.Heart != HeartPath {
		t.Fatalf("expected path!, got %s", cell.Heart)
	}
	if cell.Node1.Len() != 2 {
		t.Fatalf("expected 2 path segments, got %d", cell.Node1.Len())
	}
	if cell.Node1.At(0).Sym.Name != "reduce" || cell.Node1.At(1).Sym.Name != "predicate" {
		t.Errorf("expected segments [reduce predicate], got [%s %s]", cell.Node1.At(0).Sym.Name, cell.Node1.At(1).Sym.Name)
	}
}

func TestScanPathWithIntegerPicker(t *testing.T) {
	cell := scanOneTop(t, "block/1")
	if cell.Heart != HeartPath {
		t.Fatalf("expected path!, got %s", cell.Heart)
	}
	if cell.Node1.Len() != 2 {
		t.Fatalf("expected 2 path segments, got %d", cell.Node1.Len())
	}
	if cell.Node1.At(0).Sym.Name != "block" {
		t.Errorf("expected head segment 'block', got %s", cell.Node1.At(0).Sym.Name)
	}
	if cell.Node1.At(1).Heart != HeartInteger || cell.Node1.At(1).AsInteger() != 1 {
		t.Errorf("expected second segment integer 1, got %v", cell.Node1.At(1))
	}
}

func TestScanThreeSegmentPath(t *testing.T) {
	cell := scanOneTop(t, "a/b/c")
	if cell.Heart != HeartPath || cell.Node1.Len() != 3 {
		t.Fatalf("expected a 3-segment path!, got %s len=%d", cell.Heart, cell.Node1.Len())
	}
}
