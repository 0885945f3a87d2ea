package interp

import "testing"

func TestLogicGenerics(t *testing.T) {
	i := New(Options{})

	not, fail := DispatchGeneric(i, VerbNot, NewLogic(true), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if not.AsLogic() {
		t.Error("expected not true = false")
	}

	and, fail := DispatchGeneric(i, VerbAnd, NewLogic(true), []Cell{NewLogic(false)})
	if fail != nil {
		t.Fatal(fail)
	}
	if and.AsLogic() {
		t.Error("expected true and false = false")
	}

	or, fail := DispatchGeneric(i, VerbOr, NewLogic(false), []Cell{NewLogic(true)})
	if fail != nil {
		t.Fatal(fail)
	}
	if !or.AsLogic() {
		t.Error("expected false or true = true")
	}

	xor, fail := DispatchGeneric(i, VerbXor, NewLogic(true), []Cell{NewLogic(true)})
	if fail != nil {
		t.Fatal(fail)
	}
	if xor.AsLogic() {
		t.Error("expected true xor true = false")
	}
}
