package interp

import "testing"

func TestCharCaseConversion(t *testing.T) {
	i := New(Options{})
	upper, fail := DispatchGeneric(i, VerbUppercase, NewIssueChar('a'), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if rune(upper.Word1) != 'A' {
		t.Errorf("expected uppercase 'a' = 'A', got %q", rune(upper.Word1))
	}

	lower, fail := DispatchGeneric(i, VerbLowercase, NewIssueChar('Z'), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if rune(lower.Word1) != 'z' {
		t.Errorf("expected lowercase 'Z' = 'z', got %q", rune(lower.Word1))
	}
}

func TestCharArithmetic(t *testing.T) {
	i := New(Options{})
	next, fail := DispatchGeneric(i, VerbAdd, NewIssueChar('a'), []Cell{NewInteger(1)})
	if fail != nil {
		t.Fatal(fail)
	}
	if rune(next.Word1) != 'b' {
		t.Errorf("expected 'a' + 1 = 'b', got %q", rune(next.Word1))
	}
}

func TestCharBlackholeUnaffectedByCase(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbUppercase, Blackhole(), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if !out.IsBlackhole() {
		t.Error("expected the blackhole marker to pass through case conversion unchanged")
	}
}
