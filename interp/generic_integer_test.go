package interp

import (
	"math"
	"testing"
)

func TestIntegerAddOverflowPromotesToDecimal(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbAdd, NewInteger(math.MaxInt64), []Cell{NewInteger(1)})
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Heart != HeartDecimal {
		t.Fatalf("expected overflowing add to promote to decimal!, got %s", out.Heart)
	}
}

func TestIntegerAddNoOverflowStaysInteger(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbAdd, NewInteger(2), []Cell{NewInteger(3)})
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Heart != HeartInteger || out.AsInteger() != 5 {
		t.Fatalf("expected integer! 5, got %s %v", out.Heart, out)
	}
}

func TestIntegerMultiplyOverflowPromotesToDecimal(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbMultiply, NewInteger(math.MaxInt64), []Cell{NewInteger(2)})
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Heart != HeartDecimal {
		t.Fatalf("expected overflowing multiply to promote to decimal!, got %s", out.Heart)
	}
}

func TestIntegerNegateMinInt64PromotesToDecimal(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbNegate, NewInteger(math.MinInt64), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Heart != HeartDecimal {
		t.Fatalf("expected negating MinInt64 to promote to decimal!, got %s", out.Heart)
	}
}

func TestIntegerNegateOrdinary(t *testing.T) {
	i := New(Options{})
	out, fail := DispatchGeneric(i, VerbNegate, NewInteger(5), nil)
	if fail != nil {
		t.Fatal(fail)
	}
	if out.Heart != HeartInteger || out.AsInteger() != -5 {
		t.Fatalf("expected integer! -5, got %s %v", out.Heart, out)
	}
}
