package interp

import "math"

// generic_integer.go carries INTEGER!'s overflow rule: on overflow, an
// arithmetic generic promotes to decimal! rather than wrapping or
// raising, the same fallback native.go's +/-/* dispatchers use for
// mixed integer/decimal operands — this file is what a generic ADD/
// SUBTRACT/MULTIPLY/NEGATE action (as opposed to the +/-/* infix
// words) routes through.

func init() {
	RegisterGeneric(HeartInteger, VerbAdd, integerAdd)
	RegisterGeneric(HeartInteger, VerbSubtract, integerSubtract)
	RegisterGeneric(HeartInteger, VerbMultiply, integerMultiply)
	RegisterGeneric(HeartInteger, VerbNegate, integerNegate)
}

func integerOperand(args []Cell) (int64, *Failure) {
	if len(args) == 0 || (args[0].Heart != HeartInteger && args[0].Heart != HeartDecimal) {
		return 0, newFailure(ErrBadParameter, "arithmetic requires an integer! or decimal! operand")
	}
	if args[0].Heart == HeartDecimal {
		return 0, nil
	}
	return args[0].AsInteger(), nil
}

func integerAdd(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if len(args) > 0 && args[0].Heart == HeartDecimal {
		return NewDecimal(float64(subject.AsInteger()) + args[0].AsDecimal()), nil
	}
	b, fail := integerOperand(args)
	if fail != nil {
		return Cell{}, fail
	}
	a := subject.AsInteger()
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return NewDecimal(float64(a) + float64(b)), nil
	}
	return NewInteger(sum), nil
}

func integerSubtract(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if len(args) > 0 && args[0].Heart == HeartDecimal {
		return NewDecimal(float64(subject.AsInteger()) - args[0].AsDecimal()), nil
	}
	b, fail := integerOperand(args)
	if fail != nil {
		return Cell{}, fail
	}
	a := subject.AsInteger()
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return NewDecimal(float64(a) - float64(b)), nil
	}
	return NewInteger(diff), nil
}

func integerMultiply(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	if len(args) > 0 && args[0].Heart == HeartDecimal {
		return NewDecimal(float64(subject.AsInteger()) * args[0].AsDecimal()), nil
	}
	b, fail := integerOperand(args)
	if fail != nil {
		return Cell{}, fail
	}
	a := subject.AsInteger()
	if a == 0 || b == 0 {
		return NewInteger(0), nil
	}
	product := a * b
	if product/b != a {
		return NewDecimal(float64(a) * float64(b)), nil
	}
	return NewInteger(product), nil
}

func integerNegate(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	a := subject.AsInteger()
	if a == math.MinInt64 {
		return NewDecimal(-float64(a)), nil
	}
	return NewInteger(-a), nil
}
