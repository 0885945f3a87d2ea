package interp

import "fmt"

// registerNatives seeds interp's lib module with the small set of core
// generics a host needs to exercise the evaluator end to end: the
// arithmetic/comparison enfix operators, the if/else branching pair,
// and a print action for the REPL/CLI front end. None of this is a
// complete numeric tower — it is exactly enough surface for the frame
// trampoline, enfix discipline, and refinement reordering to have
// something real to dispatch to.
func registerNatives(interp *Interpreter) {
	pool := interp.rt.pool
	syms := interp.rt.symbols
	lib := interp.rt.lib

	def := func(name string, action *Action) {
		sym := syms.Intern(name)
		action.Label = sym
		cell := NewActionCell(pool, action)
		if fail := lib.Set(pool, sym, cell); fail != nil {
			panic(fail)
		}
	}

	param := func(name string) Param {
		return Param{Name: syms.Intern(name), Class: ParamNormal}
	}

	// hardParam takes its argument as a literal cell, never running it
	// through evalStep/maybeEnfix — the branch blocks of if/else must not
	// let a following enfixed word (like a trailing "else") bind to the
	// bare block itself instead of to the whole if/else call.
	hardParam := func(name string) Param {
		return Param{Name: syms.Intern(name), Class: ParamHard}
	}

	binaryNumeric := func(op func(a, b int64) int64, fop func(a, b float64) float64) Dispatcher {
		return func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			a := Decay(*f.Varlist.At(1))
			b := Decay(*f.Varlist.At(2))
			if a.Heart == HeartDecimal || a.Heart == HeartPercent || b.Heart == HeartDecimal || b.Heart == HeartPercent {
				f.Out = NewDecimal(fop(a.AsDecimal(), b.AsDecimal()))
				return SigValue, nil
			}
			if a.Heart != HeartInteger || b.Heart != HeartInteger {
				return SigValue, newFailure(ErrBadCast, "arithmetic requires integer! or decimal! operands")
			}
			f.Out = NewInteger(op(a.AsInteger(), b.AsInteger()))
			return SigValue, nil
		}
	}

	def("+", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: binaryNumeric(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }),
	}).Enfix())

	def("-", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: binaryNumeric(func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }),
	}).Enfix())

	def("*", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: binaryNumeric(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }),
	}).Enfix())

	def("/", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			a := Decay(*f.Varlist.At(1))
			b := Decay(*f.Varlist.At(2))
			if b.Heart == HeartInteger && b.AsInteger() == 0 {
				return SigValue, newFailure(ErrZeroDivide, "division by zero")
			}
			if a.Heart == HeartDecimal || a.Heart == HeartPercent || b.Heart == HeartDecimal || b.Heart == HeartPercent {
				f.Out = NewDecimal(a.AsDecimal() / b.AsDecimal())
				return SigValue, nil
			}
			f.Out = NewInteger(a.AsInteger() / b.AsInteger())
			return SigValue, nil
		},
	}).Enfix())

	def("=", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			f.Out = NewLogic(CellsEqual(Decay(*f.Varlist.At(1)), Decay(*f.Varlist.At(2))))
			return SigValue, nil
		},
	}).Enfix())

	def(">", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			f.Out = NewLogic(StrictCompare(Decay(*f.Varlist.At(1)), Decay(*f.Varlist.At(2))) > 0)
			return SigValue, nil
		},
	}).Enfix())

	def("<", (&Action{
		Params: []Param{param("value1"), param("value2")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			f.Out = NewLogic(StrictCompare(Decay(*f.Varlist.At(1)), Decay(*f.Varlist.At(2))) < 0)
			return SigValue, nil
		},
	}).Enfix())

	def("if", &Action{
		Params: []Param{param("condition"), hardParam("branch")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			cond := Decay(*f.Varlist.At(1))
			branch := f.Varlist.At(2)
			if !Truthy(cond) {
				f.Out = NewVoid()
				return SigVoidInvisible, nil
			}
			if branch.Heart != HeartBlock {
				f.Out = *branch
				return SigValue, nil
			}
			out, fail := interp.EvalFeed(NewFeed(branch.Node1, f.Feed.Specifier), f)
			if fail != nil {
				return SigValue, fail
			}
			f.Out = out
			return SigValue, nil
		},
	})

	def("else", (&Action{
		Params: []Param{param("left"), hardParam("branch")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			left := f.Varlist.At(1)
			branch := f.Varlist.At(2)
			if !left.IsVoid() {
				f.Out = *left
				return SigValue, nil
			}
			if branch.Heart != HeartBlock {
				f.Out = *branch
				return SigValue, nil
			}
			out, fail := interp.EvalFeed(NewFeed(branch.Node1, f.Feed.Specifier), f)
			if fail != nil {
				return SigValue, fail
			}
			f.Out = out
			return SigValue, nil
		},
	}).Enfix().WithDefersLookback())

	def("print", &Action{
		Params: []Param{param("value")},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			fmt.Fprintln(interp.stdout, moldCell(*f.Varlist.At(1)))
			f.Out = NewVoid()
			return SigVoidInvisible, nil
		},
	})

	def("true", &Action{Params: nil, Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
		f.Out = NewLogic(true)
		return SigValue, nil
	}})
	def("false", &Action{Params: nil, Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
		f.Out = NewLogic(false)
		return SigValue, nil
	}})

	registerProtectActions(interp)
	registerReduceActions(interp)
	registerGenericActions(interp)
	registerFunctionActions(interp)
}

// Truthy reports whether c counts as conditionally true: every value
// is truthy except blank, the false logic, and the null isotope.
func Truthy(c Cell) bool {
	switch {
	case c.Heart == HeartBlank && c.Quote == Unquoted:
		return false
	case c.Heart == HeartLogic:
		return c.AsLogic()
	case c.IsNullIsotope():
		return false
	default:
		return true
	}
}
