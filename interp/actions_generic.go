package interp

// actions_generic.go exposes the generic-dispatch verbs built up in
// generic_series.go, generic_logic.go, generic_char.go, and
// generic_integer.go as ordinary callable lib words, the same way
// protect.go's own def() wires protect/unprotect/lock/freeze. Without
// this, those dispatch tables are only reachable from Go code, not
// from evaluated source text.
//
// Each wrapper is a thin Action whose Dispatch just forwards its
// fulfilled arguments to DispatchGeneric, keyed off the first
// argument's own heart — the per-heart behavior already lives in the
// generic_*.go files, this file only gives it a name in lib.
func registerGenericActions(interp *Interpreter) {
	pool := interp.rt.pool
	syms := interp.rt.symbols
	lib := interp.rt.lib

	def := func(name string, verb GenericVerb, argNames ...string) {
		sym := syms.Intern(name)
		params := []Param{{Name: syms.Intern("value"), Class: ParamNormal}}
		for _, n := range argNames {
			params = append(params, Param{Name: syms.Intern(n), Class: ParamNormal})
		}
		action := &Action{
			Params: params,
			Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
				subject := *f.Varlist.At(1)
				var args []Cell
				for i := range argNames {
					args = append(args, *f.Varlist.At(2+i))
				}
				out, fail := DispatchGeneric(interp, verb, subject, args)
				if fail != nil {
					return SigValue, fail
				}
				f.Out = out
				return SigValue, nil
			},
		}
		action.Label = sym
		cell := NewActionCell(pool, action)
		if fail := lib.Set(pool, sym, cell); fail != nil {
			panic(fail)
		}
	}

	def("length?", VerbLength)
	def("index?", VerbIndexOf)
	def("head", VerbHead)
	def("tail", VerbTail)
	def("skip", VerbSkip, "offset")
	def("pick", VerbPick, "index")
	def("remove", VerbRemove)
	def("append", VerbAppend, "value")
	def("copy", VerbCopy)
	def("insert", VerbInsert, "value")

	def("not", VerbNot)
	def("and", VerbAnd, "value")
	def("or", VerbOr, "value")
	def("xor", VerbXor, "value")

	def("negate", VerbNegate)
	def("add", VerbAdd, "value")
	def("subtract", VerbSubtract, "value")
	def("multiply", VerbMultiply, "value")

	def("uppercase", VerbUppercase)
	def("lowercase", VerbLowercase)
}
