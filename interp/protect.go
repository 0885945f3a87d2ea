package interp

// protect.go turns the mutability bits series.go/gc.go already carry
// (StubProtected/StubFrozenShallow/StubFrozenDeep/StubAutoLocked) into
// four verbs any series or context value can answer: protect,
// unprotect, lock, and freeze. They're generic-dispatch entries rather
// than a type switch so a host adding a new series-backed heart only
// has to register against the verb, not touch this file.
//
// freeze's optional "deep" argument chooses between a shallow freeze
// (this stub only) and gc.go's FreezeDeep walk (this stub and
// everything reachable from it) — the same distinction PROTECT/DEEP
// makes in the walked-container model these bits are taken from.

func init() {
	for _, h := range heartsWhere(func(h Heart) bool { return h.IsSeries() || h.IsContext() }) {
		RegisterGeneric(h, VerbProtect, doProtect)
		RegisterGeneric(h, VerbUnprotect, doUnprotect)
		RegisterGeneric(h, VerbLock, doLock)
		RegisterGeneric(h, VerbFreeze, doFreeze)
	}
}

func doProtect(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series to protect")
	}
	s.Flags |= StubProtected
	return subject, nil
}

func doUnprotect(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series to unprotect")
	}
	if s.Flags&(StubFrozenShallow|StubFrozenDeep|StubAutoLocked) != 0 {
		return Cell{}, newFailure(ErrSeriesFrozen, "cannot unprotect a locked or frozen series")
	}
	s.Flags &^= StubProtected
	return subject, nil
}

func doLock(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series to lock")
	}
	s.Flags |= StubProtected | StubAutoLocked
	return subject, nil
}

func doFreeze(interp *Interpreter, subject Cell, args []Cell) (Cell, *Failure) {
	s := subject.Node1
	if s == nil {
		return Cell{}, newFailure(ErrBadCast, "value has no backing series to freeze")
	}
	deep := len(args) > 0 && Truthy(args[0])
	if deep {
		interp.rt.gc.FreezeDeep(s)
	} else {
		s.Flags |= StubProtected | StubFrozenShallow
	}
	return subject, nil
}

// registerProtectActions exposes the four verbs above as callable
// words in lib, each a thin wrapper that looks up the subject's heart
// in the generic table.
func registerProtectActions(interp *Interpreter) {
	pool := interp.rt.pool
	syms := interp.rt.symbols
	lib := interp.rt.lib

	def := func(name string, verb GenericVerb, deepRefinement bool) {
		sym := syms.Intern(name)
		params := []Param{{Name: syms.Intern("value"), Class: ParamNormal}}
		if deepRefinement {
			params = append(params, Param{Name: syms.Intern("deep"), Class: ParamNormal, IsRefinement: true})
		}
		action := &Action{
			Params: params,
			Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
				subject := *f.Varlist.At(1)
				var args []Cell
				if deepRefinement {
					args = []Cell{*f.Varlist.At(2)}
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

	def("protect", VerbProtect, false)
	def("unprotect", VerbUnprotect, false)
	def("lock", VerbLock, false)
	def("freeze", VerbFreeze, true)
}
