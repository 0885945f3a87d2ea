package interp

// function.go implements the "function" constructor: it compiles a
// spec block ([a /b [integer!] /c [integer!]]) into an Action's Params
// and wraps a body block as that Action's Dispatch, closing over the
// specifier active at the point function was called (so the body sees
// whatever lexical bindings were in scope there) plus a fresh overlay
// for its own parameters on every call. "return" pairs with it: it
// throws a value labeled to the specific calling frame, so RETURN deep
// inside a body unwinds straight back to that one call instead of the
// call immediately enclosing it.

// funcBody is the private per-function data an Action.Body holds for a
// function-constructed action: the keylist naming its parameters (in
// Params order, so it indexes the call frame's varlist exactly the way
// Context.Bind expects), the body block to run, and the specifier
// captured when function built this action.
type funcBody struct {
	keylist *Stub
	body *Stub
	closure *Specifier
}

// compileFuncParams walks a spec block's cells into a Param list plus a
// matching keylist. A plain word is a positional parameter; a bare
// refinement literal (/name, scanned as a path with a blank head)
// becomes an optional parameter skipped unless its name is pushed at
// the callsite. Either may be followed by a block of type words, which
// becomes that parameter's TypeCheck. A leading text cell is a
// docstring and is discarded.
func compileFuncParams(interp *Interpreter, specArr *Stub) ([]Param, *Stub, *Failure) {
	var params []Param
	i := 0
	for i < specArr.Len() {
		cell := specArr.At(i)
		switch {
		case cell.Heart == HeartText:
			i++

		case cell.Heart == HeartPath && cell.Node1 != nil && cell.Node1.Len() == 2 && cell.Node1.At(0).Heart == HeartBlank:
			name := cell.Node1.At(1).Sym
			i++
			p := Param{Name: name, Class: ParamNormal, IsRefinement: true}
			if i < specArr.Len() && specArr.At(i).Heart == HeartBlock {
				p.TakesArg = true
				p.TypeCheck = typeCheckFromSpec(specArr.At(i).Node1)
				i++
			}
			params = append(params, p)

		case cell.Heart == HeartWord:
			name := cell.Sym
			i++
			p := Param{Name: name, Class: ParamNormal}
			if i < specArr.Len() && specArr.At(i).Heart == HeartBlock {
				p.TypeCheck = typeCheckFromSpec(specArr.At(i).Node1)
				i++
			}
			params = append(params, p)

		default:
			return nil, nil, newFailure(ErrInvalidChars, "unexpected value in function spec")
		}
	}

	keys := make([]*Symbol, len(params))
	for idx, p := range params {
		keys[idx] = p.Name
	}
	return params, interp.rt.pool.NewKeylist(keys), nil
}

// typeCheckFromSpec builds a TypeCheck predicate out of a block of
// type-word cells (integer!, text!, ...), matched against Heart.String().
func typeCheckFromSpec(typeBlock *Stub) func(Cell) bool {
	names := make([]string, 0, typeBlock.Len())
	for i := 0; i < typeBlock.Len(); i++ {
		names = append(names, typeBlock.At(i).Sym.Name)
	}
	return func(v Cell) bool {
		for _, n := range names {
			if v.Heart.String() == n {
				return true
			}
		}
		return false
	}
}

// dispatchUserFunc is the Dispatch every function-built Action shares.
// It wraps the call frame's own varlist as a FRAME-kind Context keyed
// by the function's parameter keylist, then runs the body under a
// specifier chaining that overlay in front of the function's closure.
// A return thrown at this exact frame is caught here rather than
// propagating further.
func dispatchUserFunc(interp *Interpreter, f *Frame) (Signal, *Failure) {
	fb, _ := f.Action.Body.(*funcBody)
	ctx := &Context{Kind: ContextFrame, Varlist: f.Varlist, Keylist: fb.keylist, RunningFrame: f}
	spec := &Specifier{Overlay: ctx, Outer: fb.closure}

	out, fail := interp.EvalFeed(NewFeed(fb.body, spec), f)
	if fail != nil {
		if thr, ok := failureThrow(fail); ok && thr.Catches(f) {
			f.Out = thr.Value
			return SigValue, nil
		}
		return SigValue, fail
	}
	f.Out = out
	return SigValue, nil
}

// enclosingFuncFrame walks the frame-parent chain outward from f
// looking for the nearest function-constructed call — a branch like
// if's or reduce's own block evaluation reuses its caller's frame as
// the parent for everything inside it, so a return nested under one of
// those must skip past it rather than unwind to it directly.
func enclosingFuncFrame(f *Frame) *Frame {
	for f != nil {
		if f.Action != nil {
			if _, ok := f.Action.Body.(*funcBody); ok {
				return f
			}
		}
		f = f.Parent
	}
	return nil
}

// registerFunctionActions wires "function" (the spec+body constructor)
// and "return" (its non-local exit) into lib.
func registerFunctionActions(interp *Interpreter) {
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

	def("function", &Action{
		Params: []Param{
			{Name: syms.Intern("spec"), Class: ParamHard},
			{Name: syms.Intern("body"), Class: ParamHard},
		},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			specCell := f.Varlist.At(1)
			bodyCell := f.Varlist.At(2)
			if specCell.Heart != HeartBlock || bodyCell.Heart != HeartBlock {
				return SigValue, newFailure(ErrBadCast, "function requires spec and body blocks")
			}
			params, keylist, fail := compileFuncParams(interp, specCell.Node1)
			if fail != nil {
				return SigValue, fail
			}
			fb := &funcBody{keylist: keylist, body: bodyCell.Node1, closure: f.Feed.Specifier}
			action := &Action{Params: params, Body: fb, Dispatch: dispatchUserFunc}
			f.Out = NewActionCell(interp.rt.pool, action)
			return SigValue, nil
		},
	})

	def("return", &Action{
		Params: []Param{{Name: syms.Intern("value"), Class: ParamNormal}},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			val := *f.Varlist.At(1)
			target := enclosingFuncFrame(f.Parent)
			if target == nil {
				return SigValue, newFailure(ErrNotRelated, "return used outside a function call")
			}
			return SigThrown, newThrowFailure(&Throw{
				Label: target.Label,
				TargetFrame: target,
				Value: val,
			})
		},
	})
}
