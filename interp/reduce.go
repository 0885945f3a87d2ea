package interp

// reduce.go implements reduce and reduce/predicate: walk a block's
// feed left to right exactly the way top-level evaluation does,
// collecting each produced value into a freshly allocated output
// block. A void intermediate is skipped outright (nothing is
// collected for it, the way EvalFeed already lets a void vanish from
// the running result); a null result is a hard error, since the
// output block can never hold an absent slot the way a varlist can.
// An optional predicate action is applied to each produced value
// before it is collected, and the predicate's own result is what gets
// collected instead of the original.

func Reduce(interp *Interpreter, f *Frame, block *Cell, predicate *Action) (Cell, *Failure) {
	if block.Heart != HeartBlock && block.Heart != HeartGroup {
		return Cell{}, newFailure(ErrBadCast, "reduce requires a block or group")
	}
	if predicate != nil && len(predicate.Params) == 0 {
		return Cell{}, newFailure(ErrBadParameter, "reduce predicate must accept one argument")
	}

	out := interp.rt.pool.NewArray(FlavorArray, block.Node1.Len())
	feed := NewFeed(block.Node1, f.Feed.Specifier)
	for feed.HasNext() {
		v, fail := interp.evalStep(feed, f)
		if fail != nil {
			return Cell{}, fail
		}
		if v.IsVoid() {
			continue
		}
		if v.IsNullIsotope() {
			return Cell{}, newFailure(ErrNeedNonNull, "reduce produced a null value")
		}
		if predicate != nil {
			v, fail = interp.applyOne(f, predicate, v)
			if fail != nil {
				return Cell{}, fail
			}
		}
		out.Append(v)
	}
	interp.rt.pool.Manage(out)

	result := Cell{Heart: block.Heart}
	result.setNode1(out)
	return result, nil
}

// applyOne invokes a single-argument action with arg already fulfilled,
// skipping straight to the typecheck/dispatch phases of the trampoline
// rather than re-fetching an argument from a feed — reduce's predicate
// already has the value it must run on.
func (interp *Interpreter) applyOne(caller *Frame, action *Action, arg Cell) (Cell, *Failure) {
	sub := NewActionFrame(caller, caller.Feed, action, action.Label, interp.rt.stack)
	sub.Varlist = interp.rt.pool.NewArray(FlavorVarlist, len(action.Params)+1)
	for i := 0; i <= len(action.Params); i++ {
		sub.Varlist.Append(Cell{})
	}
	*sub.Varlist.At(1) = arg
	sub.State = StateTypechecking
	return interp.Run(sub)
}

// registerReduceActions wires the reduce word into lib: a hard-quoted
// block/group argument (it must not be evaluated before reduce itself
// walks it) plus an optional /predicate refinement taking an action!.
func registerReduceActions(interp *Interpreter) {
	pool := interp.rt.pool
	syms := interp.rt.symbols
	lib := interp.rt.lib

	action := &Action{
		Params: []Param{
			{Name: syms.Intern("value"), Class: ParamHard},
			{Name: syms.Intern("predicate"), Class: ParamNormal, IsRefinement: true, TakesArg: true},
		},
		Dispatch: func(interp *Interpreter, f *Frame) (Signal, *Failure) {
			block := f.Varlist.At(1)
			predCell := f.Varlist.At(2)
			var predicate *Action
			if !predCell.IsNullIsotope() && predCell.Heart == HeartAction {
				predicate = ActionOf(predCell)
			}
			out, fail := Reduce(interp, f, block, predicate)
			if fail != nil {
				return SigValue, fail
			}
			f.Out = out
			return SigValue, nil
		},
	}
	sym := syms.Intern("reduce")
	action.Label = sym
	cell := NewActionCell(pool, action)
	if fail := lib.Set(pool, sym, cell); fail != nil {
		panic(fail)
	}
}
