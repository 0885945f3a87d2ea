package interp

// ParamClass is the quoting discipline of one action parameter.
type ParamClass uint8

const (
	ParamNormal ParamClass = iota
	ParamMeta
	ParamHard
	ParamSoft
	ParamMedium
)

// Param describes one formal parameter of an Action.
type Param struct {
	Name *Symbol
	Class ParamClass

	// IsRefinement marks a /word-style optional parameter. TakesArg
	// distinguishes "/b [integer!]" (consumes a following value) from a
	// bare "/b" flag that only ever receives null or the blackhole
	// marker.
	IsRefinement bool
	TakesArg bool

	IsReturn bool // the synthetic "return" slot, never fulfilled from the callsite
	TypeCheck func(Cell) bool
}

// ActionFlags are the enfix-discipline bits of an Action.
type ActionFlags uint8

const (
	ActionEnfixed ActionFlags = 1 << iota
	ActionDefersLookback
	ActionPostponesEntirely
)

func (a *Action) IsEnfixed() bool { return a.Flags&ActionEnfixed != 0 }
func (a *Action) DefersLookback() bool { return a.Flags&ActionDefersLookback != 0 }
func (a *Action) PostponesEntirely() bool { return a.Flags&ActionPostponesEntirely != 0 }

// Signal is what a dispatcher (or the frame executor driving it) asks
// the trampoline to do next.
type Signal uint8

const (
	SigValue Signal = iota
	SigRedoUnchecked
	SigRedoChecked
	SigVoidInvisible
	SigThrown
)

// Dispatcher is the phase body invoked in the DISPATCH state. It reads
// already-fulfilled, already-typechecked arguments from f.Varlist and
// either produces a value in f.Out, asks the trampoline to redo
// fulfillment or dispatch (SigRedoChecked/SigRedoUnchecked), signals
// that its result vanishes (SigVoidInvisible), or throws a non-local
// control transfer via the returned *Failure (SigThrown).
type Dispatcher func(interp *Interpreter, f *Frame) (Signal, *Failure)

// Action is a first-class callable value: a details-flavored array
// whose dispatch table entry is Dispatch and whose private per-kind
// data lives in Body (a compiled user-defined function's block, a
// native's Go closure already captured in Dispatch, a generic's
// matched datatype, ...).
type Action struct {
	Params []Param
	Flags ActionFlags
	Dispatch Dispatcher
	Label *Symbol
	Body any
}

// ReturnParamIndex returns the index of the synthetic return slot, or -1.
func (a *Action) ReturnParamIndex() int {
	for i, p := range a.Params {
		if p.IsReturn {
			return i
		}
	}
	return -1
}

func NewAction(params []Param, dispatch Dispatcher) *Action {
	return &Action{Params: params, Dispatch: dispatch}
}

func (a *Action) Enfix() *Action {
	a.Flags |= ActionEnfixed
	return a
}

func (a *Action) WithDefersLookback() *Action {
	a.Flags |= ActionDefersLookback
	return a
}

func (a *Action) WithPostponesEntirely() *Action {
	a.Flags |= ActionPostponesEntirely
	return a
}

// NewActionCell wraps action in a details-flavored stub and returns the
// ACTION! cell referencing it. The stub's Link slot holds
// the *Action directly rather than a cell-encoded archetype+body pair —
// ember keeps the dispatcher/body as a native Go closure and struct
// rather than re-encoding it as interpreted data, since nothing in this
// core re-serializes an action's own body as source.
func NewActionCell(pool *Pool, action *Action) Cell {
	s := pool.NewArray(FlavorDetails, 1)
	s.Link = action
	pool.Manage(s)
	c := Cell{Heart: HeartAction}
	c.setNode1(s)
	return c
}

// ActionOf recovers the *Action a details-flavored ACTION! cell wraps.
func ActionOf(c *Cell) *Action {
	if c.Node1 == nil {
		return nil
	}
	a, _ := c.Node1.Link.(*Action)
	return a
}
