package interp

// ContextKind names which self-describing archetype a context carries.
type ContextKind uint8

const (
	ContextObject ContextKind = iota
	ContextFrame
	ContextModule
	ContextPort
	ContextError
)

// Context pairs a varlist with its keylist. MODULE contexts
// don't carry a keylist at all; they resolve bindings through each
// symbol's hitch chain instead, so Keylist is nil.
type Context struct {
	Kind ContextKind
	Varlist *Stub // FlavorVarlist; element 0 is the archetype cell
	Keylist *Stub // FlavorKeylist; nil for ContextModule

	// RunningFrame is non-nil only while Kind==ContextFrame and the frame
	// is actively executing: the varlist's key-source then points at the
	// live frame instead of at Keylist, and Keylist is only recoverable
	// through the frame's action.
	RunningFrame *Frame
}

// NewContext allocates a paired varlist+keylist context with room for
// `capacity` additional fields beyond the archetype slot.
func NewContext(pool *Pool, kind ContextKind, capacity int) *Context {
	ctx := &Context{Kind: kind}
	ctx.Varlist = pool.NewArray(FlavorVarlist, capacity+1)
	ctx.Varlist.Append(Cell{}) // slot 0 reserved for the archetype
	if kind != ContextModule {
		ctx.Keylist = pool.NewKeylist(nil)
	}
	ctx.Varlist.Bonus = ctx.Keylist
	ctx.Varlist.Link = ctx // cache: recovered by ctxFromVarlist (interp/eval.go)
	arch := ctx.Archetype()
	arch.Heart = contextHeart(kind)
	arch.setNode1(ctx.Varlist)
	return ctx
}

func contextHeart(kind ContextKind) Heart {
	switch kind {
	case ContextFrame:
		return HeartFrame
	case ContextModule:
		return HeartModule
	case ContextPort:
		return HeartPort
	case ContextError:
		return HeartError
	default:
		return HeartObject
	}
}

// Archetype returns the self-describing context cell at varlist slot 0.
func (c *Context) Archetype() *Cell { return c.Varlist.At(0) }

// Len is the number of bound fields, excluding the archetype slot.
func (c *Context) Len() int {
	if c.Kind == ContextModule {
		return -1 // unbounded: module fields live in the hitch chain, not a keylist
	}
	return c.Varlist.Len() - 1
}

// Bind returns the keylist index (0-based, excluding the archetype) of
// sym in c, or false if unbound.
func (c *Context) Bind(sym *Symbol) (int, bool) {
	if c.Kind == ContextModule {
		return 0, false
	}
	for i, s := range c.Keylist.Syms {
		if s == sym {
			return i, true
		}
	}
	return 0, false
}

// Get fetches the value bound to sym, consulting the hitch chain for
// MODULE contexts and the varlist otherwise.
func (c *Context) Get(sym *Symbol) (*Cell, bool) {
	if c.Kind == ContextModule {
		if p := LookupHitch(sym, c); p != nil {
			return &p.Value, true
		}
		return nil, false
	}
	idx, ok := c.Bind(sym)
	if !ok {
		return nil, false
	}
	return c.Varlist.At(idx + 1), true
}

// Set writes val to the field bound to sym, creating the field (and, for
// a non-module context, unsharing a shared keylist first) if it does
// not yet exist.
func (c *Context) Set(pool *Pool, sym *Symbol, val Cell) *Failure {
	if c.Kind == ContextModule {
		if p := LookupHitch(sym, c); p != nil {
			if c.Varlist.Flags&StubProtected != 0 {
				return newFailure("protected-key", "module field is protected: "+sym.Name)
			}
			p.Value = val
			return nil
		}
		Hitch(sym, c, val)
		return nil
	}
	if idx, ok := c.Bind(sym); ok {
		cell := c.Varlist.At(idx + 1)
		if c.Varlist.Flags&StubProtected != 0 || cell.Flags&FlagProtected != 0 {
			return newFailure("protected-key", "context field is protected: "+sym.Name)
		}
		*cell = val
		return nil
	}
	if c.Keylist.Flags&StubShared != 0 {
		c.Keylist = pool.Unshare(c.Keylist)
		c.Varlist.Bonus = c.Keylist
	}
	c.Keylist.Syms = append(c.Keylist.Syms, sym)
	c.Keylist.Used = len(c.Keylist.Syms)
	c.Varlist.Append(val)
	return nil
}

// Binding is what a WORD cell's payload actually stores: a context plus
// an index into that context's keylist. A Binding with a nil
// Ctx is unbound.
type Binding struct {
	Ctx *Context
	Index int
}

// BindWord stores binding into a WORD-family cell's payload.
func BindWord(c *Cell, ctx *Context, index int) {
	c.setNode1(ctx.Varlist)
	c.Word1 = uint64(index)
}

// Specifier is one overlay in a virtual-binding chain, the way LET and
// USE attach bindings without mutating the word itself. The evaluator
// consults the chain, innermost first, before falling back to a word's
// stored binding.
type Specifier struct {
	Overlay *Context
	Outer *Specifier
}

// Resolve looks sym up through the specifier chain first, then falls
// back to the word's own stored binding in fallback. Each overlay is
// consulted through Context.Get, which already knows how to walk a
// module's hitch chain instead of a keylist — Resolve doesn't need its
// own copy of that distinction.
func (sp *Specifier) Resolve(sym *Symbol, fallback *Binding) (*Cell, bool) {
	for s := sp; s != nil; s = s.Outer {
		if cell, ok := s.Overlay.Get(sym); ok {
			return cell, true
		}
	}
	if fallback != nil && fallback.Ctx != nil {
		return fallback.Ctx.Get(sym)
	}
	return nil, false
}
