package interp

// Flavor is the concrete subclass tag of a series node:
// it implies element width (cells, symbol pointers, bytes,...) and
// which marking rule the GC applies to it.
type Flavor uint8

const (
	FlavorArray Flavor = iota
	FlavorVarlist
	FlavorDetails
	FlavorKeylist
	FlavorPatch
	FlavorLet
	FlavorUse
	FlavorHitch
	FlavorPartials
	FlavorPairlist
	FlavorFeed
	FlavorLibrary
	FlavorHandle
	FlavorAPI
	FlavorBinary
	FlavorString
	FlavorSymbol
	FlavorHashlist
	FlavorBookmarklist
	FlavorPointer
	FlavorNodelist
	FlavorCanontable
	FlavorMoldstack
	FlavorDatastack
	FlavorPlug
	FlavorInstructionSplice
	FlavorInaccessible
)

// StubFlags are the per-series lifecycle/access bits.
// StubShared supports keylist-sharing between sibling contexts; it
// lives alongside the lifecycle bits rather than as a separate field.
type StubFlags uint32

const (
	StubManaged StubFlags = 1 << iota
	StubFixedSize
	StubDynamic
	StubBlack
	StubInaccessible
	StubHold
	StubProtected
	StubFrozenShallow
	StubFrozenDeep
	StubAutoLocked
	StubHasFileLine
	StubNewlineAtTail
	StubShared
)

// Stub is a single pooled series node. Its payload is either the Cells
// slice (ARRAY/VARLIST/DETAILS/...), the Syms slice (KEYLIST), or the
// Bytes slice (STRING/BINARY/SYMBOL). Exactly one of these is populated
// for a given Flavor.
//
// Bias/Used/Rest model "dynamic" series layout directly:
// live elements occupy index range [Bias, Bias+Used) of the backing
// buffer, whose total capacity is Rest. A remove at the head simply
// grows Bias instead of shifting, giving O(1) head-removal rather than
// an incidental consequence of using a Go slice.
type Stub struct {
	Flavor Flavor
	Flags StubFlags

	Cells []Cell
	Syms []*Symbol
	Bytes []byte

	Bias int
	Used int
	Rest int

	// Link, Misc, Bonus are flavor-interpreted slots. They hold a *Stub,
	// *Context, *Action, or nil depending on Flavor; callers must know
	// their own convention per flavor (documented at each use site in
	// context.go/action.go).
	Link any
	Misc any
	Bonus any

	manualIndex int // index into Pool.manuals while manual, Pool.managed once managed; -1 once removed
}

func newStub(flavor Flavor, rest int) *Stub {
	return &Stub{Flavor: flavor, Rest: rest, manualIndex: -1}
}

// Len returns the number of live elements, regardless of backing kind.
func (s *Stub) Len() int { return s.Used }

// OriginalCapacity returns the bound bias+used must never exceed.
// Ember never shrinks Rest below what the last (re)allocation
// established, so Rest doubles as the original capacity since last grow.
func (s *Stub) OriginalCapacity() int { return s.Rest }

func (s *Stub) checkInvariants() bool {
	return s.Bias+s.Used <= s.Rest && s.Used <= s.Rest
}

// --- Array-flavored (ARRAY/VARLIST/DETAILS/PAIRLIST/PARTIALS/...) ---

// NewArray allocates an array-flavored stub with the given starting
// capacity. It is manual (on the pool's manuals list) until Manage is
// called.
func (p *Pool) NewArray(flavor Flavor, capacity int) *Stub {
	s := newStub(flavor, capacity)
	s.Cells = make([]Cell, capacity)
	p.trackManual(s)
	return s
}

func (s *Stub) At(i int) *Cell {
	if i < 0 || i >= s.Used {
		return nil
	}
	return &s.Cells[s.Bias+i]
}

// Tail returns the index one past the last live element.
func (s *Stub) Tail() int { return s.Used }

func (s *Stub) ensureCapacity(extra int) {
	if s.Bias+s.Used+extra <= s.Rest {
		return
	}
	newRest := (s.Rest + extra) * 2
	if newRest < 8 {
		newRest = 8
	}
	nc := make([]Cell, newRest)
	copy(nc, s.Cells[s.Bias:s.Bias+s.Used])
	s.Cells = nc
	s.Bias = 0
	s.Rest = newRest
	s.Flags |= StubDynamic
}

// Append adds a cell at the tail.
func (s *Stub) Append(c Cell) {
	s.ensureCapacity(1)
	s.Cells[s.Bias+s.Used] = c
	s.Used++
}

// InsertAt inserts c before index i (0<=i<=Used).
func (s *Stub) InsertAt(i int, c Cell) {
	if i == 0 && s.Bias > 0 {
		// Head insert can reuse bias slack in the common case.
		s.Bias--
		s.Used++
		s.Cells[s.Bias] = c
		return
	}
	s.ensureCapacity(1)
	copy(s.Cells[s.Bias+i+1:s.Bias+s.Used+1], s.Cells[s.Bias+i:s.Bias+s.Used])
	s.Cells[s.Bias+i] = c
	s.Used++
}

// RemoveAt removes the element at index i. Removing index 0 is O(1): it
// simply advances Bias instead of shifting every remaining element down.
func (s *Stub) RemoveAt(i int) {
	if s.Used == 0 {
		return
	}
	if i == 0 {
		s.Bias++
		s.Used--
		return
	}
	copy(s.Cells[s.Bias+i:s.Bias+s.Used-1], s.Cells[s.Bias+i+1:s.Bias+s.Used])
	s.Used--
}

// --- String/Binary-flavored ---

func (p *Pool) NewBytes(flavor Flavor, capacity int) *Stub {
	s := newStub(flavor, capacity)
	s.Bytes = make([]byte, 0, capacity)
	p.trackManual(s)
	return s
}

// --- Keylist-flavored ---

func (p *Pool) NewKeylist(syms []*Symbol) *Stub {
	s := newStub(FlavorKeylist, len(syms))
	s.Syms = append([]*Symbol(nil), syms...)
	s.Used = len(syms)
	s.Rest = len(syms)
	p.trackManual(s)
	return s
}

// Unshare returns a private copy of a shared keylist: a write that
// would mutate a shared keylist first unshares (copies) it. Non-shared
// keylists are returned unchanged.
func (p *Pool) Unshare(kl *Stub) *Stub {
	if kl.Flags&StubShared == 0 {
		return kl
	}
	nk := p.NewKeylist(kl.Syms)
	p.Manage(nk)
	return nk
}

// --- Mutability guards ---

// CheckMutable returns the tailored error for the most specific
// applicable protection bit, or nil if s may be mutated.
func (s *Stub) CheckMutable() *Failure {
	switch {
	case s.Flags&StubHold != 0:
		return newFailure("series-held", "series is currently held for iteration")
	case s.Flags&StubFrozenDeep != 0, s.Flags&StubFrozenShallow != 0:
		return newFailure("series-frozen", "series is frozen")
	case s.Flags&StubAutoLocked != 0:
		return newFailure("series-auto-locked", "series was auto-locked")
	case s.Flags&StubProtected != 0:
		return newFailure("series-protected", "series is protected")
	case s.Flags&StubInaccessible != 0:
		return newFailure("series-data-freed", "series data has been freed")
	}
	return nil
}
