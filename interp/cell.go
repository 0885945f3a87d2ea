package interp

import "math"

// Heart is the fundamental kind of a cell, ignoring quote/quasi/isotope
// decoration. Zero value (HeartTrash) marks a cell that has never been
// written to — "fresh" — and must never be read.
type Heart uint8

const (
	HeartTrash Heart = iota // fresh / unreadable
	HeartBlank
	HeartLogic
	HeartInteger
	HeartDecimal
	HeartPercent
	HeartMoney
	HeartPair
	HeartDate
	HeartTime
	HeartText
	HeartBinary
	HeartBlock
	HeartGroup
	HeartPath
	HeartTuple
	HeartWord
	HeartSetWord
	HeartGetWord
	HeartMetaWord
	HeartTheWord
	HeartTypeWord
	HeartIssue
	HeartFile
	HeartURL
	HeartEmail
	HeartTag
	HeartBitset
	HeartMap
	HeartAction
	HeartFrame
	HeartObject
	HeartModule
	HeartPort
	HeartError
	HeartHandle
	HeartComma
	HeartVoid
)

func (h Heart) String() string {
	if s, ok := heartNames[h]; ok {
		return s
	}
	return "unknown-heart"
}

var heartNames = map[Heart]string{
	HeartTrash: "trash",
	HeartBlank: "blank!",
	HeartLogic: "logic!",
	HeartInteger: "integer!",
	HeartDecimal: "decimal!",
	HeartPercent: "percent!",
	HeartMoney: "money!",
	HeartPair: "pair!",
	HeartDate: "date!",
	HeartTime: "time!",
	HeartText: "text!",
	HeartBinary: "binary!",
	HeartBlock: "block!",
	HeartGroup: "group!",
	HeartPath: "path!",
	HeartTuple: "tuple!",
	HeartWord: "word!",
	HeartSetWord: "set-word!",
	HeartGetWord: "get-word!",
	HeartMetaWord: "meta-word!",
	HeartTheWord: "the-word!",
	HeartTypeWord: "type-word!",
	HeartIssue: "issue!",
	HeartFile: "file!",
	HeartURL: "url!",
	HeartEmail: "email!",
	HeartTag: "tag!",
	HeartBitset: "bitset!",
	HeartMap: "map!",
	HeartAction: "action!",
	HeartFrame: "frame!",
	HeartObject: "object!",
	HeartModule: "module!",
	HeartPort: "port!",
	HeartError: "error!",
	HeartHandle: "handle!",
	HeartComma: "comma!",
	HeartVoid: "void!",
}

// IsSeries reports whether a heart's values are backed by a Stub payload.
func (h Heart) IsSeries() bool {
	switch h {
	case HeartText, HeartBinary, HeartBlock, HeartGroup, HeartPath, HeartTuple,
		HeartFile, HeartURL, HeartEmail, HeartTag, HeartIssue, HeartBitset:
		return true
	}
	return false
}

func (h Heart) IsWord() bool {
	switch h {
	case HeartWord, HeartSetWord, HeartGetWord, HeartMetaWord, HeartTheWord, HeartTypeWord:
		return true
	}
	return false
}

func (h Heart) IsContext() bool {
	switch h {
	case HeartFrame, HeartObject, HeartModule, HeartPort, HeartError:
		return true
	}
	return false
}

func (h Heart) IsArray() bool {
	switch h {
	case HeartBlock, HeartGroup, HeartPath, HeartTuple:
		return true
	}
	return false
}

// QuoteState is the quote byte: 0 for unquoted, positive N for N levels of
// quoting, or one of the two reserved sentinel states (quasi/isotope).
type QuoteState int16

const (
	Isotope QuoteState = -2
	Quasi QuoteState = -1
	Unquoted QuoteState = 0
	MaxQuote QuoteState = 1<<15 - 1
)

func (q QuoteState) IsQuoted() bool { return q > Unquoted }
func (q QuoteState) IsQuasi() bool { return q == Quasi }
func (q QuoteState) IsIsotope() bool { return q == Isotope }

// CellFlags are the per-cell boolean flags.
type CellFlags uint16

const (
	FlagProtected CellFlags = 1 << iota
	FlagUnevaluated
	FlagConst
	FlagExplicitlyMutable
	FlagNewlineBefore
	FlagNode1NeedsMark
	FlagNode2NeedsMark
	FlagMarkedHidden
)

// Cell is the uniform value record: two header fields (Heart, Quote), a
// flag bitset, up to two series-node pointers, and up to two machine
// words of embedded payload.
type Cell struct {
	Heart Heart
	Quote QuoteState
	Flags CellFlags

	Node1 *Stub
	Node2 *Stub

	Word1 uint64
	Word2 uint64

	// Sym holds the interned symbol for WORD-family cells.
	// Symbols are interned for the interpreter's lifetime, not
	// pool-managed series, so this is a direct pointer with no GC-mark
	// flag of its own.
	Sym *Symbol
}

// Fresh returns an all-zero, unreadable cell: erased header, no
// payload, the state before first initialization.
func Fresh() Cell { return Cell{} }

func (c *Cell) IsFresh() bool { return c.Heart == HeartTrash }

// clearMarks drops the GC hint bits; callers that install a non-nil node
// pointer must set the matching flag themselves — the GC trusts the bits
// absolutely.
func (c *Cell) clearMarks() {
	c.Flags &^= FlagNode1NeedsMark | FlagNode2NeedsMark
}

func (c *Cell) setNode1(s *Stub) {
	c.Node1 = s
	if s != nil {
		c.Flags |= FlagNode1NeedsMark
	} else {
		c.Flags &^= FlagNode1NeedsMark
	}
}

func (c *Cell) setNode2(s *Stub) {
	c.Node2 = s
	if s != nil {
		c.Flags |= FlagNode2NeedsMark
	} else {
		c.Flags &^= FlagNode2NeedsMark
	}
}

// --- Constructors for embedded-payload hearts ---

func NewBlank() Cell { return Cell{Heart: HeartBlank} }

func NewLogic(b bool) Cell {
	c := Cell{Heart: HeartLogic}
	if b {
		c.Word1 = 1
	}
	return c
}

func (c *Cell) AsLogic() bool { return c.Heart == HeartLogic && c.Word1 != 0 }

func NewInteger(v int64) Cell {
	return Cell{Heart: HeartInteger, Word1: uint64(v)}
}

func (c *Cell) AsInteger() int64 { return int64(c.Word1) }

func NewDecimal(v float64) Cell {
	return Cell{Heart: HeartDecimal, Word1: math.Float64bits(v)}
}

func (c *Cell) AsDecimal() float64 { return math.Float64frombits(c.Word1) }

func NewPercent(v float64) Cell {
	c := NewDecimal(v)
	c.Heart = HeartPercent
	return c
}

func NewVoid() Cell { return Cell{Heart: HeartVoid, Quote: Isotope} }

func (c *Cell) IsVoid() bool { return c.Heart == HeartVoid }

// NewNullIsotope returns the unstable `~null~` isotope. A frame slot for
// an unused refinement or a missing argument holds one, and PICK past
// the tail returns one.
func NewNullIsotope() Cell { return Cell{Heart: HeartBlank, Quote: Isotope} }

func (c *Cell) IsNullIsotope() bool { return c.Heart == HeartBlank && c.Quote == Isotope }

// NewComma is the bare COMMA! expression-separator value.
func NewComma() Cell { return Cell{Heart: HeartComma} }

// NewIssueChar builds an ISSUE! cell from a single codepoint. Codepoint 0
// is ember's deliberately-kept "blackhole" overload, rather than a
// separate constructor. IsBlackhole names the predicate so call sites
// that care don't need to know the representation.
func NewIssueChar(r rune) Cell {
	return Cell{Heart: HeartIssue, Word1: uint64(r), Word2: 1}
}

// IsBlackhole reports whether c is the zero-codepoint ISSUE! truthy
// marker used by refinements that take no argument.
func (c *Cell) IsBlackhole() bool {
	return c.Heart == HeartIssue && c.Word2 == 1 && c.Word1 == 0
}

func Blackhole() Cell { return NewIssueChar(0) }

// IsIsotopeForbiddenHere reports whether storing c into a container of the
// given flavor is disallowed. Only FlavorAPI (the small scratch cells
// used to marshal values across the native boundary) and the
// evaluator's own Out/Spare cells may hold an isotope.
func (c *Cell) IsIsotopeForbiddenHere(flavor Flavor) bool {
	if c.Quote != Isotope {
		return false
	}
	switch flavor {
	case FlavorAPI:
		return false
	}
	return true
}

// Metafy reifies an isotope (or any value) into its quasi/meta-decorated
// storable form.
func Metafy(c Cell) Cell {
	if c.Quote == Isotope {
		c.Quote = Quasi
		return c
	}
	if c.Quote >= Unquoted {
		c.Quote++
	}
	return c
}

// Decay turns an unstable multi-return (isotope) into its primary value.
// Non-isotope values decay to themselves.
func Decay(c Cell) Cell {
	if c.Quote == Isotope {
		c.Quote = Unquoted
	}
	return c
}

// QuoteCell increments the quote byte; quoting at MaxQuote saturates rather
// than overflowing.
func QuoteCell(c Cell) Cell {
	switch c.Quote {
	case Isotope, Quasi:
		// Quoting a quasi form or an isotope gives the plain value quoted
		// at level 1.
		c.Quote = 1
	default:
		if c.Quote < MaxQuote {
			c.Quote++
		}
	}
	return c
}

// Unquote decrements the quote byte; unquoting at 0 leaves it unquoted
// rather than underflowing.
func Unquote(c Cell) Cell {
	if c.Quote > Unquoted {
		c.Quote--
	}
	return c
}

// CellsEqual implements the void/quasi equality laws: voids always
// equal voids, quasi-forms compare by heart after unquoting. Everything
// else defers to the strict compare hook (interp/compare.go).
func CellsEqual(a, b Cell) bool {
	if a.Heart == HeartVoid && b.Heart == HeartVoid {
		return true
	}
	if a.Quote == Quasi && b.Quote == Quasi {
		ua, ub := a, b
		ua.Quote, ub.Quote = Unquoted, Unquoted
		return StrictCompare(ua, ub) == 0
	}
	return StrictCompare(a, b) == 0
}
