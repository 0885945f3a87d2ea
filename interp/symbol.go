package interp

import "strings"

// Symbol is an interned identifier. Canon points at
// the case-folded canonical symbol; a symbol that is already canonical
// points at itself. Hitch is the head of this symbol's per-module
// binding-patch chain, walked by module lookup instead of the
// context+index binding words use.
type Symbol struct {
	Name string
	Canon *Symbol
	Hitch *Patch
}

func (s *Symbol) IsCanon() bool { return s.Canon == s }

// SymbolTable interns identifiers by exact spelling, canonicalizing on
// case-folded form. Single-threaded: the Interpreter's semaphore(1)
// guard (interp/interp.go) is what keeps this safe across concurrent
// Eval callers, so no internal locking is needed here.
type SymbolTable struct {
	byName map[string]*Symbol
	canon map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: map[string]*Symbol{}, canon: map[string]*Symbol{}}
}

// Intern returns the unique Symbol for name, creating it (and, if
// needed, its canon) on first sight.
func (t *SymbolTable) Intern(name string) *Symbol {
	if sym, ok := t.byName[name]; ok {
		return sym
	}
	canonName := strings.ToLower(name)
	canon, ok := t.canon[canonName]
	sym := &Symbol{Name: name}
	if !ok {
		canon = sym
		t.canon[canonName] = canon
	}
	sym.Canon = canon
	t.byName[name] = sym
	return sym
}

// Patch is one entry in a per-symbol module-binding "hitch" chain: a
// module's slot for a symbol, chained to the next module that also
// binds the same symbol.
type Patch struct {
	Symbol *Symbol
	Module *Context
	Value Cell
	Next *Patch
}

// Hitch prepends a new patch for sym in the given module, returning it.
func Hitch(sym *Symbol, module *Context, initial Cell) *Patch {
	p := &Patch{Symbol: sym, Module: module, Value: initial, Next: sym.Hitch}
	sym.Hitch = p
	return p
}

// LookupHitch walks sym's hitch chain for the patch belonging to module.
func LookupHitch(sym *Symbol, module *Context) *Patch {
	for p := sym.Hitch; p != nil; p = p.Next {
		if p.Module == module {
			return p
		}
	}
	return nil
}
