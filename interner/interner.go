// Package interner provides a registry that maps identifier text to small
// integer handles. The lexer and parser intern every identifier they see;
// later passes compare names by handle instead of by string.
package interner

import "sync"

// Symbol is a handle for an interned string. Two identifiers denote the
// same name if and only if their symbols are equal.
type Symbol uint32

// Invalid is the zero Symbol. No interned string ever maps to it.
const Invalid Symbol = 0

// Interner is a string-to-symbol table. It is safe for concurrent use, so a
// single table may be shared by parses running on separate goroutines. A
// parse that wants isolation simply creates its own Interner.
type Interner struct {
	mu      sync.RWMutex
	symbols map[string]Symbol
	strings []string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{
		symbols: map[string]Symbol{},
		strings: []string{""}, // reserve index 0 for Invalid
	}
}

// Intern returns the symbol for s, registering it if needed.
func (i *Interner) Intern(s string) Symbol {
	i.mu.RLock()
	sym, ok := i.symbols[s]
	i.mu.RUnlock()
	if ok {
		return sym
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if sym, ok := i.symbols[s]; ok {
		return sym
	}
	sym = Symbol(len(i.strings))
	i.strings = append(i.strings, s)
	i.symbols[s] = sym
	return sym
}

// Lookup returns the symbol for s if it has been interned.
func (i *Interner) Lookup(s string) (Symbol, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sym, ok := i.symbols[s]
	return sym, ok
}

// Resolve returns the string for a symbol. Resolving Invalid or an unknown
// handle returns the empty string.
func (i *Interner) Resolve(sym Symbol) string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(sym) >= len(i.strings) {
		return ""
	}
	return i.strings[sym]
}

// Count returns the number of interned strings.
func (i *Interner) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.strings) - 1
}
