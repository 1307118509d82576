package symbol

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
)

// entry is one (name, symbol) pair, retained in insertion order.
type entry struct {
	name *interner.Entry
	sym  *Symbol
}

// Table is a symbol table: a parent pointer plus an insertion-ordered list
// of (interned-name, symbol) pairs (spec.md section 3.4). Lookups compare
// by pointer equality on the interned name, never by byte comparison.
type Table struct {
	parent  *Table
	entries []entry
	index   map[*interner.Entry]*Symbol
	frozen  bool
}

// NewTable constructs a table with the given parent (nil for the root/
// global table).
func NewTable(parent *Table) *Table {
	return &Table{parent: parent, index: make(map[*interner.Entry]*Symbol)}
}

// Parent returns this table's enclosing scope, or nil for the root.
func (t *Table) Parent() *Table {
	return t.parent
}

// Insert installs a new symbol under the given interned name. It reports
// false (without mutating the table) if the name is already bound in this
// *local* scope, matching spec.md section 4.4: "Redeclaration of a name in
// the same local scope is an error."
func (t *Table) Insert(name *interner.Entry, sym *Symbol) bool {
	if t.frozen {
		panic("symbol: insert into frozen table")
	}

	if _, exists := t.index[name]; exists {
		return false
	}

	t.index[name] = sym
	t.entries = append(t.entries, entry{name, sym})

	return true
}

// LookupLocal searches only the current scope (spec.md section 3.4).
func (t *Table) LookupLocal(name *interner.Entry) (*Symbol, bool) {
	s, ok := t.index[name]

	return s, ok
}

// Lookup walks from this scope to the root, returning the first match
// (spec.md section 3.4).
func (t *Table) Lookup(name *interner.Entry) (*Symbol, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if s, ok := cur.index[name]; ok {
			return s, true
		}
	}

	return nil, false
}

// Entries returns every symbol in this table, in insertion
// order. Callers must not mutate the returned slice.
func (t *Table) Entries() []*Symbol {
	out := make([]*Symbol, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.sym
	}

	return out
}

// Freeze marks this table immutable (spec.md section 3.7): module-namespace
// tables freeze after the owning module completes; type and template
// symbol tables freeze at program end.
func (t *Table) Freeze() {
	t.frozen = true
}

// IsFrozen reports whether Freeze has been called.
func (t *Table) IsFrozen() bool {
	return t.frozen
}
