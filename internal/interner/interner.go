// Package interner implements the process-wide byte-slice canonicalization
// table described in spec.md section 6: equal bytes always map to the same
// *Entry pointer, so downstream code (symbol tables, type interning) can use
// pointer equality wherever the spec calls for string equality.
//
// No third-party string-interning library appears anywhere in the example
// pack; this is a small, single-threaded map keyed on the byte content
// itself, which is the natural (and only) correct implementation of "equal
// bytes, equal pointer" — see DESIGN.md for the fuller justification.
package interner

import "fmt"

// Entry is the canonical handle for one interned byte string. Two Entry
// pointers are equal if and only if the underlying bytes are equal.
type Entry struct {
	bytes []byte
}

// String returns the interned text.
func (e *Entry) String() string {
	return string(e.bytes)
}

// Bytes returns the interned bytes. Callers must not mutate the result.
func (e *Entry) Bytes() []byte {
	return e.bytes
}

// Table is a process-wide interning table. The zero value is not usable;
// construct with New.
type Table struct {
	entries map[string]*Entry
}

// New constructs an empty interning table.
func New() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Intern canonicalizes the given bytes, returning the same *Entry for any
// byte-equal input seen before.
func (t *Table) Intern(bytes []byte) *Entry {
	key := string(bytes)
	if e, ok := t.entries[key]; ok {
		return e
	}

	owned := make([]byte, len(bytes))
	copy(owned, bytes)
	e := &Entry{owned}
	t.entries[key] = e

	return e
}

// InternString is a convenience wrapper around Intern for Go strings.
func (t *Table) InternString(s string) *Entry {
	return t.Intern([]byte(s))
}

// InternFmt interns the result of formatting with fmt.Sprintf.
func (t *Table) InternFmt(format string, args ...any) *Entry {
	return t.InternString(fmt.Sprintf(format, args...))
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	return len(t.entries)
}
