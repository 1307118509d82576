package symbol

import (
	"testing"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func TestTableInsertAndLookupLocal(t *testing.T) {
	intern := interner.New()
	tab := NewTable(nil)

	name := intern.InternString("x")
	sym := &Symbol{Kind: KindVar, Name: name}

	assert.True(t, tab.Insert(name, sym), "expected first insert to succeed")

	got, ok := tab.LookupLocal(name)
	assert.True(t, ok)
	assert.True(t, got == sym, "expected the same symbol back")
}

func TestTableInsertRejectsRedeclaration(t *testing.T) {
	intern := interner.New()
	tab := NewTable(nil)

	name := intern.InternString("x")
	assert.True(t, tab.Insert(name, &Symbol{Kind: KindVar, Name: name}))
	assert.False(t, tab.Insert(name, &Symbol{Kind: KindVar, Name: name}), "expected redeclaration to be rejected")
}

func TestTableLookupWalksToParent(t *testing.T) {
	intern := interner.New()
	parent := NewTable(nil)
	child := NewTable(parent)

	name := intern.InternString("outer")
	sym := &Symbol{Kind: KindConst, Name: name}
	parent.Insert(name, sym)

	_, ok := child.LookupLocal(name)
	assert.False(t, ok, "LookupLocal must not see the parent's entries")

	got, ok := child.Lookup(name)
	assert.True(t, ok, "Lookup must walk up to the parent")
	assert.True(t, got == sym)
}

func TestTableLookupPrefersLocalShadow(t *testing.T) {
	intern := interner.New()
	parent := NewTable(nil)
	child := NewTable(parent)

	name := intern.InternString("x")
	outer := &Symbol{Kind: KindConst, Name: name}
	inner := &Symbol{Kind: KindVar, Name: name}

	parent.Insert(name, outer)
	child.Insert(name, inner)

	got, ok := child.Lookup(name)
	assert.True(t, ok)
	assert.True(t, got == inner, "expected the child's binding to shadow the parent's")
}

func TestTableEntriesPreservesInsertionOrder(t *testing.T) {
	intern := interner.New()
	tab := NewTable(nil)

	a := intern.InternString("a")
	b := intern.InternString("b")
	c := intern.InternString("c")

	tab.Insert(b, &Symbol{Name: b})
	tab.Insert(a, &Symbol{Name: a})
	tab.Insert(c, &Symbol{Name: c})

	entries := tab.Entries()
	assert.Equal(t, 3, len(entries))
	assert.Equal(t, b, entries[0].Name)
	assert.Equal(t, a, entries[1].Name)
	assert.Equal(t, c, entries[2].Name)
}

func TestTableFreezePreventsFurtherInserts(t *testing.T) {
	intern := interner.New()
	tab := NewTable(nil)

	assert.False(t, tab.IsFrozen())
	tab.Freeze()
	assert.True(t, tab.IsFrozen())

	defer func() {
		r := recover()
		assert.True(t, r != nil, "expected insert into a frozen table to panic")
	}()

	name := intern.InternString("x")
	tab.Insert(name, &Symbol{Name: name})
}
