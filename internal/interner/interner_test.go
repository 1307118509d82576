package interner

import "testing"

func TestIntern_EqualBytesEqualPointer(t *testing.T) {
	tbl := New()
	a := tbl.InternString("foo")
	b := tbl.Intern([]byte("foo"))

	if a != b {
		t.Fatalf("expected equal bytes to yield the same pointer")
	}
}

func TestIntern_DifferentBytesDifferentPointer(t *testing.T) {
	tbl := New()
	a := tbl.InternString("foo")
	b := tbl.InternString("bar")

	if a == b {
		t.Fatalf("expected distinct bytes to yield distinct pointers")
	}
}

func TestIntern_MutationIsolation(t *testing.T) {
	tbl := New()
	src := []byte("mutate")
	e := tbl.Intern(src)
	src[0] = 'X'

	if e.String() != "mutate" {
		t.Fatalf("interned entry should not alias caller's slice, got %q", e.String())
	}
}

func TestInternFmt(t *testing.T) {
	tbl := New()
	a := tbl.InternFmt("%s#%d", "T", 2)
	b := tbl.InternString("T#2")

	if a != b {
		t.Fatalf("expected InternFmt to canonicalize the same as InternString")
	}
}
