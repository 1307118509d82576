package bitarr

import "testing"

func TestBitArr_SetGet(t *testing.T) {
	b := New(8)
	b.Set(0)
	b.Set(7)

	if !b.Get(0) || !b.Get(7) {
		t.Fatalf("expected bits 0 and 7 set")
	}

	if b.Get(1) {
		t.Fatalf("expected bit 1 clear")
	}
}

func TestBitArr_FromUint64RoundTrip(t *testing.T) {
	b := FromUint64(8, 0xA5)

	if got := b.Uint64(); got != 0xA5 {
		t.Fatalf("expected 0xA5, got %#x", got)
	}
}

func TestBitArr_FromUint64Truncates(t *testing.T) {
	b := FromUint64(4, 0xFF)

	if got := b.Uint64(); got != 0xF {
		t.Fatalf("expected truncation to 0xF, got %#x", got)
	}
}

func TestBitArr_ShiftLeft(t *testing.T) {
	b := FromUint64(8, 0x01)
	shifted := b.ShiftLeft(3)

	if got := shifted.Uint64(); got != 0x08 {
		t.Fatalf("expected 0x08, got %#x", got)
	}
}

func TestBitArr_ShiftLeftOverflowDiscards(t *testing.T) {
	b := FromUint64(8, 0xFF)
	shifted := b.ShiftLeft(6)

	if got := shifted.Uint64(); got != 0xC0 {
		t.Fatalf("expected 0xC0, got %#x", got)
	}
}

func TestBitArr_ShiftRightLogical(t *testing.T) {
	b := FromUint64(8, 0x80)
	shifted := b.ShiftRightLogical(4)

	if got := shifted.Uint64(); got != 0x08 {
		t.Fatalf("expected 0x08, got %#x", got)
	}
}

func TestBitArr_ShiftRightArithmeticSignExtends(t *testing.T) {
	b := FromUint64(8, 0x80)
	shifted := b.ShiftRightArithmetic(4)

	if got := shifted.Uint64(); got != 0xF8 {
		t.Fatalf("expected sign-extended 0xF8, got %#x", got)
	}
}

func TestBitArr_ShiftRightArithmeticPositive(t *testing.T) {
	b := FromUint64(8, 0x40)
	shifted := b.ShiftRightArithmetic(4)

	if got := shifted.Uint64(); got != 0x04 {
		t.Fatalf("expected 0x04, got %#x", got)
	}
}

func TestBitArr_AndOrXor(t *testing.T) {
	a := FromUint64(8, 0xF0)
	b := FromUint64(8, 0xFF)

	if got := a.And(b).Uint64(); got != 0xF0 {
		t.Fatalf("expected And 0xF0, got %#x", got)
	}

	if got := a.Or(b).Uint64(); got != 0xFF {
		t.Fatalf("expected Or 0xFF, got %#x", got)
	}

	if got := a.Xor(b).Uint64(); got != 0x0F {
		t.Fatalf("expected Xor 0x0F, got %#x", got)
	}
}

func TestBitArr_Not(t *testing.T) {
	a := FromUint64(8, 0x0F)

	if got := a.Not().Uint64(); got != 0xF0 {
		t.Fatalf("expected Not 0xF0, got %#x", got)
	}
}

func TestBitArr_NegateRoundTrip(t *testing.T) {
	a := FromUint64(8, 0x01)
	neg := a.Negate()

	if got := neg.Uint64(); got != 0xFF {
		t.Fatalf("expected two's-complement of 1 to be 0xFF, got %#x", got)
	}

	if got := neg.Negate().Uint64(); got != 0x01 {
		t.Fatalf("expected double negation to round-trip, got %#x", got)
	}
}

func TestBitArr_NegateZero(t *testing.T) {
	z := New(8)

	if got := z.Negate().Uint64(); got != 0 {
		t.Fatalf("expected -0 == 0, got %#x", got)
	}
}

func TestBitArr_String(t *testing.T) {
	b := FromUint64(4, 0b1010)

	if got := b.String(); got != "1010" {
		t.Fatalf("expected \"1010\", got %q", got)
	}
}
