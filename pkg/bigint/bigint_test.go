package bigint

import (
	"math"
	"testing"
)

func TestInt_ArithmeticBasics(t *testing.T) {
	a := FromInt64(7)
	b := FromInt64(3)

	if a.Add(b).String() != "10" {
		t.Fatalf("expected 7+3=10, got %s", a.Add(b))
	}

	if a.Sub(b).String() != "4" {
		t.Fatalf("expected 7-3=4, got %s", a.Sub(b))
	}

	if a.Mul(b).String() != "21" {
		t.Fatalf("expected 7*3=21, got %s", a.Mul(b))
	}

	if a.Quo(b).String() != "2" {
		t.Fatalf("expected 7/3=2, got %s", a.Quo(b))
	}

	if a.Rem(b).String() != "1" {
		t.Fatalf("expected 7%%3=1, got %s", a.Rem(b))
	}
}

func TestInt_FromStringRadix(t *testing.T) {
	v, ok := FromStringRadix("ff", 16)
	if !ok || v.String() != "255" {
		t.Fatalf("expected 0xff==255, got %v %v", v, ok)
	}
}

func TestInt_FitsUnsigned(t *testing.T) {
	if !FromInt64(255).FitsUnsigned(8) {
		t.Fatalf("expected 255 to fit in u8")
	}

	if FromInt64(256).FitsUnsigned(8) {
		t.Fatalf("expected 256 not to fit in u8")
	}

	if FromInt64(-1).FitsUnsigned(8) {
		t.Fatalf("expected -1 not to fit unsigned")
	}
}

func TestInt_FitsSigned(t *testing.T) {
	if !FromInt64(-128).FitsSigned(8) {
		t.Fatalf("expected -128 to fit in i8")
	}

	if FromInt64(128).FitsSigned(8) {
		t.Fatalf("expected 128 not to fit in i8")
	}

	if FromInt64(127).Cmp(FromInt64(127)) != 0 {
		t.Fatalf("expected Cmp equal")
	}
}

func TestInt_WrapUnsigned(t *testing.T) {
	if got := FromInt64(-1).WrapUnsigned(8).String(); got != "255" {
		t.Fatalf("expected -1 wrapped to u8 == 255, got %s", got)
	}

	if got := FromInt64(256).WrapUnsigned(8).String(); got != "0" {
		t.Fatalf("expected 256 wrapped to u8 == 0, got %s", got)
	}
}

func TestInt_WrapSigned(t *testing.T) {
	if got := FromInt64(255).WrapSigned(8).String(); got != "-1" {
		t.Fatalf("expected 255 wrapped to i8 == -1, got %s", got)
	}

	if got := FromInt64(127).WrapSigned(8).String(); got != "127" {
		t.Fatalf("expected 127 wrapped to i8 == 127, got %s", got)
	}
}

func TestInt_ToBitArrRoundTripUnsigned(t *testing.T) {
	a := FromInt64(0xA5)
	b := a.ToBitArr(8)

	if got := FromBitArrUnsigned(b); got.Cmp(a) != 0 {
		t.Fatalf("expected round trip to preserve value, got %s", got)
	}
}

func TestInt_ToBitArrRoundTripSigned(t *testing.T) {
	a := FromInt64(-1)
	b := a.ToBitArr(8)

	if got := FromBitArrSigned(b); got.Cmp(a) != 0 {
		t.Fatalf("expected signed round trip -1, got %s", got)
	}

	pos := FromInt64(42)
	bp := pos.ToBitArr(8)

	if got := FromBitArrSigned(bp); got.Cmp(pos) != 0 {
		t.Fatalf("expected signed round trip 42, got %s", got)
	}
}

func TestPow2(t *testing.T) {
	if got := Pow2(24).String(); got != "16777216" {
		t.Fatalf("expected 2^24==16777216, got %s", got)
	}

	if got := Pow2(0).String(); got != "1" {
		t.Fatalf("expected 2^0==1, got %s", got)
	}
}

func TestFromFloat64TruncatesTowardZero(t *testing.T) {
	if got := FromFloat64(3.9).String(); got != "3" {
		t.Fatalf("expected 3.9 truncated to 3, got %s", got)
	}

	if got := FromFloat64(-3.9).String(); got != "-3" {
		t.Fatalf("expected -3.9 truncated to -3, got %s", got)
	}
}

func TestFromFloat64ExactForLargeMagnitudes(t *testing.T) {
	f := math.Pow(2, 62)

	if got := FromFloat64(f).Cmp(Pow2(62)); got != 0 {
		t.Fatalf("expected 2^62 to round-trip exactly through FromFloat64")
	}
}
