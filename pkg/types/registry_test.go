package types

import (
	"testing"

	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func TestRegistryInternsPointerByStructuralName(t *testing.T) {
	r := NewRegistry(AMD64)

	a := r.Pointer(r.S32)
	b := r.Pointer(r.S32)

	assert.True(t, a == b, "expected two requests for *s32 to return the same object")
	assert.Equal(t, "*s32", a.Name())
}

func TestRegistryArchAffectsWordSizedTypes(t *testing.T) {
	amd64 := NewRegistry(AMD64)
	wasm32 := NewRegistry(WASM32)

	assert.Equal(t, uint64(8), amd64.USizeT.Size)
	assert.Equal(t, uint64(4), wasm32.USizeT.Size)

	assert.Equal(t, uint64(8), amd64.Pointer(amd64.S8).Size)
	assert.Equal(t, uint64(4), wasm32.Pointer(wasm32.S8).Size)
}

func TestRegistrySignedBounds(t *testing.T) {
	r := NewRegistry(AMD64)

	assert.Equal(t, int64(-128), r.S8.Min.Int64())
	assert.Equal(t, int64(127), r.S8.Max.Int64())
}

func TestRegistryUnsignedBounds(t *testing.T) {
	r := NewRegistry(AMD64)

	assert.Equal(t, int64(0), r.U8.Min.Int64())
	assert.Equal(t, int64(255), r.U8.Max.Int64())
}

func TestRegistrySliceSizeIsTwoWords(t *testing.T) {
	r := NewRegistry(AMD64)

	sl := r.Slice(r.S32)
	assert.Equal(t, uint64(16), sl.Size)
	assert.Equal(t, "[]s32", sl.Name())
}

func TestRegistryArraySizeMultipliesBase(t *testing.T) {
	r := NewRegistry(AMD64)

	arr := r.Array(4, r.U8)
	assert.Equal(t, uint64(4), arr.Size)
	assert.Equal(t, "[4]u8", arr.Name())
}

func TestRegistryFunctionNameEncodesSignature(t *testing.T) {
	r := NewRegistry(AMD64)

	fn := r.Function([]*Type{r.S32, r.S32}, r.BoolT)
	assert.Equal(t, "func(s32,s32)bool", fn.Name())
}

func TestParseArchRoundTrips(t *testing.T) {
	a, ok := ParseArch("arm64")
	assert.True(t, ok)
	assert.Equal(t, ARM64, a)

	_, ok = ParseArch("sparc")
	assert.False(t, ok)
}

func TestTypeIsFloatAndIsInteger(t *testing.T) {
	r := NewRegistry(AMD64)

	assert.True(t, r.F32T.IsFloat())
	assert.False(t, r.F32T.IsInteger())
	assert.True(t, r.S32.IsInteger())
	assert.True(t, r.S32.IsSignedInteger())
	assert.True(t, r.U32.IsUnsignedInteger())
}

func TestTypeEqualUsesStructuralName(t *testing.T) {
	r := NewRegistry(AMD64)

	a := r.Pointer(r.S32)
	b := &Type{name: "*s32", Kind: Pointer}

	assert.True(t, a.Equal(b), "expected Equal to compare by structural name")
}
