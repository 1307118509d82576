package value

import (
	"testing"

	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func TestAsBigIntPromotesByte(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)

	v := NewByte(reg.ByteT, 7)
	assert.Equal(t, int64(7), v.AsBigInt().Int64())
}

func TestAsBigIntReturnsIntField(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)

	v := NewInt(reg.S32, bigint.FromInt64(42))
	assert.Equal(t, int64(42), v.AsBigInt().Int64())
}

func TestCloneArrayIsIndependent(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)
	arrT := reg.Array(2, reg.S32)

	orig := NewArray(arrT, []*Value{NewInt(reg.S32, bigint.FromInt64(1)), NewInt(reg.S32, bigint.FromInt64(2))}, nil)
	clone := orig.Clone()

	clone.Elems[0].Int = bigint.FromInt64(99)

	assert.Equal(t, int64(1), orig.Elems[0].Int.Int64())
	assert.Equal(t, int64(99), clone.Elems[0].Int.Int64())
}

func TestCloneStructIsIndependent(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)
	structT := reg.NewNamed("Point", types.Struct)

	orig := NewStruct(structT, []*Value{NewInt(reg.S32, bigint.FromInt64(1)), NewInt(reg.S32, bigint.FromInt64(2))})
	clone := orig.Clone()

	clone.Fields[1].Int = bigint.FromInt64(0)

	assert.Equal(t, int64(2), orig.Fields[1].Int.Int64())
	assert.Equal(t, int64(0), clone.Fields[1].Int.Int64())
}

func TestCloneNilIsNil(t *testing.T) {
	var v *Value
	assert.True(t, v.Clone() == nil)
}

func TestNewPointerCarriesAddress(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)
	ptrT := reg.Pointer(reg.S32)
	addr := symbol.Address{Kind: symbol.AddrStatic, StaticLabel: "x"}

	v := NewPointer(ptrT, addr)
	assert.Equal(t, addr, v.Addr)
}

func TestNewUnionCarriesMemberName(t *testing.T) {
	reg := types.NewRegistry(types.AMD64)
	unionT := reg.NewNamed("Either", types.Union)

	v := NewUnion(unionT, "left", NewInt(reg.S32, bigint.FromInt64(5)))
	assert.Equal(t, "left", v.UnionMember)
	assert.Equal(t, int64(5), v.UnionValue.Int.Int64())
}
