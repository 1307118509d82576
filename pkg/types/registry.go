package types

import (
	"fmt"

	"github.com/ashn-dot-dev/sunder/pkg/bigint"
)

// Arch is a supported target architecture (spec.md section 6): only affects
// usize/ssize/pointer width and slice layout.
type Arch int

const (
	AMD64 Arch = iota
	ARM64
	WASM32
)

// WordSize returns the pointer/usize/ssize width in bytes for this
// architecture: 8 for amd64/arm64, 4 for wasm32.
func (a Arch) WordSize() uint64 {
	if a == WASM32 {
		return 4
	}

	return 8
}

func (a Arch) String() string {
	switch a {
	case AMD64:
		return "amd64"
	case ARM64:
		return "arm64"
	case WASM32:
		return "wasm32"
	default:
		return "unknown"
	}
}

// ParseArch parses a --target/SUNDER_ARCH string into an Arch.
func ParseArch(s string) (Arch, bool) {
	switch s {
	case "amd64":
		return AMD64, true
	case "arm64":
		return ARM64, true
	case "wasm32":
		return WASM32, true
	default:
		return 0, false
	}
}

// Registry is the process-wide interning table for types (spec.md section
// 3.3/3.6): requesting a pointer/array/slice/function type with the same
// parameters always returns the same object, keyed by canonical structural
// name. It also owns the Context's builtin primitive types, which are
// architecture-dependent for usize/ssize/pointer width.
type Registry struct {
	arch  Arch
	table map[string]*Type

	// builtins, constructed once at NewRegistry and reused by name.
	Any, VoidT, BoolT, ByteT                     *Type
	S8, S16, S32, S64, SSizeT                    *Type
	U8, U16, U32, U64, USizeT                    *Type
	IntegerT, F32T, F64T, RealT                  *Type
}

// NewRegistry constructs a Registry for the given architecture, pre-
// populating every primitive type.
func NewRegistry(arch Arch) *Registry {
	r := &Registry{arch: arch, table: make(map[string]*Type)}

	r.Any = r.intern(&Type{name: "any", Kind: Any, Size: 0, Align: 0})
	r.VoidT = r.intern(&Type{name: "void", Kind: Void, Size: 0, Align: 0})
	r.BoolT = r.intern(&Type{name: "bool", Kind: Bool, Size: 1, Align: 1})
	r.ByteT = r.intern(&Type{name: "byte", Kind: Byte, Size: 1, Align: 1})

	r.S8 = r.sizedSigned("s8", 1)
	r.S16 = r.sizedSigned("s16", 2)
	r.S32 = r.sizedSigned("s32", 4)
	r.S64 = r.sizedSigned("s64", 8)
	r.SSizeT = r.sizedSigned("ssize", arch.WordSize())

	r.U8 = r.sizedUnsigned("u8", 1)
	r.U16 = r.sizedUnsigned("u16", 2)
	r.U32 = r.sizedUnsigned("u32", 4)
	r.U64 = r.sizedUnsigned("u64", 8)
	r.USizeT = r.sizedUnsigned("usize", arch.WordSize())

	r.IntegerT = r.intern(&Type{name: "integer", Kind: Integer})
	r.F32T = r.intern(&Type{name: "f32", Kind: F32, Size: 4, Align: 4})
	r.F64T = r.intern(&Type{name: "f64", Kind: F64, Size: 8, Align: 8})
	r.RealT = r.intern(&Type{name: "real", Kind: Real})

	return r
}

// Arch returns the architecture this registry was constructed for.
func (r *Registry) Arch() Arch {
	return r.arch
}

func (r *Registry) sizedSigned(name string, size uint64) *Type {
	width := size * 8
	max := powerOfTwo(width - 1).Sub(bigint.FromInt64(1))
	min := powerOfTwo(width - 1).Neg()

	return r.intern(&Type{name: name, Kind: signedKindForSize(size), Size: size, Align: size, Min: min, Max: max})
}

func (r *Registry) sizedUnsigned(name string, size uint64) *Type {
	width := size * 8
	max := powerOfTwo(width).Sub(bigint.FromInt64(1))
	min := bigint.FromInt64(0)

	return r.intern(&Type{name: name, Kind: unsignedKindForSize(size), Size: size, Align: size, Min: min, Max: max})
}

func powerOfTwo(bits uint64) *bigint.Int {
	v := bigint.FromInt64(1)
	two := bigint.FromInt64(2)

	for i := uint64(0); i < bits; i++ {
		v = v.Mul(two)
	}

	return v
}

func signedKindForSize(size uint64) Kind {
	switch size {
	case 1:
		return S8
	case 2:
		return S16
	case 4:
		return S32
	default:
		return S64
	}
}

func unsignedKindForSize(size uint64) Kind {
	switch size {
	case 1:
		return U8
	case 2:
		return U16
	case 4:
		return U32
	default:
		return U64
	}
}

func (r *Registry) intern(t *Type) *Type {
	if existing, ok := r.table[t.name]; ok {
		return existing
	}

	r.table[t.name] = t

	return t
}

// Pointer interns and returns the pointer-to-base type, sized to the
// architecture word size.
func (r *Registry) Pointer(base *Type) *Type {
	name := "*" + base.name

	return r.intern(&Type{name: name, Kind: Pointer, Base: base, Size: r.arch.WordSize(), Align: r.arch.WordSize()})
}

// Array interns and returns the [count]base type. Per spec.md section 4.4,
// callers must check count*base.Size against SIZEOF_MAX before calling this
// (the registry itself does not re-validate).
func (r *Registry) Array(count uint64, base *Type) *Type {
	name := fmt.Sprintf("[%d]%s", count, base.name)
	size := count * base.Size
	align := base.Align

	if align == 0 {
		align = 1
	}

	return r.intern(&Type{name: name, Kind: Array, Base: base, Count: count, Size: size, Align: align})
}

// Slice interns and returns the []base type: size = 2 * word-size (pointer,
// count), per spec.md section 3.3. The spec's "pointer before slice"
// ordering invariant (section 3.6) is the caller's (resolver's) job to
// respect by requesting Pointer(base) before Slice(base).
func (r *Registry) Slice(base *Type) *Type {
	name := "[]" + base.name
	word := r.arch.WordSize()

	return r.intern(&Type{name: name, Kind: Slice, Base: base, Size: 2 * word, Align: word})
}

// Function interns and returns the func(params...)ret type. Functions have
// no runtime size/alignment of their own (they are referenced only through
// their address).
func (r *Registry) Function(params []*Type, ret *Type) *Type {
	name := "func("
	for i, p := range params {
		if i > 0 {
			name += ","
		}

		name += p.name
	}

	name += ")" + ret.name

	return r.intern(&Type{name: name, Kind: Function, Params: params, Return: ret, Size: r.arch.WordSize(), Align: r.arch.WordSize()})
}

// NewNamed allocates (but does not yet intern under a finished structure) a
// named struct/union/enum/extern type shell, used by the resolver's two-
// phase completion state machine (spec.md section 4.4): the type is
// installed into scope with IsComplete=false, then mutated in place once
// members finish resolving.
func (r *Registry) NewNamed(name string, kind Kind) *Type {
	return r.intern(&Type{name: name, Kind: kind})
}

// Lookup returns a previously interned type by canonical name, if any.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.table[name]

	return t, ok
}

// All returns every interned type, in an unspecified order.
func (r *Registry) All() []*Type {
	out := make([]*Type, 0, len(r.table))
	for _, t := range r.table {
		out = append(out, t)
	}

	return out
}
