package util

import (
	"slices"
	"strings"
)

// Path describes a `::`-separated namespace path, such as the path named by a
// `namespace A::B::C;` declaration or the qualified name under which a symbol
// is installed into the global symbol table. A path can be either *absolute*
// (rooted at the global namespace, as produced by a `::`-prefixed symbol) or
// *relative* (resolved starting from the current lexical scope).
type Path struct {
	absolute bool
	segments []string
}

// NewAbsolutePath constructs a new absolute path from the given segments.
func NewAbsolutePath(segments ...string) Path {
	return Path{true, segments}
}

// NewRelativePath constructs a new relative path from the given segments.
func NewRelativePath(segments ...string) Path {
	return Path{false, segments}
}

// Depth returns the number of segments in this path.
func (p *Path) Depth() uint {
	return uint(len(p.segments))
}

// IsAbsolute determines whether or not this is an absolute (`::`-rooted) path.
func (p *Path) IsAbsolute() bool {
	return p.absolute
}

// Head returns the first (outermost) segment in this path.
func (p *Path) Head() string {
	return p.segments[0]
}

// Dehead removes the head from this path, returning an otherwise identical
// relative path.
func (p *Path) Dehead() Path {
	return Path{false, p.segments[1:]}
}

// Tail returns the last (innermost) segment in this path.
func (p *Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Get returns the nth segment of this path.
func (p *Path) Get(nth uint) string {
	return p.segments[nth]
}

// Equals determines whether two paths name the same namespace.
func (p *Path) Equals(other Path) bool {
	return p.absolute == other.absolute && slices.Equal(p.segments, other.segments)
}

// PrefixOf checks whether this path is a prefix of the other.
func (p *Path) PrefixOf(other Path) bool {
	if len(p.segments) > len(other.segments) {
		return false
	}

	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}

	return true
}

// Parent returns the path to the enclosing namespace of this path.
func (p *Path) Parent() Path {
	n := p.Depth() - 1
	return Path{p.absolute, p.segments[0:n]}
}

// Extend returns this path extended with a new innermost segment.
func (p *Path) Extend(tail string) Path {
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	segments = append(segments, tail)

	return Path{p.absolute, segments}
}

// String renders this path using the language's `::` namespace separator.
func (p *Path) String() string {
	prefix := ""
	if p.absolute {
		prefix = "::"
	}

	return prefix + strings.Join(p.segments, "::")
}
