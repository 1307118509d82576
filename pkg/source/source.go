// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package source provides the location machinery shared by every stage of the
// pipeline: a Span is a contiguous range within a module's source text, and a
// File is the padded source buffer a Span is relative to.
package source

import (
	"fmt"
	"os"
)

// Span represents a contiguous slice of a module's source text. Indices are
// retained rather than the substring itself so that an enclosing line can
// still be recovered for diagnostics.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span over [start,end), checking the internal
// invariant that a span never has negative length.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the index of the first character of this span.
func (s Span) Start() int {
	return s.start
}

// End returns one past the index of the last character of this span.
func (s Span) End() int {
	return s.end
}

// Length returns the number of characters covered by this span.
func (s Span) Length() int {
	return s.end - s.start
}

// Join returns the smallest span enclosing both s and other.
func (s Span) Join(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}

	end := s.end
	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

// Line describes a single physical line within a source file: its 1-based
// line number and its span within the file's contents.
type Line struct {
	text   []rune
	span   Span
	number int
}

// String returns the text of this line.
func (l Line) String() string {
	return string(l.text[l.span.start:l.span.end])
}

// Number returns the 1-based line number of this line.
func (l Line) Number() int {
	return l.number
}

// Span returns this line's span within the enclosing file.
func (l Line) Span() Span {
	return l.span
}

// File represents the source text of a single module, named the way the
// compiler reports it in diagnostics (typically a relative file path). The
// contents are padded at runes -1 and len+1 with NUL sentinels by NewFile so
// the lexer's one-character lookahead/lookbehind is always defined without
// bounds checks (spec.md section 4.1).
type File struct {
	name     string
	contents []rune
}

// NewFile constructs a File from raw module source bytes, applying the NUL
// padding the lexer's cursor relies upon.
func NewFile(name string, contents []byte) *File {
	runes := make([]rune, 0, len(contents)+2)
	runes = append(runes, 0)
	runes = append(runes, []rune(string(contents))...)
	runes = append(runes, 0)

	return &File{name, runes}
}

// ReadFile reads a module's source text from disk and pads it, or returns an
// error if the file cannot be read.
func ReadFile(name string) (*File, error) {
	bytes, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return NewFile(name, bytes), nil
}

// Name returns the module name (conventionally the file path) this source
// text was read from.
func (f *File) Name() string {
	return f.name
}

// Padded returns the full NUL-padded rune buffer, index 0 being the leading
// sentinel. Lexer positions are expressed relative to Text(), i.e. offset by
// one from indices into Padded().
func (f *File) Padded() []rune {
	return f.contents
}

// Text returns the unpadded module source, i.e. Padded() with the two
// sentinel runes stripped.
func (f *File) Text() []rune {
	return f.contents[1 : len(f.contents)-1]
}

// FindFirstEnclosingLine determines the first physical line enclosing the
// start of the given span (expressed in Text() coordinates). If the span
// starts beyond the end of the file, the last physical line is returned.
func (f *File) FindFirstEnclosingLine(span Span) Line {
	text := f.Text()
	index := span.start
	num := 1
	start := 0

	for i := 0; i < len(text); i++ {
		if i == index {
			return Line{text, Span{start, findEndOfLine(index, text)}, num}
		} else if text[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return Line{text, Span{start, len(text)}, num}
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}

// Location is a fully-qualified source position, suitable for printing in a
// diagnostic header line (e.g. "foo.sunder:12:4").
type Location struct {
	Module string
	Line   int
	Column int
}

// NoLocation is the sentinel used for diagnostics the core cannot attribute
// to a specific source position (spec.md section 7).
var NoLocation = Location{"", 0, 0}

// HasLocation reports whether this is a real location rather than NoLocation.
func (l Location) HasLocation() bool {
	return l.Module != ""
}

func (l Location) String() string {
	if !l.HasLocation() {
		return "<no location>"
	}

	return fmt.Sprintf("%s:%d:%d", l.Module, l.Line, l.Column)
}

// LocationOf computes the line/column location of a span's start within a
// file, counting both lines and columns from 1.
func LocationOf(f *File, span Span) Location {
	line := f.FindFirstEnclosingLine(span)
	col := span.Start() - line.Span().Start() + 1

	return Location{f.Name(), line.Number(), col}
}
