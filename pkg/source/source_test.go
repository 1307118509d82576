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
package source

import "testing"

func TestFile_Padding(t *testing.T) {
	f := NewFile("m.sunder", []byte("ab"))
	padded := f.Padded()

	if len(padded) != 4 || padded[0] != 0 || padded[3] != 0 {
		t.Fatalf("expected NUL-padded buffer, got %v", padded)
	}

	if got := string(f.Text()); got != "ab" {
		t.Fatalf("expected text \"ab\", got %q", got)
	}
}

func TestFile_FindFirstEnclosingLine_00(t *testing.T) {
	f := NewFile("m.sunder", []byte("foo\nbar\nbaz"))
	line := f.FindFirstEnclosingLine(NewSpan(4, 5))

	if line.Number() != 2 || line.String() != "bar" {
		t.Fatalf("expected line 2 \"bar\", got %d %q", line.Number(), line.String())
	}
}

func TestFile_FindFirstEnclosingLine_01(t *testing.T) {
	f := NewFile("m.sunder", []byte("foo\nbar"))
	line := f.FindFirstEnclosingLine(NewSpan(0, 1))

	if line.Number() != 1 || line.String() != "foo" {
		t.Fatalf("expected line 1 \"foo\", got %d %q", line.Number(), line.String())
	}
}

func TestFile_FindFirstEnclosingLine_PastEnd(t *testing.T) {
	f := NewFile("m.sunder", []byte("foo\nbar"))
	line := f.FindFirstEnclosingLine(NewSpan(100, 100))

	if line.Number() != 2 {
		t.Fatalf("expected last line (2), got %d", line.Number())
	}
}

func TestSpan_Join(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(4, 9)
	j := a.Join(b)

	if j.Start() != 2 || j.End() != 9 {
		t.Fatalf("expected [2,9), got [%d,%d)", j.Start(), j.End())
	}
}

func TestLocation_NoLocation(t *testing.T) {
	if NoLocation.HasLocation() {
		t.Fatalf("expected NoLocation to report no location")
	}

	if NoLocation.String() != "<no location>" {
		t.Fatalf("unexpected rendering: %q", NoLocation.String())
	}
}
