// Copyright (C) 2026 The PDF-Flux Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdflib

import (
	"bytes"
	"testing"
)

func pdfString(t *testing.T, obj Object) string {
	t.Helper()
	var buf bytes.Buffer
	if err := obj.PDF(&buf); err != nil {
		t.Fatalf("PDF() returned error: %v", err)
	}
	return buf.String()
}

func TestBooleanPDF(t *testing.T) {
	if got := pdfString(t, Boolean(true)); got != "true" {
		t.Errorf("Boolean(true).PDF() = %q; want %q", got, "true")
	}
	if got := pdfString(t, Boolean(false)); got != "false" {
		t.Errorf("Boolean(false).PDF() = %q; want %q", got, "false")
	}
}

func TestIntegerPDF(t *testing.T) {
	if got := pdfString(t, Integer(-42)); got != "-42" {
		t.Errorf("Integer(-42).PDF() = %q; want %q", got, "-42")
	}
}

func TestRealPDFAlwaysHasDecimalPoint(t *testing.T) {
	if got := pdfString(t, Real(1)); got != "1." {
		t.Errorf("Real(1).PDF() = %q; want %q", got, "1.")
	}
	if got := pdfString(t, Real(0.5)); got != "0.5" {
		t.Errorf("Real(0.5).PDF() = %q; want %q", got, "0.5")
	}
}

func TestNamePDFEscapesSpecialCharacters(t *testing.T) {
	if got := pdfString(t, Name("A B")); got != "/A#20B" {
		t.Errorf("Name(\"A B\").PDF() = %q; want %q", got, "/A#20B")
	}
	if got := pdfString(t, Name("Plain")); got != "/Plain" {
		t.Errorf("Name(\"Plain\").PDF() = %q; want %q", got, "/Plain")
	}
}

func TestStringPDFEscapesUnbalancedParens(t *testing.T) {
	got := pdfString(t, String("a(b"))
	want := `(a\(b)`
	if got != want {
		t.Errorf("String(\"a(b\").PDF() = %q; want %q", got, want)
	}
}

func TestStringPDFLeavesBalancedParensAlone(t *testing.T) {
	got := pdfString(t, String("a(b)c(d)e"))
	want := "(a(b)c(d)e)"
	if got != want {
		t.Errorf("balanced parens should not be escaped: got %q want %q", got, want)
	}
}

func TestStringTextUTF16BE(t *testing.T) {
	// "Hi" as UTF-16BE with BOM.
	s := String([]byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'})
	got, err := s.Text()
	if err != nil {
		t.Fatalf("Text() returned error: %v", err)
	}
	if got != "Hi" {
		t.Errorf("Text() = %q; want %q", got, "Hi")
	}
}

func TestStringTextPDFDocFallback(t *testing.T) {
	s := String("Plain ASCII Title")
	got, err := s.Text()
	if err != nil {
		t.Fatalf("Text() returned error: %v", err)
	}
	if got != "Plain ASCII Title" {
		t.Errorf("Text() = %q; want %q", got, "Plain ASCII Title")
	}
}

func TestDictSortedKeysIsDeterministic(t *testing.T) {
	d := Dict{"Zeta": Integer(1), "Alpha": Integer(2), "Mid": Integer(3)}
	keys := d.SortedKeys()
	want := []Name{"Alpha", "Mid", "Zeta"}
	if len(keys) != len(want) {
		t.Fatalf("SortedKeys() length = %d; want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("SortedKeys()[%d] = %v; want %v", i, keys[i], want[i])
		}
	}
}

func TestAsFloat(t *testing.T) {
	if f, ok := AsFloat(Integer(5)); !ok || f != 5 {
		t.Errorf("AsFloat(Integer(5)) = %v,%v; want 5,true", f, ok)
	}
	if f, ok := AsFloat(Real(1.5)); !ok || f != 1.5 {
		t.Errorf("AsFloat(Real(1.5)) = %v,%v; want 1.5,true", f, ok)
	}
	if _, ok := AsFloat(Name("x")); ok {
		t.Error("AsFloat(Name) should return ok=false")
	}
}
