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

package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

func TestScanSimpleOperators(t *testing.T) {
	src := []byte("0.8 0.2 0.1 rg (hi) Tj")
	tokens, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := []Token{
		{Op: "rg", Operands: []pdflib.Object{pdflib.Real(0.8), pdflib.Real(0.2), pdflib.Real(0.1)}},
		{Op: "Tj", Operands: []pdflib.Object{pdflib.String("hi")}},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScanArrayOperand(t *testing.T) {
	src := []byte("[1 2 3] 0 d")
	tokens, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Op != "d" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	arr, ok := tokens[0].Operands[0].(pdflib.Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("expected a 3-element array operand, got %#v", tokens[0].Operands[0])
	}
}

func TestScanDictOperand(t *testing.T) {
	src := []byte("<< /Type /ExtGState /ca 0.5 >> gs")
	tokens, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Op != "gs" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	dict, ok := tokens[0].Operands[0].(pdflib.Dict)
	if !ok {
		t.Fatalf("expected a dict operand, got %#v", tokens[0].Operands[0])
	}
	if dict["Type"] != pdflib.Name("ExtGState") {
		t.Errorf("dict[Type] = %v; want ExtGState", dict["Type"])
	}
}

func TestScanInlineImage(t *testing.T) {
	src := []byte("q BI /W 1 /H 1 /BPC 8 /CS /G ID \x7f EI Q")
	tokens, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	var found bool
	for _, tok := range tokens {
		if tok.Op != "BI" {
			continue
		}
		found = true
		if len(tok.Operands) != 1 {
			t.Fatalf("BI token should carry exactly one operand, got %d", len(tok.Operands))
		}
		img, ok := tok.Operands[0].(*InlineImage)
		if !ok {
			t.Fatalf("BI operand should be *InlineImage, got %T", tok.Operands[0])
		}
		if string(img.Data) != "\x7f" {
			t.Errorf("inline image data = %q; want %q", img.Data, "\x7f")
		}
	}
	if !found {
		t.Fatal("no BI token produced")
	}
}

func TestScanRoundTripThroughEncode(t *testing.T) {
	src := []byte("1 1 1 sc (hi) Tj")
	tokens, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	out, err := Encode(tokens)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	reparsed, err := NewScanner(out).Scan()
	if err != nil {
		t.Fatalf("re-scanning encoded output failed: %v", err)
	}
	if diff := cmp.Diff(tokens, reparsed); diff != "" {
		t.Errorf("round trip through Encode changed tokens (-want +got):\n%s", diff)
	}
}
