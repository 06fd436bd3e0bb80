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

package rewrite

import (
	"math"
	"testing"

	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
	"github.com/bhyresh-dev/PDF-Flux/token"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func operandFloats(t *testing.T, operands []pdflib.Object) []float64 {
	t.Helper()
	out := make([]float64, len(operands))
	for i, o := range operands {
		f, ok := pdflib.AsFloat(o)
		if !ok {
			t.Fatalf("operand %d (%#v) is not numeric", i, o)
		}
		out[i] = f
	}
	return out
}

func TestTokensScenarioS1(t *testing.T) {
	// A 0.8 0.2 0.1 rg under FULL becomes 0.2 0.8 0.9 rg.
	tokens := []token.Token{
		{Op: "rg", Operands: []pdflib.Object{pdflib.Real(0.8), pdflib.Real(0.2), pdflib.Real(0.1)}},
		{Op: "Tj", Operands: []pdflib.Object{pdflib.String("hi")}},
	}
	out := Tokens(tokens, color.ModeFull, 100)

	got := operandFloats(t, out[0].Operands)
	want := []float64{0.2, 0.8, 0.9}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("operand %d = %v; want %v", i, got[i], want[i])
		}
	}
	if out[1].Op != "Tj" {
		t.Errorf("non-color token was altered: %+v", out[1])
	}
}

func TestTokensScenarioS2(t *testing.T) {
	tokens := []token.Token{{Op: "g", Operands: []pdflib.Object{pdflib.Real(0.6)}}}
	out := Tokens(tokens, color.ModeGrayscale, 100)
	got := operandFloats(t, out[0].Operands)
	if !near(got[0], 0.4) {
		t.Errorf("g operand = %v; want 0.4", got[0])
	}
}

func TestTokensScenarioS3(t *testing.T) {
	tokens := []token.Token{{Op: "sc", Operands: []pdflib.Object{pdflib.Real(1), pdflib.Real(1), pdflib.Real(1)}}}
	out := Tokens(tokens, color.ModeFull, 100)
	got := operandFloats(t, out[0].Operands)
	for i, v := range got {
		if !near(v, 0) {
			t.Errorf("operand %d = %v; want 0", i, v)
		}
	}
}

func TestTokensPercentageBlendsTowardOriginal(t *testing.T) {
	tokens := []token.Token{{Op: "g", Operands: []pdflib.Object{pdflib.Real(0)}}}
	out := Tokens(tokens, color.ModeFull, 50)
	got := operandFloats(t, out[0].Operands)
	if !near(got[0], 0.5) {
		t.Errorf("50%% blend of full inversion from 0 = %v; want 0.5", got[0])
	}
}

func TestTokensPercentageZeroLeavesColorsUnchanged(t *testing.T) {
	tokens := []token.Token{
		{Op: "rg", Operands: []pdflib.Object{pdflib.Real(0.3), pdflib.Real(0.5), pdflib.Real(0.9)}},
	}
	out := Tokens(tokens, color.ModeFull, 0)
	got := operandFloats(t, out[0].Operands)
	want := []float64{0.3, 0.5, 0.9}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("operand %d = %v; want unchanged %v", i, got[i], want[i])
		}
	}
}

func TestRewriteSCArityHeuristic(t *testing.T) {
	cases := []struct {
		name     string
		operands []pdflib.Object
		wantLen  int
	}{
		{"gray", []pdflib.Object{pdflib.Real(0.5)}, 1},
		{"rgb", []pdflib.Object{pdflib.Real(0.1), pdflib.Real(0.2), pdflib.Real(0.3)}, 3},
		{"cmyk", []pdflib.Object{pdflib.Real(0.1), pdflib.Real(0.2), pdflib.Real(0.3), pdflib.Real(0.4)}, 4},
		{"pattern-name-trailing", []pdflib.Object{pdflib.Real(0.5), pdflib.Real(0.5), pdflib.Real(0.5), pdflib.Name("P0")}, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := rewriteSC(append([]pdflib.Object{}, c.operands...), color.ModeFull, 100)
			if len(got) != c.wantLen {
				t.Fatalf("operand count changed: got %d want %d", len(got), c.wantLen)
			}
		})
	}
}

func TestOperandRangeInvariantAcrossRewrite(t *testing.T) {
	modes := []color.Mode{color.ModeFull, color.ModeGrayscale, color.ModeTextOnly, color.ModeCustom}
	ops := [][]float64{{0.5}, {0, 1, 0.5}, {0.1, 0.9, 0.2, 0.8}}
	names := []string{"g", "rg", "k"}
	for _, mode := range modes {
		for i, vals := range ops {
			operands := make([]pdflib.Object, len(vals))
			for j, v := range vals {
				operands[j] = pdflib.Real(v)
			}
			tok := []token.Token{{Op: names[i], Operands: operands}}
			out := Tokens(tok, mode, 100)
			for _, f := range operandFloats(t, out[0].Operands) {
				if f < 0 || f > 1 {
					t.Errorf("mode %v op %s: operand %v out of [0,1]", mode, names[i], f)
				}
			}
		}
	}
}

func TestPreludeOrderAndContent(t *testing.T) {
	mediaBox := [4]float64{0, 0, 612, 792}
	prelude := Prelude(mediaBox, color.ModeFull, 100)

	wantOps := []string{"q", "rg", "re", "f", "Q", "rg", "RG"}
	if len(prelude) != len(wantOps) {
		t.Fatalf("prelude has %d tokens; want %d", len(prelude), len(wantOps))
	}
	for i, op := range wantOps {
		if prelude[i].Op != op {
			t.Errorf("prelude[%d].Op = %q; want %q", i, prelude[i].Op, op)
		}
	}

	re := operandFloats(t, prelude[2].Operands)
	want := []float64{mediaBox[0], mediaBox[1], mediaBox[2] - mediaBox[0], mediaBox[3] - mediaBox[1]}
	for i := range want {
		if !near(re[i], want[i]) {
			t.Errorf("re operand %d = %v; want %v", i, re[i], want[i])
		}
	}
}
