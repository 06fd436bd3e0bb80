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

// Package rewrite rewrites the color-setting operators of a content
// stream (g/G, rg/RG, k/K, sc/SC, scn/SCN) in place, and builds the
// background prelude every rewritten page content stream is prefixed with
// (form and appearance streams get no prelude).
package rewrite

import (
	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
	"github.com/bhyresh-dev/PDF-Flux/token"
)

// Tokens rewrites every color operator found in tokens, returning a new
// slice; tokens without color operators are passed through unchanged.
// percentage (0-100) blends each rewritten color between its original and
// fully inverted value; 100 is a full inversion.
func Tokens(tokens []token.Token, mode color.Mode, percentage int) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, t := range tokens {
		if isColorOperator(t.Op) {
			t.Operands = rewriteOperands(t.Op, t.Operands, mode, percentage)
		}
		out[i] = t
	}
	return out
}

func isColorOperator(op string) bool {
	switch op {
	case "g", "G", "rg", "RG", "k", "K", "sc", "SC", "scn", "SCN":
		return true
	}
	return false
}

func rewriteOperands(op string, operands []pdflib.Object, mode color.Mode, percentage int) []pdflib.Object {
	switch op {
	case "g", "G":
		return rewriteGray(operands, mode, percentage)
	case "rg", "RG":
		return rewriteRGB(operands, mode, percentage)
	case "k", "K":
		return rewriteCMYK(operands, mode, percentage)
	case "sc", "SC", "scn", "SCN":
		return rewriteSC(operands, mode, percentage)
	}
	return operands
}

func numberAt(operands []pdflib.Object, i int) (float64, bool) {
	if i < 0 || i >= len(operands) {
		return 0, false
	}
	return pdflib.AsFloat(operands[i])
}

// rewriteGray handles "g"/"G": a single gray operand, which may be
// preceded by a pattern/colorspace name for scn/SCN but never for g/G.
func rewriteGray(operands []pdflib.Object, mode color.Mode, percentage int) []pdflib.Object {
	if len(operands) == 0 {
		return operands
	}
	idx := len(operands) - 1
	gray, ok := numberAt(operands, idx)
	if !ok {
		return operands
	}
	operands[idx] = pdflib.Real(color.Blend(gray, color.InvertGrayOperand(gray, mode), percentage))
	return operands
}

// rewriteRGB handles "rg"/"RG": the last three operands are R, G, B.
func rewriteRGB(operands []pdflib.Object, mode color.Mode, percentage int) []pdflib.Object {
	if len(operands) < 3 {
		return operands
	}
	base := len(operands) - 3
	r, okR := numberAt(operands, base)
	g, okG := numberAt(operands, base+1)
	b, okB := numberAt(operands, base+2)
	if !okR || !okG || !okB {
		return operands
	}
	nr, ng, nb := color.InvertRGBOperand(r, g, b, mode)
	operands[base] = pdflib.Real(color.Blend(r, nr, percentage))
	operands[base+1] = pdflib.Real(color.Blend(g, ng, percentage))
	operands[base+2] = pdflib.Real(color.Blend(b, nb, percentage))
	return operands
}

// rewriteCMYK handles "k"/"K": the last four operands are C, M, Y, K.
func rewriteCMYK(operands []pdflib.Object, mode color.Mode, percentage int) []pdflib.Object {
	if len(operands) < 4 {
		return operands
	}
	base := len(operands) - 4
	c, okC := numberAt(operands, base)
	m, okM := numberAt(operands, base+1)
	y, okY := numberAt(operands, base+2)
	k, okK := numberAt(operands, base+3)
	if !okC || !okM || !okY || !okK {
		return operands
	}
	nc, nm, ny, nk := color.InvertCMYKOperand(c, m, y, k, mode)
	operands[base] = pdflib.Real(color.Blend(c, nc, percentage))
	operands[base+1] = pdflib.Real(color.Blend(m, nm, percentage))
	operands[base+2] = pdflib.Real(color.Blend(y, ny, percentage))
	operands[base+3] = pdflib.Real(color.Blend(k, nk, percentage))
	return operands
}

// rewriteSC handles "sc"/"SC"/"scn"/"SCN". These operators' arity depends
// on the active color space, which may be a Pattern (trailing name operand,
// not a color component at all); rather than resolve /ColorSpace, the
// operand count of purely numeric values is used as a heuristic to tell
// gray/RGB/CMYK apart.
func rewriteSC(operands []pdflib.Object, mode color.Mode, percentage int) []pdflib.Object {
	var numericIdx []int
	for i, o := range operands {
		if _, ok := pdflib.AsFloat(o); ok {
			numericIdx = append(numericIdx, i)
		}
	}

	switch len(numericIdx) {
	case 1:
		gray, _ := numberAt(operands, numericIdx[0])
		operands[numericIdx[0]] = pdflib.Real(color.Blend(gray, color.InvertGrayOperand(gray, mode), percentage))
	case 3:
		r, _ := numberAt(operands, numericIdx[0])
		g, _ := numberAt(operands, numericIdx[1])
		b, _ := numberAt(operands, numericIdx[2])
		nr, ng, nb := color.InvertRGBOperand(r, g, b, mode)
		operands[numericIdx[0]] = pdflib.Real(color.Blend(r, nr, percentage))
		operands[numericIdx[1]] = pdflib.Real(color.Blend(g, ng, percentage))
		operands[numericIdx[2]] = pdflib.Real(color.Blend(b, nb, percentage))
	case 4:
		c, _ := numberAt(operands, numericIdx[0])
		m, _ := numberAt(operands, numericIdx[1])
		y, _ := numberAt(operands, numericIdx[2])
		k, _ := numberAt(operands, numericIdx[3])
		nc, nm, ny, nk := color.InvertCMYKOperand(c, m, y, k, mode)
		operands[numericIdx[0]] = pdflib.Real(color.Blend(c, nc, percentage))
		operands[numericIdx[1]] = pdflib.Real(color.Blend(m, nm, percentage))
		operands[numericIdx[2]] = pdflib.Real(color.Blend(y, ny, percentage))
		operands[numericIdx[3]] = pdflib.Real(color.Blend(k, nk, percentage))
	default:
		// Unrecognized color space arity (e.g. a Separation or DeviceN tint
		// with an unusual component count, or a pure pattern reference with
		// no numeric operands at all): best-effort invert every numeric
		// value in place.
		for _, i := range numericIdx {
			v, _ := numberAt(operands, i)
			operands[i] = pdflib.Real(color.Blend(v, color.Clamp01(1-v), percentage))
		}
	}
	return operands
}
