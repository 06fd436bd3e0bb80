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
	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
	"github.com/bhyresh-dev/PDF-Flux/token"
)

// Prelude builds the "q <bg>rg <mediabox>re f Q <fg>rg <fg>RG" sequence
// prepended to every rewritten page's content stream: it paints an opaque
// background behind whatever the page draws, then sets the default
// fill/stroke color so content that never issues an explicit color
// operator (relying on PDF's black default) remains visible against the
// new background instead of vanishing into it.
// percentage (0-100) blends the background/foreground away from the
// document's implicit white-canvas/black-ink defaults toward the mode's
// target colors, the same way percentage tempers every other color
// operator rewrite.
func Prelude(mediaBox [4]float64, mode color.Mode, percentage int) []token.Token {
	bg, fg := color.BackgroundAndForeground(mode)
	for i := range bg {
		bg[i] = color.Blend(1, bg[i], percentage) // canvas starts implicitly white
	}
	for i := range fg {
		fg[i] = color.Blend(0, fg[i], percentage) // ink starts implicitly black
	}

	num := func(x float64) pdflib.Object { return pdflib.Real(x) }

	return []token.Token{
		{Op: "q"},
		{Op: "rg", Operands: []pdflib.Object{num(bg[0]), num(bg[1]), num(bg[2])}},
		{Op: "re", Operands: []pdflib.Object{
			num(mediaBox[0]), num(mediaBox[1]),
			num(mediaBox[2] - mediaBox[0]), num(mediaBox[3] - mediaBox[1]),
		}},
		{Op: "f"},
		{Op: "Q"},
		{Op: "rg", Operands: []pdflib.Object{num(fg[0]), num(fg[1]), num(fg[2])}},
		{Op: "RG", Operands: []pdflib.Object{num(fg[0]), num(fg[1]), num(fg[2])}},
	}
}

// ApplyToPage rewrites a page's content stream in place: decodes it,
// tokenizes, rewrites color operators, prepends the background prelude,
// re-encodes, and calls SetContent.
func ApplyToPage(page *pdflib.Page, mode color.Mode, percentage int) error {
	data, err := page.ContentBytes()
	if err != nil {
		return err
	}

	scanner := token.NewScanner(data)
	tokens, err := scanner.Scan()
	if err != nil {
		return err
	}

	tokens = Tokens(tokens, mode, percentage)
	tokens = append(Prelude(page.MediaBox, mode, percentage), tokens...)

	encoded, err := token.Encode(tokens)
	if err != nil {
		return err
	}
	page.SetContent(encoded)
	return nil
}

// ApplyToStream rewrites the color operators of an arbitrary content
// stream (a Form XObject body or an annotation appearance stream) without
// a background prelude; only pages get a background rectangle.
func ApplyToStream(stream *pdflib.Stream, mode color.Mode, percentage int) error {
	data, err := stream.Decode()
	if err != nil {
		return err
	}

	scanner := token.NewScanner(data)
	tokens, err := scanner.Scan()
	if err != nil {
		return err
	}

	tokens = Tokens(tokens, mode, percentage)

	encoded, err := token.Encode(tokens)
	if err != nil {
		return err
	}
	stream.SetDecoded(encoded)
	return nil
}
