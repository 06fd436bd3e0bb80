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

// Package token breaks a decoded content stream into the (operator,
// operands) pairs that package rewrite operates on.
package token

import (
	"fmt"
	"io"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

// Token is one operator invocation together with its operands, in the order
// they appeared in the content stream. Operands that were themselves
// compound objects (arrays, dictionaries) have already been assembled by
// the scanner.
type Token struct {
	Op       string
	Operands []pdflib.Object
}

// InlineImage represents a "BI ... ID <data> EI" inline image. It is not a
// native pdflib.Object type because it only ever appears inside a content
// stream, never in the container's object graph; it implements
// pdflib.Object purely so the scanner can hand it back through the same
// operand slots as any other value.
type InlineImage struct {
	Dict pdflib.Dict
	Data []byte
}

func (img *InlineImage) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "BI\n"); err != nil {
		return err
	}
	for _, key := range img.Dict.SortedKeys() {
		if err := key.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := img.Dict[key].PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "ID "); err != nil {
		return err
	}
	if _, err := w.Write(img.Data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nEI")
	return err
}

// operator marks a bare keyword token (e.g. "re", "Tj", "BI") found outside
// of an array or dictionary, as opposed to a value operand.
type operator string

func (operator) PDF(w io.Writer) error { return fmt.Errorf("token: bare operator has no object form") }
