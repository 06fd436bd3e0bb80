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
	"bytes"
)

// Encode re-assembles tokens into a content stream, one operator (and its
// operands) per line. The exact layout need not match the original file's
// whitespace; only the operator/operand sequence is semantically
// meaningful.
func Encode(tokens []Token) ([]byte, error) {
	var buf bytes.Buffer
	for _, t := range tokens {
		if t.Op == "BI" && len(t.Operands) == 1 {
			// An inline image's PDF() method already emits the full
			// "BI ... ID ... EI" sequence; it has no separate operator word.
			if err := t.Operands[0].PDF(&buf); err != nil {
				return nil, err
			}
			buf.WriteByte('\n')
			continue
		}
		for _, operand := range t.Operands {
			if err := operand.PDF(&buf); err != nil {
				return nil, err
			}
			buf.WriteByte(' ')
		}
		buf.WriteString(t.Op)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
