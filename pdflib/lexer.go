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
	"errors"
	"fmt"
	"strconv"
)

// lexer is a recursive-descent reader for the PDF object syntax (ISO
// 32000-1 §7.2-7.3): numbers, names, literal and hex strings, arrays,
// dictionaries, indirect references, booleans, and null. It is shared by
// the container-level object reader; content-stream tokens are handled
// separately by package token, which reuses these same Object types.
type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte, pos int) *lexer {
	return &lexer{data: data, pos: pos}
}

var errEOF = errors.New("pdflib: unexpected end of input")

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		l.pos++
	}
}

func (l *lexer) peek() (byte, bool) {
	if l.pos >= len(l.data) {
		return 0, false
	}
	return l.data[l.pos], true
}

// readObject parses one PDF object starting at the current position,
// including the "N G R" indirect-reference special case.
func (l *lexer) readObject() (Object, error) {
	l.skipWhitespace()
	c, ok := l.peek()
	if !ok {
		return nil, errEOF
	}

	switch {
	case c == '/':
		return l.readName()
	case c == '(':
		return l.readLiteralString()
	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			return l.readDict()
		}
		return l.readHexString()
	case c == '[':
		return l.readArray()
	case c == ']', c == '>', c == ')':
		return nil, fmt.Errorf("pdflib: unexpected %q", c)
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return l.readNumberOrReference()
	default:
		return l.readKeyword()
	}
}

func (l *lexer) readName() (Name, error) {
	l.pos++ // skip '/'
	start := l.pos
	var buf []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && l.pos+2 < len(l.data) && isHex(l.data[l.pos+1]) && isHex(l.data[l.pos+2]) {
			if buf == nil {
				buf = append(buf, l.data[start:l.pos]...)
			}
			v, _ := strconv.ParseUint(string(l.data[l.pos+1:l.pos+3]), 16, 8)
			buf = append(buf, byte(v))
			l.pos += 3
			continue
		}
		if buf != nil {
			buf = append(buf, c)
		}
		l.pos++
	}
	if buf != nil {
		return Name(buf), nil
	}
	return Name(l.data[start:l.pos]), nil
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func (l *lexer) readLiteralString() (String, error) {
	l.pos++ // skip '('
	var buf []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			buf = append(buf, c)
		case ')':
			depth--
			if depth == 0 {
				return String(buf), nil
			}
			buf = append(buf, c)
		case '\\':
			if l.pos >= len(l.data) {
				return String(buf), nil
			}
			esc := l.data[l.pos]
			l.pos++
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
				// line continuation, no output
			case '0', '1', '2', '3', '4', '5', '6', '7':
				n := int(esc - '0')
				for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
					n = n*8 + int(l.data[l.pos]-'0')
					l.pos++
				}
				buf = append(buf, byte(n))
			default:
				buf = append(buf, esc)
			}
		default:
			buf = append(buf, c)
		}
	}
	return String(buf), errEOF
}

func (l *lexer) readHexString() (String, error) {
	l.pos++ // skip '<'
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if isHex(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return String(out), nil
}

func (l *lexer) readArray() (Array, error) {
	l.pos++ // skip '['
	var items Array
	for {
		l.skipWhitespace()
		c, ok := l.peek()
		if !ok {
			return items, errEOF
		}
		if c == ']' {
			l.pos++
			return items, nil
		}
		obj, err := l.readObject()
		if err != nil {
			return items, err
		}
		items = append(items, obj)
	}
}

func (l *lexer) readDict() (Object, error) {
	l.pos += 2 // skip '<<'
	d := Dict{}
	for {
		l.skipWhitespace()
		if l.pos+1 < len(l.data) && l.data[l.pos] == '>' && l.data[l.pos+1] == '>' {
			l.pos += 2
			break
		}
		key, err := l.readObject()
		if err != nil {
			return d, err
		}
		name, ok := key.(Name)
		if !ok {
			return d, fmt.Errorf("pdflib: dictionary key is not a name: %T", key)
		}
		val, err := l.readObject()
		if err != nil {
			return d, err
		}
		d[name] = val
	}

	// A dictionary immediately followed by "stream" introduces a stream
	// object; the caller (readIndirectObject) is responsible for consuming
	// the payload, since only it knows the object's /Length.
	return d, nil
}

func (l *lexer) readNumberOrReference() (Object, error) {
	start := l.pos
	num, isInt, err := l.readNumber()
	if err != nil {
		return nil, err
	}
	if isInt && num >= 0 {
		save := l.pos
		l.skipWhitespace()
		genStart := l.pos
		if gen, ok := l.tryReadUint(); ok {
			l.skipWhitespace()
			if c, ok := l.peek(); ok && c == 'R' && (l.pos+1 >= len(l.data) || isWhitespace(l.data[l.pos+1]) || isDelimiter(l.data[l.pos+1])) {
				l.pos++
				return Reference{Number: uint32(num), Generation: uint16(gen)}, nil
			}
		}
		l.pos = save
		_ = genStart
	}
	_ = start
	if isInt {
		return Integer(num), nil
	}
	return Real(num), nil
}

func (l *lexer) tryReadUint() (int64, bool) {
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
		l.pos++
	}
	if l.pos == start {
		return 0, false
	}
	v, err := strconv.ParseInt(string(l.data[start:l.pos]), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (l *lexer) readNumber() (float64, bool, error) {
	start := l.pos
	if l.pos < len(l.data) && (l.data[l.pos] == '+' || l.data[l.pos] == '-') {
		l.pos++
	}
	isInt := true
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c >= '0' && c <= '9' {
			l.pos++
			continue
		}
		if c == '.' {
			isInt = false
			l.pos++
			continue
		}
		break
	}
	s := string(l.data[start:l.pos])
	if s == "" || s == "-" || s == "+" || s == "." {
		return 0, isInt, fmt.Errorf("pdflib: invalid number %q", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, isInt, err
}

func (l *lexer) readKeyword() (Object, error) {
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	switch string(l.data[start:l.pos]) {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Null{}, nil
	case "":
		return nil, fmt.Errorf("pdflib: unexpected byte %q", l.data[l.pos])
	default:
		return nil, fmt.Errorf("pdflib: unknown keyword %q", l.data[start:l.pos])
	}
}
