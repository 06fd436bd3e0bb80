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
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

var errParse = errors.New("token: parse error")

type frame struct {
	data   []pdflib.Object
	isDict bool
}

// Scanner breaks a fully-decoded content stream into a flat list of Tokens.
// Unlike a container-level object reader, a content stream's "objects"
// terminate in bare operators (Tj, re, cm, ...) rather than keywords like
// "obj"/"endobj", so scanning groups values between operators into that
// operator's operand list.
type Scanner struct {
	data []byte
	pos  int

	stack []*frame
	args  []pdflib.Object
}

// NewScanner returns a scanner over data, which must already have any
// stream filters removed.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Scan tokenizes the entire content stream. On a parse error (including a
// malformed inline image), scanning stops at the point of failure and the
// tokens collected so far are returned together with the error.
func (s *Scanner) Scan() ([]Token, error) {
	var tokens []Token

	for {
		obj, err := s.nextToken()
		if err != nil {
			if err == io.EOF {
				return tokens, nil
			}
			return tokens, err
		}

		switch v := obj.(type) {
		case operator:
			switch v {
			case "<<":
				s.stack = append(s.stack, &frame{isDict: true})
				continue
			case ">>":
				if len(s.stack) == 0 || !s.stack[len(s.stack)-1].isDict {
					continue
				}
				top := s.stack[len(s.stack)-1]
				s.stack = s.stack[:len(s.stack)-1]
				dict := pdflib.Dict{}
				for i := 0; i+1 < len(top.data); i += 2 {
					if key, ok := top.data[i].(pdflib.Name); ok {
						dict[key] = top.data[i+1]
					}
				}
				obj = dict
			case "[":
				s.stack = append(s.stack, &frame{})
				continue
			case "]":
				if len(s.stack) == 0 || s.stack[len(s.stack)-1].isDict {
					continue
				}
				top := s.stack[len(s.stack)-1]
				s.stack = s.stack[:len(s.stack)-1]
				obj = pdflib.Array(top.data)
			case "BI":
				img, err := s.scanInlineImage()
				if err != nil {
					return tokens, err
				}
				tokens = append(tokens, Token{Op: "BI", Operands: []pdflib.Object{img}})
				continue
			}
		}

		if len(s.stack) > 0 {
			s.stack[len(s.stack)-1].data = append(s.stack[len(s.stack)-1].data, obj)
			continue
		}
		if op, ok := obj.(operator); ok {
			tokens = append(tokens, Token{Op: string(op), Operands: s.args})
			s.args = nil
			continue
		}
		s.args = append(s.args, obj)
	}
}

// scanInlineImage consumes a "BI <key-value pairs> ID <binary data> EI"
// sequence once the leading "BI" operator has already been read.
func (s *Scanner) scanInlineImage() (*InlineImage, error) {
	dict := pdflib.Dict{}
	for {
		s.skipWhiteSpace()
		if bytes.HasPrefix(s.data[s.pos:], []byte("ID")) {
			s.pos += 2
			break
		}
		key, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		name, ok := key.(pdflib.Name)
		if !ok {
			return nil, errParse
		}
		val, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		dict[name] = val
	}

	// A single whitespace byte separates "ID" from the raw data; everything
	// up to the next "EI" delimited by whitespace on both sides is the
	// image payload. This is a heuristic (binary data could itself contain
	// the byte sequence " EI "), but it is the same heuristic every
	// non-full PDF parser uses in practice since /Length is never present
	// on inline images.
	if s.pos < len(s.data) && isWhitespace(s.data[s.pos]) {
		s.pos++
	}
	start := s.pos
	for {
		idx := bytes.Index(s.data[s.pos:], []byte("EI"))
		if idx < 0 {
			s.pos = len(s.data)
			return &InlineImage{Dict: dict, Data: s.data[start:s.pos]}, nil
		}
		candidate := s.pos + idx
		before := candidate == start || isWhitespace(s.data[candidate-1])
		afterPos := candidate + 2
		after := afterPos >= len(s.data) || isWhitespace(s.data[afterPos]) || isDelimiter(s.data[afterPos])
		if before && after {
			data := s.data[start:candidate]
			if len(data) > 0 && isWhitespace(data[len(data)-1]) {
				data = data[:len(data)-1]
			}
			s.pos = afterPos
			return &InlineImage{Dict: dict, Data: data}, nil
		}
		s.pos = candidate + 2
	}
}

func (s *Scanner) nextToken() (pdflib.Object, error) {
	s.skipWhiteSpace()
	if s.pos >= len(s.data) {
		return nil, io.EOF
	}

	c := s.data[s.pos]
	switch {
	case c == '(':
		return s.readLiteralString()
	case c == '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			s.pos += 2
			return operator("<<"), nil
		}
		return s.readHexString()
	case c == '>':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '>' {
			s.pos += 2
			return operator(">>"), nil
		}
		s.pos++
		return operator(">"), nil
	case c == '/':
		return s.readName()
	case c == '[':
		s.pos++
		return operator("["), nil
	case c == ']':
		s.pos++
		return operator("]"), nil
	default:
		start := s.pos
		s.pos++
		if class(c) == regular {
			for s.pos < len(s.data) && class(s.data[s.pos]) == regular {
				s.pos++
			}
		}
		word := s.data[start:s.pos]
		if num, err := parseNumber(word); err == nil {
			return num, nil
		}
		switch string(word) {
		case "true":
			return pdflib.Boolean(true), nil
		case "false":
			return pdflib.Boolean(false), nil
		case "null":
			return pdflib.Null{}, nil
		}
		return operator(word), nil
	}
}

func (s *Scanner) readLiteralString() (pdflib.String, error) {
	s.pos++
	var buf []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
			buf = append(buf, c)
		case ')':
			depth--
			if depth == 0 {
				return pdflib.String(buf), nil
			}
			buf = append(buf, c)
		case '\\':
			if s.pos >= len(s.data) {
				return pdflib.String(buf), nil
			}
			esc := s.data[s.pos]
			s.pos++
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
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				n := int(esc - '0')
				for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
					n = n*8 + int(s.data[s.pos]-'0')
					s.pos++
				}
				buf = append(buf, byte(n))
			default:
				buf = append(buf, esc)
			}
		default:
			buf = append(buf, c)
		}
	}
	return pdflib.String(buf), nil
}

func (s *Scanner) readHexString() (pdflib.String, error) {
	s.pos++
	var digits []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		if isHexDigit(c) {
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
	return pdflib.String(out), nil
}

func (s *Scanner) readName() (pdflib.Name, error) {
	s.pos++
	var buf []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '#' && s.pos+2 < len(s.data) && isHexDigit(s.data[s.pos+1]) && isHexDigit(s.data[s.pos+2]) {
			v, _ := strconv.ParseUint(string(s.data[s.pos+1:s.pos+3]), 16, 8)
			buf = append(buf, byte(v))
			s.pos += 3
			continue
		}
		if class(c) != regular {
			break
		}
		buf = append(buf, c)
		s.pos++
	}
	return pdflib.Name(buf), nil
}

func (s *Scanner) skipWhiteSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		s.pos++
	}
}

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

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

type charClass int

const (
	regular charClass = iota
	space
	delim
)

func class(c byte) charClass {
	switch {
	case isWhitespace(c):
		return space
	case isDelimiter(c):
		return delim
	default:
		return regular
	}
}

func parseNumber(b []byte) (pdflib.Object, error) {
	if x, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		return pdflib.Integer(x), nil
	}

	simple := true
	for i, c := range b {
		if i == 0 && (c == '+' || c == '-') {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			simple = false
			break
		}
	}
	if !simple || len(b) == 0 {
		return nil, errParse
	}
	y, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
		return nil, errParse
	}
	return pdflib.Real(y), nil
}
