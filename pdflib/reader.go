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
	"errors"
	"fmt"
)

// ErrEncrypted is returned by NewDocument when the document's trailer
// carries an /Encrypt entry. This package does not attempt decryption.
var ErrEncrypted = errors.New("pdflib: document is encrypted")

// ErrMalformed indicates the input bytes could not be parsed as a PDF file.
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string {
	return "pdflib: malformed document: " + e.Reason
}

type xrefKind byte

const (
	xrefFree xrefKind = iota
	xrefNormal
	xrefCompressed
)

type xrefEntry struct {
	kind      xrefKind
	offset    int64  // for xrefNormal: byte offset. for xrefCompressed: containing stream's object number.
	genOrIdx  uint16 // for xrefNormal: generation. for xrefCompressed: index within the object stream.
}

// Document is a PDF file loaded fully into memory and parsed lazily: the
// cross-reference table is read up front, but object bodies are parsed on
// first access through Get.
type Document struct {
	data    []byte
	xref    map[uint32]xrefEntry
	cache   map[Reference]Object
	objStms map[uint32]*objStm
	nextNum uint32

	Trailer Dict
	Version string
}

type objStm struct {
	offsets []int64
	data    []byte
}

// NewDocument parses data as a PDF file.
func NewDocument(data []byte) (*Document, error) {
	doc := &Document{
		data:    data,
		xref:    make(map[uint32]xrefEntry),
		cache:   make(map[Reference]Object),
		objStms: make(map[uint32]*objStm),
	}

	if err := doc.readHeader(); err != nil {
		return nil, err
	}

	startPos, err := doc.findStartXRef()
	if err != nil {
		return nil, err
	}

	trailer, err := doc.readXRefChain(startPos)
	if err != nil {
		return nil, err
	}
	doc.Trailer = trailer
	for num := range doc.xref {
		if num >= doc.nextNum {
			doc.nextNum = num + 1
		}
	}

	if _, encrypted := trailer["Encrypt"]; encrypted {
		return nil, ErrEncrypted
	}

	return doc, nil
}

func (doc *Document) readHeader() error {
	if !bytes.HasPrefix(doc.data, []byte("%PDF-")) {
		idx := bytes.Index(doc.data, []byte("%PDF-"))
		if idx < 0 || idx > 1024 {
			return &ErrMalformed{Reason: "missing %PDF- header"}
		}
		doc.data = doc.data[idx:]
	}
	end := bytes.IndexAny(doc.data[:min(len(doc.data), 32)], "\r\n")
	if end < 0 {
		end = 8
	}
	doc.Version = string(bytes.TrimSpace(doc.data[5:end]))
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (doc *Document) findStartXRef() (int64, error) {
	const tail = "startxref"
	idx := bytes.LastIndex(doc.data, []byte(tail))
	if idx < 0 {
		return 0, &ErrMalformed{Reason: "missing startxref"}
	}
	l := newLexer(doc.data, idx+len(tail))
	l.skipWhitespace()
	v, isInt, err := l.readNumber()
	if err != nil || !isInt {
		return 0, &ErrMalformed{Reason: "invalid startxref offset"}
	}
	return int64(v), nil
}

// readXRefChain follows the /Prev (and hybrid /XRefStm) chain starting at
// pos, merging entries so that the first (most recent) definition of any
// object number wins. It returns the merged trailer dictionary.
func (doc *Document) readXRefChain(pos int64) (Dict, error) {
	seen := map[int64]bool{}
	merged := Dict{}
	first := true

	for pos != 0 {
		if seen[pos] {
			break
		}
		seen[pos] = true

		trailer, prev, xrefStmPos, err := doc.readXRefSection(pos)
		if err != nil {
			return nil, err
		}

		for k, v := range trailer {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
		if first {
			for k, v := range trailer {
				merged[k] = v
			}
			first = false
		}

		if xrefStmPos != 0 && !seen[xrefStmPos] {
			seen[xrefStmPos] = true
			if _, _, _, err := doc.readXRefSection(xrefStmPos); err != nil {
				return nil, err
			}
		}

		pos = prev
	}

	if merged["Root"] == nil {
		return nil, &ErrMalformed{Reason: "trailer has no /Root"}
	}
	return merged, nil
}

// readXRefSection parses one xref section (classic table or xref stream)
// starting at pos, registering its entries (without overwriting entries
// already known from a more recent section), and returns its trailer plus
// the byte offsets of the previous section (/Prev) and hybrid xref stream
// (/XRefStm), if any.
func (doc *Document) readXRefSection(pos int64) (trailer Dict, prev int64, xrefStm int64, err error) {
	l := newLexer(doc.data, int(pos))
	l.skipWhitespace()

	if bytes.HasPrefix(doc.data[l.pos:], []byte("xref")) {
		return doc.readClassicXRef(l)
	}
	return doc.readXRefStream(l)
}

func (doc *Document) readClassicXRef(l *lexer) (Dict, int64, int64, error) {
	l.pos += 4 // "xref"
	for {
		l.skipWhitespace()
		if bytes.HasPrefix(doc.data[l.pos:], []byte("trailer")) {
			l.pos += 7
			break
		}
		startNum, ok := l.tryReadUint()
		if !ok {
			return nil, 0, 0, &ErrMalformed{Reason: "invalid xref subsection header"}
		}
		l.skipWhitespace()
		count, ok := l.tryReadUint()
		if !ok {
			return nil, 0, 0, &ErrMalformed{Reason: "invalid xref subsection count"}
		}
		for i := int64(0); i < count; i++ {
			l.skipWhitespace()
			if l.pos+18 > len(doc.data) {
				return nil, 0, 0, &ErrMalformed{Reason: "truncated xref entry"}
			}
			entry := doc.data[l.pos : l.pos+20]
			l.pos += 20
			objNum := uint32(startNum + i)
			offset, gen, isFree := parseClassicEntry(entry)
			if _, known := doc.xref[objNum]; known {
				continue
			}
			if isFree {
				doc.xref[objNum] = xrefEntry{kind: xrefFree}
			} else {
				doc.xref[objNum] = xrefEntry{kind: xrefNormal, offset: offset, genOrIdx: gen}
			}
		}
	}

	l.skipWhitespace()
	obj, err := l.readObject()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("pdflib: trailer: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, 0, 0, &ErrMalformed{Reason: "trailer is not a dictionary"}
	}

	var prev, xrefStm int64
	if p, ok := trailer["Prev"].(Integer); ok {
		prev = int64(p)
	}
	if x, ok := trailer["XRefStm"].(Integer); ok {
		xrefStm = int64(x)
	}
	return trailer, prev, xrefStm, nil
}

func parseClassicEntry(entry []byte) (offset int64, gen uint16, isFree bool) {
	var off, g int64
	fmt.Sscanf(string(entry[0:10]), "%d", &off)
	fmt.Sscanf(string(entry[11:16]), "%d", &g)
	kind := entry[17]
	return off, uint16(g), kind == 'f'
}

func (doc *Document) readXRefStream(l *lexer) (Dict, int64, int64, error) {
	dict, raw, _, err := doc.readIndirectObjectAt(int64(l.pos))
	if err != nil {
		return nil, 0, 0, err
	}
	stream := &Stream{Dict: dict, Raw: raw}
	data, err := stream.Decode()
	if err != nil {
		return nil, 0, 0, err
	}

	wArr, _ := dict["W"].(Array)
	if len(wArr) != 3 {
		return nil, 0, 0, &ErrMalformed{Reason: "xref stream missing /W"}
	}
	w := [3]int{}
	for i := range w {
		n, _ := AsFloat(wArr[i])
		w[i] = int(n)
	}

	size, _ := dict["Size"].(Integer)
	var index []int64
	if idxArr, ok := dict["Index"].(Array); ok {
		for _, item := range idxArr {
			n, _ := AsFloat(item)
			index = append(index, int64(n))
		}
	} else {
		index = []int64{0, int64(size)}
	}

	pos := 0
	rowLen := w[0] + w[1] + w[2]
	for s := 0; s+1 < len(index); s += 2 {
		start, count := index[s], index[s+1]
		for i := int64(0); i < count; i++ {
			if pos+rowLen > len(data) {
				break
			}
			row := data[pos : pos+rowLen]
			pos += rowLen
			objNum := uint32(start + i)

			field := func(width int, off int) int64 {
				var v int64
				for k := 0; k < width; k++ {
					v = v<<8 | int64(row[off+k])
				}
				return v
			}
			typ := int64(1)
			if w[0] > 0 {
				typ = field(w[0], 0)
			}
			f2 := field(w[1], w[0])
			f3 := field(w[2], w[0]+w[1])

			if _, known := doc.xref[objNum]; known {
				continue
			}
			switch typ {
			case 0:
				doc.xref[objNum] = xrefEntry{kind: xrefFree}
			case 1:
				doc.xref[objNum] = xrefEntry{kind: xrefNormal, offset: f2, genOrIdx: uint16(f3)}
			case 2:
				doc.xref[objNum] = xrefEntry{kind: xrefCompressed, offset: int64(f2), genOrIdx: uint16(f3)}
			}
		}
	}

	var prev int64
	if p, ok := dict["Prev"].(Integer); ok {
		prev = int64(p)
	}
	return dict, prev, 0, nil
}

// readIndirectObjectAt parses "N G obj ... endobj" starting at pos, and
// returns the object's dictionary/value plus, when it is a stream, the raw
// (still filtered) payload bytes.
func (doc *Document) readIndirectObjectAt(pos int64) (Dict, []byte, Object, error) {
	l := newLexer(doc.data, int(pos))
	l.skipWhitespace()
	if _, ok := l.tryReadUint(); !ok {
		return nil, nil, nil, &ErrMalformed{Reason: "expected object number"}
	}
	l.skipWhitespace()
	if _, ok := l.tryReadUint(); !ok {
		return nil, nil, nil, &ErrMalformed{Reason: "expected generation number"}
	}
	l.skipWhitespace()
	if !bytes.HasPrefix(doc.data[l.pos:], []byte("obj")) {
		return nil, nil, nil, &ErrMalformed{Reason: "expected 'obj' keyword"}
	}
	l.pos += 3

	obj, err := l.readObject()
	if err != nil {
		return nil, nil, obj, err
	}

	dict, isDict := obj.(Dict)
	if !isDict {
		return nil, nil, obj, nil
	}

	l.skipWhitespace()
	if !bytes.HasPrefix(doc.data[l.pos:], []byte("stream")) {
		return dict, nil, obj, nil
	}
	l.pos += 6
	if l.pos < len(doc.data) && doc.data[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(doc.data) && doc.data[l.pos] == '\n' {
		l.pos++
	}

	length, err := doc.resolveLength(dict["Length"])
	if err != nil || length < 0 || int(length) > len(doc.data)-l.pos {
		length = int64(findEndstream(doc.data[l.pos:]))
	}

	raw := doc.data[l.pos : l.pos+int(length)]
	return dict, raw, obj, nil
}

func (doc *Document) resolveLength(obj Object) (int64, error) {
	switch v := obj.(type) {
	case Integer:
		return int64(v), nil
	case Reference:
		resolved, err := doc.Get(v)
		if err != nil {
			return 0, err
		}
		n, ok := resolved.(Integer)
		if !ok {
			return 0, fmt.Errorf("pdflib: /Length is not an integer")
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("pdflib: missing /Length")
	}
}

func findEndstream(data []byte) int {
	idx := bytes.Index(data, []byte("endstream"))
	if idx < 0 {
		return len(data)
	}
	for idx > 0 && (data[idx-1] == '\n' || data[idx-1] == '\r') {
		idx--
	}
	return idx
}

// Get resolves an indirect reference to its underlying object, decoding
// object-stream membership transparently. Results are cached.
func (doc *Document) Get(ref Reference) (Object, error) {
	if obj, ok := doc.cache[ref]; ok {
		return obj, nil
	}

	entry, ok := doc.xref[ref.Number]
	if !ok || entry.kind == xrefFree {
		return Null{}, nil
	}

	switch entry.kind {
	case xrefNormal:
		dict, raw, obj, err := doc.readIndirectObjectAt(entry.offset)
		if err != nil {
			return nil, fmt.Errorf("pdflib: object %s: %w", ref, err)
		}
		var result Object
		if dict != nil {
			if raw != nil {
				result = &Stream{Dict: dict, Raw: raw}
			} else {
				result = dict
			}
		} else {
			result = obj
		}
		doc.cache[ref] = result
		return result, nil

	case xrefCompressed:
		stm, err := doc.loadObjStm(uint32(entry.offset))
		if err != nil {
			return nil, err
		}
		idx := int(entry.genOrIdx)
		if idx < 0 || idx >= len(stm.offsets) {
			return nil, fmt.Errorf("pdflib: object %s: bad index into object stream", ref)
		}
		l := newLexer(stm.data, int(stm.offsets[idx]))
		obj, err := l.readObject()
		if err != nil {
			return nil, fmt.Errorf("pdflib: object %s: %w", ref, err)
		}
		doc.cache[ref] = obj
		return obj, nil
	}

	return Null{}, nil
}

func (doc *Document) loadObjStm(streamObjNum uint32) (*objStm, error) {
	if stm, ok := doc.objStms[streamObjNum]; ok {
		return stm, nil
	}

	entry, ok := doc.xref[streamObjNum]
	if !ok || entry.kind != xrefNormal {
		return nil, fmt.Errorf("pdflib: object stream %d not found", streamObjNum)
	}
	dict, raw, _, err := doc.readIndirectObjectAt(entry.offset)
	if err != nil {
		return nil, err
	}
	stream := &Stream{Dict: dict, Raw: raw}
	data, err := stream.Decode()
	if err != nil {
		return nil, err
	}

	n, _ := dict["N"].(Integer)
	first, _ := dict["First"].(Integer)

	header := newLexer(data, 0)
	offsets := make([]int64, 0, n)
	for i := int64(0); i < int64(n); i++ {
		header.skipWhitespace()
		if _, ok := header.tryReadUint(); !ok {
			break
		}
		header.skipWhitespace()
		off, ok := header.tryReadUint()
		if !ok {
			break
		}
		offsets = append(offsets, int64(first)+off)
	}

	stm := &objStm{offsets: offsets, data: data}
	doc.objStms[streamObjNum] = stm
	return stm, nil
}

// NewObject allocates a fresh object number, registers obj under it (both
// in the xref table, so Write discovers it, and in the cache, so Get
// returns it without touching the file's byte offsets), and returns the
// resulting reference.
func (doc *Document) NewObject(obj Object) Reference {
	num := doc.nextNum
	doc.nextNum++
	ref := Reference{Number: num, Generation: 0}
	doc.xref[num] = xrefEntry{kind: xrefNormal}
	doc.cache[ref] = obj
	return ref
}

// Catalog returns the document catalog dictionary.
func (doc *Document) Catalog() (Dict, error) {
	return GetDict(doc, doc.Trailer["Root"])
}

// Info returns the document information dictionary, or nil if absent.
func (doc *Document) Info() (Dict, error) {
	if doc.Trailer["Info"] == nil {
		return nil, nil
	}
	return GetDict(doc, doc.Trailer["Info"])
}
