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
	"bufio"
	"fmt"
	"io"
	"sort"
)

// posWriter wraps an io.Writer while tracking the number of bytes written so
// far, so the xref table can record each object's byte offset as it is
// emitted.
type posWriter struct {
	w   *bufio.Writer
	pos int64
}

func (p *posWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.pos += int64(n)
	return n, err
}

func (p *posWriter) WriteString(s string) (int, error) {
	n, err := p.w.WriteString(s)
	p.pos += int64(n)
	return n, err
}

// Write serializes doc fresh: every object number in its cross-reference
// table that is not free, reachable from the catalog or not, is re-resolved
// through doc (so in-place edits made via Get/SetDecoded are reflected),
// written as "N G obj ... endobj" in ascending object-number order, followed
// by a classic cross-reference table and trailer. The document is always
// written as a single, non-incremental update, matching this package's
// scope of producing a self-contained rewritten file rather than an
// append-only edit.
func Write(w io.Writer, doc *Document) error {
	pw := &posWriter{w: bufio.NewWriter(w)}

	version := doc.Version
	if version == "" {
		version = "1.7"
	}
	if _, err := pw.WriteString("%PDF-" + version + "\n%\xe2\xe3\xcf\xd3\n"); err != nil {
		return err
	}

	numbers := make([]uint32, 0, len(doc.xref))
	for n, entry := range doc.xref {
		if entry.kind != xrefFree {
			numbers = append(numbers, n)
		}
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	offsets := make(map[uint32]int64, len(numbers))
	maxNum := uint32(0)

	for _, num := range numbers {
		if num > maxNum {
			maxNum = num
		}
		obj, err := doc.Get(Reference{Number: num})
		if err != nil {
			return fmt.Errorf("pdflib: object %d: %w", num, err)
		}
		if _, isNull := obj.(Null); isNull {
			continue
		}

		offsets[num] = pw.pos
		if err := writeIndirectObject(pw, num, obj); err != nil {
			return fmt.Errorf("pdflib: object %d: %w", num, err)
		}
	}

	xrefPos := pw.pos
	if err := writeXRefTable(pw, maxNum, offsets); err != nil {
		return err
	}

	trailer := Dict{}
	for k, v := range doc.Trailer {
		trailer[k] = v
	}
	delete(trailer, "Prev")
	delete(trailer, "XRefStm")
	trailer["Size"] = Integer(maxNum + 1)

	if _, err := pw.WriteString("trailer\n"); err != nil {
		return err
	}
	if err := trailer.PDF(pw); err != nil {
		return err
	}
	if _, err := pw.WriteString(fmt.Sprintf("\nstartxref\n%d\n%%%%EOF\n", xrefPos)); err != nil {
		return err
	}

	return pw.w.Flush()
}

func writeIndirectObject(pw *posWriter, num uint32, obj Object) error {
	if _, err := pw.WriteString(fmt.Sprintf("%d 0 obj\n", num)); err != nil {
		return err
	}

	stream, isStream := obj.(*Stream)
	if isStream {
		dict := Dict{}
		for k, v := range stream.Dict {
			dict[k] = v
		}
		dict["Length"] = Integer(len(stream.Raw))
		if err := dict.PDF(pw); err != nil {
			return err
		}
		if _, err := pw.WriteString("\nstream\n"); err != nil {
			return err
		}
		if _, err := pw.Write(stream.Raw); err != nil {
			return err
		}
		if _, err := pw.WriteString("\nendstream"); err != nil {
			return err
		}
	} else {
		if obj == nil {
			obj = Null{}
		}
		if err := obj.PDF(pw); err != nil {
			return err
		}
	}

	_, err := pw.WriteString("\nendobj\n")
	return err
}

func writeXRefTable(pw *posWriter, maxNum uint32, offsets map[uint32]int64) error {
	if _, err := pw.WriteString("xref\n"); err != nil {
		return err
	}
	if _, err := pw.WriteString(fmt.Sprintf("0 %d\n", maxNum+1)); err != nil {
		return err
	}
	if _, err := pw.WriteString("0000000000 65535 f \n"); err != nil {
		return err
	}
	for num := uint32(1); num <= maxNum; num++ {
		off, ok := offsets[num]
		if !ok {
			if _, err := pw.WriteString("0000000000 00001 f \n"); err != nil {
				return err
			}
			continue
		}
		if _, err := pw.WriteString(fmt.Sprintf("%010d 00000 n \n", off)); err != nil {
			return err
		}
	}
	return nil
}
