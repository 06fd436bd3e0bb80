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
	"compress/zlib"
	"fmt"
	"io"
)

// Stream is a PDF stream object: a dictionary together with a (possibly
// filtered) byte payload.
type Stream struct {
	Dict Dict

	// Raw holds the payload exactly as it appears in the file (or as last
	// set by SetDecoded), i.e. still subject to the filters named in
	// Dict["Filter"].
	Raw []byte
}

// PDF writes only the dictionary; callers that need to serialize the full
// stream object (dict + "stream" ... "endstream") use writeIndirectObject in
// writer.go, since the raw bytes must be interleaved with the /Length
// bookkeeping that only the writer can compute.
func (s *Stream) PDF(w io.Writer) error {
	return s.Dict.PDF(w)
}

// Decode returns the stream's payload with all filters in Dict["Filter"]
// removed, in order.
func (s *Stream) Decode() ([]byte, error) {
	names, params := s.filterChain()
	data := s.Raw
	for i, name := range names {
		var param Dict
		if i < len(params) {
			param = params[i]
		}
		decoded, err := applyFilter(name, param, data)
		if err != nil {
			return nil, fmt.Errorf("pdflib: %s: %w", name, err)
		}
		data = decoded
	}
	return data, nil
}

// SetDecoded replaces the stream's content with data, re-applying
// FlateDecode compression and updating Dict accordingly. Any previously
// present filter chain is discarded; this module never round-trips a
// stream's original filter list, since content and image streams are always
// rewritten and the output document is re-serialized from scratch rather
// than patched byte-for-byte.
func (s *Stream) SetDecoded(data []byte) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()

	if s.Dict == nil {
		s.Dict = Dict{}
	}
	s.Dict["Filter"] = Name("FlateDecode")
	delete(s.Dict, "DecodeParms")
	delete(s.Dict, "Length")
	s.Raw = buf.Bytes()
}

func (s *Stream) filterChain() ([]Name, []Dict) {
	var names []Name
	var params []Dict

	switch f := s.Dict["Filter"].(type) {
	case Name:
		names = []Name{f}
	case Array:
		for _, item := range f {
			if n, ok := item.(Name); ok {
				names = append(names, n)
			}
		}
	}

	switch p := s.Dict["DecodeParms"].(type) {
	case Dict:
		params = []Dict{p}
	case Array:
		for _, item := range p {
			d, _ := item.(Dict)
			params = append(params, d)
		}
	}

	return names, params
}
