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
	"compress/lzw"
	"compress/zlib"
	"encoding/ascii85"
	"fmt"
	"io"
)

// applyFilter decodes data assuming it was encoded with the named filter.
// CCITTFaxDecode and DCTDecode (JPEG) are intentionally passed through
// unchanged: those payloads are decoded directly by package raster, which
// needs the original compressed form to decide how to re-encode it.
func applyFilter(name Name, params Dict, data []byte) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return inflate(data, decodeParmInt(params, "Predictor", 1), decodeParmInt(params, "Columns", 1), decodeParmInt(params, "Colors", 1), decodeParmInt(params, "BitsPerComponent", 8))
	case "ASCII85Decode", "A85":
		return decodeASCII85(data)
	case "LZWDecode", "LZW":
		return decodeLZW(data, decodeParmInt(params, "EarlyChange", 1))
	case "CCITTFaxDecode", "CCF", "DCTDecode", "DCT", "JPXDecode":
		// left encoded; package raster owns these codecs.
		return data, nil
	case "":
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported filter %q", name)
	}
}

func decodeParmInt(d Dict, key Name, def int) int {
	if d == nil {
		return def
	}
	if v, ok := d[key].(Integer); ok {
		return int(v)
	}
	return def
}

func inflate(data []byte, predictor, columns, colors, bpc int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	if predictor <= 1 {
		return raw, nil
	}
	if predictor == 2 {
		return undoTIFFPredictor(raw, columns, colors, bpc), nil
	}
	return undoPNGPredictor(raw, columns, colors, bpc)
}

// undoTIFFPredictor reverses horizontal differencing (predictor 2). Only the
// common case of 8-bit samples is handled; PDFs with sub-byte TIFF
// prediction are vanishingly rare in the wild.
func undoTIFFPredictor(data []byte, columns, colors, bpc int) []byte {
	if bpc != 8 || colors <= 0 {
		return data
	}
	stride := columns * colors
	if stride <= 0 {
		return data
	}
	out := make([]byte, len(data))
	copy(out, data)
	for row := 0; row+stride <= len(out); row += stride {
		line := out[row : row+stride]
		for i := colors; i < len(line); i++ {
			line[i] += line[i-colors]
		}
	}
	return out
}

func undoPNGPredictor(data []byte, columns, colors, bpc int) ([]byte, error) {
	bytesPerPixel := (colors*bpc + 7) / 8
	if bytesPerPixel < 1 {
		bytesPerPixel = 1
	}
	rowBytes := (columns*colors*bpc + 7) / 8
	stride := rowBytes + 1

	var out bytes.Buffer
	prev := make([]byte, rowBytes)
	for pos := 0; pos+stride <= len(data); pos += stride {
		tag := data[pos]
		cur := make([]byte, rowBytes)
		copy(cur, data[pos+1:pos+stride])

		for i := 0; i < rowBytes; i++ {
			var a, b, c byte
			if i >= bytesPerPixel {
				a = cur[i-bytesPerPixel]
				c = prev[i-bytesPerPixel]
			}
			b = prev[i]

			switch tag {
			case 0: // None
			case 1: // Sub
				cur[i] += a
			case 2: // Up
				cur[i] += b
			case 3: // Average
				cur[i] += byte((int(a) + int(b)) / 2)
			case 4: // Paeth
				cur[i] += paeth(a, b, c)
			default:
				return nil, fmt.Errorf("unsupported PNG predictor tag %d", tag)
			}
		}

		out.Write(cur)
		prev = cur
	}
	return out.Bytes(), nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func decodeASCII85(data []byte) ([]byte, error) {
	end := bytes.Index(data, []byte("~>"))
	if end >= 0 {
		data = data[:end]
	}
	dec := ascii85.NewDecoder(bytes.NewReader(data))
	return io.ReadAll(dec)
}

func decodeLZW(data []byte, earlyChange int) ([]byte, error) {
	order := lzw.MSB
	litWidth := 8
	// PDF's default EarlyChange=1 matches the classic MSB-order codec that
	// compress/lzw already implements for TIFF/PDF-style streams.
	_ = earlyChange
	r := lzw.NewReader(bytes.NewReader(data), order, litWidth)
	defer r.Close()
	return io.ReadAll(r)
}
