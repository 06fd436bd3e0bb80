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

package raster

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

// Encode replaces stream's dictionary and payload with img. When
// opts.Compress is set and the image has no alpha, the payload is
// re-encoded as JPEG (DCTDecode); otherwise it is stored as raw DeviceRGB
// samples under FlateDecode, matching how a lossless re-embed looks as a
// native PDF image XObject (not a PNG container). An image with alpha gets
// its transparency split into a separate /SMask grayscale image XObject,
// since PDF image XObjects carry no alpha channel of their own.
func Encode(alloc Allocator, stream *pdflib.Stream, img *image.NRGBA, hasAlpha bool, opts Options) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	stream.Dict = pdflib.Dict{
		"Type":             pdflib.Name("XObject"),
		"Subtype":          pdflib.Name("Image"),
		"Width":            pdflib.Integer(width),
		"Height":           pdflib.Integer(height),
		"BitsPerComponent": pdflib.Integer(8),
		"ColorSpace":       pdflib.Name("DeviceRGB"),
	}

	if hasAlpha {
		smask := buildSMask(img)
		ref := alloc.NewObject(smask)
		stream.Dict["SMask"] = ref
	}

	if opts.Compress && !hasAlpha {
		var buf bytes.Buffer
		quality := int(mapDPIToJPEGQuality(opts.OutputDPI) * 100)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return err
		}
		stream.Dict["Filter"] = pdflib.Name("DCTDecode")
		stream.Raw = buf.Bytes()
		return nil
	}

	raw := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		raw[i*3+0] = img.Pix[i*4+0]
		raw[i*3+1] = img.Pix[i*4+1]
		raw[i*3+2] = img.Pix[i*4+2]
	}
	stream.SetDecoded(raw)
	return nil
}

func buildSMask(img *image.NRGBA) *pdflib.Stream {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	raw := make([]byte, width*height)
	for i := 0; i < width*height; i++ {
		raw[i] = img.Pix[i*4+3]
	}

	stream := &pdflib.Stream{Dict: pdflib.Dict{
		"Type":             pdflib.Name("XObject"),
		"Subtype":          pdflib.Name("Image"),
		"Width":            pdflib.Integer(width),
		"Height":           pdflib.Integer(height),
		"BitsPerComponent": pdflib.Integer(8),
		"ColorSpace":       pdflib.Name("DeviceGray"),
	}}
	stream.SetDecoded(raw)
	return stream
}
