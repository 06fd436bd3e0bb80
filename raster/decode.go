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
	"fmt"
	"image"
	stdcolor "image/color"
	"image/jpeg"
	"io"

	"golang.org/x/image/ccitt"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

// Decode turns an image XObject stream into a Go image.Image, along with
// whether it carries a soft mask (alpha channel). g is used to resolve the
// stream's /SMask, if present.
func Decode(g pdflib.Getter, stream *pdflib.Stream) (image.Image, bool, error) {
	width, _ := pdflib.GetInt(g, stream.Dict["Width"])
	height, _ := pdflib.GetInt(g, stream.Dict["Height"])
	if width <= 0 || height <= 0 {
		return nil, false, fmt.Errorf("raster: image has no dimensions")
	}

	filter, params := lastFilter(stream)

	var base image.Image
	var err error

	switch filter {
	case "DCTDecode", "DCT":
		base, err = jpeg.Decode(bytes.NewReader(stream.Raw))
		if err != nil {
			return nil, false, fmt.Errorf("jpeg: %w", err)
		}

	case "CCITTFaxDecode", "CCF":
		base, err = decodeCCITT(stream.Raw, int(width), int(height), params)
		if err != nil {
			return nil, false, fmt.Errorf("ccitt: %w", err)
		}

	case "JPXDecode":
		return nil, false, fmt.Errorf("raster: JPEG2000 images are not supported")

	default:
		decoded, err := stream.Decode()
		if err != nil {
			return nil, false, err
		}
		base, err = decodeRawSamples(g, stream.Dict, decoded, int(width), int(height))
		if err != nil {
			return nil, false, err
		}
	}

	smask, err := decodeSMask(g, stream.Dict, int(width), int(height))
	if err != nil {
		// A broken soft mask degrades to an opaque image rather than
		// failing the whole image transform.
		smask = nil
	}
	if smask == nil {
		return base, false, nil
	}
	return applySMask(base, smask), true, nil
}

func lastFilter(stream *pdflib.Stream) (pdflib.Name, pdflib.Dict) {
	var names []pdflib.Name
	var params []pdflib.Dict

	switch f := stream.Dict["Filter"].(type) {
	case pdflib.Name:
		names = []pdflib.Name{f}
	case pdflib.Array:
		for _, item := range f {
			if n, ok := item.(pdflib.Name); ok {
				names = append(names, n)
			}
		}
	}
	switch p := stream.Dict["DecodeParms"].(type) {
	case pdflib.Dict:
		params = []pdflib.Dict{p}
	case pdflib.Array:
		for _, item := range p {
			d, _ := item.(pdflib.Dict)
			params = append(params, d)
		}
	}

	if len(names) == 0 {
		return "", nil
	}
	idx := len(names) - 1
	var param pdflib.Dict
	if idx < len(params) {
		param = params[idx]
	}
	return names[idx], param
}

func decodeCCITT(data []byte, width, height int, params pdflib.Dict) (image.Image, error) {
	k := int64(0)
	if params != nil {
		if v, ok := params["K"].(pdflib.Integer); ok {
			k = int64(v)
		}
	}
	mode := ccitt.Group3
	if k < 0 {
		mode = ccitt.Group4
	}

	blackIs1 := false
	if params != nil {
		if v, ok := params["BlackIs1"].(pdflib.Boolean); ok {
			blackIs1 = bool(v)
		}
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, mode, width, height, &ccitt.Options{Invert: !blackIs1})

	rowBytes := (width + 7) / 8
	packed := make([]byte, rowBytes*height)
	io.ReadFull(r, packed) // a short read just leaves the remaining rows black

	img := image.NewGray(image.Rect(0, 0, width, height))
	unpackSamples(packed, width, height, 1, 1, img.Pix)
	return img, nil
}

// decodeRawSamples interprets a Flate/LZW/ASCII85-decoded (i.e. uncompressed
// by this point) pixel buffer according to /ColorSpace and
// /BitsPerComponent. Only DeviceGray, DeviceRGB, and DeviceCMYK are
// understood; an ICCBased color space is treated as three-component RGB,
// while Indexed (no palette lookup) and any other color space fall back to
// treating the data as DeviceGray.
func decodeRawSamples(g pdflib.Getter, dict pdflib.Dict, data []byte, width, height int) (image.Image, error) {
	bpc, _ := pdflib.GetInt(g, dict["BitsPerComponent"])
	if bpc == 0 {
		bpc = 8
	}
	components := colorSpaceComponents(g, dict["ColorSpace"])

	switch components {
	case 1:
		img := image.NewGray(image.Rect(0, 0, width, height))
		unpackSamples(data, width, height, 1, int(bpc), img.Pix)
		return img, nil

	case 3:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		rgb := make([]byte, width*height*3)
		unpackSamples(data, width, height, 3, int(bpc), rgb)
		for i := 0; i < width*height; i++ {
			img.Pix[i*4+0] = rgb[i*3+0]
			img.Pix[i*4+1] = rgb[i*3+1]
			img.Pix[i*4+2] = rgb[i*3+2]
			img.Pix[i*4+3] = 255
		}
		return img, nil

	case 4:
		img := image.NewCMYK(image.Rect(0, 0, width, height))
		unpackSamples(data, width, height, 4, int(bpc), img.Pix)
		return img, nil

	default:
		img := image.NewGray(image.Rect(0, 0, width, height))
		unpackSamples(data, width, height, 1, int(bpc), img.Pix)
		return img, nil
	}
}

func colorSpaceComponents(g pdflib.Getter, obj pdflib.Object) int {
	resolved, err := pdflib.Resolve(g, obj)
	if err != nil {
		return 1
	}
	switch v := resolved.(type) {
	case pdflib.Name:
		switch v {
		case "DeviceGray", "CalGray", "G":
			return 1
		case "DeviceRGB", "CalRGB", "RGB":
			return 3
		case "DeviceCMYK", "CMYK":
			return 4
		}
	case pdflib.Array:
		if len(v) > 0 {
			if name, ok := v[0].(pdflib.Name); ok {
				switch name {
				case "ICCBased":
					// The N entry of the referenced stream gives the true
					// component count; defaulting to RGB covers the
					// overwhelming majority of embedded ICC profiles.
					return 3
				case "Indexed":
					return 1
				}
			}
		}
	}
	return 1
}

// unpackSamples expands a packed (possibly sub-byte) sample buffer into one
// byte per component per pixel, scaling up to 8 bits. Only bit depths 1, 2,
// 4, 8, and 16 are valid per the PDF spec; 16-bit samples are truncated to
// their high byte.
func unpackSamples(data []byte, width, height, components, bpc int, out []byte) {
	rowBits := width * components * bpc
	rowBytes := (rowBits + 7) / 8
	maxVal := float64((int64(1) << uint(bpc)) - 1)

	outIdx := 0
	for y := 0; y < height; y++ {
		rowStart := y * rowBytes
		if rowStart+rowBytes > len(data) {
			break
		}
		row := data[rowStart : rowStart+rowBytes]
		bitPos := 0
		for x := 0; x < width*components; x++ {
			if outIdx >= len(out) {
				return
			}
			val := readBits(row, bitPos, bpc)
			bitPos += bpc
			out[outIdx] = byte(float64(val) / maxVal * 255)
			outIdx++
		}
	}
}

func readBits(row []byte, bitPos, nbits int) uint32 {
	var v uint32
	for i := 0; i < nbits; i++ {
		byteIdx := (bitPos + i) / 8
		if byteIdx >= len(row) {
			break
		}
		bitIdx := 7 - uint((bitPos+i)%8)
		bit := (row[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint32(bit)
	}
	return v
}

func decodeSMask(g pdflib.Getter, dict pdflib.Dict, width, height int) (*image.Gray, error) {
	smaskObj, ok := dict["SMask"]
	if !ok {
		return nil, nil
	}
	stream, err := pdflib.GetStream(g, smaskObj)
	if err != nil || stream == nil {
		return nil, err
	}

	img, _, err := Decode(g, stream)
	if err != nil {
		return nil, err
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	bounds := img.Bounds()
	sx := float64(bounds.Dx()) / float64(width)
	sy := float64(bounds.Dy()) / float64(height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sr, sg, sb, _ := img.At(bounds.Min.X+int(float64(x)*sx), bounds.Min.Y+int(float64(y)*sy)).RGBA()
			_ = sg
			_ = sb
			gray.SetGray(x, y, stdcolor.Gray{Y: uint8(sr >> 8)})
		}
	}
	return gray, nil
}

func applySMask(base image.Image, mask *image.Gray) *image.NRGBA {
	bounds := base.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := base.At(x, y).RGBA()
			a := mask.GrayAt(x-bounds.Min.X, y-bounds.Min.Y).Y
			out.Set(x, y, stdcolor.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a})
		}
	}
	return out
}
