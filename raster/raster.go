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

// Package raster decodes embedded image XObjects, inverts their pixels
// according to the same four modes as package color, optionally downscales
// for a lower target DPI, and re-encodes them back into image XObjects.
package raster

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

// Options controls how an image XObject is transformed.
type Options struct {
	Mode       color.Mode
	Compress   bool // re-encode as JPEG instead of lossless Flate
	OutputDPI  int
	Percentage int // 0-100, blends toward the inverted pixel; 100 is a full inversion
}

// Allocator registers a freshly built object in the owning document so it
// gets a reference other objects (here, an SMask) can point to and a
// subsequent Write discovers it. *pdflib.Document satisfies this.
type Allocator interface {
	NewObject(obj pdflib.Object) pdflib.Reference
}

// Invert decodes stream as an image, applies Options, and overwrites the
// stream's dictionary and raw payload with the transformed result. Stencil
// masks (ImageMask true) are left untouched: their 1-bit payload selects
// where the *current fill color* (already inverted by package rewrite)
// paints, so inverting the mask bits would swap painted and unpainted
// regions instead of inverting a color.
func Invert(g pdflib.Getter, alloc Allocator, stream *pdflib.Stream, opts Options) error {
	if isStencil(stream.Dict) {
		return nil
	}

	img, hasAlpha, err := Decode(g, stream)
	if err != nil {
		return fmt.Errorf("raster: decode: %w", err)
	}

	inverted := invertPixels(img, opts.Mode, opts.Percentage)
	scaled := scaleForDPI(inverted, opts.OutputDPI)

	return Encode(alloc, stream, scaled, hasAlpha, opts)
}

func isStencil(dict pdflib.Dict) bool {
	b, _ := dict["ImageMask"].(pdflib.Boolean)
	return bool(b)
}

// invertPixels applies mode to every non-transparent pixel of img,
// returning a new NRGBA image (never mutating img in place, since img may
// be backed by the original JPEG/Flate decoder's buffer).
func invertPixels(img image.Image, mode color.Mode, percentage int) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				out.Set(x, y, stdcolor.NRGBA{})
				continue
			}

			// RGBA() is alpha-premultiplied; divide out alpha before
			// inverting so the math operates on true color values.
			af := float64(a) / 0xffff
			rf := float64(r) / float64(a)
			gf := float64(g) / float64(a)
			bf := float64(b) / float64(a)

			nr, ng, nb := color.InvertRGB(rf, gf, bf, mode)
			nr = color.Blend(rf, nr, percentage)
			ng = color.Blend(gf, ng, percentage)
			nb = color.Blend(bf, nb, percentage)
			out.Set(x, y, stdcolor.NRGBA{R: to8(nr), G: to8(ng), B: to8(nb), A: to8(af)})
		}
	}
	return out
}

func to8(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}

// mapDPIToJPEGQuality picks a coarse quality band by output DPI: low-DPI
// outputs accept more compression since downstream viewers can't resolve
// the difference.
func mapDPIToJPEGQuality(outputDPI int) float64 {
	switch {
	case outputDPI <= 150:
		return 0.70
	case outputDPI >= 600:
		return 0.92
	default:
		return 0.85
	}
}
