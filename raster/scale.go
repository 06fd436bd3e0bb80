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
	"image"
	"math"

	"golang.org/x/image/draw"
)

// referenceDPI is the DPI scaleForDPI assumes embedded images were
// authored at when no request targets a higher DPI; output requests at or
// above it are left at native resolution.
const referenceDPI = 300

// scaleForDPI downsamples img when outputDPI targets a resolution lower
// than referenceDPI. Images are never upscaled: a request for 600 DPI
// doesn't fabricate detail that wasn't in the source.
func scaleForDPI(img *image.NRGBA, outputDPI int) *image.NRGBA {
	if outputDPI <= 0 || outputDPI >= referenceDPI {
		return img
	}

	scale := float64(outputDPI) / referenceDPI
	bounds := img.Bounds()
	newW := int(math.Max(1, math.Round(float64(bounds.Dx())*scale)))
	newH := int(math.Max(1, math.Round(float64(bounds.Dy())*scale)))
	if newW >= bounds.Dx() && newH >= bounds.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
