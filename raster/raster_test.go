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
	stdcolor "image/color"
	"testing"

	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

func TestMapDPIToJPEGQuality(t *testing.T) {
	cases := []struct {
		dpi  int
		want float64
	}{
		{72, 0.70},
		{150, 0.70},
		{151, 0.85},
		{300, 0.85},
		{600, 0.92},
		{1200, 0.92},
	}
	for _, c := range cases {
		if got := mapDPIToJPEGQuality(c.dpi); got != c.want {
			t.Errorf("mapDPIToJPEGQuality(%d) = %v; want %v", c.dpi, got, c.want)
		}
	}
}

func TestScaleForDPINeverUpscales(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	out := scaleForDPI(img, 600)
	if out.Bounds() != img.Bounds() {
		t.Errorf("scaleForDPI at >= reference DPI changed bounds: got %v want %v", out.Bounds(), img.Bounds())
	}
}

func TestScaleForDPIDownscales(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	out := scaleForDPI(img, 150)
	if out.Bounds().Dx() >= img.Bounds().Dx() {
		t.Errorf("scaleForDPI(150) did not shrink width: got %d", out.Bounds().Dx())
	}
}

func TestIsStencil(t *testing.T) {
	stencil := pdflib.Dict{"ImageMask": pdflib.Boolean(true)}
	if !isStencil(stencil) {
		t.Error("dict with ImageMask true should be a stencil")
	}
	notStencil := pdflib.Dict{}
	if isStencil(notStencil) {
		t.Error("dict without ImageMask should not be a stencil")
	}
}

func TestInvertPixelsAlphaSafety(t *testing.T) {
	// property 8: alpha == 0 pixels stay alpha == 0, RGB == 0.
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, stdcolor.NRGBA{R: 200, G: 100, B: 50, A: 0})

	out := invertPixels(img, color.ModeFull, 100)
	got := out.NRGBAAt(0, 0)
	if got.A != 0 || got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("transparent pixel became %+v; want all-zero", got)
	}
}

func TestInvertPixelsFullInversion(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, stdcolor.NRGBA{R: 255, G: 0, B: 0, A: 255})

	out := invertPixels(img, color.ModeFull, 100)
	got := out.NRGBAAt(0, 0)
	if got.R != 0 || got.G != 255 || got.B != 255 || got.A != 255 {
		t.Errorf("full inversion of opaque red = %+v; want (0,255,255,255)", got)
	}
}

func TestInvertPixelsPercentageZeroIsNoOp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, stdcolor.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out := invertPixels(img, color.ModeFull, 0)
	got := out.NRGBAAt(0, 0)
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("0%% inversion changed pixel: got %+v", got)
	}
}
