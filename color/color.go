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

// Package color implements the per-channel math behind every inversion
// mode, shared by package rewrite (content-stream color operators) and
// package raster (image pixels).
package color

// Mode selects how a color is transformed.
type Mode int

const (
	ModeFull Mode = iota
	ModeGrayscale
	ModeTextOnly
	ModeCustom
)

// darkModeBackground and darkModeText are CUSTOM mode's fixed replacement
// colors, normalized to [0,1]. They match a conventional dark-mode palette:
// near-black background, near-white text.
var (
	darkModeBackground = [3]float64{42.0 / 255, 42.0 / 255, 42.0 / 255}
	darkModeText       = [3]float64{232.0 / 255, 232.0 / 255, 232.0 / 255}
)

// Blend interpolates between an unmodified value and its fully inverted
// counterpart by percentage (0-100), so a request for partial inversion
// (e.g. a gentler dark mode) lands somewhere between the two instead of
// always producing the fully inverted color.
func Blend(original, inverted float64, percentage int) float64 {
	if percentage >= 100 {
		return inverted
	}
	if percentage <= 0 {
		return original
	}
	t := float64(percentage) / 100
	return Clamp01(original + (inverted-original)*t)
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Luminance computes perceptual brightness from linear RGB using the
// standard Rec. 601 luma weights.
func Luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// InvertGray inverts a single DeviceGray pixel sample. Under TEXT_ONLY it
// applies the brightness-conditional rule (invert dark pixels, leave light
// ones alone) rather than a full inversion; use InvertGrayOperand for
// content-stream operand colors, which invert unconditionally under
// TEXT_ONLY.
func InvertGray(gray float64, mode Mode) float64 {
	switch mode {
	case ModeTextOnly:
		if gray > 0.5 {
			return gray // light background, left alone
		}
		return Clamp01(1 - gray)
	case ModeCustom:
		r, _, _ := InvertRGB(gray, gray, gray, mode)
		return r
	default:
		return Clamp01(1 - gray)
	}
}

// InvertGrayOperand inverts a DeviceGray content-stream operand color.
// TEXT_ONLY behaves exactly like FULL here: text and vector-graphics colors
// always invert, unlike the brightness-conditional rule InvertGray applies
// to image pixels.
func InvertGrayOperand(gray float64, mode Mode) float64 {
	if mode == ModeTextOnly {
		mode = ModeFull
	}
	return InvertGray(gray, mode)
}

// InvertRGB transforms one DeviceRGB pixel sample according to mode. Under
// TEXT_ONLY it applies the brightness-conditional rule (invert dark pixels,
// leave light ones alone); use InvertRGBOperand for content-stream operand
// colors, which invert unconditionally under TEXT_ONLY.
func InvertRGB(r, g, b float64, mode Mode) (float64, float64, float64) {
	switch mode {
	case ModeGrayscale:
		gray := Clamp01(1 - Luminance(r, g, b))
		return gray, gray, gray

	case ModeTextOnly:
		brightness := (r + g + b) / 3
		if brightness >= 0.5 {
			return Clamp01(r), Clamp01(g), Clamp01(b)
		}
		return Clamp01(1 - r), Clamp01(1 - g), Clamp01(1 - b)

	case ModeCustom:
		avg := (r + g + b) / 3
		switch {
		case avg > 200.0/255:
			return darkModeBackground[0], darkModeBackground[1], darkModeBackground[2]
		case avg < 55.0/255:
			return darkModeText[0], darkModeText[1], darkModeText[2]
		default:
			const offset = 30.0 / 255
			return Clamp01(1 - r + offset), Clamp01(1 - g + offset), Clamp01(1 - b + offset)
		}

	default: // ModeFull
		return Clamp01(1 - r), Clamp01(1 - g), Clamp01(1 - b)
	}
}

// InvertRGBOperand transforms one DeviceRGB content-stream operand color.
// TEXT_ONLY behaves exactly like FULL here: text and vector-graphics colors
// always invert, unlike the brightness-conditional rule InvertRGB applies
// to image pixels.
func InvertRGBOperand(r, g, b float64, mode Mode) (float64, float64, float64) {
	if mode == ModeTextOnly {
		mode = ModeFull
	}
	return InvertRGB(r, g, b, mode)
}

// InvertCMYK transforms one DeviceCMYK pixel sample by converting to RGB,
// inverting, and converting back, so the four modes above only need to be
// implemented once.
func InvertCMYK(c, m, y, k float64, mode Mode) (float64, float64, float64, float64) {
	r, g, b := CMYKToRGB(c, m, y, k)
	r2, g2, b2 := InvertRGB(r, g, b, mode)
	return RGBToCMYK(r2, g2, b2)
}

// InvertCMYKOperand transforms one DeviceCMYK content-stream operand color,
// the same way InvertCMYK does but routed through InvertRGBOperand so
// TEXT_ONLY inverts unconditionally.
func InvertCMYKOperand(c, m, y, k float64, mode Mode) (float64, float64, float64, float64) {
	r, g, b := CMYKToRGB(c, m, y, k)
	r2, g2, b2 := InvertRGBOperand(r, g, b, mode)
	return RGBToCMYK(r2, g2, b2)
}

// CMYKToRGB converts using the standard naive (non-ICC) formula used
// throughout the PDF content-stream color operators.
func CMYKToRGB(c, m, y, k float64) (float64, float64, float64) {
	r := (1 - c) * (1 - k)
	g := (1 - m) * (1 - k)
	b := (1 - y) * (1 - k)
	return r, g, b
}

// RGBToCMYK inverts CMYKToRGB. It is the standard formula that extracts the
// largest possible K channel before distributing the remainder across CMY.
func RGBToCMYK(r, g, b float64) (c, m, y, k float64) {
	k = 1 - maxOf(r, g, b)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	c = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return Clamp01(c), Clamp01(m), Clamp01(y), Clamp01(k)
}

func maxOf(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// BackgroundAndForeground returns the page-background fill color and the
// foreground (text/vector-graphics default) stroke/fill color the
// background prelude should use for mode. Only CUSTOM and the light-on-dark
// family of modes need a contrasting background; FULL and GRAYSCALE invert
// an implicit white canvas to black.
func BackgroundAndForeground(mode Mode) (bg [3]float64, fg [3]float64) {
	switch mode {
	case ModeCustom:
		return darkModeBackground, darkModeText
	default:
		return [3]float64{0, 0, 0}, [3]float64{1, 1, 1}
	}
}
