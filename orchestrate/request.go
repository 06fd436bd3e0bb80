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

package orchestrate

import (
	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pageselect"
)

// InversionMode mirrors color.Mode at the external-interface boundary, so
// callers outside this module (the CLI, a future HTTP adapter) never need
// to import the color package directly.
type InversionMode int

const (
	ModeFull InversionMode = iota
	ModeGrayscale
	ModeTextOnly
	ModeCustom
)

func (m InversionMode) toColorMode() color.Mode {
	switch m {
	case ModeGrayscale:
		return color.ModeGrayscale
	case ModeTextOnly:
		return color.ModeTextOnly
	case ModeCustom:
		return color.ModeCustom
	default:
		return color.ModeFull
	}
}

// RangeType selects which of the page-range grammars applies.
type RangeType int

const (
	RangeAll RangeType = iota
	RangeOdd
	RangeEven
	RangeCustom
)

// RangeSelector names which pages a ProcessRequest should touch.
// CustomRange is only consulted when Type == RangeCustom.
type RangeSelector struct {
	Type        RangeType
	CustomRange string
}

func (r RangeSelector) toPageSelectSelector() pageselect.Selector {
	switch r.Type {
	case RangeOdd:
		return pageselect.Selector{Kind: pageselect.KindOdd}
	case RangeEven:
		return pageselect.Selector{Kind: pageselect.KindEven}
	case RangeCustom:
		return pageselect.Selector{Kind: pageselect.KindCustom, Custom: r.CustomRange}
	default:
		return pageselect.Selector{Kind: pageselect.KindAll}
	}
}

// ProcessRequest describes one inversion job. Zero-value fields resolve to
// their documented defaults through normalize; callers are not required to
// populate every field.
type ProcessRequest struct {
	Mode InversionMode
	Range RangeSelector

	CompressImages bool

	// OutputDPIHint is one of 150, 300, 600; other values are snapped to
	// the nearest supported value for quality selection rather than
	// rejected, matching the "accepted and interpreted" wording of the
	// external interface.
	OutputDPIHint int

	// InversionPercentage (0-100) blends every rewritten color between its
	// original and fully inverted value. 100 (the default) is a full
	// inversion; values below it produce progressively gentler dark-mode
	// style conversions. This has no equivalent operator in the taxonomy
	// above and is purely additive: leaving it unset behaves exactly as if
	// it did not exist.
	InversionPercentage int
}

// normalized is a ProcessRequest with every field resolved to a concrete,
// in-range value.
type normalized struct {
	mode         color.Mode
	pageSelector pageselect.Selector
	compress     bool
	outputDPI    int
	percentage   int
}

// normalize resolves defaults and clamps out-of-range values: never reject
// a request for a merely-imprecise value when a reasonable default exists.
func normalize(req ProcessRequest) normalized {
	n := normalized{
		mode:         req.Mode.toColorMode(),
		pageSelector: req.Range.toPageSelectSelector(),
		compress:     req.CompressImages,
		outputDPI:    snapDPI(req.OutputDPIHint),
		percentage:   req.InversionPercentage,
	}
	if req.InversionPercentage == 0 {
		n.percentage = 100
	}
	if n.percentage < 0 {
		n.percentage = 0
	}
	if n.percentage > 100 {
		n.percentage = 100
	}
	return n
}

func snapDPI(hint int) int {
	if hint <= 0 {
		return 300
	}
	candidates := [3]int{150, 300, 600}
	best := candidates[0]
	bestDist := abs(hint - best)
	for _, c := range candidates[1:] {
		if d := abs(hint - c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
