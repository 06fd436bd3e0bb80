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

// Package pageselect parses the page-range grammar used to scope inversion
// to a subset of a document's pages.
package pageselect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind selects one of the range grammars.
type Kind int

const (
	KindAll Kind = iota
	KindOdd
	KindEven
	KindCustom
)

// Selector resolves to a concrete set of 1-based page numbers once the
// document's page count is known.
type Selector struct {
	Kind   Kind
	Custom string // only meaningful when Kind == KindCustom
}

// ErrUnparsed is returned when a KindCustom selector's expression cannot be
// parsed at all (as opposed to naming out-of-range pages, which is
// tolerated by dropping those pages).
type ErrUnparsed struct {
	Expr string
}

func (e *ErrUnparsed) Error() string {
	return fmt.Sprintf("pageselect: could not parse range %q", e.Expr)
}

// Resolve returns the sorted, de-duplicated, 1-based page numbers selected
// out of a document with pageCount pages. An empty CUSTOM expression widens
// to ALL, matching how an unset "which pages" filter should mean "every
// page" rather than "no pages".
func Resolve(sel Selector, pageCount int) ([]int, error) {
	switch sel.Kind {
	case KindOdd:
		return rangeStep(1, pageCount, 2), nil
	case KindEven:
		return rangeStep(2, pageCount, 2), nil
	case KindCustom:
		trimmed := strings.TrimSpace(sel.Custom)
		if trimmed == "" {
			return rangeStep(1, pageCount, 1), nil
		}
		return parseCustom(trimmed, pageCount)
	default:
		return rangeStep(1, pageCount, 1), nil
	}
}

func rangeStep(start, count, step int) []int {
	var out []int
	for i := start; i <= count; i += step {
		out = append(out, i)
	}
	return out
}

// parseCustom parses a comma-separated list of "a-b" ranges and single page
// numbers "n". A range with a > b is swapped rather than rejected, since a
// user transposing the endpoints almost certainly meant the pages between
// them either way.
func parseCustom(expr string, pageCount int) ([]int, error) {
	set := map[int]bool{}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.Index(part, "-"); idx > 0 {
			aStr := strings.TrimSpace(part[:idx])
			bStr := strings.TrimSpace(part[idx+1:])
			a, errA := strconv.Atoi(aStr)
			b, errB := strconv.Atoi(bStr)
			if errA != nil || errB != nil {
				return nil, &ErrUnparsed{Expr: expr}
			}
			if a > b {
				a, b = b, a
			}
			for p := a; p <= b; p++ {
				if p >= 1 && p <= pageCount {
					set[p] = true
				}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ErrUnparsed{Expr: expr}
		}
		if n >= 1 && n <= pageCount {
			set[n] = true
		}
	}

	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}
