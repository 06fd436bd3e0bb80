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

package pageselect

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		sel       Selector
		pageCount int
		want      []int
	}{
		{"all", Selector{Kind: KindAll}, 5, []int{1, 2, 3, 4, 5}},
		{"odd", Selector{Kind: KindOdd}, 6, []int{1, 3, 5}},
		{"even", Selector{Kind: KindEven}, 6, []int{2, 4, 6}},
		{"custom-scenario-S4", Selector{Kind: KindCustom, Custom: "2-3,7"}, 10, []int{2, 3, 7}},
		{"custom-swapped-range", Selector{Kind: KindCustom, Custom: "5-2"}, 10, []int{2, 3, 4, 5}},
		{"custom-out-of-bounds-dropped", Selector{Kind: KindCustom, Custom: "1,100"}, 3, []int{1}},
		{"custom-duplicates-collapsed", Selector{Kind: KindCustom, Custom: "1,1,1-2"}, 5, []int{1, 2}},
		{"custom-empty-widens-to-all", Selector{Kind: KindCustom, Custom: ""}, 4, []int{1, 2, 3, 4}},
		{"custom-whitespace-stripped", Selector{Kind: KindCustom, Custom: " 1 - 2 , 4 "}, 5, []int{1, 2, 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Resolve(c.sel, c.pageCount)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Resolve(%+v, %d) = %v; want %v", c.sel, c.pageCount, got, c.want)
			}
		})
	}
}

func TestResolveUnparsableCustomRange(t *testing.T) {
	_, err := Resolve(Selector{Kind: KindCustom, Custom: "abc"}, 5)
	if err == nil {
		t.Fatal("expected an error for an unparsable custom range")
	}
	if _, ok := err.(*ErrUnparsed); !ok {
		t.Errorf("expected *ErrUnparsed, got %T", err)
	}
}
