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

package walker

import (
	"testing"

	"github.com/bhyresh-dev/PDF-Flux/pdflib"
)

func TestResourcesToDictOmitsAbsentSubDictionaries(t *testing.T) {
	d := resourcesToDict(pdflib.Resources{
		XObject: pdflib.Dict{"Im0": pdflib.Reference{Number: 1}},
	})
	if _, ok := d["XObject"]; !ok {
		t.Error("present XObject sub-dictionary was dropped")
	}
	for _, key := range []pdflib.Name{"ExtGState", "ColorSpace", "Pattern", "Shading", "Font", "Properties"} {
		if _, ok := d[key]; ok {
			t.Errorf("absent %s should not appear in the rebuilt dictionary", key)
		}
	}
}

func TestResourcesToDictEmptyResourcesYieldsEmptyDict(t *testing.T) {
	d := resourcesToDict(pdflib.Resources{})
	if len(d) != 0 {
		t.Errorf("zero-valued Resources should rebuild to an empty Dict, got %v", d)
	}
}
