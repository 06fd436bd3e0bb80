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

package pdflib

import "testing"

// fakeGetter resolves References against an in-memory table, standing in
// for a parsed Document in tests that only need Get.
type fakeGetter map[Reference]Object

func (f fakeGetter) Get(ref Reference) (Object, error) {
	return f[ref], nil
}

func TestGetResourcesResolvesEachSubDictionary(t *testing.T) {
	xobjRef := Reference{Number: 5, Generation: 0}
	g := fakeGetter{
		xobjRef: Dict{"Im0": Reference{Number: 6, Generation: 0}},
	}
	page := Dict{
		"XObject": xobjRef,
		"Font":    Dict{"F1": Reference{Number: 7, Generation: 0}},
	}

	res, err := GetResources(g, page)
	if err != nil {
		t.Fatalf("GetResources returned error: %v", err)
	}
	if _, ok := res.XObject["Im0"]; !ok {
		t.Error("XObject sub-dictionary was not resolved through the indirect reference")
	}
	if _, ok := res.Font["F1"]; !ok {
		t.Error("Font sub-dictionary missing expected entry")
	}
	if res.ExtGState != nil {
		t.Errorf("absent ExtGState should resolve to nil, got %v", res.ExtGState)
	}
}

func TestGetResourcesNilDictYieldsZeroValue(t *testing.T) {
	g := fakeGetter{}
	res, err := GetResources(g, nil)
	if err != nil {
		t.Fatalf("GetResources(nil) returned error: %v", err)
	}
	if res.XObject != nil || res.Font != nil {
		t.Errorf("nil /Resources should yield a zero-valued Resources, got %+v", res)
	}
}

func TestClassifyXObject(t *testing.T) {
	image := &Stream{Dict: Dict{"Subtype": Name("Image")}}
	if got := ClassifyXObject(image); got != XObjectImage {
		t.Errorf("ClassifyXObject(image) = %v; want XObjectImage", got)
	}

	form := &Stream{Dict: Dict{"Subtype": Name("Form")}}
	if got := ClassifyXObject(form); got != XObjectForm {
		t.Errorf("ClassifyXObject(form) = %v; want XObjectForm", got)
	}

	unknown := &Stream{Dict: Dict{"Subtype": Name("Other")}}
	if got := ClassifyXObject(unknown); got != XObjectUnknown {
		t.Errorf("ClassifyXObject(unknown subtype) = %v; want XObjectUnknown", got)
	}

	if got := ClassifyXObject(nil); got != XObjectUnknown {
		t.Errorf("ClassifyXObject(nil) = %v; want XObjectUnknown", got)
	}
}
