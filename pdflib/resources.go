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

// Resources mirrors a page or Form XObject's /Resources dictionary. Each
// sub-dictionary is resolved to a Dict, but the entries inside it are kept
// unresolved (not walked further) since callers only ever need to look up
// one entry by name at a time.
type Resources struct {
	ExtGState  Dict
	ColorSpace Dict
	Pattern    Dict
	Shading    Dict
	XObject    Dict
	Font       Dict
	Properties Dict
}

// GetResources reads obj (typically a page's or Form's /Resources entry)
// into a Resources value. A nil or missing dictionary yields a zero-valued
// Resources, not an error, since resource-less content streams are valid.
func GetResources(g Getter, obj Object) (Resources, error) {
	dict, err := GetDict(g, obj)
	if err != nil || dict == nil {
		return Resources{}, err
	}

	get := func(key Name) Dict {
		d, _ := GetDict(g, dict[key])
		return d
	}
	return Resources{
		ExtGState:  get("ExtGState"),
		ColorSpace: get("ColorSpace"),
		Pattern:    get("Pattern"),
		Shading:    get("Shading"),
		XObject:    get("XObject"),
		Font:       get("Font"),
		Properties: get("Properties"),
	}, nil
}

// XObjectKind classifies an entry of /Resources/XObject.
type XObjectKind int

const (
	XObjectUnknown XObjectKind = iota
	XObjectImage
	XObjectForm
)

// ClassifyXObject inspects an XObject stream's /Subtype to tell images
// apart from form XObjects.
func ClassifyXObject(stream *Stream) XObjectKind {
	if stream == nil {
		return XObjectUnknown
	}
	switch stream.Dict["Subtype"] {
	case Name("Image"):
		return XObjectImage
	case Name("Form"):
		return XObjectForm
	default:
		return XObjectUnknown
	}
}
