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

// Annotation wraps one entry of a page's /Annots array.
type Annotation struct {
	Ref  Reference
	Dict Dict
}

// GetAnnotation resolves one element of a page's /Annots array.
func GetAnnotation(g Getter, obj Object) (*Annotation, error) {
	ref, _ := obj.(Reference)
	dict, err := GetDict(g, obj)
	if err != nil || dict == nil {
		return nil, err
	}
	return &Annotation{Ref: ref, Dict: dict}, nil
}

// AppearanceStreams returns every content stream reachable from the
// annotation's /AP (appearance dictionary) entry: normal, rollover, and
// down states, with sub-dictionaries keyed by appearance state flattened
// into the list. An annotation whose normal appearance is a sub-dictionary
// of named states (e.g. a checkbox's "On"/"Off") contributes one entry per
// state rather than just the currently selected one, since every state's
// glyphs are potentially visible depending on viewer interaction.
func (a *Annotation) AppearanceStreams(g Getter) ([]*Stream, error) {
	ap, err := GetDict(g, a.Dict["AP"])
	if err != nil || ap == nil {
		return nil, err
	}

	var out []*Stream
	for _, key := range []Name{"N", "R", "D"} {
		entry, ok := ap[key]
		if !ok {
			continue
		}
		resolved, err := Resolve(g, entry)
		if err != nil {
			return nil, err
		}
		switch v := resolved.(type) {
		case *Stream:
			out = append(out, v)
		case Dict:
			for _, sub := range v {
				if stream, err := GetStream(g, sub); err == nil && stream != nil {
					out = append(out, stream)
				}
			}
		}
	}
	return out, nil
}
