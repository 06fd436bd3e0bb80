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

import "fmt"

// Page is one leaf of the page tree, with the inheritable attributes
// (Resources, MediaBox, Rotate) already resolved from its ancestors.
type Page struct {
	Ref       Reference
	Dict      Dict
	Resources Dict
	MediaBox  [4]float64
	Rotate    int64
	Contents  []*Stream
	Annots    Array

	doc *Document
}

type pageInherited struct {
	resources Object
	mediaBox  Object
	rotate    Object
}

// Pages walks the document's page tree (/Root/Pages) in reading order,
// applying inheritable attributes along the way, and returns the flattened
// leaf list.
func (doc *Document) Pages() ([]*Page, error) {
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, err
	}
	root, ok := catalog["Pages"]
	if !ok {
		return nil, &ErrMalformed{Reason: "catalog has no /Pages"}
	}

	var pages []*Page
	visited := map[Reference]bool{}
	err = doc.walkPageTree(root, pageInherited{}, visited, &pages)
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (doc *Document) walkPageTree(node Object, inherited pageInherited, visited map[Reference]bool, out *[]*Page) error {
	ref, isRef := node.(Reference)
	if isRef {
		if visited[ref] {
			return nil // cyclic page tree; ignore the repeat rather than fail the whole document.
		}
		visited[ref] = true
	}

	dict, err := GetDict(doc, node)
	if err != nil {
		return err
	}
	if dict == nil {
		return nil
	}

	if v, ok := dict["Resources"]; ok {
		inherited.resources = v
	}
	if v, ok := dict["MediaBox"]; ok {
		inherited.mediaBox = v
	}
	if v, ok := dict["Rotate"]; ok {
		inherited.rotate = v
	}

	switch dict["Type"] {
	case Name("Pages"):
		kids, err := GetArray(doc, dict["Kids"])
		if err != nil {
			return fmt.Errorf("pdflib: /Kids: %w", err)
		}
		for _, kid := range kids {
			if err := doc.walkPageTree(kid, inherited, visited, out); err != nil {
				return err
			}
		}
		return nil

	default: // Type absent or "Page": treat as a leaf, as real-world files vary.
		page, err := doc.buildPage(ref, dict, inherited)
		if err != nil {
			return err
		}
		*out = append(*out, page)
		return nil
	}
}

func (doc *Document) buildPage(ref Reference, dict Dict, inherited pageInherited) (*Page, error) {
	page := &Page{Ref: ref, Dict: dict, MediaBox: [4]float64{0, 0, 612, 792}, doc: doc}

	if res, err := GetDict(doc, inherited.resources); err == nil && res != nil {
		page.Resources = res
	}

	if box, err := GetArray(doc, inherited.mediaBox); err == nil && len(box) == 4 {
		for i := 0; i < 4; i++ {
			if f, ok := AsFloat(box[i]); ok {
				page.MediaBox[i] = f
			}
		}
	}

	if rotate, err := GetInt(doc, inherited.rotate); err == nil {
		page.Rotate = rotate
	}

	contents := dict["Contents"]
	switch c := contents.(type) {
	case Reference, Dict:
		if stream, err := GetStream(doc, c); err == nil && stream != nil {
			page.Contents = append(page.Contents, stream)
		}
	case Array:
		for _, item := range c {
			if stream, err := GetStream(doc, item); err == nil && stream != nil {
				page.Contents = append(page.Contents, stream)
			}
		}
	}

	if annots, err := GetArray(doc, dict["Annots"]); err == nil {
		page.Annots = annots
	}

	return page, nil
}

// ContentBytes concatenates a page's content streams with separating
// whitespace, decoding each along the way. Per-stream decode failures are
// returned as an error identifying which stream failed, leaving it to the
// caller to decide whether the whole page should be skipped.
func (p *Page) ContentBytes() ([]byte, error) {
	var out []byte
	for i, stream := range p.Contents {
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("content stream %d: %w", i, err)
		}
		out = append(out, decoded...)
		out = append(out, '\n')
	}
	return out, nil
}

// SetContent replaces the page's content with a single stream holding data,
// discarding any previous multi-stream split. The new stream is registered
// in the owning document under a freshly allocated object number, and the
// page dictionary's /Contents entry is repointed at it, so the change is
// picked up by a subsequent Write.
func (p *Page) SetContent(data []byte) {
	stream := &Stream{Dict: Dict{}}
	stream.SetDecoded(data)
	p.Contents = []*Stream{stream}

	if p.doc != nil {
		ref := p.doc.NewObject(stream)
		p.Dict["Contents"] = ref
	}
}
