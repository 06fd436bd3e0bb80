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

// Package walker drives one page's worth of inversion: its own content
// stream, the images and Form XObjects reachable from its resources, and
// its annotations' appearance streams.
//
// Two independent identity-keyed visited sets bound the traversal. Forms
// and annotation appearance streams are deduplicated document-wide: a
// Form XObject shared between page 3 and page 47 (a repeated letterhead,
// say) is rewritten exactly once no matter how many pages reference it.
// Images, by contrast, are deduplicated only within the current page: the
// same image object referenced from two different pages is inverted once
// per page, which matters because a page-scoped downscale decision
// (package raster's DPI handling) is meaningless to share across pages
// that might request different output settings in a future batch mode.
package walker

import (
	"log/slog"

	"github.com/bhyresh-dev/PDF-Flux/color"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
	"github.com/bhyresh-dev/PDF-Flux/raster"
	"github.com/bhyresh-dev/PDF-Flux/rewrite"
)

// Walker carries the state shared across every page of one document pass:
// the document itself (for reference resolution and new-object
// allocation) and the document-scoped visited set for forms/annotations.
type Walker struct {
	doc        *pdflib.Document
	mode       color.Mode
	rasterOpts raster.Options
	log        *slog.Logger
	docVisited map[pdflib.ObjectIdentity]bool
}

// New returns a Walker that will invert colors in mode, re-encoding images
// with rasterOpts.
func New(doc *pdflib.Document, mode color.Mode, rasterOpts raster.Options, log *slog.Logger) *Walker {
	if log == nil {
		log = slog.Default()
	}
	return &Walker{
		doc:        doc,
		mode:       mode,
		rasterOpts: rasterOpts,
		log:        log,
		docVisited: make(map[pdflib.ObjectIdentity]bool),
	}
}

// ProcessPage rewrites page's own content stream, then walks its resources
// and annotations regardless of whether that rewrite succeeded. A malformed
// content stream is logged as StreamRewriteFailed and left unchanged; every
// other per-resource failure (an unreadable image, a malformed form) is
// likewise logged and skipped rather than aborting the page.
func (w *Walker) ProcessPage(page *pdflib.Page) error {
	if err := rewrite.ApplyToPage(page, w.mode, w.rasterOpts.Percentage); err != nil {
		w.log.Warn("page content stream rewrite failed", "kind", "StreamRewriteFailed", "error", err)
	}

	pageVisited := make(map[pdflib.ObjectIdentity]bool)
	invertImages := w.mode != color.ModeTextOnly

	if invertImages {
		w.walkResourceImages(page.Resources, pageVisited)
	}
	w.walkFormXObjects(page.Resources, pageVisited)
	w.walkAnnotations(page.Annots, pageVisited)

	return nil
}

func (w *Walker) walkResourceImages(resources pdflib.Dict, pageVisited map[pdflib.ObjectIdentity]bool) {
	xobjects, _ := pdflib.GetDict(w.doc, resources["XObject"])
	for name, raw := range xobjects {
		stream, err := pdflib.GetStream(w.doc, raw)
		if err != nil || stream == nil {
			continue
		}
		if pdflib.ClassifyXObject(stream) != pdflib.XObjectImage {
			continue
		}

		id := pdflib.IdentityOf(raw)
		if pageVisited[id] {
			continue
		}
		pageVisited[id] = true

		if err := raster.Invert(w.doc, w.doc, stream, w.rasterOpts); err != nil {
			w.log.Warn("image inversion failed", "kind", "ImageTransformFailed", "resource", string(name), "error", err)
		}
	}
}

func (w *Walker) walkFormXObjects(resources pdflib.Dict, pageVisited map[pdflib.ObjectIdentity]bool) {
	xobjects, _ := pdflib.GetDict(w.doc, resources["XObject"])
	for name, raw := range xobjects {
		stream, err := pdflib.GetStream(w.doc, raw)
		if err != nil || stream == nil {
			continue
		}
		if pdflib.ClassifyXObject(stream) != pdflib.XObjectForm {
			continue
		}

		id := pdflib.IdentityOf(raw)
		if w.docVisited[id] {
			continue
		}
		w.docVisited[id] = true

		if err := rewrite.ApplyToStream(stream, w.mode, w.rasterOpts.Percentage); err != nil {
			w.log.Warn("form content stream rewrite failed", "kind", "StreamRewriteFailed", "resource", string(name), "error", err)
			continue
		}

		formResources, _ := pdflib.GetResources(w.doc, stream.Dict["Resources"])
		formDict := resourcesToDict(formResources)
		if w.mode != color.ModeTextOnly {
			w.walkResourceImages(formDict, pageVisited)
		}
		w.walkFormXObjects(formDict, pageVisited)
	}
}

// walkAnnotations walks every annotation's appearance stream, sharing
// pageVisited with the page's own resource walk so an image referenced both
// from the page and from one of its annotations (or from two annotations on
// the same page) is inverted exactly once.
func (w *Walker) walkAnnotations(annots pdflib.Array, pageVisited map[pdflib.ObjectIdentity]bool) {
	for _, a := range annots {
		annot, err := pdflib.GetAnnotation(w.doc, a)
		if err != nil || annot == nil {
			continue
		}

		streams, err := annot.AppearanceStreams(w.doc)
		if err != nil {
			w.log.Warn("annotation appearance unreadable", "kind", "StreamRewriteFailed", "error", err)
			continue
		}

		for _, stream := range streams {
			if w.appearanceVisited(stream) {
				continue
			}

			if err := rewrite.ApplyToStream(stream, w.mode, w.rasterOpts.Percentage); err != nil {
				w.log.Warn("annotation appearance rewrite failed", "kind", "StreamRewriteFailed", "error", err)
				continue
			}

			formResources, _ := pdflib.GetResources(w.doc, stream.Dict["Resources"])
			formDict := resourcesToDict(formResources)
			if w.mode != color.ModeTextOnly {
				w.walkResourceImages(formDict, pageVisited)
			}
			w.walkFormXObjects(formDict, pageVisited)
		}
	}
}

// appearanceVisited dedups appearance streams by their *pdflib.Stream
// pointer identity: unlike resources reached through a /Resources
// dictionary, an annotation's /AP entry is resolved straight to a stream
// with no intervening Reference available at this call site once
// GetStream has already run, so pointer identity stands in for it.
func (w *Walker) appearanceVisited(stream *pdflib.Stream) bool {
	key := pdflib.IdentityOfPointer(stream)
	if w.docVisited[key] {
		return true
	}
	w.docVisited[key] = true
	return false
}

func resourcesToDict(r pdflib.Resources) pdflib.Dict {
	d := pdflib.Dict{}
	if r.ExtGState != nil {
		d["ExtGState"] = r.ExtGState
	}
	if r.ColorSpace != nil {
		d["ColorSpace"] = r.ColorSpace
	}
	if r.Pattern != nil {
		d["Pattern"] = r.Pattern
	}
	if r.Shading != nil {
		d["Shading"] = r.Shading
	}
	if r.XObject != nil {
		d["XObject"] = r.XObject
	}
	if r.Font != nil {
		d["Font"] = r.Font
	}
	if r.Properties != nil {
		d["Properties"] = r.Properties
	}
	return d
}
