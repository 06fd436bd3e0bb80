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

// Package orchestrate ties the container, page-selection, and walking
// layers together into the single entry point a caller (a CLI, an HTTP
// adapter, a library user) actually invokes: load bytes, pick pages, walk
// and rewrite them, save bytes.
package orchestrate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/bhyresh-dev/PDF-Flux/pageselect"
	"github.com/bhyresh-dev/PDF-Flux/pdflib"
	"github.com/bhyresh-dev/PDF-Flux/raster"
	"github.com/bhyresh-dev/PDF-Flux/walker"
)

// Orchestrator runs one document's worth of inversion work. It carries no
// state between calls to Process; a single Orchestrator value is safe to
// reuse (or to run concurrently) across independent documents, since each
// call constructs its own *pdflib.Document and *walker.Walker.
type Orchestrator struct {
	// Log receives non-fatal warnings (a stream failed to rewrite, an
	// image failed to decode, a page aborted). Defaults to slog.Default()
	// when nil.
	Log *slog.Logger
}

// Process loads input as a PDF, rewrites the pages selected by req.Range
// according to req.Mode, and returns the serialized result. Cancellation
// via ctx is checked between pages; a canceled context aborts before the
// document is (re)written and no output is produced.
func (o *Orchestrator) Process(ctx context.Context, input []byte, req ProcessRequest) ([]byte, error) {
	log := o.Log
	if log == nil {
		log = slog.Default()
	}

	n := normalize(req)

	doc, err := pdflib.NewDocument(input)
	if err != nil {
		if err == pdflib.ErrEncrypted {
			return nil, &Error{Kind: Encrypted, Err: err}
		}
		return nil, &Error{Kind: InvalidDocument, Err: err}
	}

	pages, err := doc.Pages()
	if err != nil {
		return nil, &Error{Kind: InvalidDocument, Err: fmt.Errorf("reading page tree: %w", err)}
	}

	if info, err := doc.Info(); err == nil && info != nil {
		if title, ok := info["Title"].(pdflib.String); ok {
			if text, err := title.Text(); err == nil && text != "" {
				log.Debug("processing document", "title", text, "pages", len(pages))
			}
		}
	}

	selected, err := pageselect.Resolve(n.pageSelector, len(pages))
	if err != nil {
		// RangeUnparsed is non-fatal: an unparsable custom range widens to
		// the empty selection, which in turn widens to ALL.
		log.Warn("page range unparsed, defaulting to all pages", "kind", KindRangeUnparsed, "error", err)
		selected, _ = pageselect.Resolve(pageselect.Selector{Kind: pageselect.KindAll}, len(pages))
	}
	if len(selected) == 0 {
		selected, _ = pageselect.Resolve(pageselect.Selector{Kind: pageselect.KindAll}, len(pages))
	}

	rasterOpts := raster.Options{
		Mode:       n.mode,
		Compress:   n.compress,
		OutputDPI:  n.outputDPI,
		Percentage: n.percentage,
	}
	w := walker.New(doc, n.mode, rasterOpts, log)

	selectedSet := make(map[int]bool, len(selected))
	for _, p := range selected {
		selectedSet[p] = true
	}

	var kept []*pdflib.Page
	for i, page := range pages {
		pageNum := i + 1 // 1-based, matching pageselect's numbering
		if !selectedSet[pageNum] {
			continue
		}

		select {
		case <-ctx.Done():
			// Cancellation is cooperative at page boundaries and aborts
			// cleanly: the partial document built so far is discarded and
			// no output is written. This sits outside the fatal-error
			// taxonomy (it is not a malformed or unprocessable document),
			// so the bare context error is returned rather than an *Error.
			return nil, ctx.Err()
		default:
		}

		if err := w.ProcessPage(page); err != nil {
			// PageFailed is non-fatal: the page is kept in whatever
			// partial state ProcessPage reached before failing.
			log.Warn("page failed", "kind", KindPageFailed, "page", pageNum, "error", err)
		}
		kept = append(kept, page)
	}

	if err := prunePageTree(doc, kept); err != nil {
		return nil, &Error{Kind: SerializationFailed, Err: err}
	}

	var out bytes.Buffer
	if err := pdflib.Write(&out, doc); err != nil {
		return nil, &Error{Kind: SerializationFailed, Err: err}
	}
	return out.Bytes(), nil
}

// prunePageTree replaces the document's page tree with a single flat Pages
// node listing exactly kept, in order. This module makes no attempt to
// preserve the original (possibly deeply nested) Pages tree shape once
// pages are dropped from it; nothing in the external interface promises
// byte-identical structure, only that the surviving pages appear in their
// original relative order and that the page count matches the selection.
func prunePageTree(doc *pdflib.Document, kept []*pdflib.Page) error {
	catalog, err := doc.Catalog()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	kids := make(pdflib.Array, len(kept))
	for i, page := range kept {
		ref := page.Ref
		if ref.Number == 0 {
			// A page dict embedded directly in the tree (no object number
			// of its own, as real-world files occasionally do) needs one
			// before it can be a /Kids entry.
			ref = doc.NewObject(page.Dict)
			page.Ref = ref
		}
		kids[i] = ref
	}

	pagesDict := pdflib.Dict{
		"Type":  pdflib.Name("Pages"),
		"Kids":  kids,
		"Count": pdflib.Integer(len(kept)),
	}
	pagesRef := doc.NewObject(pagesDict)

	for _, page := range kept {
		page.Dict["Parent"] = pagesRef
	}

	catalog["Pages"] = pagesRef
	return nil
}
