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

// Package pdflib provides a minimal PDF container reader and writer: the
// native object model, a classic-xref-table and xref-stream parser, and a
// from-scratch serializer.
//
// pdflib does not attempt to be a general-purpose PDF toolkit. It reads
// enough of the container format to resolve every indirect object reachable
// from the document catalog, and writes a syntactically valid file back
// out, keeping each object's original object number. Decoding of embedded raster images and
// rewriting of content-stream color operators live in the sibling packages
// token, color, rewrite, raster, and walker.
package pdflib
