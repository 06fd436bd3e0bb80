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

// ObjectIdentity distinguishes PDF objects by their indirect-reference
// identity rather than by the resource name under which a page happens to
// reference them. Two resource dictionaries that both bind "/Im0" to the
// same indirect object share one ObjectIdentity; the same dictionary key
// reused across pages for unrelated streams does not.
//
// This is what lets the resource walker (package walker) visit a shared
// Form XObject or image exactly once, matching how the underlying document
// actually shares it, instead of once per resource name that happens to
// reference it.
type ObjectIdentity struct {
	key string
}

// IdentityOf computes the identity of a resource dictionary entry. obj is
// the raw (unresolved) value as it appears in a /Resources sub-dictionary;
// the common case is a Reference, which is the identity. A resource
// embedded directly (not through an indirect reference) has no stable
// identity to key on; each occurrence is treated as unique, matching how a
// reader must also treat it as unshared.
func IdentityOf(obj Object) ObjectIdentity {
	if ref, ok := obj.(Reference); ok {
		return ObjectIdentity{key: fmt.Sprintf("ref:%d:%d", ref.Number, ref.Generation)}
	}
	return ObjectIdentity{key: fmt.Sprintf("direct:%p", &obj)}
}

func (id ObjectIdentity) String() string {
	return id.key
}

// IdentityOfPointer computes an identity from a Go pointer directly, for
// callers that hold a resolved object (e.g. a *Stream from an annotation's
// /AP entry) with no surviving Reference to key on.
func IdentityOfPointer(ptr any) ObjectIdentity {
	return ObjectIdentity{key: fmt.Sprintf("ptr:%p", ptr)}
}
