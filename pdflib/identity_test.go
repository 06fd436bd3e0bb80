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

func TestIdentityOfReferenceIsStableAcrossCalls(t *testing.T) {
	ref := Reference{Number: 7, Generation: 0}
	a := IdentityOf(ref)
	b := IdentityOf(ref)
	if a != b {
		t.Errorf("IdentityOf(%v) not stable: %v != %v", ref, a, b)
	}
}

func TestIdentityOfDistinguishesReferences(t *testing.T) {
	a := IdentityOf(Reference{Number: 1, Generation: 0})
	b := IdentityOf(Reference{Number: 2, Generation: 0})
	if a == b {
		t.Errorf("distinct references produced the same identity: %v", a)
	}
}

func TestIdentityOfSameReferenceUnderDifferentResourceNames(t *testing.T) {
	// Two /Resources entries (e.g. "/Im0" on one page, "/Im1" on another)
	// that both point at the same indirect object must collapse to one
	// identity, since that is what lets a shared image be processed once.
	ref := Reference{Number: 42, Generation: 0}
	fromPageOne := IdentityOf(ref)
	fromPageTwo := IdentityOf(ref)
	if fromPageOne != fromPageTwo {
		t.Error("same indirect reference under different resource names should share an identity")
	}
}

func TestIdentityOfDirectObjectsAreUnique(t *testing.T) {
	a := IdentityOf(Dict{"X": Integer(1)})
	b := IdentityOf(Dict{"X": Integer(1)})
	if a == b {
		t.Error("two distinct direct (non-Reference) objects should not share an identity")
	}
}

func TestIdentityOfPointerDistinguishesDistinctPointers(t *testing.T) {
	s1 := &Stream{Dict: Dict{}}
	s2 := &Stream{Dict: Dict{}}
	if IdentityOfPointer(s1) == IdentityOfPointer(s2) {
		t.Error("distinct pointers should not share an identity")
	}
	if IdentityOfPointer(s1) != IdentityOfPointer(s1) {
		t.Error("the same pointer should always yield the same identity")
	}
}
