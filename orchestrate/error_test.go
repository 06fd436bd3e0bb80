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

package orchestrate

import (
	"errors"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{InvalidDocument, "InvalidDocument"},
		{Encrypted, "Encrypted"},
		{SerializationFailed, "SerializationFailed"},
		{Kind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q; want %q", c.kind, got, c.want)
		}
	}
}

func TestErrorUnwrapsToUnderlyingError(t *testing.T) {
	inner := errors.New("truncated xref")
	err := &Error{Kind: InvalidDocument, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should see through *Error to the wrapped error")
	}
	if got := err.Error(); got != "orchestrate: InvalidDocument: truncated xref" {
		t.Errorf("Error() = %q", got)
	}
}
