// error_test.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflictError("category %q already exists", "Website"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusConflict, AsCustomError(err).Code)
}

func TestAsCustomError_Unknown(t *testing.T) {
	cause := errors.New("connection refused")
	ce := AsCustomError(cause)

	assert.Equal(t, TypePersistence, ce.Type)
	assert.Equal(t, http.StatusInternalServerError, ce.Code)
	assert.ErrorIs(t, ce, cause)
}

func TestNewPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewPersistenceError("failed to save submission", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCustomError_With(t *testing.T) {
	err := NewConflictError("Client already exists for this submission").With("clientId", "c-1")

	assert.Equal(t, "c-1", err.Extra["clientId"])
	assert.ErrorIs(t, err, ErrConflict)
}
