// error.go
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
)

// Error types carried in CustomError.Type
const (
	TypeValidation  = "validation"
	TypeNotFound    = "not_found"
	TypeConflict    = "conflict"
	TypePersistence = "persistence"
	TypeForbidden   = "forbidden"
)

// CustomError is the error taxonomy surfaced at the operation boundary.
// Code is the HTTP status the error maps to.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Err     error  `json:"-"`
	// Extra is merged into the error response body, e.g. the id of an
	// existing record behind a conflict.
	Extra map[string]interface{} `json:"-"`
}

// With attaches an extra response field and returns e
func (e *CustomError) With(key string, value interface{}) *CustomError {
	if e.Extra == nil {
		e.Extra = make(map[string]interface{})
	}
	e.Extra[key] = value
	return e
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s [type: %s]: %v", e.Code, e.Message, e.Type, e.Err)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches another CustomError of the same Type, so the Err* kinds below
// work as errors.Is targets.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// Kind targets for errors.Is
var (
	ErrValidation  = &CustomError{Type: TypeValidation}
	ErrNotFound    = &CustomError{Type: TypeNotFound}
	ErrConflict    = &CustomError{Type: TypeConflict}
	ErrPersistence = &CustomError{Type: TypePersistence}
)

// NewValidationError reports structurally invalid caller input.
func NewValidationError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: TypeValidation}
}

// NewNotFoundError reports a missing referenced record.
func NewNotFoundError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Type: TypeNotFound}
}

// NewConflictError reports a uniqueness or reference conflict.
func NewConflictError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Type: TypeConflict}
}

// NewForbiddenError reports a request without a valid admin session.
func NewForbiddenError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...), Type: TypeForbidden}
}

// NewPersistenceError wraps a store failure.
func NewPersistenceError(message string, err error) *CustomError {
	return &CustomError{Code: http.StatusInternalServerError, Message: message, Type: TypePersistence, Err: err}
}

// AsCustomError extracts a CustomError from err, wrapping unknown errors as
// persistence failures.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return NewPersistenceError(err.Error(), err)
}
