// response.go
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

package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/portfolio-leads/internal/types"
)

// SuccessResponse sends the success envelope {success: true, data, ...extras}
func SuccessResponse(c *fiber.Ctx, data interface{}, extras fiber.Map, status int) error {
	body := fiber.Map{"success": true}
	if data != nil {
		body["data"] = data
	}
	for k, v := range extras {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// ErrorResponse sends the failure envelope for err. Errors outside the
// taxonomy are reported as persistence failures.
func ErrorResponse(c *fiber.Ctx, err error) error {
	ce := types.AsCustomError(err)
	return ErrorBody(c, ce.Code, ce.Message, ce.Type, ce.Extra)
}

// ErrorBody sends a failure envelope built from its parts
func ErrorBody(c *fiber.Ctx, status int, message, errorType string, extra map[string]interface{}) error {
	body := fiber.Map{
		"success":   false,
		"error":     message,
		"status":    status,
		"type":      errorType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// NotFoundResponse sends a 404 envelope
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorBody(c, fiber.StatusNotFound, message, types.TypeNotFound, nil)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Status    int    `json:"status"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	ClientID  string `json:"clientId,omitempty"`
}

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
