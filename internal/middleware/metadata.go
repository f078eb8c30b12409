// metadata.go
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

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/portfolio-leads/internal/models"
)

const metadataKey = "captureMetadata"

// CaptureMetadata derives the submission metadata from the request headers
// and stores it in context.
func CaptureMetadata() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(metadataKey, models.CaptureMetadata{
			IP:        clientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent, "unknown"),
			Referrer:  c.Get(fiber.HeaderReferer, "direct"),
		})
		return c.Next()
	}
}

// Metadata returns the metadata captured for the request
func Metadata(c *fiber.Ctx) models.CaptureMetadata {
	if meta, ok := c.Locals(metadataKey).(models.CaptureMetadata); ok {
		return meta
	}
	return models.CaptureMetadata{IP: clientIP(c), UserAgent: "unknown", Referrer: "direct"}
}

// clientIP prefers the first X-Forwarded-For entry, then X-Real-IP
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
