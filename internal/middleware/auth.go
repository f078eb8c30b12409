// auth.go
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
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/services"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// SessionCookie is the Authorizer session cookie checked on admin routes
const SessionCookie = "cookie_session"

// AuthAdmin validates that the request has admin role authorization.
// With AUTH_ENABLED=false every request passes.
func AuthAdmin(cfg *config.Config, logger *zap.Logger) fiber.Handler {
	logger = logger.Named("auth")
	return func(c *fiber.Ctx) error {
		if !cfg.AuthEnabled {
			return c.Next()
		}
		return authorize(c, cfg, logger, []string{"admin"})
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, logger *zap.Logger, roles []string) error {
	session := c.Cookies(SessionCookie)
	if session == "" {
		return types.NewForbiddenError("Authorizer cookie %q not found", SessionCookie)
	}

	if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname(), logger); err != nil {
		logger.Error("Authorizer unavailable", zap.Error(err))
		return types.NewForbiddenError("Authorizer unavailable")
	}

	data, err := services.ValidateSession(session, roles)
	if err != nil {
		logger.Debug("Rejected session", zap.Error(err), zap.String("path", c.Path()))
		return types.NewForbiddenError("Invalid session: %v", err)
	}

	if user, ok := data["user"]; ok {
		c.Locals("user", user)
	}

	return c.Next()
}
