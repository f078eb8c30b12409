// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/portfolio-leads/internal/middleware"
	"github.com/localnerve/portfolio-leads/internal/services"
)

// Services is everything the API routes call into
type Services struct {
	Categories  *services.CategoryService
	Clients     *services.ClientService
	Submissions *services.SubmissionService
	Projects    *services.ProjectService
	Ledger      *services.LedgerService
}

// Register mounts the API routes on api. admin guards the console routes.
func Register(api fiber.Router, s Services, admin fiber.Handler) {
	categories := &CategoryHandler{Service: s.Categories}
	clients := &ClientHandler{Service: s.Clients}
	submissions := &SubmissionHandler{Service: s.Submissions}
	projects := &ProjectHandler{Service: s.Projects}
	stats := &StatsHandler{Service: s.Ledger}

	// Public routes
	api.Get("/categories", categories.List)
	api.Get("/projects", projects.List)
	api.Post("/send-contact-email", middleware.CaptureMetadata(), submissions.Contact)
	api.Post("/visit", stats.Visit)

	// Admin console routes
	api.Post("/categories", admin, categories.Create)
	api.Put("/categories", admin, categories.Update)
	api.Delete("/categories", admin, categories.Delete)

	api.Get("/clients", admin, clients.List)
	api.Post("/clients", admin, clients.Action)
	api.Delete("/clients", admin, clients.Delete)

	api.Get("/submissions", admin, submissions.List)

	api.Post("/projects", admin, projects.Create)
	api.Put("/projects", admin, projects.Update)
	api.Delete("/projects", admin, projects.Delete)

	api.Get("/stats", admin, stats.Dashboard)
	api.Post("/stats/reconcile", admin, stats.Reconcile)
}
