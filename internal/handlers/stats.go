// stats.go
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

	"github.com/localnerve/portfolio-leads/internal/services"
	"github.com/localnerve/portfolio-leads/internal/utils"
)

// StatsHandler handles the Counter Ledger routes
type StatsHandler struct {
	Service *services.LedgerService
}

// Dashboard handles GET /api/stats
// @Summary Dashboard statistics
// @Description The counter ledger next to direct counts, with drift flags.
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct{data=services.DashboardStats}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /stats [get]
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Service.Dashboard(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, stats, nil, fiber.StatusOK)
}

// Reconcile handles POST /api/stats/reconcile
// @Summary Reconcile the counter ledger
// @Description Overwrites totalForms and totalClients with direct counts.
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct{data=services.ReconcileResult}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /stats/reconcile [post]
func (h *StatsHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.Service.Reconcile(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, result, fiber.Map{"message": "Counters reconciled"}, fiber.StatusOK)
}

// Visit handles POST /api/visit
// @Summary Track a visitor
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /visit [post]
func (h *StatsHandler) Visit(c *fiber.Ctx) error {
	if err := h.Service.TrackVisit(c.UserContext()); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, nil, fiber.StatusOK)
}
