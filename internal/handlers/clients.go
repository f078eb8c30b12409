// clients.go
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

// ClientHandler handles the Conversion Engine and Client Store routes
type ClientHandler struct {
	Service *services.ClientService
}

// List handles GET /api/clients
// @Summary List clients
// @Description Clients newest first, with the ledger total, the direct count and the month-over-month change.
// @Tags Clients
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct{data=[]models.Client}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, list.Clients, fiber.Map{"stats": list.Stats}, fiber.StatusOK)
}

// Action handles POST /api/clients
// @Summary Run a conversion action
// @Description action is one of mark_contacted, convert_to_client, add_project, update_client.
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body services.ConversionRequest true "Action and its payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Success 201 {object} utils.SuccessResponseStruct{data=models.Client}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /clients [post]
func (h *ClientHandler) Action(c *fiber.Ctx) error {
	var req services.ConversionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ErrorResponse(c, err)
	}

	result, err := h.Service.Handle(c.UserContext(), req)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	extras := fiber.Map{"message": result.Message}
	switch {
	case result.Project != nil:
		return utils.SuccessResponse(c, result.Project, extras, fiber.StatusCreated)
	case result.Client != nil && req.Action == services.ActionConvertToClient:
		return utils.SuccessResponse(c, result.Client, extras, fiber.StatusCreated)
	case result.Client != nil:
		return utils.SuccessResponse(c, result.Client, extras, fiber.StatusOK)
	}
	return utils.SuccessResponse(c, nil, extras, fiber.StatusOK)
}

// Delete handles DELETE /api/clients?clientId=
// @Summary Delete a client
// @Description Removes the client with its projects and decrements totalClients.
// @Tags Clients
// @Produce json
// @Param clientId query string true "Client ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /clients [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), c.Query("clientId")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.Map{"message": "Client deleted successfully"}, fiber.StatusOK)
}
