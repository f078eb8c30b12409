// projects.go
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

// ProjectHandler handles the portfolio project routes
type ProjectHandler struct {
	Service *services.ProjectService
}

// List handles GET /api/projects?categoryId=
// @Summary List portfolio projects
// @Tags Projects
// @Produce json
// @Param categoryId query string false "Only projects in this category"
// @Success 200 {object} utils.SuccessResponseStruct{data=[]models.Project}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.Service.List(c.UserContext(), c.Query("categoryId"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, projects, nil, fiber.StatusOK)
}

// Create handles POST /api/projects
// @Summary Create a portfolio project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectInput true "Project"
// @Success 201 {object} utils.SuccessResponseStruct{data=models.Project}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in services.ProjectInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}

	project, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, project, fiber.Map{"message": "Project created successfully"}, fiber.StatusCreated)
}

// Update handles PUT /api/projects
// @Summary Update a portfolio project
// @Description Partial update keyed by _id. An empty category clears it.
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectUpdate true "Project id and changed fields"
// @Success 200 {object} utils.SuccessResponseStruct{data=models.Project}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in services.ProjectUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}

	project, err := h.Service.Update(c.UserContext(), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, project, fiber.Map{"message": "Project updated successfully"}, fiber.StatusOK)
}

// Delete handles DELETE /api/projects?id=
// @Summary Delete a portfolio project
// @Tags Projects
// @Produce json
// @Param id query string true "Project ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), c.Query("id")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.Map{"message": "Project deleted successfully"}, fiber.StatusOK)
}
