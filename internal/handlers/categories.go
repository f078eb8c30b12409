// categories.go
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

// CategoryHandler handles the Category Registry routes
type CategoryHandler struct {
	Service *services.CategoryService
}

// List handles GET /api/categories
// @Summary List categories
// @Description List categories by name. An empty registry is seeded with the defaults first.
// @Tags Categories
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct{data=[]models.Category}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, categories, nil, fiber.StatusOK)
}

// Create handles POST /api/categories
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category name and color"
// @Success 201 {object} utils.SuccessResponseStruct{data=models.Category}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}

	category, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, category, fiber.Map{"message": "Category created successfully"}, fiber.StatusCreated)
}

// Update handles PUT /api/categories
// @Summary Rename or recolor a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category id, name and color"
// @Success 200 {object} utils.SuccessResponseStruct{data=models.Category}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /categories [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}

	category, err := h.Service.Update(c.UserContext(), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, category, fiber.Map{"message": "Category updated successfully"}, fiber.StatusOK)
}

// Delete handles DELETE /api/categories?id=
// @Summary Delete a category
// @Description Fails with 409 while any portfolio project references the category.
// @Tags Categories
// @Produce json
// @Param id query string true "Category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /categories [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), c.Query("id")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.Map{"message": "Category deleted successfully"}, fiber.StatusOK)
}
