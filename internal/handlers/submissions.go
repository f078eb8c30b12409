// submissions.go
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
	"github.com/localnerve/portfolio-leads/internal/utils"
)

// SubmissionHandler handles Submission Intake and the submission listing
type SubmissionHandler struct {
	Service *services.SubmissionService
}

// Contact handles POST /api/send-contact-email
// @Summary Submit the contact form
// @Description Stores the submission and notifies the site owner. Notification failures do not fail the request.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body services.ContactInput true "Contact form"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /send-contact-email [post]
func (h *SubmissionHandler) Contact(c *fiber.Ctx) error {
	var in services.ContactInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}

	submission, err := h.Service.Intake(c.UserContext(), in, middleware.Metadata(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.Map{"id": submission.ID}, fiber.Map{"message": "Message sent successfully"}, fiber.StatusOK)
}

// List handles GET /api/submissions?status=
// @Summary List submissions
// @Description Submissions newest first, optionally filtered by status, with dashboard statistics.
// @Tags Submissions
// @Produce json
// @Param status query string false "Comma-separated statuses: new, contacted, converted"
// @Success 200 {object} utils.SuccessResponseStruct{data=[]models.Submission}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	statuses, err := services.ParseStatuses(parseQueryList(c, "status"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	submissions, err := h.Service.List(c.UserContext(), statuses)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	stats, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, submissions, fiber.Map{"stats": stats}, fiber.StatusOK)
}
