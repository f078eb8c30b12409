// project_service.go
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

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// ProjectInput is the body of a portfolio project create
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// ProjectUpdate is the body of a portfolio project update
type ProjectUpdate struct {
	ID string `json:"_id"`
	models.ProjectPatch
}

// ProjectService manages standalone portfolio projects.
type ProjectService struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewProjectService creates a ProjectService
func NewProjectService(store repository.Store, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		store:  store,
		logger: logger.Named("projects"),
		now:    utcNow,
	}
}

// List returns portfolio projects newest first, optionally for one category
func (s *ProjectService) List(ctx context.Context, categoryID string) ([]models.Project, error) {
	projects, err := s.store.ListProjects(ctx, strings.TrimSpace(categoryID))
	if err != nil {
		return nil, types.NewPersistenceError("Failed to list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return storeError(err, "Category", "load category")
	}
	return nil
}

// Create adds a portfolio project; its category must exist when set
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, types.NewValidationError("Project title is required")
	}

	now := s.now()
	project := &models.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Link:        strings.TrimSpace(in.Link),
		Tags:        models.StringList(in.Tags),
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.Tags == nil {
		project.Tags = models.StringList{}
	}
	if category := strings.TrimSpace(in.Category); category != "" {
		if err := s.requireCategory(ctx, category); err != nil {
			return nil, err
		}
		project.CategoryID = &category
	}

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, types.NewPersistenceError("Failed to create project", err)
	}
	return project, nil
}

// Update merges a partial update into a portfolio project. An empty
// category clears it.
func (s *ProjectService) Update(ctx context.Context, in ProjectUpdate) (*models.Project, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, types.NewValidationError("Project ID is required")
	}

	patch := in.ProjectPatch
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, types.NewValidationError("Project title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.CategoryID != nil {
		category := strings.TrimSpace(*patch.CategoryID)
		if category != "" {
			if err := s.requireCategory(ctx, category); err != nil {
				return nil, err
			}
		}
		patch.CategoryID = &category
	}

	if err := s.store.UpdateProject(ctx, id, patch, s.now()); err != nil {
		return nil, storeError(err, "Project", "update project")
	}
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, storeError(err, "Project", "load project")
	}
	return project, nil
}

// Delete removes a portfolio project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.NewValidationError("Project ID is required")
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return storeError(err, "Project", "delete project")
	}
	return nil
}
