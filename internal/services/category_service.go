// category_service.go
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
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/data"
	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// CategoryInput is the body of a category create or update
type CategoryInput struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryService is the Category Registry.
type CategoryService struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewCategoryService creates a CategoryService
func NewCategoryService(store repository.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.Named("categories"),
		now:    utcNow,
	}
}

// List returns all categories by name, seeding the defaults into an empty registry
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to list categories", err)
	}
	if len(categories) > 0 {
		return categories, nil
	}

	if _, err := s.SeedDefaults(ctx); err != nil {
		return nil, err
	}
	categories, err = s.store.ListCategories(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to list categories", err)
	}
	return categories, nil
}

// SeedDefaults inserts each default category whose name is absent and
// returns the size of the registry afterwards.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	defaults, err := data.DefaultCategories()
	if err != nil {
		return 0, types.NewPersistenceError("Failed to load default categories", err)
	}

	now := s.now()
	seed := make([]models.Category, 0, len(defaults))
	for _, d := range defaults {
		seed = append(seed, models.Category{
			ID:        uuid.NewString(),
			Name:      d.Name,
			Color:     d.Color,
			CreatedAt: now,
		})
	}
	if err := s.store.SeedCategories(ctx, seed); err != nil {
		return 0, types.NewPersistenceError("Failed to seed default categories", err)
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, types.NewPersistenceError("Failed to list categories", err)
	}
	s.logger.Info("Seeded default categories", zap.Int("count", len(categories)))
	return len(categories), nil
}

// Create adds a category with a unique trimmed name
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, types.NewValidationError("Category name is required")
	}

	taken, err := s.store.CategoryNameTaken(ctx, name, "")
	if err != nil {
		return nil, types.NewPersistenceError("Failed to check category name", err)
	}
	if taken {
		return nil, types.NewConflictError("Category with this name already exists")
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = models.DefaultCategoryColor
	}
	category := &models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, types.NewConflictError("Category with this name already exists")
		}
		return nil, types.NewPersistenceError("Failed to create category", err)
	}
	return category, nil
}

// Update renames a category and recolors it when a color is given
func (s *CategoryService) Update(ctx context.Context, in CategoryInput) (*models.Category, error) {
	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)
	if id == "" {
		return nil, types.NewValidationError("Category ID is required")
	}
	if name == "" {
		return nil, types.NewValidationError("Category name is required")
	}

	if _, err := s.store.GetCategory(ctx, id); err != nil {
		return nil, storeError(err, "Category", "load category")
	}

	taken, err := s.store.CategoryNameTaken(ctx, name, id)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to check category name", err)
	}
	if taken {
		return nil, types.NewConflictError("Category with this name already exists")
	}

	var color *string
	if c := strings.TrimSpace(in.Color); c != "" {
		color = &c
	}
	if err := s.store.UpdateCategory(ctx, id, name, color); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, types.NewConflictError("Category with this name already exists")
		}
		return nil, storeError(err, "Category", "update category")
	}

	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, storeError(err, "Category", "load category")
	}
	return category, nil
}

// Delete removes a category that no portfolio project references
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.NewValidationError("Category ID is required")
	}

	if _, err := s.store.GetCategory(ctx, id); err != nil {
		return storeError(err, "Category", "load category")
	}

	count, err := s.store.CountProjectsByCategory(ctx, id)
	if err != nil {
		return types.NewPersistenceError("Failed to count category references", err)
	}
	if count > 0 {
		return types.NewConflictError("Cannot delete category: it is referenced by %d project(s)", count).
			With("projectCount", count)
	}

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return storeError(err, "Category", "delete category")
	}
	s.logger.Info("Deleted category", zap.String("category_id", id))
	return nil
}
