// catalog.go
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

package database

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

// ListCategories returns all categories ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.conn(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a category by id
func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// CategoryNameTaken reports whether a category other than excludeID is named name
func (s *Store) CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := s.conn(ctx).Model(&models.Category{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateCategory inserts a category
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Create(category).Error)
}

// UpdateCategory renames a category and recolors it when color is given
func (s *Store) UpdateCategory(ctx context.Context, id, name string, color *string) error {
	updates := map[string]interface{}{"name": name}
	if color != nil {
		updates["color"] = *color
	}

	result := s.conn(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return s.notFoundUnlessExists(ctx, &models.Category{}, id)
	}
	return nil
}

// DeleteCategory removes a category
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SeedCategories inserts the categories whose names are not taken yet.
// The unique name index makes concurrent seeding converge on one set.
func (s *Store) SeedCategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return s.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&categories).Error
}

// ListProjects returns portfolio projects newest first, optionally for one category
func (s *Store) ListProjects(ctx context.Context, categoryID string) ([]models.Project, error) {
	var projects []models.Project
	query := s.conn(ctx).Order("created_at DESC")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a portfolio project by id
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.conn(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// CreateProject inserts a portfolio project
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	return translate(s.conn(ctx).Create(project).Error)
}

// UpdateProject merges the non-nil patch fields into a portfolio project
func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) error {
	updates := map[string]interface{}{"updated_at": at}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			updates["category_id"] = *patch.CategoryID
		}
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.Link != nil {
		updates["link"] = *patch.Link
	}
	if patch.Tags != nil {
		updates["tags"] = models.StringList(*patch.Tags)
	}
	if patch.Featured != nil {
		updates["featured"] = *patch.Featured
	}

	result := s.conn(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFoundUnlessExists(ctx, &models.Project{}, id)
	}
	return nil
}

// DeleteProject removes a portfolio project
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountProjectsByCategory counts portfolio projects tagged with categoryID
func (s *Store) CountProjectsByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := s.conn(ctx).Clauses(statsHint).Model(&models.Project{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
