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

package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/localnerve/portfolio-leads/internal/models"
)

// ListCategories returns all categories ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.collection(categoriesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a category by id
func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.collection(categoriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// CategoryNameTaken reports whether a category other than excludeID is named name
func (s *Store) CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.M{"name": name}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := s.collection(categoriesCollection).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateCategory inserts a category
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.collection(categoriesCollection).InsertOne(ctx, category)
	return translate(err)
}

// UpdateCategory renames a category and recolors it when color is given
func (s *Store) UpdateCategory(ctx context.Context, id, name string, color *string) error {
	set := bson.M{"name": name}
	if color != nil {
		set["color"] = *color
	}
	return matched(s.collection(categoriesCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

// DeleteCategory removes a category
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return deleted(s.collection(categoriesCollection).DeleteOne(ctx, bson.M{"_id": id}))
}

// SeedCategories upserts each category keyed by name with $setOnInsert, so
// an existing name is left untouched and concurrent seeders converge.
func (s *Store) SeedCategories(ctx context.Context, categories []models.Category) error {
	coll := s.collection(categoriesCollection)
	for i := range categories {
		category := categories[i]
		_, err := coll.UpdateOne(ctx,
			bson.M{"name": category.Name},
			bson.M{"$setOnInsert": bson.M{
				"_id":       category.ID,
				"color":     category.Color,
				"createdAt": category.CreatedAt,
			}},
			options.UpdateOne().SetUpsert(true),
		)
		// a racing upsert on the same name loses on the unique index
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}
	return nil
}

// ListProjects returns portfolio projects newest first, optionally for one category
func (s *Store) ListProjects(ctx context.Context, categoryID string) ([]models.Project, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["category"] = categoryID
	}
	cursor, err := s.collection(projectsCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a portfolio project by id
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.collection(projectsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// CreateProject inserts a portfolio project
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project.Tags == nil {
		project.Tags = models.StringList{}
	}
	_, err := s.collection(projectsCollection).InsertOne(ctx, project)
	return translate(err)
}

// UpdateProject merges the non-nil patch fields into a portfolio project
func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) error {
	set := bson.M{"updatedAt": at}
	update := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			update["$unset"] = bson.M{"category": ""}
		} else {
			set["category"] = *patch.CategoryID
		}
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.Link != nil {
		set["link"] = *patch.Link
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	update["$set"] = set

	return matched(s.collection(projectsCollection).UpdateOne(ctx, bson.M{"_id": id}, update))
}

// DeleteProject removes a portfolio project
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return deleted(s.collection(projectsCollection).DeleteOne(ctx, bson.M{"_id": id}))
}

// CountProjectsByCategory counts portfolio projects tagged with categoryID
func (s *Store) CountProjectsByCategory(ctx context.Context, categoryID string) (int64, error) {
	return s.collection(projectsCollection).CountDocuments(ctx, bson.M{"category": categoryID})
}
