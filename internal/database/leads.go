// leads.go
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

	"gorm.io/gorm"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

// CreateSubmission inserts a submission
func (s *Store) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	return translate(s.conn(ctx).Create(submission).Error)
}

// GetSubmission returns a submission by id
func (s *Store) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.conn(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, translate(err)
	}
	return &submission, nil
}

// ListSubmissions returns submissions newest first
func (s *Store) ListSubmissions(ctx context.Context, statuses []models.SubmissionStatus) ([]models.Submission, error) {
	var submissions []models.Submission
	query := s.conn(ctx).Order("created_at DESC")
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		query = query.Where("status IN ?", values)
	}
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// MarkSubmissionContacted moves a submission to contacted. A converted
// submission keeps its status and only has contactedAt re-stamped.
func (s *Store) MarkSubmissionContacted(ctx context.Context, id string, at time.Time) error {
	result := s.conn(ctx).Model(&models.Submission{}).
		Where("id = ? AND status <> ?", id, string(models.SubmissionConverted)).
		Updates(map[string]interface{}{
			"status":       string(models.SubmissionContacted),
			"contacted_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	result = s.conn(ctx).Model(&models.Submission{}).Where("id = ?", id).Update("contacted_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFoundUnlessExists(ctx, &models.Submission{}, id)
	}
	return nil
}

// MarkSubmissionConverted moves a submission to its terminal converted state
func (s *Store) MarkSubmissionConverted(ctx context.Context, id, clientID string, at time.Time) error {
	result := s.conn(ctx).Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(models.SubmissionConverted),
			"converted_at": at,
			"client_id":    clientID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFoundUnlessExists(ctx, &models.Submission{}, id)
	}
	return nil
}

// CountSubmissions counts submissions, optionally with one status
func (s *Store) CountSubmissions(ctx context.Context, status models.SubmissionStatus) (int64, error) {
	var count int64
	query := s.conn(ctx).Clauses(statsHint).Model(&models.Submission{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	err := query.Count(&count).Error
	return count, err
}

// CountSubmissionsCreatedBetween counts submissions created in [from, to)
func (s *Store) CountSubmissionsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.conn(ctx).Clauses(statsHint).Model(&models.Submission{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func orderedProjects(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// CreateClient inserts a client. The unique submission_id index turns a
// racing second conversion into repository.ErrDuplicate.
func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	return translate(s.conn(ctx).Create(client).Error)
}

// GetClient returns a client with its projects
func (s *Store) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := s.conn(ctx).Preload("Projects", orderedProjects).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

// FindClientBySubmission returns the client converted from a submission
func (s *Store) FindClientBySubmission(ctx context.Context, submissionID string) (*models.Client, error) {
	var client models.Client
	err := s.conn(ctx).Preload("Projects", orderedProjects).
		Where("submission_id = ?", submissionID).
		First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

// ListClients returns clients newest first with their projects
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.conn(ctx).Preload("Projects", orderedProjects).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// UpdateClient merges a patch into a client and refreshes lastContact
func (s *Store) UpdateClient(ctx context.Context, id string, patch models.ClientPatch, at time.Time) error {
	updates := patch.Columns()
	updates["last_contact"] = at

	result := s.conn(ctx).Model(&models.Client{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFoundUnlessExists(ctx, &models.Client{}, id)
	}
	return nil
}

// AppendClientProject adds a project to a client and refreshes lastContact.
// Both writes share a transaction so the client row and its projects change together.
func (s *Store) AppendClientProject(ctx context.Context, clientID string, project *models.ClientProject, at time.Time) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Client{}).Where("id = ?", clientID).Update("last_contact", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return repository.ErrNotFound
			}
		}

		project.ClientID = clientID
		return translate(tx.Create(project).Error)
	})
}

// DeleteClient removes a client and its projects
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientProject{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Client{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// CountClients counts all clients
func (s *Store) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := s.conn(ctx).Clauses(statsHint).Model(&models.Client{}).Count(&count).Error
	return count, err
}

// CountClientsCreatedBetween counts clients created in [from, to)
func (s *Store) CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.conn(ctx).Clauses(statsHint).Model(&models.Client{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}
