// repository.go
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

// Package repository defines the storage contract shared by the SQL and
// document backends.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/localnerve/portfolio-leads/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)

// CounterStore is the Counter Ledger.
type CounterStore interface {
	// IncrementCounter atomically adds delta to field, creating the ledger if absent.
	IncrementCounter(ctx context.Context, field models.CounterField, delta int64) error
	// GetCounters returns the ledger, or a zero ledger if it does not exist yet.
	GetCounters(ctx context.Context) (*models.Counters, error)
	// SetCounter overwrites field with value, creating the ledger if absent.
	SetCounter(ctx context.Context, field models.CounterField, value int64) error
}

// CategoryStore is the Category Registry.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	// CategoryNameTaken reports whether a category other than excludeID has name.
	CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id, name string, color *string) error
	DeleteCategory(ctx context.Context, id string) error
	// SeedCategories inserts each category whose name is not present yet.
	SeedCategories(ctx context.Context, categories []models.Category) error
}

// ProjectStore holds standalone portfolio projects.
type ProjectStore interface {
	ListProjects(ctx context.Context, categoryID string) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) error
	DeleteProject(ctx context.Context, id string) error
	CountProjectsByCategory(ctx context.Context, categoryID string) (int64, error)
}

// SubmissionStore is the Lead Store.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission *models.Submission) error
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	// ListSubmissions returns submissions newest first, filtered by statuses when non-empty.
	ListSubmissions(ctx context.Context, statuses []models.SubmissionStatus) ([]models.Submission, error)
	// MarkSubmissionContacted stamps contactedAt and moves a non-converted submission to contacted.
	MarkSubmissionContacted(ctx context.Context, id string, at time.Time) error
	MarkSubmissionConverted(ctx context.Context, id, clientID string, at time.Time) error
	CountSubmissions(ctx context.Context, status models.SubmissionStatus) (int64, error)
	CountSubmissionsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// ClientStore holds clients and their projects.
type ClientStore interface {
	// CreateClient returns ErrDuplicate when a client for the same submission exists.
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	FindClientBySubmission(ctx context.Context, submissionID string) (*models.Client, error)
	// ListClients returns clients newest first with their projects in creation order.
	ListClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, id string, patch models.ClientPatch, at time.Time) error
	AppendClientProject(ctx context.Context, clientID string, project *models.ClientProject, at time.Time) error
	DeleteClient(ctx context.Context, id string) error
	CountClients(ctx context.Context) (int64, error)
	CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// Store is the full storage contract.
type Store interface {
	CounterStore
	CategoryStore
	ProjectStore
	SubmissionStore
	ClientStore

	// Name identifies the backend, e.g. "sqlite" or "mongodb".
	Name() string
	Ping(ctx context.Context) error
	Close() error
}
