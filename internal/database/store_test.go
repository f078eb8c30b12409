// store_test.go
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

package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	glebarez "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/localnerve/portfolio-leads/internal/database"
	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

// newTestStore opens a migrated in-memory SQLite store
func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := database.Open(glebarez.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	store := database.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newSubmission(name string, createdAt time.Time) *models.Submission {
	return &models.Submission{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     name + "@example.com",
		Message:   "hello from " + name,
		Status:    models.SubmissionNew,
		CreatedAt: createdAt,
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	counters, err := store.GetCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CountersID, counters.ID)
	assert.Zero(t, counters.TotalForms)

	require.NoError(t, store.IncrementCounter(ctx, models.TotalForms, 1))
	require.NoError(t, store.IncrementCounter(ctx, models.TotalForms, 1))
	require.NoError(t, store.IncrementCounter(ctx, models.TotalClients, 1))
	require.NoError(t, store.IncrementCounter(ctx, models.TotalClients, -1))
	require.NoError(t, store.SetCounter(ctx, models.TotalVisitors, 42))

	counters, err = store.GetCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters.TotalForms)
	assert.Equal(t, int64(0), counters.TotalClients)
	assert.Equal(t, int64(42), counters.TotalVisitors)

	assert.Error(t, store.IncrementCounter(ctx, models.CounterField("bogus"), 1))
}

func TestConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.IncrementCounter(ctx, models.TotalVisitors, 1))
		}()
	}
	wg.Wait()

	counters, err := store.GetCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), counters.TotalVisitors)
}

func TestCategoryUniqueness(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	website := &models.Category{ID: uuid.NewString(), Name: "Website", Color: "blue", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.CreateCategory(ctx, website))

	err := store.CreateCategory(ctx, &models.Category{ID: uuid.NewString(), Name: "Website", Color: "red"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	taken, err := store.CategoryNameTaken(ctx, "Website", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = store.CategoryNameTaken(ctx, "Website", website.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = store.CategoryNameTaken(ctx, "website", "")
	require.NoError(t, err)
	assert.False(t, taken, "names are case-sensitive")

	color := "green"
	require.NoError(t, store.UpdateCategory(ctx, website.ID, "Websites", &color))
	got, err := store.GetCategory(ctx, website.ID)
	require.NoError(t, err)
	assert.Equal(t, "Websites", got.Name)
	assert.Equal(t, "green", got.Color)

	require.NoError(t, store.UpdateCategory(ctx, website.ID, "Websites", nil))
	got, err = store.GetCategory(ctx, website.ID)
	require.NoError(t, err)
	assert.Equal(t, "green", got.Color)

	assert.ErrorIs(t, store.UpdateCategory(ctx, uuid.NewString(), "Nope", nil), repository.ErrNotFound)
	assert.ErrorIs(t, store.DeleteCategory(ctx, uuid.NewString()), repository.ErrNotFound)
	require.NoError(t, store.DeleteCategory(ctx, website.ID))

	_, err = store.GetCategory(ctx, website.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSeedCategoriesIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seed := func() []models.Category {
		now := time.Now().UTC()
		return []models.Category{
			{ID: uuid.NewString(), Name: "Website", Color: "blue", CreatedAt: now},
			{ID: uuid.NewString(), Name: "3D", Color: "purple", CreatedAt: now},
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.SeedCategories(ctx, seed()))
		}()
	}
	wg.Wait()
	require.NoError(t, store.SeedCategories(ctx, seed()))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "3D", categories[0].Name)
	assert.Equal(t, "Website", categories[1].Name)
}

func TestProjectsByCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	website := &models.Category{ID: uuid.NewString(), Name: "Website", Color: "blue"}
	threeD := &models.Category{ID: uuid.NewString(), Name: "3D", Color: "purple"}
	require.NoError(t, store.CreateCategory(ctx, website))
	require.NoError(t, store.CreateCategory(ctx, threeD))

	now := time.Now().UTC()
	project := &models.Project{
		ID:         uuid.NewString(),
		Title:      "Portfolio",
		CategoryID: &website.ID,
		Tags:       models.StringList{"go", "fiber"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, store.CreateProject(ctx, project))

	count, err := store.CountProjectsByCategory(ctx, website.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.CountProjectsByCategory(ctx, threeD.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := store.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "fiber"}, []string(got.Tags))

	listed, err := store.ListProjects(ctx, threeD.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	title := "Portfolio v2"
	none := ""
	require.NoError(t, store.UpdateProject(ctx, project.ID, models.ProjectPatch{Title: &title, CategoryID: &none}, now.Add(time.Minute)))
	got, err = store.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio v2", got.Title)
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, store.UpdateProject(ctx, uuid.NewString(), models.ProjectPatch{}, now), repository.ErrNotFound)
	require.NoError(t, store.DeleteProject(ctx, project.ID))
	assert.ErrorIs(t, store.DeleteProject(ctx, project.ID), repository.ErrNotFound)
}

func TestSubmissionStatusTransitions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	submission := newSubmission("asha", time.Now().UTC())
	require.NoError(t, store.CreateSubmission(ctx, submission))

	contactedAt := time.Now().UTC()
	require.NoError(t, store.MarkSubmissionContacted(ctx, submission.ID, contactedAt))
	got, err := store.GetSubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionContacted, got.Status)
	require.NotNil(t, got.ContactedAt)

	clientID := uuid.NewString()
	require.NoError(t, store.MarkSubmissionConverted(ctx, submission.ID, clientID, time.Now().UTC()))

	// contacting a converted submission keeps it converted
	require.NoError(t, store.MarkSubmissionContacted(ctx, submission.ID, time.Now().UTC()))
	got, err = store.GetSubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionConverted, got.Status)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, clientID, *got.ClientID)
	assert.NotNil(t, got.ConvertedAt)

	assert.ErrorIs(t, store.MarkSubmissionContacted(ctx, uuid.NewString(), time.Now()), repository.ErrNotFound)
	assert.ErrorIs(t, store.MarkSubmissionConverted(ctx, uuid.NewString(), clientID, time.Now()), repository.ErrNotFound)
}

func TestSubmissionQueries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	thisMonth := time.Date(2026, time.October, 10, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.September, 30, 23, 0, 0, 0, time.UTC)

	first := newSubmission("first", lastMonth)
	second := newSubmission("second", thisMonth)
	third := newSubmission("third", thisMonth.Add(time.Hour))
	for _, s := range []*models.Submission{first, second, third} {
		require.NoError(t, store.CreateSubmission(ctx, s))
	}
	require.NoError(t, store.MarkSubmissionContacted(ctx, second.ID, thisMonth))

	all, err := store.ListSubmissions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	fresh, err := store.ListSubmissions(ctx, []models.SubmissionStatus{models.SubmissionNew})
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	count, err := store.CountSubmissions(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = store.CountSubmissions(ctx, models.SubmissionContacted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	october := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	count, err = store.CountSubmissionsCreatedBetween(ctx, october, october.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountSubmissionsCreatedBetween(ctx, october.AddDate(0, -1, 0), october)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	submission := newSubmission("asha", time.Now().UTC())
	require.NoError(t, store.CreateSubmission(ctx, submission))

	now := time.Now().UTC()
	client := &models.Client{
		ID:           uuid.NewString(),
		Name:         "Asha",
		Email:        "asha@example.com",
		Status:       models.ClientActive,
		Notes:        submission.Message,
		SubmissionID: submission.ID,
		CreatedAt:    now,
		LastContact:  now,
	}
	require.NoError(t, store.CreateClient(ctx, client))

	dup := *client
	dup.ID = uuid.NewString()
	err := store.CreateClient(ctx, &dup)
	assert.True(t, errors.Is(err, repository.ErrDuplicate), "second client for one submission: %v", err)

	found, err := store.FindClientBySubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, found.ID)

	for i, name := range []string{"Landing Page", "Shop"} {
		project := &models.ClientProject{
			ID:        uuid.NewString(),
			Name:      name,
			Status:    models.ProjectPlanning,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.AppendClientProject(ctx, client.ID, project, now.Add(time.Minute)))
	}
	err = store.AppendClientProject(ctx, uuid.NewString(), &models.ClientProject{ID: uuid.NewString(), Name: "x"}, now)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := store.GetClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, got.Projects, 2)
	assert.Equal(t, "Landing Page", got.Projects[0].Name)
	assert.Equal(t, "Shop", got.Projects[1].Name)
	assert.True(t, got.LastContact.After(now))

	inactive := models.ClientInactive
	phone := "555-0100"
	require.NoError(t, store.UpdateClient(ctx, client.ID, models.ClientPatch{Status: &inactive, Phone: &phone}, now.Add(time.Hour)))
	got, err = store.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClientInactive, got.Status)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "Asha", got.Name)

	assert.ErrorIs(t, store.UpdateClient(ctx, uuid.NewString(), models.ClientPatch{}, now), repository.ErrNotFound)

	count, err := store.CountClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.DeleteClient(ctx, client.ID))
	assert.ErrorIs(t, store.DeleteClient(ctx, client.ID), repository.ErrNotFound)

	clients, err := store.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)

	var orphans int64
	require.NoError(t, store.DB().Model(&models.ClientProject{}).Count(&orphans).Error)
	assert.Zero(t, orphans)
}
