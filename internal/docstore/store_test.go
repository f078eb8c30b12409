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

package docstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/portfolio-leads/internal/devstack"
	"github.com/localnerve/portfolio-leads/internal/docstore"
	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

// startMongo runs a throwaway MongoDB container and connects a store to it
func startMongo(t *testing.T) *docstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	ctx := context.Background()
	mongo, err := devstack.StartMongo(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongo.Container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate MongoDB: %v", err)
		}
	})

	store, err := docstore.Connect(ctx, devstack.MongoURI(mongo), "portfolio_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMongoStore(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("counters upsert on first increment", func(t *testing.T) {
		require.NoError(t, store.IncrementCounter(ctx, models.TotalForms, 1))
		require.NoError(t, store.IncrementCounter(ctx, models.TotalForms, 1))
		counters, err := store.GetCounters(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counters.TotalForms)
	})

	t.Run("category names are unique and seeding converges", func(t *testing.T) {
		seed := []models.Category{
			{ID: uuid.NewString(), Name: "Website", Color: "blue", CreatedAt: now},
			{ID: uuid.NewString(), Name: "3D", Color: "purple", CreatedAt: now},
		}
		require.NoError(t, store.SeedCategories(ctx, seed))
		require.NoError(t, store.SeedCategories(ctx, seed))

		err := store.CreateCategory(ctx, &models.Category{ID: uuid.NewString(), Name: "Website", Color: "red"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 2)
	})

	t.Run("conversion is exactly once per submission", func(t *testing.T) {
		submission := &models.Submission{
			ID:        uuid.NewString(),
			Name:      "Asha",
			Email:     "asha@example.com",
			Message:   "hi",
			Status:    models.SubmissionNew,
			CreatedAt: now,
		}
		require.NoError(t, store.CreateSubmission(ctx, submission))

		client := &models.Client{
			ID:           uuid.NewString(),
			Name:         "Asha",
			Status:       models.ClientActive,
			SubmissionID: submission.ID,
			CreatedAt:    now,
			LastContact:  now,
		}
		require.NoError(t, store.CreateClient(ctx, client))

		dup := *client
		dup.ID = uuid.NewString()
		assert.ErrorIs(t, store.CreateClient(ctx, &dup), repository.ErrDuplicate)

		require.NoError(t, store.MarkSubmissionConverted(ctx, submission.ID, client.ID, now))
		require.NoError(t, store.MarkSubmissionContacted(ctx, submission.ID, now))
		got, err := store.GetSubmission(ctx, submission.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SubmissionConverted, got.Status)

		project := &models.ClientProject{ID: uuid.NewString(), Name: "Landing Page", Status: models.ProjectPlanning, CreatedAt: now}
		require.NoError(t, store.AppendClientProject(ctx, client.ID, project, now))
		fetched, err := store.GetClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Projects, 1)
		assert.Equal(t, client.ID, fetched.Projects[0].ClientID)

		require.NoError(t, store.DeleteClient(ctx, client.ID))
		assert.ErrorIs(t, store.DeleteClient(ctx, client.ID), repository.ErrNotFound)
	})
}
