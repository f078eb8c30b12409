// services_test.go
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
	"sync"
	"testing"
	"time"

	glebarez "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/localnerve/portfolio-leads/internal/database"
	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/notify"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// newTestStore opens a migrated in-memory SQLite store
func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := database.Open(glebarez.Open(":memory:"), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	store := database.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// faultyStore fails selected writes
type faultyStore struct {
	repository.Store
	createSubmissionErr error
	incrementErr        error
	markConvertedErr    error
}

func (f *faultyStore) CreateSubmission(ctx context.Context, s *models.Submission) error {
	if f.createSubmissionErr != nil {
		return f.createSubmissionErr
	}
	return f.Store.CreateSubmission(ctx, s)
}

func (f *faultyStore) IncrementCounter(ctx context.Context, field models.CounterField, delta int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	return f.Store.IncrementCounter(ctx, field, delta)
}

func (f *faultyStore) MarkSubmissionConverted(ctx context.Context, id, clientID string, at time.Time) error {
	if f.markConvertedErr != nil {
		return f.markConvertedErr
	}
	return f.Store.MarkSubmissionConverted(ctx, id, clientID, at)
}

// recordingNotifier collects notifications from the dispatch goroutine
type recordingNotifier struct {
	mu  sync.Mutex
	got []notify.ContactNotification
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.ContactNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return r.err
}

func (r *recordingNotifier) sent() []notify.ContactNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.ContactNotification(nil), r.got...)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func requireErrorType(t *testing.T, err error, kind *types.CustomError) *types.CustomError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %s error, got %v", kind.Type, err)
	return types.AsCustomError(err)
}

var nop = zap.NewNop()

// notifierFunc adapts a function to notify.Notifier
type notifierFunc func(ctx context.Context) error

func (f notifierFunc) Notify(ctx context.Context, _ notify.ContactNotification) error {
	return f(ctx)
}
