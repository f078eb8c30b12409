// submission_service_test.go
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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/types"
)

var ashaInput = ContactInput{
	Name:          "Asha",
	Email:         "asha@example.com",
	Phone:         "555-0100",
	Message:       "I need a landing page",
	PreferredTime: "mornings",
}

var ashaMeta = models.CaptureMetadata{IP: "203.0.113.7", UserAgent: "test-agent", Referrer: "direct"}

func TestIntakeStoresSubmissionAndCountsIt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewSubmissionService(store, notifier, time.Second, nop)

	submission, err := svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)
	svc.Wait()

	stored, err := store.GetSubmission(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionNew, stored.Status)
	assert.Equal(t, "Asha", stored.Name)
	assert.Equal(t, ashaMeta, stored.Metadata)

	counters, err := store.GetCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counters.TotalForms)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, submission.ID, sent[0].SubmissionID)
}

func TestIntakeValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewSubmissionService(store, notifier, time.Second, nop)

	for _, in := range []ContactInput{
		{Email: "a@example.com", Message: "hi"},
		{Name: "A", Message: "hi"},
		{Name: "A", Email: "a@example.com", Message: "   "},
		{Name: "A", Email: "not-an-email", Message: "hi"},
	} {
		_, err := svc.Intake(ctx, in, ashaMeta)
		ce := requireErrorType(t, err, types.ErrValidation)
		assert.Equal(t, 400, ce.Code)
	}
	svc.Wait()

	count, err := store.CountSubmissions(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, notifier.sent())
}

func TestIntakeStorageFailureIsNotMasked(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: newTestStore(t), createSubmissionErr: errors.New("store offline")}
	notifier := &recordingNotifier{}
	svc := NewSubmissionService(store, notifier, time.Second, nop)

	_, err := svc.Intake(ctx, ashaInput, ashaMeta)
	ce := requireErrorType(t, err, types.ErrPersistence)
	assert.Equal(t, 500, ce.Code)
	svc.Wait()

	// the notification is dispatched regardless of the storage result
	assert.Len(t, notifier.sent(), 1)

	counters, err := store.GetCounters(ctx)
	require.NoError(t, err)
	assert.Zero(t, counters.TotalForms)
}

func TestIntakeSurvivesNotifierAndLedgerFailures(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: newTestStore(t), incrementErr: errors.New("ledger locked")}
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewSubmissionService(store, notifier, time.Second, nop)

	submission, err := svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)
	svc.Wait()

	_, err = store.GetSubmission(ctx, submission.ID)
	assert.NoError(t, err)
}

func TestIntakeNotificationOutlivesRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := newTestStore(t)
	done := make(chan error, 1)
	svc := NewSubmissionService(store, notifierFunc(func(nctx context.Context) error {
		<-time.After(20 * time.Millisecond)
		done <- nctx.Err()
		return nil
	}), time.Second, nop)

	_, err := svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)
	cancel()
	svc.Wait()

	assert.NoError(t, <-done)
}

func TestSubmissionStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewSubmissionService(store, &recordingNotifier{}, time.Second, nop)

	svc.now = fixedClock(time.Date(2026, time.September, 20, 10, 0, 0, 0, time.UTC))
	_, err := svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)

	svc.now = fixedClock(time.Date(2026, time.October, 2, 10, 0, 0, 0, time.UTC))
	first, err := svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)
	_, err = svc.Intake(ctx, ashaInput, ashaMeta)
	require.NoError(t, err)
	svc.Wait()

	require.NoError(t, store.MarkSubmissionContacted(ctx, first.ID, svc.now()))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalForms)
	assert.Equal(t, int64(3), stats.Actual)
	assert.Equal(t, int64(2), stats.ByStatus["new"])
	assert.Equal(t, int64(1), stats.ByStatus["contacted"])
	assert.Equal(t, int64(0), stats.ByStatus["converted"])
	assert.Equal(t, int64(2), stats.ThisMonth)
	assert.Equal(t, int64(1), stats.LastMonth)
	assert.Equal(t, 100, stats.Change)

	contacted, err := ParseStatuses([]string{"contacted"})
	require.NoError(t, err)
	listed, err := svc.List(ctx, contacted)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].ID)

	_, err = ParseStatuses([]string{"archived"})
	requireErrorType(t, err, types.ErrValidation)
}
