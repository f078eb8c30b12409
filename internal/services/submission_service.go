// submission_service.go
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
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/notify"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// DefaultNotifyTimeout bounds a detached notification dispatch
const DefaultNotifyTimeout = 15 * time.Second

// ContactInput is the public contact form payload
type ContactInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	PreferredTime string `json:"preferredTime"`
}

// SubmissionStats summarizes the Lead Store for the dashboard
type SubmissionStats struct {
	TotalForms int64            `json:"totalForms"`
	Actual     int64            `json:"actualForms"`
	ByStatus   map[string]int64 `json:"byStatus"`
	MonthOverMonth
}

// SubmissionService runs Submission Intake and the submission queries.
type SubmissionService struct {
	store         repository.Store
	notifier      notify.Notifier
	notifyTimeout time.Duration
	logger        *zap.Logger
	now           func() time.Time
	inflight      sync.WaitGroup
}

// NewSubmissionService creates a SubmissionService
func NewSubmissionService(store repository.Store, notifier notify.Notifier, notifyTimeout time.Duration, logger *zap.Logger) *SubmissionService {
	if notifyTimeout <= 0 {
		notifyTimeout = DefaultNotifyTimeout
	}
	return &SubmissionService{
		store:         store,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		logger:        logger.Named("submissions"),
		now:           utcNow,
	}
}

// Intake validates and stores a contact request, bumps totalForms and
// dispatches the notification. The notification runs detached from ctx and
// its outcome never changes the result; a storage failure is still reported
// even though the notification went out.
func (s *SubmissionService) Intake(ctx context.Context, in ContactInput, meta models.CaptureMetadata) (*models.Submission, error) {
	submission, err := s.newSubmission(in, meta)
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, submission)

	if err := s.store.CreateSubmission(ctx, submission); err != nil {
		s.logger.Error("Failed to store submission",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
		return nil, types.NewPersistenceError("Failed to store submission", err)
	}

	if err := s.store.IncrementCounter(ctx, models.TotalForms, 1); err != nil {
		s.logger.Warn("Failed to increment totalForms",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
	}

	return submission, nil
}

func (s *SubmissionService) newSubmission(in ContactInput, meta models.CaptureMetadata) (*models.Submission, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		return nil, types.NewValidationError("Name, email, and message are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, types.NewValidationError("Invalid email address")
	}

	return &models.Submission{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(in.Phone),
		Message:       message,
		PreferredTime: strings.TrimSpace(in.PreferredTime),
		Metadata:      meta,
		Status:        models.SubmissionNew,
		CreatedAt:     s.now(),
	}, nil
}

// dispatch sends the notification on its own goroutine
func (s *SubmissionService) dispatch(ctx context.Context, submission *models.Submission) {
	n := notify.ContactNotification{
		SubmissionID:  submission.ID,
		Name:          submission.Name,
		Email:         submission.Email,
		Phone:         submission.Phone,
		Message:       submission.Message,
		PreferredTime: submission.PreferredTime,
		Metadata:      submission.Metadata,
		ReceivedAt:    submission.CreatedAt,
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()
		if err := s.notifier.Notify(notifyCtx, n); err != nil {
			s.logger.Error("Failed to send contact notification",
				zap.String("submission_id", n.SubmissionID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until dispatched notifications have finished
func (s *SubmissionService) Wait() {
	s.inflight.Wait()
}

// ParseStatuses validates a status filter
func ParseStatuses(values []string) ([]models.SubmissionStatus, error) {
	statuses := make([]models.SubmissionStatus, 0, len(values))
	for _, v := range values {
		status := models.SubmissionStatus(v)
		if !status.Valid() {
			return nil, types.NewValidationError("Invalid status filter: %s", v)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// List returns submissions newest first, optionally filtered by status
func (s *SubmissionService) List(ctx context.Context, statuses []models.SubmissionStatus) ([]models.Submission, error) {
	submissions, err := s.store.ListSubmissions(ctx, statuses)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to list submissions", err)
	}
	return submissions, nil
}

// Stats returns ledger and direct counts with the month-over-month change
func (s *SubmissionService) Stats(ctx context.Context) (*SubmissionStats, error) {
	counters, err := s.store.GetCounters(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to read counters", err)
	}

	stats := &SubmissionStats{
		TotalForms: counters.TotalForms,
		ByStatus:   make(map[string]int64, 3),
	}
	if stats.Actual, err = s.store.CountSubmissions(ctx, ""); err != nil {
		return nil, types.NewPersistenceError("Failed to count submissions", err)
	}
	for _, status := range []models.SubmissionStatus{models.SubmissionNew, models.SubmissionContacted, models.SubmissionConverted} {
		count, err := s.store.CountSubmissions(ctx, status)
		if err != nil {
			return nil, types.NewPersistenceError("Failed to count submissions", err)
		}
		stats.ByStatus[string(status)] = count
	}

	stats.MonthOverMonth, err = monthOverMonth(s.now(), func(from, to time.Time) (int64, error) {
		return s.store.CountSubmissionsCreatedBetween(ctx, from, to)
	})
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count submissions", err)
	}
	return stats, nil
}
