// ledger_service.go
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

	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// DashboardStats compares the Counter Ledger with the authoritative counts
type DashboardStats struct {
	Ledger        models.Counters `json:"ledger"`
	ActualForms   int64           `json:"actualForms"`
	ActualClients int64           `json:"actualClients"`
	FormsDrift    bool            `json:"formsDrift"`
	ClientsDrift  bool            `json:"clientsDrift"`
}

// ReconcileResult is the ledger before and after a reconcile
type ReconcileResult struct {
	Before models.Counters `json:"before"`
	After  models.Counters `json:"after"`
}

// LedgerService owns the Counter Ledger operations that are not a side
// effect of another write.
type LedgerService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewLedgerService creates a LedgerService
func NewLedgerService(store repository.Store, logger *zap.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger.Named("ledger")}
}

// TrackVisit increments totalVisitors
func (s *LedgerService) TrackVisit(ctx context.Context) error {
	if err := s.store.IncrementCounter(ctx, models.TotalVisitors, 1); err != nil {
		return types.NewPersistenceError("Failed to track visit", err)
	}
	return nil
}

// Dashboard returns the ledger with direct counts and drift flags
func (s *LedgerService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	counters, err := s.store.GetCounters(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to read counters", err)
	}
	forms, err := s.store.CountSubmissions(ctx, "")
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count submissions", err)
	}
	clients, err := s.store.CountClients(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count clients", err)
	}

	return &DashboardStats{
		Ledger:        *counters,
		ActualForms:   forms,
		ActualClients: clients,
		FormsDrift:    counters.TotalForms != forms,
		ClientsDrift:  counters.TotalClients != clients,
	}, nil
}

// Reconcile overwrites totalForms and totalClients with direct counts.
// totalVisitors has no source of truth and is kept.
func (s *LedgerService) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	before, err := s.store.GetCounters(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to read counters", err)
	}

	forms, err := s.store.CountSubmissions(ctx, "")
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count submissions", err)
	}
	if err := s.store.SetCounter(ctx, models.TotalForms, forms); err != nil {
		return nil, types.NewPersistenceError("Failed to write totalForms", err)
	}

	clients, err := s.store.CountClients(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count clients", err)
	}
	if err := s.store.SetCounter(ctx, models.TotalClients, clients); err != nil {
		return nil, types.NewPersistenceError("Failed to write totalClients", err)
	}

	after, err := s.store.GetCounters(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to read counters", err)
	}

	s.logger.Info("Reconciled counter ledger",
		zap.Int64("forms_before", before.TotalForms),
		zap.Int64("forms_after", after.TotalForms),
		zap.Int64("clients_before", before.TotalClients),
		zap.Int64("clients_after", after.TotalClients))
	return &ReconcileResult{Before: *before, After: *after}, nil
}
