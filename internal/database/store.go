// store.go
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
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

// statsHint tags aggregate queries so they stand out in the slow query log
var statsHint = hints.Comment("select", "portfolio-leads:stats")

// Store implements repository.Store over GORM.
type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open GORM handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying GORM handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Name returns the dialect name
func (s *Store) Name() string {
	return s.db.Dialector.Name()
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return Close(s.db)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// IncrementCounter adds delta to one ledger field with a single UPDATE,
// creating the ledger row on first use.
func (s *Store) IncrementCounter(ctx context.Context, field models.CounterField, delta int64) error {
	col := field.Column()
	if col == "" {
		return fmt.Errorf("unknown counter field %q", field)
	}

	for attempt := 0; attempt < 2; attempt++ {
		result := s.conn(ctx).Model(&models.Counters{}).
			Where("id = ?", models.CountersID).
			UpdateColumn(col, gorm.Expr(col+" + ?", delta))
		if result.Error != nil {
			return fmt.Errorf("increment %s: %w", field, result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}
		if err := s.ensureCounters(ctx); err != nil {
			return err
		}
	}

	return fmt.Errorf("increment %s: ledger row missing", field)
}

// GetCounters returns the ledger, or a zero ledger if none exists yet
func (s *Store) GetCounters(ctx context.Context) (*models.Counters, error) {
	var counters models.Counters
	err := s.conn(ctx).Where("id = ?", models.CountersID).First(&counters).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Counters{ID: models.CountersID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &counters, nil
}

// SetCounter overwrites one ledger field
func (s *Store) SetCounter(ctx context.Context, field models.CounterField, value int64) error {
	col := field.Column()
	if col == "" {
		return fmt.Errorf("unknown counter field %q", field)
	}
	if err := s.ensureCounters(ctx); err != nil {
		return err
	}
	return s.conn(ctx).Model(&models.Counters{}).
		Where("id = ?", models.CountersID).
		UpdateColumn(col, value).Error
}

func (s *Store) ensureCounters(ctx context.Context) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Counters{ID: models.CountersID}).Error
	if err != nil && !isDuplicate(err) {
		return fmt.Errorf("create counters: %w", err)
	}
	return nil
}

// exists reports whether a row with id exists in model's table
func (s *Store) exists(ctx context.Context, model interface{}, id string) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// notFoundUnlessExists resolves a zero-row update: MySQL reports only changed
// rows, so an unchanged existing row must not read as missing.
func (s *Store) notFoundUnlessExists(ctx context.Context, model interface{}, id string) error {
	ok, err := s.exists(ctx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}
