// stats.go
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
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// CalcChange returns the month-over-month percentage change from previous
// to current: 0 when both are 0, 100 when only previous is 0.
func CalcChange(current, previous int64) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// MonthWindows returns the start of the previous, current and next calendar
// months (UTC) around now.
func MonthWindows(now time.Time) (previous, current, next time.Time) {
	now = now.UTC()
	current = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return current.AddDate(0, -1, 0), current, current.AddDate(0, 1, 0)
}

// MonthOverMonth is a count for the current and previous month with the change between them.
type MonthOverMonth struct {
	ThisMonth int64 `json:"thisMonth"`
	LastMonth int64 `json:"lastMonth"`
	Change    int   `json:"change"`
}

type countBetween func(from, to time.Time) (int64, error)

func monthOverMonth(now time.Time, count countBetween) (MonthOverMonth, error) {
	previous, current, next := MonthWindows(now)

	thisMonth, err := count(current, next)
	if err != nil {
		return MonthOverMonth{}, err
	}
	lastMonth, err := count(previous, current)
	if err != nil {
		return MonthOverMonth{}, err
	}
	return MonthOverMonth{
		ThisMonth: thisMonth,
		LastMonth: lastMonth,
		Change:    CalcChange(thisMonth, lastMonth),
	}, nil
}

// storeError maps a storage sentinel onto the error taxonomy
func storeError(err error, what, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return types.NewNotFoundError("%s not found", what)
	case errors.Is(err, repository.ErrDuplicate):
		return types.NewConflictError("%s already exists", what)
	}
	return types.NewPersistenceError(fmt.Sprintf("Failed to %s", action), err)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
