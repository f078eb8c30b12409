// stats_test.go
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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalcChange(t *testing.T) {
	tests := []struct {
		current, previous int64
		want              int
	}{
		{0, 0, 0},
		{5, 0, 100},
		{10, 5, 100},
		{5, 10, -50},
		{0, 4, -100},
		{4, 3, 33},
		{2, 3, -33},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalcChange(tt.current, tt.previous), "calcChange(%d, %d)", tt.current, tt.previous)
	}
}

func TestMonthWindows(t *testing.T) {
	previous, current, next := MonthWindows(time.Date(2026, time.January, 15, 8, 0, 0, 0, time.FixedZone("X", 3600)))

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), previous)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), current)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), next)

	// month boundary is decided in UTC
	previous, current, _ = MonthWindows(time.Date(2026, time.March, 1, 0, 30, 0, 0, time.FixedZone("Y", 3600)))
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), current)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), previous)
}
