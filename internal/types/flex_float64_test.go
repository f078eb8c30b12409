// flex_float64_test.go
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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64_Coercion(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected float64
	}{
		{name: "number", body: `{"budget": 1500.5}`, expected: 1500.5},
		{name: "numeric string", body: `{"budget": " 250 "}`, expected: 250},
		{name: "non-numeric string", body: `{"budget": "abc"}`, expected: 0},
		{name: "missing", body: `{}`, expected: 0},
		{name: "null", body: `{"budget": null}`, expected: 0},
		{name: "negative", body: `{"budget": -10}`, expected: 0},
		{name: "NaN string", body: `{"budget": "NaN"}`, expected: 0},
		{name: "infinity string", body: `{"budget": "Inf"}`, expected: 0},
		{name: "boolean", body: `{"budget": true}`, expected: 0},
		{name: "object", body: `{"budget": {"amount": 3}}`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				Budget FlexFloat64 `json:"budget"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &v))
			assert.Equal(t, tt.expected, v.Budget.Float64())
		})
	}
}
