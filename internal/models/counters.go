// counters.go
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

package models

// CountersID is the well-known key of the single ledger record.
const CountersID = "main"

// CounterField names one running total in the ledger.
type CounterField string

const (
	TotalVisitors CounterField = "totalVisitors"
	TotalForms    CounterField = "totalForms"
	TotalClients  CounterField = "totalClients"
)

// Column returns the SQL column backing the field.
func (f CounterField) Column() string {
	switch f {
	case TotalVisitors:
		return "total_visitors"
	case TotalForms:
		return "total_forms"
	case TotalClients:
		return "total_clients"
	}
	return ""
}

// Counters is the shared ledger of running totals. It is a derived cache and
// may drift from the authoritative collections.
type Counters struct {
	ID            string `json:"_id" bson:"_id" gorm:"primaryKey;size:16"`
	TotalVisitors int64  `json:"totalVisitors" bson:"totalVisitors" gorm:"not null;default:0"`
	TotalForms    int64  `json:"totalForms" bson:"totalForms" gorm:"not null;default:0"`
	TotalClients  int64  `json:"totalClients" bson:"totalClients" gorm:"not null;default:0"`
}

// TableName overrides the table name for Counters
func (Counters) TableName() string {
	return "counters"
}
