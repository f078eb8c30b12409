// project.go
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

import "time"

// Project is a standalone portfolio entry, optionally tagged with a category.
type Project struct {
	ID          string     `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	Title       string     `json:"title" bson:"title" gorm:"size:255;not null"`
	Description string     `json:"description" bson:"description" gorm:"type:text"`
	CategoryID  *string    `json:"category,omitempty" bson:"category,omitempty" gorm:"size:36;index"`
	ImageURL    string     `json:"imageUrl" bson:"imageUrl" gorm:"size:1024"`
	Link        string     `json:"link" bson:"link" gorm:"size:1024"`
	Tags        StringList `json:"tags" bson:"tags"`
	Featured    bool       `json:"featured" bson:"featured" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ProjectPatch carries the subset of portfolio project fields an update may change.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	CategoryID  *string   `json:"category,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}
