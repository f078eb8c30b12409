// submission.go
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

// SubmissionStatus is the lifecycle state of an inbound contact request.
type SubmissionStatus string

const (
	SubmissionNew       SubmissionStatus = "new"
	SubmissionContacted SubmissionStatus = "contacted"
	SubmissionConverted SubmissionStatus = "converted"
)

// Valid reports whether s is a known submission status.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionNew, SubmissionContacted, SubmissionConverted:
		return true
	}
	return false
}

// CaptureMetadata is derived from the request that delivered the submission.
type CaptureMetadata struct {
	IP        string `json:"ip" bson:"ip" gorm:"size:64"`
	UserAgent string `json:"userAgent" bson:"userAgent" gorm:"size:512"`
	Referrer  string `json:"referrer" bson:"referrer" gorm:"size:1024"`
}

// Submission is a stored inbound contact request.
type Submission struct {
	ID            string           `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	Name          string           `json:"name" bson:"name" gorm:"size:255;not null"`
	Email         string           `json:"email" bson:"email" gorm:"size:255;not null"`
	Phone         string           `json:"phone" bson:"phone" gorm:"size:64"`
	Message       string           `json:"message" bson:"message" gorm:"type:text"`
	PreferredTime string           `json:"preferredTime" bson:"preferredTime" gorm:"size:255"`
	Metadata      CaptureMetadata  `json:"metadata" bson:"metadata" gorm:"embedded;embeddedPrefix:meta_"`
	Status        SubmissionStatus `json:"status" bson:"status" gorm:"size:16;not null;default:new;index"`
	ClientID      *string          `json:"clientId,omitempty" bson:"clientId,omitempty" gorm:"size:36"`
	CreatedAt     time.Time        `json:"createdAt" bson:"createdAt" gorm:"index"`
	ContactedAt   *time.Time       `json:"contactedAt,omitempty" bson:"contactedAt,omitempty"`
	ConvertedAt   *time.Time       `json:"convertedAt,omitempty" bson:"convertedAt,omitempty"`
}

// TableName overrides the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}
