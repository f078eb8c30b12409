// client.go
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

// ClientStatus marks whether a converted lead is an ongoing relationship.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// Valid reports whether s is a known client status.
func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

// ProjectStatus is the state of a client engagement.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// Client is a submission that has been accepted as a business relationship.
// SubmissionID is unique: one client per originating submission.
type Client struct {
	ID           string          `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	Name         string          `json:"name" bson:"name" gorm:"size:255;not null"`
	Email        string          `json:"email" bson:"email" gorm:"size:255"`
	Phone        string          `json:"phone" bson:"phone" gorm:"size:64"`
	Status       ClientStatus    `json:"status" bson:"status" gorm:"size:16;not null;default:active"`
	Projects     []ClientProject `json:"projects" bson:"projects" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Notes        string          `json:"notes" bson:"notes" gorm:"type:text"`
	SubmissionID string          `json:"formId" bson:"submissionId" gorm:"size:36;not null;uniqueIndex"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt" gorm:"index"`
	LastContact  time.Time       `json:"lastContact" bson:"lastContact"`
}

// ClientProject is one engagement with a client, stored in creation order.
type ClientProject struct {
	ID          string        `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	ClientID    string        `json:"-" bson:"-" gorm:"size:36;not null;index"`
	Name        string        `json:"name" bson:"name" gorm:"size:255;not null"`
	Description string        `json:"description" bson:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" bson:"status" gorm:"size:16;not null;default:planning"`
	StartDate   string        `json:"startDate" bson:"startDate" gorm:"size:32"`
	EndDate     string        `json:"endDate" bson:"endDate" gorm:"size:32"`
	Budget      float64       `json:"budget" bson:"budget" gorm:"not null;default:0"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

// ClientPatch carries the subset of client fields an update may change.
// Nil fields are left untouched.
type ClientPatch struct {
	Name   *string       `json:"name,omitempty"`
	Email  *string       `json:"email,omitempty"`
	Phone  *string       `json:"phone,omitempty"`
	Status *ClientStatus `json:"status,omitempty"`
	Notes  *string       `json:"notes,omitempty"`
}

// Columns returns the patch as a column/value map for partial updates.
func (p ClientPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

// TableName overrides the table name for Client
func (Client) TableName() string {
	return "clients"
}

// TableName overrides the table name for ClientProject
func (ClientProject) TableName() string {
	return "client_projects"
}
