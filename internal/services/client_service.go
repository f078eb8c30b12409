// client_service.go
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
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/types"
)

// Conversion engine actions
const (
	ActionMarkContacted   = "mark_contacted"
	ActionConvertToClient = "convert_to_client"
	ActionAddProject      = "add_project"
	ActionUpdateClient    = "update_client"
)

// ClientData carries client fields for convert_to_client overrides and update_client
type ClientData struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ProjectData is the add_project payload. Budget accepts numbers or numeric
// strings and falls back to 0.
type ProjectData struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Budget      types.FlexFloat64 `json:"budget"`
}

// ConversionRequest is the action-routed body of POST /clients
type ConversionRequest struct {
	Action      string       `json:"action"`
	FormID      string       `json:"formId"`
	ClientID    string       `json:"clientId"`
	ClientData  *ClientData  `json:"clientData,omitempty"`
	ProjectData *ProjectData `json:"projectData,omitempty"`
}

// ConversionResult is what an action produced
type ConversionResult struct {
	Message string                `json:"message"`
	Client  *models.Client        `json:"client,omitempty"`
	Project *models.ClientProject `json:"project,omitempty"`
}

// ClientList is the client listing with its statistics
type ClientList struct {
	Clients []models.Client `json:"clients"`
	Stats   ClientStats     `json:"stats"`
}

// ClientStats compares the ledger with the direct client count
type ClientStats struct {
	TotalClients  int64 `json:"totalClients"`
	ActualClients int64 `json:"actualClients"`
	MonthOverMonth
}

// ClientService is the Conversion Engine and Client Store.
type ClientService struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewClientService creates a ClientService
func NewClientService(store repository.Store, logger *zap.Logger) *ClientService {
	return &ClientService{
		store:  store,
		logger: logger.Named("clients"),
		now:    utcNow,
	}
}

// Handle routes a conversion request to its action
func (s *ClientService) Handle(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	switch req.Action {
	case ActionMarkContacted:
		if err := s.MarkContacted(ctx, req.FormID); err != nil {
			return nil, err
		}
		return &ConversionResult{Message: "Submission marked as contacted"}, nil

	case ActionConvertToClient:
		client, err := s.ConvertToClient(ctx, req.FormID, req.ClientData)
		if err != nil {
			return nil, err
		}
		return &ConversionResult{Message: "Client created successfully", Client: client}, nil

	case ActionAddProject:
		var data ProjectData
		if req.ProjectData != nil {
			data = *req.ProjectData
		}
		project, err := s.AddProject(ctx, req.ClientID, data)
		if err != nil {
			return nil, err
		}
		return &ConversionResult{Message: "Project added successfully", Project: project}, nil

	case ActionUpdateClient:
		var data ClientData
		if req.ClientData != nil {
			data = *req.ClientData
		}
		client, err := s.UpdateClient(ctx, req.ClientID, data)
		if err != nil {
			return nil, err
		}
		return &ConversionResult{Message: "Client updated successfully", Client: client}, nil
	}

	return nil, types.NewValidationError("Invalid action")
}

// MarkContacted moves a submission to contacted. A converted submission
// keeps its status and only has contactedAt re-stamped.
func (s *ClientService) MarkContacted(ctx context.Context, formID string) error {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return types.NewValidationError("Form ID is required")
	}
	if err := s.store.MarkSubmissionContacted(ctx, formID, s.now()); err != nil {
		return storeError(err, "Submission", "update submission")
	}
	return nil
}

// ConvertToClient creates the one client for a submission and marks the
// submission converted. A client that already exists for the submission is
// reported as a conflict carrying its id.
func (s *ClientService) ConvertToClient(ctx context.Context, formID string, overrides *ClientData) (*models.Client, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, types.NewValidationError("Form ID is required")
	}

	submission, err := s.store.GetSubmission(ctx, formID)
	if err != nil {
		return nil, storeError(err, "Submission", "load submission")
	}

	if existing, err := s.store.FindClientBySubmission(ctx, formID); err == nil {
		return nil, clientExists(existing.ID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, types.NewPersistenceError("Failed to check for existing client", err)
	}

	now := s.now()
	client := &models.Client{
		ID:           uuid.NewString(),
		Name:         submission.Name,
		Email:        submission.Email,
		Phone:        submission.Phone,
		Status:       models.ClientActive,
		Projects:     []models.ClientProject{},
		Notes:        submission.Message,
		SubmissionID: submission.ID,
		CreatedAt:    now,
		LastContact:  now,
	}
	if overrides != nil {
		applyOverride(&client.Name, overrides.Name)
		applyOverride(&client.Email, overrides.Email)
		applyOverride(&client.Phone, overrides.Phone)
		if overrides.Notes != nil {
			client.Notes = *overrides.Notes
		}
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race past the existence check
			if existing, findErr := s.store.FindClientBySubmission(ctx, formID); findErr == nil {
				return nil, clientExists(existing.ID)
			}
			return nil, types.NewConflictError("Client already exists for this submission")
		}
		return nil, types.NewPersistenceError("Failed to create client", err)
	}

	markErr := s.store.MarkSubmissionConverted(ctx, submission.ID, client.ID, now)
	if markErr != nil {
		s.logger.Error("Client created but submission not marked converted",
			zap.String("submission_id", submission.ID),
			zap.String("client_id", client.ID),
			zap.Error(markErr))
	}

	if err := s.store.IncrementCounter(ctx, models.TotalClients, 1); err != nil {
		s.logger.Warn("Failed to increment totalClients",
			zap.String("client_id", client.ID),
			zap.Error(err))
	}

	if markErr != nil {
		return nil, types.NewPersistenceError("Client created but submission status update failed", markErr).
			With("clientId", client.ID)
	}

	s.logger.Info("Converted submission to client",
		zap.String("submission_id", submission.ID),
		zap.String("client_id", client.ID))
	return client, nil
}

func clientExists(clientID string) *types.CustomError {
	return types.NewConflictError("Client already exists for this submission").With("clientId", clientID)
}

func applyOverride(field *string, value *string) {
	if value == nil {
		return
	}
	if v := strings.TrimSpace(*value); v != "" {
		*field = v
	}
}

// AddProject appends a project to a client and refreshes lastContact
func (s *ClientService) AddProject(ctx context.Context, clientID string, data ProjectData) (*models.ClientProject, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, types.NewValidationError("Client ID is required")
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return nil, types.NewValidationError("Project name is required")
	}

	status := models.ProjectPlanning
	if data.Status != "" {
		status = models.ProjectStatus(data.Status)
		if !status.Valid() {
			return nil, types.NewValidationError("Invalid project status: %s", data.Status)
		}
	}

	now := s.now()
	project := &models.ClientProject{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(data.Description),
		Status:      status,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Budget:      data.Budget.Float64(),
		CreatedAt:   now,
	}
	if err := s.store.AppendClientProject(ctx, clientID, project, now); err != nil {
		return nil, storeError(err, "Client", "add project")
	}
	return project, nil
}

// UpdateClient merges the provided fields into a client and refreshes lastContact
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, data ClientData) (*models.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, types.NewValidationError("Client ID is required")
	}

	patch := models.ClientPatch{
		Name:  data.Name,
		Email: data.Email,
		Phone: data.Phone,
		Notes: data.Notes,
	}
	if data.Status != nil {
		status := models.ClientStatus(*data.Status)
		if !status.Valid() {
			return nil, types.NewValidationError("Invalid client status: %s", *data.Status)
		}
		patch.Status = &status
	}

	if err := s.store.UpdateClient(ctx, clientID, patch, s.now()); err != nil {
		return nil, storeError(err, "Client", "update client")
	}

	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, storeError(err, "Client", "load client")
	}
	return client, nil
}

// List returns clients newest first with ledger, direct count and monthly change
func (s *ClientService) List(ctx context.Context) (*ClientList, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to list clients", err)
	}
	for i := range clients {
		if clients[i].Projects == nil {
			clients[i].Projects = []models.ClientProject{}
		}
	}

	counters, err := s.store.GetCounters(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to read counters", err)
	}
	actual, err := s.store.CountClients(ctx)
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count clients", err)
	}
	mom, err := monthOverMonth(s.now(), func(from, to time.Time) (int64, error) {
		return s.store.CountClientsCreatedBetween(ctx, from, to)
	})
	if err != nil {
		return nil, types.NewPersistenceError("Failed to count clients", err)
	}

	return &ClientList{
		Clients: clients,
		Stats: ClientStats{
			TotalClients:   counters.TotalClients,
			ActualClients:  actual,
			MonthOverMonth: mom,
		},
	}, nil
}

// Delete removes a client with its projects and decrements totalClients
func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return types.NewValidationError("Client ID is required")
	}
	if err := s.store.DeleteClient(ctx, clientID); err != nil {
		return storeError(err, "Client", "delete client")
	}
	if err := s.store.IncrementCounter(ctx, models.TotalClients, -1); err != nil {
		s.logger.Warn("Failed to decrement totalClients",
			zap.String("client_id", clientID),
			zap.Error(err))
	}
	s.logger.Info("Deleted client", zap.String("client_id", clientID))
	return nil
}

// RepairConversions marks converted every submission that has a client but
// was left in an earlier state. It returns how many were repaired.
func (s *ClientService) RepairConversions(ctx context.Context) (int, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return 0, types.NewPersistenceError("Failed to list clients", err)
	}

	repaired := 0
	for _, client := range clients {
		if client.SubmissionID == "" {
			continue
		}
		submission, err := s.store.GetSubmission(ctx, client.SubmissionID)
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Client references a missing submission",
				zap.String("client_id", client.ID),
				zap.String("submission_id", client.SubmissionID))
			continue
		}
		if err != nil {
			return repaired, types.NewPersistenceError("Failed to load submission", err)
		}
		if submission.Status == models.SubmissionConverted {
			continue
		}
		if err := s.store.MarkSubmissionConverted(ctx, submission.ID, client.ID, client.CreatedAt); err != nil {
			return repaired, types.NewPersistenceError("Failed to mark submission converted", err)
		}
		repaired++
		s.logger.Info("Repaired conversion",
			zap.String("submission_id", submission.ID),
			zap.String("client_id", client.ID))
	}
	return repaired, nil
}
