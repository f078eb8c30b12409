// leads.go
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

package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/localnerve/portfolio-leads/internal/models"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// CreateSubmission inserts a submission
func (s *Store) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	_, err := s.collection(submissionsCollection).InsertOne(ctx, submission)
	return translate(err)
}

// GetSubmission returns a submission by id
func (s *Store) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.collection(submissionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&submission); err != nil {
		return nil, translate(err)
	}
	return &submission, nil
}

// ListSubmissions returns submissions newest first
func (s *Store) ListSubmissions(ctx context.Context, statuses []models.SubmissionStatus) ([]models.Submission, error) {
	filter := bson.M{}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	cursor, err := s.collection(submissionsCollection).Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	submissions := []models.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// MarkSubmissionContacted moves a non-converted submission to contacted;
// a converted one only has contactedAt re-stamped.
func (s *Store) MarkSubmissionContacted(ctx context.Context, id string, at time.Time) error {
	coll := s.collection(submissionsCollection)
	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.SubmissionConverted}},
		bson.M{"$set": bson.M{"status": models.SubmissionContacted, "contactedAt": at}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}
	return matched(coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"contactedAt": at}}))
}

// MarkSubmissionConverted moves a submission to its terminal converted state
func (s *Store) MarkSubmissionConverted(ctx context.Context, id, clientID string, at time.Time) error {
	return matched(s.collection(submissionsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":      models.SubmissionConverted,
			"convertedAt": at,
			"clientId":    clientID,
		}},
	))
}

// CountSubmissions counts submissions, optionally with one status
func (s *Store) CountSubmissions(ctx context.Context, status models.SubmissionStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.collection(submissionsCollection).CountDocuments(ctx, filter)
}

// CountSubmissionsCreatedBetween counts submissions created in [from, to)
func (s *Store) CountSubmissionsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return s.collection(submissionsCollection).CountDocuments(ctx, createdBetween(from, to))
}

func withClientIDs(client *models.Client) {
	for i := range client.Projects {
		client.Projects[i].ClientID = client.ID
	}
}

// CreateClient inserts a client; the unique submissionId index rejects a
// second client for the same submission with repository.ErrDuplicate.
func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	if client.Projects == nil {
		client.Projects = []models.ClientProject{}
	}
	_, err := s.collection(clientsCollection).InsertOne(ctx, client)
	return translate(err)
}

// GetClient returns a client with its embedded projects
func (s *Store) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.collection(clientsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		return nil, translate(err)
	}
	withClientIDs(&client)
	return &client, nil
}

// FindClientBySubmission returns the client converted from a submission
func (s *Store) FindClientBySubmission(ctx context.Context, submissionID string) (*models.Client, error) {
	var client models.Client
	err := s.collection(clientsCollection).FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&client)
	if err != nil {
		return nil, translate(err)
	}
	withClientIDs(&client)
	return &client, nil
}

// ListClients returns clients newest first
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	cursor, err := s.collection(clientsCollection).Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	for i := range clients {
		withClientIDs(&clients[i])
	}
	return clients, nil
}

// UpdateClient merges a patch into a client and refreshes lastContact
func (s *Store) UpdateClient(ctx context.Context, id string, patch models.ClientPatch, at time.Time) error {
	set := bson.M{"lastContact": at}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	return matched(s.collection(clientsCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

// AppendClientProject pushes a project onto the client's list and refreshes
// lastContact in one document update.
func (s *Store) AppendClientProject(ctx context.Context, clientID string, project *models.ClientProject, at time.Time) error {
	project.ClientID = clientID
	return matched(s.collection(clientsCollection).UpdateOne(ctx,
		bson.M{"_id": clientID},
		bson.M{
			"$push": bson.M{"projects": project},
			"$set":  bson.M{"lastContact": at},
		},
	))
}

// DeleteClient removes a client and its embedded projects
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return deleted(s.collection(clientsCollection).DeleteOne(ctx, bson.M{"_id": id}))
}

// CountClients counts all clients
func (s *Store) CountClients(ctx context.Context) (int64, error) {
	return s.collection(clientsCollection).CountDocuments(ctx, bson.M{})
}

// CountClientsCreatedBetween counts clients created in [from, to)
func (s *Store) CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return s.collection(clientsCollection).CountDocuments(ctx, createdBetween(from, to))
}
