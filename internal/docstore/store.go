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

// Package docstore implements repository.Store over MongoDB. Client projects
// are embedded in the client document; every write is a single-document
// atomic operation.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/repository"
)

const (
	countersCollection    = "counters"
	categoriesCollection  = "categories"
	projectsCollection    = "projects"
	submissionsCollection = "submissions"
	clientsCollection     = "clients"
)

// Store implements repository.Store over a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*Store)(nil)

// Connect dials uri, selects database and ensures indexes
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique and lookup indexes the store relies on
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		clientsCollection: {
			{Keys: bson.D{{Key: "submissionId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		submissionsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		projectsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

// Name identifies the backend
func (s *Store) Name() string {
	return "mongodb"
}

// Ping checks connectivity to the primary
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

// matched turns an update that matched nothing into ErrNotFound
func matched(result *mongo.UpdateResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleted(result *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func createdBetween(from, to time.Time) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}
}

// IncrementCounter applies $inc with upsert so the ledger is created on first use
func (s *Store) IncrementCounter(ctx context.Context, field models.CounterField, delta int64) error {
	if field.Column() == "" {
		return fmt.Errorf("unknown counter field %q", field)
	}
	_, err := s.collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": models.CountersID},
		bson.M{"$inc": bson.M{string(field): delta}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	return nil
}

// GetCounters returns the ledger, or a zero ledger if none exists yet
func (s *Store) GetCounters(ctx context.Context) (*models.Counters, error) {
	var counters models.Counters
	err := s.collection(countersCollection).FindOne(ctx, bson.M{"_id": models.CountersID}).Decode(&counters)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Counters{ID: models.CountersID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &counters, nil
}

// SetCounter overwrites one ledger field
func (s *Store) SetCounter(ctx context.Context, field models.CounterField, value int64) error {
	if field.Column() == "" {
		return fmt.Errorf("unknown counter field %q", field)
	}
	_, err := s.collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": models.CountersID},
		bson.M{"$set": bson.M{string(field): value}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}
