package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

// MongoRepo stores one Mongo document per builder document, keyed by the
// string "id" field (unique index) rather than the ObjectID.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo ensures the id index and returns the repository.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idxModel); err != nil {
		return nil, fmt.Errorf("ensure id index: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Create(ctx context.Context, snap *document.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = "doc_" + uuid.NewString()
	}
	now := time.Now().UTC()
	snap.CreatedAt = now
	snap.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, snap); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateID
		}
		return "", err
	}
	return snap.ID, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*document.Snapshot, error) {
	var d document.Snapshot
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*document.Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Snapshot{}
	for cur.Next(ctx) {
		var d document.Snapshot
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Save(ctx context.Context, id string, payload *document.SavePayload) error {
	set := bson.M{
		"sections":         payload.Sections,
		"templateSettings": payload.TemplateSettings,
		"updatedAt":        time.Now().UTC(),
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
