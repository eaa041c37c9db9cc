// File: database/repository/amenity/amenity_mongo.go
package amenityRepo

import (
	"context"
	"fmt"
	"time"

	"yadori/database"
	"yadori/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAmenityRepo implements AmenityRepository using MongoDB.
type MongoAmenityRepo struct {
	coll *mongo.Collection
}

// NewMongoAmenityRepo creates an AmenityRepository backed by MongoDB.
func NewMongoAmenityRepo() AmenityRepository {
	coll := database.MongoClient.Database("yadori").Collection("amenity_requests")
	return &MongoAmenityRepo{coll: coll}
}

// Create inserts a new amenity request.
func (r *MongoAmenityRepo) Create(ctx context.Context, req *models.AmenityRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create amenity request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its ID.
func (r *MongoAmenityRepo) GetByID(ctx context.Context, id string) (*models.AmenityRequest, error) {
	var req models.AmenityRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch amenity request with id %s: %w", id, err)
	}
	return &req, nil
}

// ListBySession returns all requests made under a guest session, newest first.
func (r *MongoAmenityRepo) ListBySession(ctx context.Context, sessionID string) ([]models.AmenityRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenity requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.AmenityRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode amenity requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus transitions a request to a new status.
func (r *MongoAmenityRepo) UpdateStatus(ctx context.Context, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update amenity request with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("amenity request with id %s not found", id)
	}
	return nil
}
