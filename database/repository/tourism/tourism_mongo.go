// File: database/repository/tourism/tourism_mongo.go
package tourismRepo

import (
	"context"
	"fmt"

	"yadori/database"
	"yadori/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPageSize = 20

// MongoTourismRepo implements TourismRepository using MongoDB.
type MongoTourismRepo struct {
	coll *mongo.Collection
}

// NewMongoTourismRepo creates a TourismRepository backed by MongoDB.
func NewMongoTourismRepo() TourismRepository {
	coll := database.MongoClient.Database("yadori").Collection("tourism_spots")
	repo := &MongoTourismRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create tourism indexes: %v\n", err)
	}
	return repo
}

// List returns a page of spots matching the filter plus the total count.
func (r *MongoTourismRepo) List(ctx context.Context, filter models.SpotFilter) ([]models.TourismSpot, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tourism spots: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tourism spots: %w", err)
	}
	defer cursor.Close(ctx)

	spots := []models.TourismSpot{}
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tourism spots: %w", err)
	}
	return spots, total, nil
}

// GetByID retrieves a single spot by its numeric ID.
func (r *MongoTourismRepo) GetByID(ctx context.Context, id int) (*models.TourismSpot, error) {
	var spot models.TourismSpot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch tourism spot with id %d: %w", id, err)
	}
	return &spot, nil
}

// Upsert inserts or replaces a spot, keyed by its numeric ID.
func (r *MongoTourismRepo) Upsert(ctx context.Context, spot models.TourismSpot) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": spot.ID}, spot, opts); err != nil {
		return fmt.Errorf("failed to upsert tourism spot with id %d: %w", spot.ID, err)
	}
	return nil
}
