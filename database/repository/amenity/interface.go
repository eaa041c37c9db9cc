package amenityRepo

import (
	"context"

	"yadori/models"
)

// AmenityRepository defines data access for guest amenity requests.
type AmenityRepository interface {
	// Create inserts a new amenity request.
	Create(ctx context.Context, req *models.AmenityRequest) error
	// GetByID retrieves a request by its ID.
	GetByID(ctx context.Context, id string) (*models.AmenityRequest, error)
	// ListBySession returns all requests made under a guest session, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]models.AmenityRequest, error)
	// UpdateStatus transitions a request to a new status.
	UpdateStatus(ctx context.Context, id, status string) error
}
