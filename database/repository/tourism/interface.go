package tourismRepo

import (
	"context"

	"yadori/models"
)

// TourismRepository defines data access for the local tourism catalog.
type TourismRepository interface {
	// List returns a page of spots matching the filter plus the total count.
	List(ctx context.Context, filter models.SpotFilter) ([]models.TourismSpot, int64, error)
	// GetByID retrieves a single spot by its numeric ID.
	GetByID(ctx context.Context, id int) (*models.TourismSpot, error)
	// Upsert inserts or replaces a spot, keyed by its numeric ID.
	Upsert(ctx context.Context, spot models.TourismSpot) error
}
