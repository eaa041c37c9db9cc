package tourism

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	repository "yadori/database/repository"
	"yadori/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrSpotNotFound is returned when no spot exists for the given ID.
var ErrSpotNotFound = errors.New("tourism spot not found")

const (
	spotPagePrefix = "tourism:page:"
	spotPageTTL    = 10 * time.Minute
)

// Service serves the local tourism guide.
type Service interface {
	List(ctx context.Context, filter models.SpotFilter) (*models.SpotPage, error)
	GetByID(ctx context.Context, id int) (*models.TourismSpot, error)
}

// DefaultService reads spots from the repository with a short-lived Redis
// page cache in front. Cache failures are logged and ignored.
type DefaultService struct {
	repo   repository.TourismRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewDefaultService(repo repository.TourismRepository, cache *redis.Client, logger *zap.Logger) *DefaultService {
	return &DefaultService{repo: repo, cache: cache, logger: logger}
}

// List returns a page of spots matching the filter.
func (s *DefaultService) List(ctx context.Context, filter models.SpotFilter) (*models.SpotPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	key := pageCacheKey(filter)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Result(); err == nil {
			var page models.SpotPage
			if err := json.Unmarshal([]byte(data), &page); err == nil {
				return &page, nil
			}
		}
	}

	spots, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tourism spots: %w", err)
	}
	page := &models.SpotPage{
		Spots:    spots,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}

	if s.cache != nil {
		if b, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, key, b, spotPageTTL).Err(); err != nil {
				s.logger.Warn("failed to cache tourism page", zap.Error(err))
			}
		}
	}
	return page, nil
}

// GetByID returns a single spot.
func (s *DefaultService) GetByID(ctx context.Context, id int) (*models.TourismSpot, error) {
	spot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, ErrSpotNotFound
	}
	return spot, nil
}

func pageCacheKey(filter models.SpotFilter) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", spotPagePrefix, filter.Category, filter.Search, filter.Page, filter.PageSize)
}
