package amenity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repository "yadori/database/repository"
	"yadori/models"
	"yadori/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ErrEmptyRequest is returned when a request carries no items.
var ErrEmptyRequest = errors.New("amenity request has no items")

// ErrUnknownItem is returned when a requested item is not in the catalog.
var ErrUnknownItem = errors.New("unknown amenity item")

// catalog is the fixed set of complimentary items guests can request.
var catalog = []models.AmenityItem{
	{ID: 1, Name: "Face Towel", Icon: "🧴"},
	{ID: 2, Name: "Bath Towel", Icon: "🛁"},
	{ID: 3, Name: "Toothbrush Set", Icon: "🪥"},
	{ID: 4, Name: "Slippers", Icon: "👟"},
	{ID: 5, Name: "Coffee Pods", Icon: "☕"},
	{ID: 6, Name: "Water Bottle", Icon: "💧"},
}

// Enqueuer abstracts the asynq client so tests can capture enqueued tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service handles the amenity request flow.
type Service interface {
	Catalog() []models.AmenityItem
	Request(ctx context.Context, sessionID string, bookingID int, items []models.AmenityRequestItem) (*models.AmenityRequest, error)
	History(ctx context.Context, sessionID string) ([]models.AmenityRequest, error)
}

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, req *models.AmenityRequest) error
	ListBySession(ctx context.Context, sessionID string) ([]models.AmenityRequest, error)
}

var _ Repository = (repository.AmenityRepository)(nil)

// DefaultService persists amenity requests and queues staff notifications.
type DefaultService struct {
	repo     Repository
	enqueuer Enqueuer
	logger   *zap.Logger
}

func NewDefaultService(repo Repository, enqueuer Enqueuer, logger *zap.Logger) *DefaultService {
	return &DefaultService{repo: repo, enqueuer: enqueuer, logger: logger}
}

// Catalog returns the items guests can request.
func (s *DefaultService) Catalog() []models.AmenityItem {
	items := make([]models.AmenityItem, len(catalog))
	copy(items, catalog)
	return items
}

// Request validates the items, persists the request, and queues a staff
// notification. A queue failure does not fail the request; housekeeping can
// still see it in the store.
func (s *DefaultService) Request(ctx context.Context, sessionID string, bookingID int, items []models.AmenityRequestItem) (*models.AmenityRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyRequest
	}
	for i, item := range items {
		entry, ok := catalogItem(item.ItemID)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownItem, item.ItemID)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %d has invalid quantity %d", item.ItemID, item.Quantity)
		}
		items[i].Name = entry.Name
	}

	req := &models.AmenityRequest{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		BookingID: bookingID,
		Items:     items,
		Status:    models.AmenityRequestPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to save amenity request: %w", err)
	}

	payload := models.AmenityTaskPayload{
		RequestID: req.ID,
		BookingID: bookingID,
		Summary:   summarize(items),
	}
	task, opts, err := tasks.NewAmenityNotifyTask(payload)
	if err == nil {
		_, err = s.enqueuer.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		s.logger.Warn("failed to queue amenity staff notification",
			zap.String("requestID", req.ID), zap.Error(err))
	}
	return req, nil
}

// History returns the session's past requests, newest first.
func (s *DefaultService) History(ctx context.Context, sessionID string) ([]models.AmenityRequest, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func catalogItem(id int) (models.AmenityItem, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return models.AmenityItem{}, false
}

func summarize(items []models.AmenityRequestItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
