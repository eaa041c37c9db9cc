package reservations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"yadori/models"

	"go.uber.org/zap"
)

var (
	// ErrReservationNotFound is returned for an unknown reservation id.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStatusUnavailable marks the status endpoint as permanently
	// unreachable (404-class responses). Callers must not treat it as a
	// transient fault: it signals a misconfigured endpoint, not settlement
	// latency.
	ErrStatusUnavailable = errors.New("reservation status endpoint unavailable")
)

// Client is the portal's view of the external reservations/payments API.
type Client interface {
	ArrivalReservations(ctx context.Context, date string, facilityID int) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, input models.CreateReservationInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, id int) (*models.Reservation, error)
	ReservationStatus(ctx context.Context, id int) (models.ReservationStatus, error)
}

// HTTPClient talks to the reservations API over plain JSON HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// ArrivalReservations lists today's (or the given date's) arrivals,
// optionally filtered by facility.
func (c *HTTPClient) ArrivalReservations(ctx context.Context, date string, facilityID int) ([]models.Reservation, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if facilityID > 0 {
		params.Set("facility_id", strconv.Itoa(facilityID))
	}

	endpoint := fmt.Sprintf("%s/reservations/arrival/?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build arrivals request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch arrivals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arrivals request returned status %d", resp.StatusCode)
	}

	var reservations []models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservations); err != nil {
		return nil, fmt.Errorf("failed to decode arrivals response: %w", err)
	}
	return reservations, nil
}

// CreateReservation registers a walk-in reservation upstream.
func (c *HTTPClient) CreateReservation(ctx context.Context, input models.CreateReservationInput) (*models.Reservation, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/reservations/", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create reservation returned status %d", resp.StatusCode)
	}

	var reservation models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		return nil, fmt.Errorf("failed to decode created reservation: %w", err)
	}
	return &reservation, nil
}

// GetReservation fetches a single reservation by id.
func (c *HTTPClient) GetReservation(ctx context.Context, id int) (*models.Reservation, error) {
	endpoint := fmt.Sprintf("%s/reservations/%d/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reservation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrReservationNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reservation request returned status %d", resp.StatusCode)
	}

	var reservation models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		return nil, fmt.Errorf("failed to decode reservation: %w", err)
	}
	return &reservation, nil
}

// ReservationStatus fetches the minimal payment-state view used by the
// payment confirmation poller.
func (c *HTTPClient) ReservationStatus(ctx context.Context, id int) (models.ReservationStatus, error) {
	endpoint := fmt.Sprintf("%s/reservations/%d/status/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ReservationStatus{}, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ReservationStatus{}, fmt.Errorf("failed to fetch reservation status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return models.ReservationStatus{}, ErrStatusUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return models.ReservationStatus{}, fmt.Errorf("status request returned status %d", resp.StatusCode)
	}

	var status models.ReservationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return models.ReservationStatus{}, fmt.Errorf("failed to decode reservation status: %w", err)
	}
	return status, nil
}
