package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"yadori/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// ErrNothingToCharge is returned when a reservation carries no accommodation
// tax amount to collect.
var ErrNothingToCharge = errors.New("reservation has no accommodation tax to charge")

// IntentService creates payment intents for the accommodation tax of a
// reservation.
type IntentService interface {
	CreateIntent(ctx context.Context, res models.Reservation) (clientSecret string, err error)
}

// StripeIntentService implements IntentService against Stripe. The API key
// is set globally on the stripe package at startup.
type StripeIntentService struct {
	logger *zap.Logger
}

func NewStripeIntentService(logger *zap.Logger) *StripeIntentService {
	return &StripeIntentService{logger: logger}
}

// CreateIntent charges the accommodation tax in JPY (a zero-decimal
// currency, so the amount needs no minor-unit conversion).
func (s *StripeIntentService) CreateIntent(ctx context.Context, res models.Reservation) (string, error) {
	if res.AccommodationTax == nil || *res.AccommodationTax <= 0 {
		return "", ErrNothingToCharge
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(*res.AccommodationTax)),
		Currency: stripe.String(string(stripe.CurrencyJPY)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("reservation_id", strconv.Itoa(res.ID))

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Info("Created payment intent",
		zap.Int("reservationID", res.ID),
		zap.String("paymentIntent", intent.ID))
	return intent.ClientSecret, nil
}
