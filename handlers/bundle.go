// File: yadori/handlers/bundle.go
package handlers

import (
	"yadori/services/checkin"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Store *checkin.Store

	// Check-in wizard endpoints
	GetSessionHandler          gin.HandlerFunc
	StartSessionHandler        gin.HandlerFunc
	ArrivalsHandler            gin.HandlerFunc
	CreateReservationHandler   gin.HandlerFunc
	SelectReservationHandler   gin.HandlerFunc
	ConfirmIdentityHandler     gin.HandlerFunc
	DenyIdentityHandler        gin.HandlerFunc
	UpdateGuestDetailsHandler  gin.HandlerFunc
	UploadPassportHandler      gin.HandlerFunc
	ConfirmRegistrationHandler gin.HandlerFunc
	PaymentIntentHandler       gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc
	PayAtFrontDeskHandler      gin.HandlerFunc
	CheckoutHandler            gin.HandlerFunc
	AccessInfoHandler          gin.HandlerFunc

	// Concierge endpoints
	CreateChatSessionHandler gin.HandlerFunc
	GetChatSessionHandler    gin.HandlerFunc
	SendChatMessageHandler   gin.HandlerFunc

	// Tourism endpoints
	ListSpotsHandler gin.HandlerFunc
	GetSpotHandler   gin.HandlerFunc

	// Amenity endpoints
	AmenityCatalogHandler   gin.HandlerFunc
	RequestAmenitiesHandler gin.HandlerFunc
	AmenityHistoryHandler   gin.HandlerFunc

	// Language endpoints
	GetLanguageHandler gin.HandlerFunc
	SetLanguageHandler gin.HandlerFunc
}
