package handlers

import (
	"errors"
	"net/http"

	"yadori/middleware"
	"yadori/models"
	"yadori/services/amenity"
	"yadori/services/checkin"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AmenityHandler serves the complimentary amenities flow.
type AmenityHandler struct {
	Service amenity.Service
	Store   *checkin.Store
	Logger  *zap.Logger
}

func NewAmenityHandler(svc amenity.Service, store *checkin.Store, logger *zap.Logger) *AmenityHandler {
	return &AmenityHandler{Service: svc, Store: store, Logger: logger}
}

// CatalogHandler handles GET /amenities.
func (h *AmenityHandler) CatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Service.Catalog()})
}

// RequestAmenitiesHandler handles POST /amenities/requests.
func (h *AmenityHandler) RequestAmenitiesHandler(c *gin.Context) {
	var input struct {
		Items []models.AmenityRequestItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	sessionID := middleware.SessionID(c)
	guest := h.Store.Get(c.Request.Context(), sessionID)
	bookingID := 0
	if guest.Booking != nil {
		bookingID = guest.Booking.ID
	}

	req, err := h.Service.Request(c.Request.Context(), sessionID, bookingID, input.Items)
	if err != nil {
		if errors.Is(err, amenity.ErrEmptyRequest) || errors.Is(err, amenity.ErrUnknownItem) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid amenity request", err.Error())
			return
		}
		h.Logger.Error("Failed to file amenity request", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not file the request", "")
		return
	}
	c.JSON(http.StatusCreated, req)
}

// AmenityHistoryHandler handles GET /amenities/requests.
func (h *AmenityHandler) AmenityHistoryHandler(c *gin.Context) {
	requests, err := h.Service.History(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.Logger.Error("Failed to list amenity requests", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not load past requests", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
