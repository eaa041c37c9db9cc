package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"yadori/models"
	"yadori/services/tourism"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TourismHandler serves the local tourism guide.
type TourismHandler struct {
	Service tourism.Service
	Logger  *zap.Logger
}

func NewTourismHandler(svc tourism.Service, logger *zap.Logger) *TourismHandler {
	return &TourismHandler{Service: svc, Logger: logger}
}

// ListSpotsHandler handles GET /tourism/spots.
func (h *TourismHandler) ListSpotsHandler(c *gin.Context) {
	filter := models.SpotFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			filter.PageSize = size
		}
	}

	page, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("Failed to list tourism spots", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not load the tourism guide", "")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSpotHandler handles GET /tourism/spots/:id.
func (h *TourismHandler) GetSpotHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid spot id", c.Param("id"))
		return
	}

	spot, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tourism.ErrSpotNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Spot not found", "")
			return
		}
		h.Logger.Error("Failed to fetch tourism spot", zap.Int("spotID", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not load the spot", "")
		return
	}
	c.JSON(http.StatusOK, spot)
}
