package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yadori/middleware"
	"yadori/services/checkin"
	"yadori/services/concierge"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxChatMessageLen = 2000

// ConciergeHandler exposes the AI concierge chat.
type ConciergeHandler struct {
	Service concierge.Service
	Store   *checkin.Store
	Logger  *zap.Logger
}

func NewConciergeHandler(svc concierge.Service, store *checkin.Store, logger *zap.Logger) *ConciergeHandler {
	return &ConciergeHandler{Service: svc, Store: store, Logger: logger}
}

// CreateChatSessionHandler handles POST /concierge/sessions.
func (h *ConciergeHandler) CreateChatSessionHandler(c *gin.Context) {
	guest := h.Store.Get(c.Request.Context(), middleware.SessionID(c))
	bookingID := 0
	if guest.Booking != nil {
		bookingID = guest.Booking.ID
	}

	session, err := h.Service.CreateSession(c.Request.Context(), bookingID)
	if err != nil {
		h.Logger.Error("Failed to create chat session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not start the chat", "")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetChatSessionHandler handles GET /concierge/sessions/:sessionID.
func (h *ConciergeHandler) GetChatSessionHandler(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, concierge.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Chat session not found", "")
			return
		}
		h.Logger.Error("Failed to load chat session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not load the chat", "")
		return
	}
	c.JSON(http.StatusOK, session)
}

// SendChatMessageHandler handles POST /concierge/sessions/:sessionID/messages.
func (h *ConciergeHandler) SendChatMessageHandler(c *gin.Context) {
	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	text := strings.TrimSpace(input.Message)
	if text == "" || len(text) > maxChatMessageLen {
		utils.JSONError(c, http.StatusBadRequest, "Message must be between 1 and 2000 characters", "")
		return
	}

	reply, err := h.Service.SendMessage(c.Request.Context(), c.Param("sessionID"), text)
	if err != nil {
		if errors.Is(err, concierge.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Chat session not found", "")
			return
		}
		h.Logger.Error("Failed to send chat message", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not send the message", "")
		return
	}
	c.JSON(http.StatusOK, reply)
}
