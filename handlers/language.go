package handlers

import (
	"net/http"

	"yadori/middleware"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LanguageHandler stores the guest's interface language preference.
type LanguageHandler struct {
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewLanguageHandler(cache *redis.Client, logger *zap.Logger) *LanguageHandler {
	return &LanguageHandler{Cache: cache, Logger: logger}
}

// GetLanguageHandler handles GET /language.
func (h *LanguageHandler) GetLanguageHandler(c *gin.Context) {
	lang := utils.GetLanguage(h.Cache, middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

// SetLanguageHandler handles PUT /language.
func (h *LanguageHandler) SetLanguageHandler(c *gin.Context) {
	var input struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := utils.SaveLanguage(h.Cache, middleware.SessionID(c), input.Language); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unsupported language", input.Language)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": input.Language})
}
