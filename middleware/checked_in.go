package middleware

import (
	"net/http"

	"yadori/services/checkin"
	"yadori/utils"

	"github.com/gin-gonic/gin"
)

// RequireCheckedIn gates stay features behind a completed check-in.
func RequireCheckedIn(store *checkin.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := store.Get(c.Request.Context(), SessionID(c))
		if !session.IsCheckedIn {
			utils.JSONError(c, http.StatusForbidden, "Please complete check-in to use this feature.", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
