package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// GuestSessionHeader carries the guest's session id on every request.
	GuestSessionHeader = "X-Guest-Session"
	// GuestSessionCookie is the fallback for browsers that drop custom headers.
	GuestSessionCookie = "guest_session"

	guestSessionKey = "guestSessionID"

	// Session cookies outlive the stay by a margin so returning guests keep
	// their state. Matches the server-side session TTL of 72 hours.
	guestCookieMaxAge = 72 * 60 * 60
)

// GuestSessionMiddleware resolves the guest session id from the request,
// minting a fresh one when the guest arrives without it. The id is echoed
// back in both the response header and a cookie.
func GuestSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(GuestSessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(GuestSessionCookie); err == nil {
				id = cookie
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Set(guestSessionKey, id)
		c.Header(GuestSessionHeader, id)
		c.SetCookie(GuestSessionCookie, id, guestCookieMaxAge, "/", "", false, true)
		c.Next()
	}
}

// SessionID returns the guest session id resolved for this request.
func SessionID(c *gin.Context) string {
	return c.GetString(guestSessionKey)
}
