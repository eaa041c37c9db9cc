package routes

import (
	"net/http"
	"time"

	"yadori/handlers"
	"yadori/middleware"
	"yadori/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCheckInRoutes registers the check-in wizard endpoints.
func RegisterCheckInRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkin")
	{
		api.GET("/session", hb.GetSessionHandler)
		api.POST("/session/start", hb.StartSessionHandler)
		api.GET("/arrivals", hb.ArrivalsHandler)
		api.POST("/reservations", hb.CreateReservationHandler)
		api.POST("/identify/select", hb.SelectReservationHandler)
		api.POST("/verify/confirm", hb.ConfirmIdentityHandler)
		api.POST("/verify/deny", hb.DenyIdentityHandler)
		api.PATCH("/details", hb.UpdateGuestDetailsHandler)
		api.POST("/passport", hb.UploadPassportHandler)
		api.POST("/register/confirm", hb.ConfirmRegistrationHandler)
		api.POST("/payment/intent", hb.PaymentIntentHandler)
		api.POST("/payment/confirm", hb.ConfirmPaymentHandler)
		api.POST("/payment/desk", hb.PayAtFrontDeskHandler)
		api.POST("/checkout", hb.CheckoutHandler)
	}
}

// RegisterStayRoutes registers endpoints that require a completed check-in.
func RegisterStayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stay")
	{
		api.Use(middleware.RequireCheckedIn(hb.Store))
		api.GET("/access", hb.AccessInfoHandler)

		api.GET("/amenities", hb.AmenityCatalogHandler)
		api.POST("/amenities/requests", hb.RequestAmenitiesHandler)
		api.GET("/amenities/requests", hb.AmenityHistoryHandler)

		api.POST("/concierge/sessions", hb.CreateChatSessionHandler)
		api.GET("/concierge/sessions/:sessionID", hb.GetChatSessionHandler)
		api.POST("/concierge/sessions/:sessionID/messages", hb.SendChatMessageHandler)
	}
}

// RegisterTourismRoutes registers the public tourism guide endpoints.
func RegisterTourismRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tourism")
	{
		api.GET("/spots", hb.ListSpotsHandler)
		api.GET("/spots/:id", hb.GetSpotHandler)
	}
}

// RegisterLanguageRoutes registers the language preference endpoints.
func RegisterLanguageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/language")
	{
		api.GET("", hb.GetLanguageHandler)
		api.PUT("", hb.SetLanguageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.GuestSessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.GuestSessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.GuestSessionMiddleware())

	RegisterCheckInRoutes(r, hb)
	RegisterStayRoutes(r, hb)
	RegisterTourismRoutes(r, hb)
	RegisterLanguageRoutes(r, hb)
	RegisterHealthRoute(r)
}
