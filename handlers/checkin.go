package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"yadori/config"
	"yadori/middleware"
	"yadori/models"
	"yadori/services/checkin"
	"yadori/services/payment"
	"yadori/services/reservations"
	"yadori/services/storage"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const passportFolder = "guest-passports"

// CheckInHandler exposes the self check-in wizard over HTTP.
type CheckInHandler struct {
	Controller   *checkin.Controller
	Store        *checkin.Store
	Reservations reservations.Client
	Payments     payment.IntentService
	Storage      storage.StorageService
	Logger       *zap.Logger
}

func NewCheckInHandler(ctrl *checkin.Controller, store *checkin.Store, resClient reservations.Client, payments payment.IntentService, storageSvc storage.StorageService, logger *zap.Logger) *CheckInHandler {
	return &CheckInHandler{
		Controller:   ctrl,
		Store:        store,
		Reservations: resClient,
		Payments:     payments,
		Storage:      storageSvc,
		Logger:       logger,
	}
}

// GetSessionHandler handles GET /checkin/session.
func (h *CheckInHandler) GetSessionHandler(c *gin.Context) {
	session := h.Store.Get(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, session)
}

// StartSessionHandler handles POST /checkin/session/start. An optional ?id=
// query carries the reservation id from a booking confirmation link.
func (h *CheckInHandler) StartSessionHandler(c *gin.Context) {
	reservationID := 0
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid reservation id", raw)
			return
		}
		reservationID = id
	}

	session := h.Controller.StartSession(c.Request.Context(), middleware.SessionID(c), reservationID)
	c.JSON(http.StatusOK, session)
}

// ArrivalsHandler handles GET /checkin/arrivals. A lookup failure degrades
// to an empty list so the wizard can fall back to manual entry.
func (h *CheckInHandler) ArrivalsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	facilityID := config.AppConfig.DefaultFacilityID
	if raw := c.Query("fid"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			facilityID = id
		}
	}

	arrivals, err := h.Reservations.ArrivalReservations(c.Request.Context(), date, facilityID)
	if err != nil {
		h.Logger.Warn("Failed to fetch arrivals, returning empty list",
			zap.String("date", date), zap.Error(err))
		arrivals = []models.Reservation{}
	}
	c.JSON(http.StatusOK, gin.H{"reservations": arrivals})
}

// CreateReservationHandler handles POST /checkin/reservations for walk-in
// guests who have no booking yet.
func (h *CheckInHandler) CreateReservationHandler(c *gin.Context) {
	var input models.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation input", err.Error())
		return
	}
	if input.FacilityID == 0 {
		input.FacilityID = config.AppConfig.DefaultFacilityID
	}

	res, err := h.Reservations.CreateReservation(c.Request.Context(), input)
	if err != nil {
		h.Logger.Error("Failed to create reservation", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Could not create the reservation", "")
		return
	}

	session, err := h.Controller.SelectReservation(c.Request.Context(), middleware.SessionID(c), *res)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Created reservation is not usable for check-in", err.Error())
		return
	}
	c.JSON(http.StatusCreated, session)
}

// SelectReservationHandler handles POST /checkin/identify/select. The guest
// picked one of the arrival reservations.
func (h *CheckInHandler) SelectReservationHandler(c *gin.Context) {
	var input struct {
		ReservationID int `json:"reservation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	res, err := h.Reservations.GetReservation(c.Request.Context(), input.ReservationID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Reservation not found", "")
			return
		}
		h.Logger.Error("Failed to fetch reservation",
			zap.Int("reservationID", input.ReservationID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Could not look up the reservation", "")
		return
	}

	session, err := h.Controller.SelectReservation(c.Request.Context(), middleware.SessionID(c), *res)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Reservation is not usable for check-in", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmIdentityHandler handles POST /checkin/verify/confirm.
func (h *CheckInHandler) ConfirmIdentityHandler(c *gin.Context) {
	session, err := h.Controller.ConfirmIdentity(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Cannot confirm identity at this step", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// DenyIdentityHandler handles POST /checkin/verify/deny. The guest says the
// shown booking is not theirs, so the wizard returns to identification.
func (h *CheckInHandler) DenyIdentityHandler(c *gin.Context) {
	session, err := h.Controller.DenyIdentity(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Cannot go back at this step", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateGuestDetailsHandler handles PATCH /checkin/details.
func (h *CheckInHandler) UpdateGuestDetailsHandler(c *gin.Context) {
	var patch models.GuestDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid guest details", err.Error())
		return
	}

	session := h.Store.UpdateGuestDetails(c.Request.Context(), middleware.SessionID(c), patch)
	c.JSON(http.StatusOK, session)
}

// UploadPassportHandler handles POST /checkin/passport. The uploaded image
// URL is stored on the guest details.
func (h *CheckInHandler) UploadPassportHandler(c *gin.Context) {
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Passport upload is not available right now", "")
		return
	}
	fileHeader, err := c.FormFile("passport")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing passport image", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read passport image", err.Error())
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadImage(c.Request.Context(), file, passportFolder)
	if err != nil {
		h.Logger.Error("Passport upload failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Could not store the passport image", "")
		return
	}

	session := h.Store.UpdateGuestDetails(c.Request.Context(), middleware.SessionID(c), models.GuestDetailsPatch{
		PassportImage: &url,
	})
	c.JSON(http.StatusOK, session)
}

// ConfirmRegistrationHandler handles POST /checkin/register/confirm.
func (h *CheckInHandler) ConfirmRegistrationHandler(c *gin.Context) {
	session, err := h.Controller.ConfirmRegistration(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Cannot complete registration at this step", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// PaymentIntentHandler handles POST /checkin/payment/intent and returns the
// client secret used to collect the accommodation tax.
func (h *CheckInHandler) PaymentIntentHandler(c *gin.Context) {
	session := h.Store.Get(c.Request.Context(), middleware.SessionID(c))
	if session.Booking == nil {
		utils.JSONError(c, http.StatusConflict, "No reservation attached to this session", "")
		return
	}

	clientSecret, err := h.Payments.CreateIntent(c.Request.Context(), *session.Booking)
	if err != nil {
		if errors.Is(err, payment.ErrNothingToCharge) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "This reservation has nothing to charge", "")
			return
		}
		h.Logger.Error("Failed to create payment intent",
			zap.Int("reservationID", session.Booking.ID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Could not start the payment", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_secret": clientSecret})
}

// ConfirmPaymentHandler handles POST /checkin/payment/confirm. The guest
// finished the card flow; the processor status decides whether verification
// polling starts.
func (h *CheckInHandler) ConfirmPaymentHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	session, err := h.Controller.ConfirmOnlinePayment(c.Request.Context(), middleware.SessionID(c), input.Status)
	if err != nil {
		if errors.Is(err, checkin.ErrPaymentNotSucceeded) {
			c.JSON(http.StatusUnprocessableEntity, session)
			return
		}
		utils.JSONError(c, http.StatusConflict, "Cannot confirm payment at this step", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// PayAtFrontDeskHandler handles POST /checkin/payment/desk. The guest defers
// payment to the front desk and completes check-in immediately.
func (h *CheckInHandler) PayAtFrontDeskHandler(c *gin.Context) {
	session, err := h.Controller.PayAtFrontDesk(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Cannot choose front desk payment at this step", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// CheckoutHandler handles POST /checkin/checkout and resets the session.
func (h *CheckInHandler) CheckoutHandler(c *gin.Context) {
	session := h.Controller.Checkout(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, session)
}

// AccessInfoHandler handles GET /stay/access. Door and WiFi details are only
// revealed after check-in completes.
func (h *CheckInHandler) AccessInfoHandler(c *gin.Context) {
	cfg := config.AppConfig
	c.JSON(http.StatusOK, gin.H{
		"property_name": cfg.PropertyName,
		"door_code":     cfg.DoorCode,
		"wifi_ssid":     cfg.WifiSSID,
		"wifi_password": cfg.WifiPassword,
		"check_in":      cfg.CheckInTime,
		"check_out":     cfg.CheckOutTime,
	})
}
