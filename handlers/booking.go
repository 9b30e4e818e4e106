package handlers

import (
	"errors"
	"net/http"

	"bookline/middleware"
	"bookline/models"
	"bookline/services/booking"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the negotiation engine over HTTP. The caller id is
// always taken from the authenticated request, never from the payload.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings; the caller becomes the customer.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings handles GET /api/bookings?role=customer|provider.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	role := models.Role(c.DefaultQuery("role", string(models.RoleCustomer)))
	bookings, err := h.Service.ListBookings(c.Request.Context(), middleware.CallerID(c), role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AcceptBooking handles POST /api/bookings/:id/accept.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	b, err := h.Service.AcceptBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// DeclineBooking handles POST /api/bookings/:id/decline.
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	b, err := h.Service.DeclineBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ProposeReschedule handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) ProposeReschedule(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.ProposeReschedule(c.Request.Context(), c.Param("id"), middleware.CallerID(c), req.Date, req.Time)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// respondError maps engine error kinds to HTTP statuses. Store failures fall
// through as 500s without being swallowed.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		notFoundErr   *booking.NotFoundError
		authErr       *booking.AuthorizationError
		stateErr      *booking.InvalidStateError
		turnErr       *booking.TurnError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	case errors.As(err, &authErr):
		utils.JSONError(c, http.StatusForbidden, "not a party to this booking", err.Error())
	case errors.As(err, &stateErr):
		utils.JSONError(c, http.StatusConflict, "transition not allowed", err.Error())
	case errors.As(err, &turnErr):
		utils.JSONError(c, http.StatusConflict, "not your turn", err.Error())
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "the operation could not be completed")
	}
}
