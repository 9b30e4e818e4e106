package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookline/models"
	"bookline/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(svc booking.BookingService, callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(svc, zap.NewNop())

	api := r.Group("/api/bookings")
	api.Use(func(c *gin.Context) {
		c.Set("callerID", callerID)
		c.Next()
	})
	api.POST("", h.CreateBooking)
	api.GET("/:id", h.GetBooking)
	api.POST("/:id/accept", h.AcceptBooking)
	api.POST("/:id/cancel", h.CancelBooking)
	api.POST("/:id/reschedule", h.ProposeReschedule)
	return r
}

func TestCreateBookingHandler_Created(t *testing.T) {
	svc := &fakeService{
		booking: &models.Booking{ID: "bk-1", Status: models.BookingPending, WaitingOn: models.RoleProvider},
	}
	router := newTestRouter(svc, "cust-1")

	body := `{"providerId":"prov-1","date":"2025-11-01","time":"14:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cust-1", svc.lastCaller)

	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bk-1", resp.Booking.ID)
}

func TestBookingHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &booking.ValidationError{Field: "date", Message: "required"}, http.StatusBadRequest},
		{"not found", &booking.NotFoundError{BookingID: "bk-1"}, http.StatusNotFound},
		{"not a party", &booking.AuthorizationError{BookingID: "bk-1"}, http.StatusForbidden},
		{"terminal", &booking.InvalidStateError{Status: models.BookingCancelled}, http.StatusConflict},
		{"out of turn", &booking.TurnError{WaitingOn: models.RoleProvider}, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeService{err: tc.err}, "cust-1")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings/bk-1/accept", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestProposeRescheduleHandler_BindsBody(t *testing.T) {
	svc := &fakeService{
		booking: &models.Booking{ID: "bk-1", Status: models.BookingPending, WaitingOn: models.RoleCustomer},
	}
	router := newTestRouter(svc, "prov-1")

	body := `{"date":"2025-11-02","time":"09:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/bk-1/reschedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-11-02", svc.lastDate)
	assert.Equal(t, "09:00", svc.lastTime)
}

type fakeService struct {
	booking    *models.Booking
	err        error
	lastCaller string
	lastDate   string
	lastTime   string
}

func (f *fakeService) CreateBooking(ctx context.Context, customerID string, req booking.CreateBookingRequest) (*models.Booking, error) {
	f.lastCaller = customerID
	return f.booking, f.err
}

func (f *fakeService) GetBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	f.lastCaller = callerID
	return f.booking, f.err
}

func (f *fakeService) ListBookings(ctx context.Context, callerID string, role models.Role) ([]models.Booking, error) {
	f.lastCaller = callerID
	if f.err != nil {
		return nil, f.err
	}
	return []models.Booking{*f.booking}, nil
}

func (f *fakeService) AcceptBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	f.lastCaller = callerID
	return f.booking, f.err
}

func (f *fakeService) DeclineBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	f.lastCaller = callerID
	return f.booking, f.err
}

func (f *fakeService) CancelBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	f.lastCaller = callerID
	return f.booking, f.err
}

func (f *fakeService) ProposeReschedule(ctx context.Context, bookingID, callerID, date, timeOfDay string) (*models.Booking, error) {
	f.lastCaller = callerID
	f.lastDate = date
	f.lastTime = timeOfDay
	return f.booking, f.err
}
