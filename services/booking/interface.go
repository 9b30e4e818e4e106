package booking

import (
	"context"

	bookingRepo "bookline/database/repository/booking"
	"bookline/models"

	"go.uber.org/zap"
)

// CreateBookingRequest carries the customer's initial booking proposal. The
// provider may be referenced directly by id or through the uid of a
// denormalized provider snapshot.
type CreateBookingRequest struct {
	ProviderID string         `json:"providerId"`
	Provider   map[string]any `json:"provider,omitempty"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Job        map[string]any `json:"job,omitempty"`
	Price      float64        `json:"price,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// BookingService mediates every state transition on a booking, enforcing role
// membership, turn order, and terminality. The caller id always comes from the
// authenticated request, never from the payload.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	ListBookings(ctx context.Context, callerID string, role models.Role) ([]models.Booking, error)
	AcceptBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	DeclineBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error)
	ProposeReschedule(ctx context.Context, bookingID, callerID, date, timeOfDay string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}
