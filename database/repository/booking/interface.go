package bookingRepo

import (
	"context"
	"errors"

	"bookline/database"
	"bookline/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a booking id does not resolve to a stored record.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines the data access required by the negotiation engine:
// create-with-generated-id, read-by-id, merge-update-by-id, equality-filter
// queries by party, and a live change subscription.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, update models.BookingUpdate) error
	GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	GetByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	Watch(ctx context.Context) (<-chan models.BookingChange, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
