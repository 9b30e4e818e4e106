package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookline/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking and returns it with its assigned id and timestamps.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking, nil
}

// GetByID returns a booking by its id, or ErrNotFound.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update applies a merge-update to the stored booking: supplied fields are set,
// the offers history is only ever appended to. Fields not named in the update
// are left untouched.
func (r *mongoBookingRepo) Update(ctx context.Context, id string, update models.BookingUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.WaitingOn != nil {
		set["waitingOn"] = *update.WaitingOn
	}
	if update.CurrentOffer != nil {
		set["currentOffer"] = *update.CurrentOffer
	}
	if update.AcceptedOffer != nil {
		set["acceptedOffer"] = *update.AcceptedOffer
	}
	if update.CancelledBy != "" {
		set["cancelledBy"] = update.CancelledBy
		set["cancelledRole"] = update.CancelledRole
	}
	if update.DeclinedBy != "" {
		set["declinedBy"] = update.DeclinedBy
		set["declinedRole"] = update.DeclinedRole
	}
	if update.AcceptedAt != nil {
		set["acceptedAt"] = *update.AcceptedAt
	}
	if update.DeclinedAt != nil {
		set["declinedAt"] = *update.DeclinedAt
	}
	if update.CancelledAt != nil {
		set["cancelledAt"] = *update.CancelledAt
	}

	doc := bson.M{"$set": set}
	if update.ClearWaitingOn {
		doc["$unset"] = bson.M{"waitingOn": ""}
	}
	if update.AppendOffer != nil {
		doc["$push"] = bson.M{"offers": *update.AppendOffer}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByCustomer fetches all bookings created by a customer, newest first.
func (r *mongoBookingRepo) GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

// GetByProvider fetches all bookings addressed to a provider, newest first.
func (r *mongoBookingRepo) GetByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
