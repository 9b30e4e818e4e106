package bookingRepo

import (
	"context"
	"fmt"

	"bookline/models"
	"bookline/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// changeEvent is the raw change-stream document shape we decode.
type changeEvent struct {
	OperationType string          `bson:"operationType"`
	FullDocument  *models.Booking `bson:"fullDocument"`
}

// Watch opens a change stream over the bookings collection and delivers every
// insert and update as a BookingChange carrying the full current document.
// The channel closes when the context is cancelled or the stream dies.
func (r *mongoBookingRepo) Watch(ctx context.Context) (<-chan models.BookingChange, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookings change stream: %w", err)
	}

	changes := make(chan models.BookingChange)
	go func() {
		logger := utils.GetLogger()
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var evt changeEvent
			if err := stream.Decode(&evt); err != nil {
				logger.Warn("failed to decode booking change event", zap.Error(err))
				continue
			}
			// Deletes and invalidates carry no full document; skip them.
			if evt.FullDocument == nil {
				continue
			}
			select {
			case changes <- models.BookingChange{Operation: evt.OperationType, Booking: *evt.FullDocument}:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logger.Error("bookings change stream closed unexpectedly", zap.Error(err))
		}
	}()

	return changes, nil
}
