package notification

import (
	"context"
	"fmt"

	bookingRepo "bookline/database/repository/booking"
	"bookline/models"

	"go.uber.org/zap"
)

// Watcher tails the bookings change stream and translates state transitions
// into pushes to the counterparty. It sits entirely outside the engine's write
// path: delivery failures are logged, never surfaced to the transacting user.
type Watcher struct {
	Repo     bookingRepo.BookingRepository
	Notifier NotificationService
	Logger   *zap.Logger
}

// Run blocks consuming booking changes until the context is cancelled or the
// stream closes.
func (w *Watcher) Run(ctx context.Context) error {
	changes, err := w.Repo.Watch(ctx)
	if err != nil {
		return err
	}
	w.Logger.Info("booking notification watcher started")

	for change := range changes {
		recipient, title, body := describe(change)
		if recipient == "" {
			continue
		}
		data := map[string]string{
			"type":      "booking",
			"bookingId": change.Booking.ID,
			"status":    string(change.Booking.Status),
		}
		if err := w.Notifier.SendPush(ctx, recipient, title, body, data); err != nil {
			w.Logger.Warn("failed to deliver booking notification",
				zap.String("bookingId", change.Booking.ID),
				zap.String("recipient", recipient),
				zap.Error(err),
			)
		}
	}
	return ctx.Err()
}

// describe maps a booking change to the party that should hear about it.
// Returns an empty recipient for changes that warrant no notification.
func describe(change models.BookingChange) (recipient, title, body string) {
	b := change.Booking

	if change.Operation == "insert" {
		return b.ProviderID, "New booking request",
			fmt.Sprintf("You have a new booking request for %s at %s.", b.CurrentOffer.Date, b.CurrentOffer.Time)
	}
	if change.Operation != "update" {
		return "", "", ""
	}

	switch b.Status {
	case models.BookingAccepted:
		// The author of the standing offer is the one who was waiting to hear back.
		return partyID(b, b.CurrentOffer.ByRole), "Booking confirmed",
			fmt.Sprintf("Your booking for %s at %s was accepted.", b.CurrentOffer.Date, b.CurrentOffer.Time)
	case models.BookingDeclined:
		return partyID(b, b.DeclinedRole.Other()), "Booking declined",
			"Your booking request was declined."
	case models.BookingCancelled:
		return partyID(b, b.CancelledRole.Other()), "Booking cancelled",
			"The booking was cancelled."
	case models.BookingPending:
		// A reschedule put the ball in the other party's court.
		return partyID(b, b.WaitingOn), "New time proposed",
			fmt.Sprintf("A new time was proposed: %s at %s.", b.CurrentOffer.Date, b.CurrentOffer.Time)
	}
	return "", "", ""
}

func partyID(b models.Booking, role models.Role) string {
	switch role {
	case models.RoleCustomer:
		return b.CustomerID
	case models.RoleProvider:
		return b.ProviderID
	}
	return ""
}
