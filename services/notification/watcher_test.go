package notification

import (
	"testing"

	"bookline/models"

	"github.com/stretchr/testify/assert"
)

func pendingBooking() models.Booking {
	return models.Booking{
		ID:         "bk-1",
		CustomerID: "cust-1",
		ProviderID: "prov-1",
		Status:     models.BookingPending,
		WaitingOn:  models.RoleProvider,
		CurrentOffer: models.Offer{
			Date:   "2025-11-01",
			Time:   "14:00",
			ByRole: models.RoleCustomer,
			ByID:   "cust-1",
		},
	}
}

func TestDescribe_InsertNotifiesProvider(t *testing.T) {
	recipient, title, _ := describe(models.BookingChange{Operation: "insert", Booking: pendingBooking()})
	assert.Equal(t, "prov-1", recipient)
	assert.Equal(t, "New booking request", title)
}

func TestDescribe_AcceptNotifiesOfferAuthor(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingAccepted
	b.WaitingOn = ""

	recipient, title, _ := describe(models.BookingChange{Operation: "update", Booking: b})
	assert.Equal(t, "cust-1", recipient)
	assert.Equal(t, "Booking confirmed", title)
}

func TestDescribe_DeclineNotifiesCounterparty(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingDeclined
	b.WaitingOn = ""
	b.DeclinedRole = models.RoleProvider

	recipient, title, _ := describe(models.BookingChange{Operation: "update", Booking: b})
	assert.Equal(t, "cust-1", recipient)
	assert.Equal(t, "Booking declined", title)
}

func TestDescribe_CancelNotifiesCounterparty(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingCancelled
	b.WaitingOn = ""
	b.CancelledRole = models.RoleCustomer

	recipient, _, _ := describe(models.BookingChange{Operation: "update", Booking: b})
	assert.Equal(t, "prov-1", recipient)
}

func TestDescribe_RescheduleNotifiesWaitingParty(t *testing.T) {
	b := pendingBooking()
	b.CurrentOffer.ByRole = models.RoleProvider
	b.CurrentOffer.ByID = "prov-1"
	b.WaitingOn = models.RoleCustomer

	recipient, title, _ := describe(models.BookingChange{Operation: "update", Booking: b})
	assert.Equal(t, "cust-1", recipient)
	assert.Equal(t, "New time proposed", title)
}

func TestDescribe_IgnoresDeletes(t *testing.T) {
	recipient, _, _ := describe(models.BookingChange{Operation: "delete", Booking: pendingBooking()})
	assert.Empty(t, recipient)
}
