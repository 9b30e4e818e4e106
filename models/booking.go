package models

import "time"

// BookingStatus is the lifecycle state of a booking negotiation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingAccepted  BookingStatus = "Accepted"
	BookingDeclined  BookingStatus = "Declined"
	BookingCancelled BookingStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingAccepted, BookingDeclined, BookingCancelled:
		return true
	}
	return false
}

// Role identifies which side of the negotiation an actor is on.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Other returns the opposite negotiating role.
func (r Role) Other() Role {
	if r == RoleCustomer {
		return RoleProvider
	}
	return RoleCustomer
}

// Offer is a proposed date/time attributed to the role that proposed it.
type Offer struct {
	Date   string    `bson:"date" json:"date"`     // "YYYY-MM-DD"
	Time   string    `bson:"time" json:"time"`     // "HH:MM", 24-hour
	ByRole Role      `bson:"byRole" json:"byRole"` // who authored the offer
	ByID   string    `bson:"byId" json:"byId"`
	At     time.Time `bson:"at" json:"at"`
}

// Booking is the negotiated reservation record between a customer and a provider.
// The job payload is a denormalized snapshot of the service being booked and is
// never interpreted by the engine.
type Booking struct {
	ID         string         `bson:"id" json:"id"`
	CustomerID string         `bson:"customerId" json:"customerId"`
	ProviderID string         `bson:"providerId" json:"providerId"`
	Job        map[string]any `bson:"job,omitempty" json:"job,omitempty"`
	Provider   map[string]any `bson:"provider,omitempty" json:"provider,omitempty"`
	Price      float64        `bson:"price,omitempty" json:"price,omitempty"`
	Notes      string         `bson:"notes,omitempty" json:"notes,omitempty"`

	Status BookingStatus `bson:"status" json:"status"`
	// WaitingOn is the role expected to respond next; empty only in terminal states.
	WaitingOn Role `bson:"waitingOn,omitempty" json:"waitingOn,omitempty"`

	CurrentOffer Offer   `bson:"currentOffer" json:"currentOffer"`
	Offers       []Offer `bson:"offers" json:"offers"`

	AcceptedOffer *Offer `bson:"acceptedOffer,omitempty" json:"acceptedOffer,omitempty"`

	CancelledBy   string `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledRole Role   `bson:"cancelledRole,omitempty" json:"cancelledRole,omitempty"`
	DeclinedBy    string `bson:"declinedBy,omitempty" json:"declinedBy,omitempty"`
	DeclinedRole  Role   `bson:"declinedRole,omitempty" json:"declinedRole,omitempty"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	AcceptedAt  *time.Time `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	DeclinedAt  *time.Time `bson:"declinedAt,omitempty" json:"declinedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// RoleOf resolves a caller's role on this booking. The second return value is
// false when the caller matches neither party.
func (b *Booking) RoleOf(callerID string) (Role, bool) {
	switch callerID {
	case "":
		return "", false
	case b.CustomerID:
		return RoleCustomer, true
	case b.ProviderID:
		return RoleProvider, true
	}
	return "", false
}

// BookingUpdate describes a merge-update to a stored booking. Only non-nil
// fields are written; AppendOffer is appended to the offers history in the
// same write that sets the other fields.
type BookingUpdate struct {
	Status         *BookingStatus
	WaitingOn      *Role
	ClearWaitingOn bool
	CurrentOffer   *Offer
	AppendOffer    *Offer
	AcceptedOffer  *Offer
	CancelledBy    string
	CancelledRole  Role
	DeclinedBy     string
	DeclinedRole   Role
	AcceptedAt     *time.Time
	DeclinedAt     *time.Time
	CancelledAt    *time.Time
}

// BookingChange is one event from the live subscription over the bookings
// collection.
type BookingChange struct {
	// Operation is the store's change type, e.g. "insert" or "update".
	Operation string
	Booking   Booking
}
