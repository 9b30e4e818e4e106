package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "bookline/database/repository/booking"
	"bookline/models"

	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func (s *DefaultBookingService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.L()
	}
	return s.Logger
}

// CreateBooking opens a negotiation: the customer authors the initial offer and
// the ball goes to the provider's court.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, req CreateBookingRequest) (*models.Booking, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "customerId", Message: "required"}
	}

	providerID := req.ProviderID
	if providerID == "" {
		if uid, ok := req.Provider["uid"].(string); ok {
			providerID = uid
		}
	}
	if providerID == "" {
		return nil, &ValidationError{Field: "providerId", Message: "required"}
	}
	if err := validateOffer(req.Date, req.Time); err != nil {
		return nil, err
	}

	offer := models.Offer{
		Date:   req.Date,
		Time:   req.Time,
		ByRole: models.RoleCustomer,
		ByID:   customerID,
		At:     time.Now().UTC(),
	}
	booking := &models.Booking{
		CustomerID:   customerID,
		ProviderID:   providerID,
		Job:          req.Job,
		Provider:     req.Provider,
		Price:        req.Price,
		Notes:        req.Notes,
		Status:       models.BookingPending,
		WaitingOn:    models.RoleProvider,
		CurrentOffer: offer,
		Offers:       []models.Offer{offer},
	}

	created, err := s.Repo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.log().Info("booking created",
		zap.String("bookingId", created.ID),
		zap.String("customerId", customerID),
		zap.String("providerId", providerID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	return created, nil
}

// GetBooking returns a booking to one of its parties.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	booking, _, err := s.loadForCaller(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListBookings returns the caller's bookings for the given role, newest first.
func (s *DefaultBookingService) ListBookings(ctx context.Context, callerID string, role models.Role) ([]models.Booking, error) {
	if callerID == "" {
		return nil, &AuthorizationError{}
	}
	switch role {
	case models.RoleCustomer:
		return s.Repo.GetByCustomer(ctx, callerID)
	case models.RoleProvider:
		return s.Repo.GetByProvider(ctx, callerID)
	}
	return nil, &ValidationError{Field: "role", Message: "must be customer or provider"}
}

// AcceptBooking locks in the current offer. Only the party being waited on may
// accept, and only while the negotiation is still pending.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	booking, role, err := s.loadForCaller(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(booking, role); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := models.BookingAccepted
	accepted := booking.CurrentOffer
	update := models.BookingUpdate{
		Status:         &status,
		ClearWaitingOn: true,
		AcceptedOffer:  &accepted,
		AcceptedAt:     &now,
	}
	if err := s.Repo.Update(ctx, booking.ID, update); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.WaitingOn = ""
	booking.AcceptedOffer = &accepted
	booking.AcceptedAt = &now
	booking.UpdatedAt = now

	s.log().Info("booking accepted",
		zap.String("bookingId", booking.ID),
		zap.String("by", callerID),
		zap.String("role", string(role)),
	)
	return booking, nil
}

// DeclineBooking ends the negotiation with a refusal of the current offer.
func (s *DefaultBookingService) DeclineBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	booking, role, err := s.loadForCaller(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(booking, role); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := models.BookingDeclined
	update := models.BookingUpdate{
		Status:         &status,
		ClearWaitingOn: true,
		DeclinedBy:     callerID,
		DeclinedRole:   role,
		DeclinedAt:     &now,
	}
	if err := s.Repo.Update(ctx, booking.ID, update); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.WaitingOn = ""
	booking.DeclinedBy = callerID
	booking.DeclinedRole = role
	booking.DeclinedAt = &now
	booking.UpdatedAt = now

	s.log().Info("booking declined",
		zap.String("bookingId", booking.ID),
		zap.String("by", callerID),
		zap.String("role", string(role)),
	)
	return booking, nil
}

// CancelBooking withdraws from the negotiation. Either party may cancel at any
// point regardless of whose turn it is, except once the booking is accepted.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, callerID string) (*models.Booking, error) {
	booking, role, err := s.loadForCaller(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingAccepted {
		return nil, &InvalidStateError{
			Status:  booking.Status,
			Message: "cannot cancel an accepted booking",
		}
	}

	now := time.Now().UTC()
	status := models.BookingCancelled
	update := models.BookingUpdate{
		Status:         &status,
		ClearWaitingOn: true,
		CancelledBy:    callerID,
		CancelledRole:  role,
		CancelledAt:    &now,
	}
	if err := s.Repo.Update(ctx, booking.ID, update); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.WaitingOn = ""
	booking.CancelledBy = callerID
	booking.CancelledRole = role
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	s.log().Info("booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("by", callerID),
		zap.String("role", string(role)),
	)
	return booking, nil
}

// ProposeReschedule counters the current offer with a new date/time and flips
// the turn to the other party.
func (s *DefaultBookingService) ProposeReschedule(ctx context.Context, bookingID, callerID, date, timeOfDay string) (*models.Booking, error) {
	if err := validateOffer(date, timeOfDay); err != nil {
		return nil, err
	}

	booking, role, err := s.loadForCaller(ctx, bookingID, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(booking, role); err != nil {
		return nil, err
	}

	offer := models.Offer{
		Date:   date,
		Time:   timeOfDay,
		ByRole: role,
		ByID:   callerID,
		At:     time.Now().UTC(),
	}
	status := models.BookingPending
	waitingOn := role.Other()
	update := models.BookingUpdate{
		Status:       &status,
		WaitingOn:    &waitingOn,
		CurrentOffer: &offer,
		AppendOffer:  &offer,
	}
	if err := s.Repo.Update(ctx, booking.ID, update); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.WaitingOn = waitingOn
	booking.CurrentOffer = offer
	booking.Offers = append(booking.Offers, offer)
	booking.UpdatedAt = offer.At

	s.log().Info("booking rescheduled",
		zap.String("bookingId", booking.ID),
		zap.String("by", callerID),
		zap.String("role", string(role)),
		zap.String("date", date),
		zap.String("time", timeOfDay),
	)
	return booking, nil
}

// loadForCaller fetches the booking and resolves the caller's role on it.
func (s *DefaultBookingService) loadForCaller(ctx context.Context, bookingID, callerID string) (*models.Booking, models.Role, error) {
	if bookingID == "" {
		return nil, "", &ValidationError{Field: "bookingId", Message: "required"}
	}
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, "", &NotFoundError{BookingID: bookingID}
	}
	if err != nil {
		return nil, "", err
	}
	role, ok := booking.RoleOf(callerID)
	if !ok {
		return nil, "", &AuthorizationError{BookingID: bookingID}
	}
	return booking, role, nil
}

// requireTurn rejects transitions on terminal bookings, and transitions by the
// party whose own offer is still awaiting a response. Checked strictly before
// any write, so a rejected call leaves the record untouched.
func requireTurn(booking *models.Booking, role models.Role) error {
	if booking.Status.IsTerminal() {
		return &InvalidStateError{Status: booking.Status}
	}
	if booking.WaitingOn != "" && booking.WaitingOn != role {
		return &TurnError{WaitingOn: booking.WaitingOn}
	}
	return nil
}

func validateOffer(date, timeOfDay string) error {
	if date == "" {
		return &ValidationError{Field: "date", Message: "required"}
	}
	if timeOfDay == "" {
		return &ValidationError{Field: "time", Message: "required"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return &ValidationError{Field: "time", Message: "must be HH:MM"}
	}
	return nil
}
