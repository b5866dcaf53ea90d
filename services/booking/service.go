package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "mentora/database/repository/booking"
	planRepo "mentora/database/repository/plan"
	slotRepo "mentora/database/repository/slot"
	"mentora/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reserve claims the slot for the client, opens a gateway order and
// persists a pending booking. Plan price, duration and the slot interval
// are captured here; the booking never re-reads them. If the slot claim
// fails no booking and no order side effects are observable.
func (s *DefaultBookingService) Reserve(ctx context.Context, clientID, slotID string) (*models.BookingReceipt, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, notFoundErr("slot not found")
		}
		return nil, err
	}
	if slot.Occupied {
		return nil, conflictErr("slot is already booked")
	}

	plan, err := s.Plans.GetByID(ctx, slot.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrNotFound) {
			return nil, notFoundErr("plan not found")
		}
		return nil, err
	}
	if !plan.Active {
		return nil, conflictErr("plan is no longer bookable")
	}

	bookingID := uuid.New().String()

	// The order is opened before the transactional claim so no slot is
	// held across the gateway round trip; an order whose claim loses the
	// race is simply never paid and lapses at the gateway.
	orderRef, err := s.Gateway.CreateOrder(ctx, plan.Amount, s.Currency, bookingID, map[string]interface{}{
		"slotId":   slot.ID,
		"mentorId": slot.MentorID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open payment order: %w", err)
	}

	booking := &models.Booking{
		ID:            bookingID,
		ClientID:      clientID,
		MentorID:      slot.MentorID,
		PlanID:        plan.ID,
		SlotID:        slot.ID,
		Amount:        plan.Amount,
		Currency:      s.Currency,
		OrderRef:      orderRef,
		Status:        models.BookingStatusPending,
		SessionStatus: models.SessionStatusScheduled,
		SessionStart:  slot.Start,
		SessionEnd:    slot.End,
	}

	if err := s.Bookings.CreateWithSlot(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, conflictErr("slot is already booked")
		}
		return nil, err
	}

	s.invalidateSlotCache(ctx, slot.MentorID)
	s.Logger.Info("booking reserved",
		zap.String("bookingId", booking.ID),
		zap.String("slotId", slot.ID),
		zap.String("orderRef", orderRef),
	)

	return &models.BookingReceipt{
		BookingID: booking.ID,
		OrderID:   orderRef,
		Amount:    booking.Amount,
		Currency:  booking.Currency,
	}, nil
}

// Cancel moves a booking to cancelled and frees its slot. A non-admin
// actor may only abandon their own pending checkout; an admin may cancel
// a pending or confirmed booking. Cancelling an already-cancelled booking
// is a no-op success.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string, actor models.Actor, reason string) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status == models.BookingStatusCancelled {
		return nil
	}

	if actor.IsAdmin() {
		if b.Status == models.BookingStatusExpired {
			return invalidTransitionErr("an expired booking cannot be cancelled")
		}
	} else {
		if actor.ID != b.ClientID {
			return forbiddenErr("booking belongs to another client")
		}
		if b.Status != models.BookingStatusPending {
			return invalidTransitionErr("only a pending booking can be cancelled")
		}
	}

	ok, err := s.Bookings.TransitionStatus(ctx, b.ID, b.Status, models.BookingStatusCancelled, reason)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race; re-read to distinguish benign duplicates.
		cur, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if cur.Status == models.BookingStatusCancelled {
			return nil
		}
		return invalidTransitionErr("booking is " + cur.Status)
	}

	if err := s.Slots.Release(ctx, b.SlotID); err != nil {
		s.Logger.Error("failed to release slot after cancellation", zap.String("slotId", b.SlotID), zap.Error(err))
	}
	s.invalidateSlotCache(ctx, b.MentorID)

	if b.Status == models.BookingStatusConfirmed {
		s.notify(ctx, b.ClientID, models.RoleClient, "Session cancelled",
			fmt.Sprintf("Your session on %s was cancelled.", b.SessionStart.Format(time.RFC1123)), nil)
		s.notify(ctx, b.MentorID, models.RoleMentor, "Session cancelled",
			fmt.Sprintf("The session on %s was cancelled.", b.SessionStart.Format(time.RFC1123)), nil)
	}
	return nil
}

// Expire is the maintenance twin of Cancel for stale unpaid reservations:
// same effect, terminal status expired. Only a pending booking can expire.
func (s *DefaultBookingService) Expire(ctx context.Context, bookingID string) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status == models.BookingStatusExpired {
		return nil
	}
	if b.Status != models.BookingStatusPending {
		return invalidTransitionErr("only a pending booking can expire")
	}

	ok, err := s.Bookings.TransitionStatus(ctx, b.ID, models.BookingStatusPending, models.BookingStatusExpired, "stale unpaid reservation")
	if err != nil {
		return err
	}
	if !ok {
		cur, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if cur.Status == models.BookingStatusExpired {
			return nil
		}
		return invalidTransitionErr("booking is " + cur.Status)
	}

	if err := s.Slots.Release(ctx, b.SlotID); err != nil {
		s.Logger.Error("failed to release slot after expiry", zap.String("slotId", b.SlotID), zap.Error(err))
	}
	s.invalidateSlotCache(ctx, b.MentorID)
	return nil
}

// PurgePending is the administrative removal of a still-pending booking.
// Anything past pending must go through cancel instead.
func (s *DefaultBookingService) PurgePending(ctx context.Context, bookingID string, actor models.Actor) error {
	if !actor.IsAdmin() {
		return forbiddenErr("only an admin may purge a booking")
	}
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	deleted, err := s.Bookings.DeletePending(ctx, bookingID)
	if err != nil {
		return err
	}
	if !deleted {
		return invalidTransitionErr("only a pending booking can be purged")
	}

	if err := s.Slots.Release(ctx, b.SlotID); err != nil {
		s.Logger.Error("failed to release slot after purge", zap.String("slotId", b.SlotID), zap.Error(err))
	}
	s.invalidateSlotCache(ctx, b.MentorID)
	return nil
}

// SetJoinLink stores the meeting link on a confirmed booking.
func (s *DefaultBookingService) SetJoinLink(ctx context.Context, bookingID, link string, actor models.Actor) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.ID != b.MentorID {
		return forbiddenErr("only the mentor or an admin may set the joining link")
	}
	if b.Status != models.BookingStatusConfirmed {
		return invalidTransitionErr("joining link requires a confirmed booking")
	}
	return s.Bookings.SetJoinLink(ctx, bookingID, link)
}

// SetSessionStatus flips the secondary session axis; it never touches the
// payment lifecycle status.
func (s *DefaultBookingService) SetSessionStatus(ctx context.Context, bookingID, sessionStatus string, actor models.Actor) error {
	if !actor.IsAdmin() {
		return forbiddenErr("only an admin may change the session status")
	}
	if sessionStatus != models.SessionStatusCompleted && sessionStatus != models.SessionStatusCancelled {
		return invalidTransitionErr("unknown session status " + sessionStatus)
	}
	if _, err := s.getBooking(ctx, bookingID); err != nil {
		return err
	}
	return s.Bookings.SetSessionStatus(ctx, bookingID, sessionStatus)
}

// GetByID returns the booking to one of its parties or an admin.
func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != b.ClientID && actor.ID != b.MentorID {
		return nil, forbiddenErr("booking belongs to another client")
	}
	return b, nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFoundErr("booking not found")
		}
		return nil, err
	}
	return b, nil
}

// notify dispatches a best-effort push; failures are logged, never
// propagated into the state transition that triggered them.
func (s *DefaultBookingService) notify(ctx context.Context, recipientID, role, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendPush(ctx, recipientID, role, title, body, data); err != nil {
		s.Logger.Warn("notification dispatch failed",
			zap.String("recipient", recipientID),
			zap.Error(err),
		)
	}
}

func (s *DefaultBookingService) invalidateSlotCache(ctx context.Context, mentorID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, "slots:available:"+mentorID).Err(); err != nil {
		s.Logger.Debug("slot cache invalidation failed", zap.String("mentorId", mentorID), zap.Error(err))
	}
}
