package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "mentora/database/repository/booking"
	slotRepo "mentora/database/repository/slot"
	"mentora/models"

	"go.uber.org/zap"
)

// Reschedule relocates a confirmed booking to another of the same
// mentor's slots. Release of the old slot, claim of the new one and the
// booking repoint happen in one transaction; if the target is taken
// nothing moves.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID, newSlotID string, actor models.Actor) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !(actor.Role == models.RoleMentor && actor.ID == b.MentorID) {
		return forbiddenErr("only the booking's mentor or an admin may reschedule")
	}
	if b.Status != models.BookingStatusConfirmed {
		return invalidTransitionErr("only a confirmed booking can be rescheduled")
	}
	if newSlotID == b.SlotID {
		return nil
	}

	newSlot, err := s.Slots.GetByID(ctx, newSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return notFoundErr("target slot not found")
		}
		return err
	}
	if newSlot.MentorID != b.MentorID {
		return forbiddenErr("target slot belongs to a different mentor")
	}
	if newSlot.Occupied {
		return conflictErr("target slot is already booked")
	}

	err = s.Bookings.Reschedule(ctx, b.ID, b.SlotID, newSlot.ID, b.ClientID, newSlot.Start, newSlot.End)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return conflictErr("target slot is already booked")
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return notFoundErr("booking not found")
		}
		return err
	}

	s.invalidateSlotCache(ctx, b.MentorID)
	s.Logger.Info("booking rescheduled",
		zap.String("bookingId", b.ID),
		zap.String("fromSlot", b.SlotID),
		zap.String("toSlot", newSlot.ID),
		zap.String("actorRole", actor.Role),
	)

	// Same data effect either way; only the phrasing differs by initiator.
	when := newSlot.Start.Format(time.RFC1123)
	if actor.IsAdmin() {
		s.notify(ctx, b.ClientID, models.RoleClient, "Session rescheduled",
			fmt.Sprintf("Our team moved your session to %s.", when),
			map[string]string{"bookingId": b.ID})
		s.notify(ctx, b.MentorID, models.RoleMentor, "Session rescheduled",
			fmt.Sprintf("An admin moved your session to %s.", when),
			map[string]string{"bookingId": b.ID})
	} else {
		s.notify(ctx, b.ClientID, models.RoleClient, "Session rescheduled",
			fmt.Sprintf("Your mentor moved your session to %s.", when),
			map[string]string{"bookingId": b.ID})
	}
	return nil
}
