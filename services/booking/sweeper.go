package booking

import (
	"context"
	"time"

	"mentora/models"

	"go.uber.org/zap"
)

// ExpireStale expires pending bookings created more than ttl ago and
// never confirmed, releasing their slots. Each expiry is a conditional
// swap, so a payment confirmation racing the sweep wins cleanly and the
// sweep skips that booking.
func (s *DefaultBookingService) ExpireStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	stale, err := s.Bookings.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range stale {
		ok, err := s.Bookings.TransitionStatus(ctx, b.ID, models.BookingStatusPending, models.BookingStatusExpired, "checkout abandoned")
		if err != nil {
			s.Logger.Error("stale booking expiry failed", zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if err := s.Slots.Release(ctx, b.SlotID); err != nil {
			s.Logger.Error("failed to release slot after stale expiry", zap.String("slotId", b.SlotID), zap.Error(err))
		}
		s.invalidateSlotCache(ctx, b.MentorID)
		expired++
	}

	if expired > 0 {
		s.Logger.Info("expired stale pending bookings", zap.Int("count", expired))
	}
	return expired, nil
}
