package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "mentora/database/repository/booking"
	"mentora/models"

	"go.uber.org/zap"
)

// Payment outcomes arrive through two independent, unordered channels:
// the client-side redirect callback and the gateway webhook. Both verify
// authenticity with their own secret, then funnel into the same
// compare-and-swap so duplicate or racing deliveries confirm exactly once.

// ConfirmCallback handles the synchronous confirmation relayed by the
// client after the gateway redirect.
func (s *DefaultBookingService) ConfirmCallback(ctx context.Context, orderRef, paymentRef, signature string) error {
	if !s.Verifier.VerifyCallback(orderRef, paymentRef, signature) {
		return signatureErr("callback signature verification failed")
	}
	return s.confirmByOrderRef(ctx, orderRef, paymentRef, 0)
}

// HandleWebhook handles the asynchronous gateway event. The signature
// covers the raw body under a secret distinct from the callback path.
func (s *DefaultBookingService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.Verifier.VerifyWebhook(body, signature) {
		return signatureErr("webhook signature verification failed")
	}

	var ev models.PaymentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}

	switch ev.Event {
	case models.PaymentEventCaptured:
		return s.confirmByOrderRef(ctx, ev.OrderID, ev.PaymentID, ev.Amount)
	case models.PaymentEventFailed:
		return s.failByOrderRef(ctx, ev.OrderID, ev.Reason)
	default:
		s.Logger.Debug("ignoring webhook event", zap.String("event", ev.Event))
		return nil
	}
}

// confirmByOrderRef is the single idempotent confirmation entry point.
// Exactly one caller wins the pending → confirmed swap and dispatches the
// notifications; every later delivery of the same outcome is a no-op
// success.
func (s *DefaultBookingService) confirmByOrderRef(ctx context.Context, orderRef, paymentRef string, amount int64) error {
	b, err := s.Bookings.ConfirmByOrderRef(ctx, orderRef, paymentRef)
	if err != nil {
		return err
	}
	if b == nil {
		existing, err := s.Bookings.GetByOrderRef(ctx, orderRef)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return notFoundErr("unknown payment order")
			}
			return err
		}
		if existing.Status == models.BookingStatusConfirmed {
			return nil
		}
		return invalidTransitionErr("booking is " + existing.Status)
	}

	if amount > 0 && amount != b.Amount {
		s.Logger.Warn("confirmed amount differs from booking amount",
			zap.String("orderRef", orderRef),
			zap.Int64("expected", b.Amount),
			zap.Int64("received", amount),
		)
	}

	s.Logger.Info("booking confirmed",
		zap.String("bookingId", b.ID),
		zap.String("orderRef", orderRef),
		zap.String("paymentRef", paymentRef),
	)

	when := b.SessionStart.Format(time.RFC1123)
	s.notify(ctx, b.ClientID, models.RoleClient, "Session confirmed",
		fmt.Sprintf("Your session on %s is confirmed.", when),
		map[string]string{"bookingId": b.ID})
	s.notify(ctx, b.MentorID, models.RoleMentor, "New session booked",
		fmt.Sprintf("A session on %s has been booked and paid.", when),
		map[string]string{"bookingId": b.ID})
	return nil
}

// failByOrderRef records a gateway-asserted payment failure: the pending
// booking is cancelled with the gateway's reason and its slot freed. A
// failure event for a booking that is no longer pending is acknowledged
// without effect, because the gateway redelivers events it thinks were
// lost.
func (s *DefaultBookingService) failByOrderRef(ctx context.Context, orderRef, reason string) error {
	if reason == "" {
		reason = "payment failed"
	}
	b, err := s.Bookings.FailPendingByOrderRef(ctx, orderRef, reason)
	if err != nil {
		return err
	}
	if b == nil {
		_, err := s.Bookings.GetByOrderRef(ctx, orderRef)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				return notFoundErr("unknown payment order")
			}
			return err
		}
		return nil
	}

	if err := s.Slots.Release(ctx, b.SlotID); err != nil {
		s.Logger.Error("failed to release slot after payment failure", zap.String("slotId", b.SlotID), zap.Error(err))
	}
	s.invalidateSlotCache(ctx, b.MentorID)

	s.Logger.Info("booking cancelled on payment failure",
		zap.String("bookingId", b.ID),
		zap.String("orderRef", orderRef),
		zap.String("reason", reason),
	)
	s.notify(ctx, b.ClientID, models.RoleClient, "Payment failed",
		"Your payment did not go through; the slot has been released.", nil)
	return nil
}
