package booking

import (
	"context"
	"time"

	bookingRepo "mentora/database/repository/booking"
	planRepo "mentora/database/repository/plan"
	slotRepo "mentora/database/repository/slot"
	"mentora/models"
	"mentora/services/notification"
	"mentora/services/payment"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingService governs a booking from slot reservation through its
// terminal state, including payment reconciliation and rescheduling.
type BookingService interface {
	Reserve(ctx context.Context, clientID, slotID string) (*models.BookingReceipt, error)
	ConfirmCallback(ctx context.Context, orderRef, paymentRef, signature string) error
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	Cancel(ctx context.Context, bookingID string, actor models.Actor, reason string) error
	Expire(ctx context.Context, bookingID string) error
	Reschedule(ctx context.Context, bookingID, newSlotID string, actor models.Actor) error
	PurgePending(ctx context.Context, bookingID string, actor models.Actor) error
	SetJoinLink(ctx context.Context, bookingID, link string, actor models.Actor) error
	SetSessionStatus(ctx context.Context, bookingID, sessionStatus string, actor models.Actor) error
	GetByID(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Slots    slotRepo.SlotRepository
	Bookings bookingRepo.BookingRepository
	Plans    planRepo.PlanRepository
	Gateway  payment.Gateway
	Verifier payment.Verifier
	Notifier notification.NotificationService
	Cache    *redis.Client // optional; available-slot listing invalidation
	Currency string
	Logger   *zap.Logger
}
