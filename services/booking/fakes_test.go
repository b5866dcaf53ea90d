package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "mentora/database/repository/booking"
	planRepo "mentora/database/repository/plan"
	slotRepo "mentora/database/repository/slot"
	"mentora/models"
)

// In-memory repositories mirroring the conditional-update semantics of
// the Mongo implementations, so concurrency-sensitive paths behave the
// same under test.

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeSlotRepo(slots ...*models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*models.Slot)}
	for _, s := range slots {
		cp := *s
		r.slots[s.ID] = &cp
	}
	return r
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		cp := s
		r.slots[s.ID] = &cp
	}
	return nil
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) Reserve(ctx context.Context, slotID, holderID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	if s.Occupied {
		return nil, slotRepo.ErrSlotTaken
	}
	s.Occupied = true
	s.HolderID = holderID
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) Release(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotID]; ok {
		s.Occupied = false
		s.HolderID = ""
	}
	return nil
}

func (r *fakeSlotRepo) ListAvailable(ctx context.Context, mentorID string, from time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.MentorID == mentorID && !s.Occupied && s.Start.After(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.MentorID == mentorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) get(slotID string) models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.slots[slotID]
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	slots    *fakeSlotRepo
}

func newFakeBookingRepo(slots *fakeSlotRepo, bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking), slots: slots}
	for _, b := range bookings {
		cp := *b
		r.bookings[b.ID] = &cp
	}
	return r
}

func (r *fakeBookingRepo) CreateWithSlot(ctx context.Context, booking *models.Booking) error {
	if _, err := r.slots.Reserve(ctx, booking.SlotID, booking.ClientID); err != nil {
		return bookingRepo.ErrSlotTaken
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *booking
	cp.CreatedAt = time.Now()
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByOrderRef(ctx context.Context, orderRef string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.OrderRef == orderRef {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ConfirmByOrderRef(ctx context.Context, orderRef, paymentRef string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.OrderRef == orderRef && b.Status == models.BookingStatusPending {
			b.Status = models.BookingStatusConfirmed
			b.PaymentRef = paymentRef
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FailPendingByOrderRef(ctx context.Context, orderRef, reason string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.OrderRef == orderRef && b.Status == models.BookingStatusPending {
			b.Status = models.BookingStatusCancelled
			b.FailureReason = reason
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) TransitionStatus(ctx context.Context, bookingID, from, to, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if to == models.BookingStatusCancelled {
		b.CancelReason = reason
	}
	return true, nil
}

func (r *fakeBookingRepo) Reschedule(ctx context.Context, bookingID, oldSlotID, newSlotID, holderID string, newStart, newEnd time.Time) error {
	if _, err := r.slots.Reserve(ctx, newSlotID, holderID); err != nil {
		return bookingRepo.ErrSlotTaken
	}
	r.mu.Lock()
	b, ok := r.bookings[bookingID]
	if !ok {
		r.mu.Unlock()
		r.slots.Release(ctx, newSlotID)
		return bookingRepo.ErrNotFound
	}
	b.SlotID = newSlotID
	b.SessionStart = newStart
	b.SessionEnd = newEnd
	r.mu.Unlock()
	return r.slots.Release(ctx, oldSlotID)
}

func (r *fakeBookingRepo) SetJoinLink(ctx context.Context, bookingID, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.JoinLink = link
	return nil
}

func (r *fakeBookingRepo) SetSessionStatus(ctx context.Context, bookingID, sessionStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.SessionStatus = sessionStatus
	return nil
}

func (r *fakeBookingRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusPending && b.CreatedAt.Before(olderThan) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) DeletePending(ctx context.Context, bookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusPending {
		return false, nil
	}
	delete(r.bookings, bookingID)
	return true, nil
}

func (r *fakeBookingRepo) get(bookingID string) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.bookings[bookingID]
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[string]*models.Plan
}

func newFakePlanRepo(plans ...*models.Plan) *fakePlanRepo {
	r := &fakePlanRepo{plans: make(map[string]*models.Plan)}
	for _, p := range plans {
		cp := *p
		r.plans[p.ID] = &cp
	}
	return r
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, planID string) (*models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok {
		return nil, planRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) ListByMentor(ctx context.Context, mentorID string, activeOnly bool) ([]models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Plan
	for _, p := range r.plans {
		if p.MentorID == mentorID && (!activeOnly || p.Active) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) SetActive(ctx context.Context, mentorID, planID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok || p.MentorID != mentorID {
		return planRepo.ErrNotFound
	}
	p.Active = active
	return nil
}

type fakeGateway struct {
	mu     sync.Mutex
	orders int
	fail   bool
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", fmt.Errorf("gateway unavailable")
	}
	g.orders++
	return fmt.Sprintf("order_%d", g.orders), nil
}

type pushRecord struct {
	RecipientID string
	Role        string
	Title       string
}

type fakeNotifier struct {
	mu     sync.Mutex
	pushes []pushRecord
}

func (n *fakeNotifier) SendPush(ctx context.Context, recipientID, role, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, pushRecord{RecipientID: recipientID, Role: role, Title: title})
	return nil
}

func (n *fakeNotifier) sent() []pushRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]pushRecord, len(n.pushes))
	copy(out, n.pushes)
	return out
}
