package handlers

// HandlerBundle aggregates all HTTP handlers for route registration.
type HandlerBundle struct {
	Schedule *ScheduleHandler
	Booking  *BookingHandler
	Payment  *PaymentHandler
	Chat     *ChatHandler
}
