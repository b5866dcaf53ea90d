package models

// Webhook event names the gateway delivers. Anything else is acknowledged
// and ignored.
const (
	PaymentEventCaptured = "payment.captured"
	PaymentEventFailed   = "payment.failed"
)

// PaymentEvent is the body of an asynchronous gateway webhook. The raw
// body is what the webhook signature covers.
type PaymentEvent struct {
	Event     string `json:"event"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason,omitempty"`
}
