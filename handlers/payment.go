package handlers

import (
	"io"
	"net/http"

	"mentora/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookSignatureHeader carries the gateway's raw-body signature.
const WebhookSignatureHeader = "X-Webhook-Signature"

// PaymentHandler receives payment outcomes on both delivery channels.
type PaymentHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewPaymentHandler(svc booking.BookingService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

// ConfirmCallback handles the synchronous confirmation the client relays
// after the gateway redirect.
func (h *PaymentHandler) ConfirmCallback(c *gin.Context) {
	var input struct {
		OrderID   string `json:"orderId" binding:"required"`
		PaymentID string `json:"paymentId" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.ConfirmCallback(c.Request.Context(), input.OrderID, input.PaymentID, input.Signature); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

// Webhook handles the asynchronous gateway event. The raw body is what
// the signature covers, so it is read before any parsing.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	signature := c.GetHeader(WebhookSignatureHeader)
	if err := h.Svc.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		h.Logger.Warn("webhook rejected", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
