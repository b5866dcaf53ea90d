package handlers

import (
	"net/http"

	"mentora/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// Reserve claims a slot and opens a payment order for the caller.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var input struct {
		SlotID string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor := currentActor(c)
	receipt, err := h.Svc.Reserve(c.Request.Context(), actor.ID, input.SlotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// Get returns a booking to one of its parties or an admin.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Cancel moves a booking to cancelled, recording the caller's reason.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), currentActor(c), input.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Reschedule relocates a confirmed booking to a different slot.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var input struct {
		NewSlotID string `json:"newSlotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), input.NewSlotID, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rescheduled"})
}

// Expire is the administrative path for stale unpaid reservations.
func (h *BookingHandler) Expire(c *gin.Context) {
	if err := h.Svc.Expire(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "expired"})
}

// Purge removes a still-pending booking entirely.
func (h *BookingHandler) Purge(c *gin.Context) {
	if err := h.Svc.PurgePending(c.Request.Context(), c.Param("id"), currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}

// SetJoinLink stores the meeting link on a confirmed booking.
func (h *BookingHandler) SetJoinLink(c *gin.Context) {
	var input struct {
		JoinLink string `json:"joinLink" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SetJoinLink(c.Request.Context(), c.Param("id"), input.JoinLink, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetSessionStatus flips the secondary session axis (completed/cancelled).
func (h *BookingHandler) SetSessionStatus(c *gin.Context) {
	var input struct {
		SessionStatus string `json:"sessionStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SetSessionStatus(c.Request.Context(), c.Param("id"), input.SessionStatus, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
