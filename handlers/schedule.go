package handlers

import (
	"net/http"

	"mentora/models"
	"mentora/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes plan and slot management for mentors plus the
// public availability listing.
type ScheduleHandler struct {
	Svc    schedule.ScheduleService
	Logger *zap.Logger
}

func NewScheduleHandler(svc schedule.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc, Logger: logger}
}

// CreatePlan registers a new offering for the calling mentor.
func (h *ScheduleHandler) CreatePlan(c *gin.Context) {
	var input struct {
		Name            string `json:"name" binding:"required"`
		Amount          int64  `json:"amount" binding:"required"`
		DurationMinutes int    `json:"durationMinutes" binding:"required"`
		ChatWindowDays  int    `json:"chatWindowDays"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	plan := &models.Plan{
		MentorID:        currentActor(c).ID,
		Name:            input.Name,
		Amount:          input.Amount,
		DurationMinutes: input.DurationMinutes,
		ChatWindowDays:  input.ChatWindowDays,
	}
	created, err := h.Svc.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPlans returns a mentor's offerings. Non-mentor callers see only
// active plans.
func (h *ScheduleHandler) ListPlans(c *gin.Context) {
	mentorID := c.Param("mentorID")
	actor := currentActor(c)
	activeOnly := !(actor.IsAdmin() || actor.ID == mentorID)

	plans, err := h.Svc.ListPlans(c.Request.Context(), mentorID, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// DeactivatePlan retires an offering; existing bookings keep their
// captured price and duration.
func (h *ScheduleHandler) DeactivatePlan(c *gin.Context) {
	if err := h.Svc.DeactivatePlan(c.Request.Context(), currentActor(c).ID, c.Param("planID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// CreateSlot creates a single slot; any overlap with an existing slot
// rejects the whole request.
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var input struct {
		PlanID   string              `json:"planId" binding:"required"`
		Interval models.SlotInterval `json:"interval" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slot, err := h.Svc.CreateSlot(c.Request.Context(), currentActor(c).ID, input.PlanID, input.Interval)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// CreateSlots creates a batch of slots, reporting per-member overlap
// rejections while the rest succeed.
func (h *ScheduleHandler) CreateSlots(c *gin.Context) {
	var input struct {
		PlanID    string                `json:"planId" binding:"required"`
		Intervals []models.SlotInterval `json:"intervals" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.CreateSlots(c.Request.Context(), currentActor(c).ID, input.PlanID, input.Intervals)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if len(result.Created) == 0 && len(result.Rejected) > 0 {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

// ListMySlots returns the calling mentor's full slot catalogue.
func (h *ScheduleHandler) ListMySlots(c *gin.Context) {
	slots, err := h.Svc.ListMentorSlots(c.Request.Context(), currentActor(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListAvailable returns a mentor's unoccupied future slots.
func (h *ScheduleHandler) ListAvailable(c *gin.Context) {
	slots, err := h.Svc.ListAvailable(c.Request.Context(), c.Param("mentorID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
