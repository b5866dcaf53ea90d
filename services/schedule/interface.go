package schedule

import (
	"context"

	planRepo "mentora/database/repository/plan"
	slotRepo "mentora/database/repository/slot"
	"mentora/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ScheduleService manages mentors' plans and slot catalogues and serves
// the public availability listing.
type ScheduleService interface {
	CreatePlan(ctx context.Context, plan *models.Plan) (*models.Plan, error)
	ListPlans(ctx context.Context, mentorID string, activeOnly bool) ([]models.Plan, error)
	DeactivatePlan(ctx context.Context, mentorID, planID string) error
	CreateSlot(ctx context.Context, mentorID, planID string, iv models.SlotInterval) (*models.Slot, error)
	CreateSlots(ctx context.Context, mentorID, planID string, intervals []models.SlotInterval) (*models.SlotBatchResult, error)
	ListMentorSlots(ctx context.Context, mentorID string) ([]models.Slot, error)
	ListAvailable(ctx context.Context, mentorID string) ([]models.Slot, error)
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Slots  slotRepo.SlotRepository
	Plans  planRepo.PlanRepository
	Cache  *redis.Client // optional
	Logger *zap.Logger
}
