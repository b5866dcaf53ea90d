package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	planRepo "mentora/database/repository/plan"
	"mentora/models"
	"mentora/utils"

	"go.uber.org/zap"
)

const slotCacheTTL = time.Minute

func (s *DefaultScheduleService) CreatePlan(ctx context.Context, plan *models.Plan) (*models.Plan, error) {
	if plan.Amount <= 0 {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "plan amount must be positive")
	}
	if plan.DurationMinutes <= 0 {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "plan duration must be positive")
	}
	if plan.ChatWindowDays < 0 {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "chat window days cannot be negative")
	}
	plan.Active = true
	if err := s.Plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *DefaultScheduleService) ListPlans(ctx context.Context, mentorID string, activeOnly bool) ([]models.Plan, error) {
	return s.Plans.ListByMentor(ctx, mentorID, activeOnly)
}

func (s *DefaultScheduleService) DeactivatePlan(ctx context.Context, mentorID, planID string) error {
	err := s.Plans.SetActive(ctx, mentorID, planID, false)
	if errors.Is(err, planRepo.ErrNotFound) {
		return utils.NewServiceError(utils.CodeNotFound, "plan not found")
	}
	return err
}

// CreateSlot creates a single slot, failing outright when the interval
// overlaps one of the mentor's existing slots.
func (s *DefaultScheduleService) CreateSlot(ctx context.Context, mentorID, planID string, iv models.SlotInterval) (*models.Slot, error) {
	if !iv.End.After(iv.Start) {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "interval end must be after start")
	}

	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, planRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "plan not found")
		}
		return nil, err
	}
	if plan.MentorID != mentorID {
		return nil, utils.NewServiceError(utils.CodeForbidden, "plan belongs to a different mentor")
	}

	existing, err := s.Slots.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if conflictsWith(existing, iv) {
		return nil, utils.NewServiceError(utils.CodeOverlap, "interval overlaps an existing slot")
	}

	slot := &models.Slot{
		MentorID: mentorID,
		PlanID:   planID,
		Start:    iv.Start,
		End:      iv.End,
	}
	if err := s.Slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, mentorID)
	return slot, nil
}

// CreateSlots validates each requested interval against the mentor's
// existing slots and against earlier members of the same batch, creates
// the survivors and reports the rejects. Overlap uses the half-open test:
// two intervals conflict iff new.start < existing.end and
// new.end > existing.start, so back-to-back slots are fine.
func (s *DefaultScheduleService) CreateSlots(ctx context.Context, mentorID, planID string, intervals []models.SlotInterval) (*models.SlotBatchResult, error) {
	if len(intervals) == 0 {
		return &models.SlotBatchResult{}, nil
	}

	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, planRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "plan not found")
		}
		return nil, err
	}
	if plan.MentorID != mentorID {
		return nil, utils.NewServiceError(utils.CodeForbidden, "plan belongs to a different mentor")
	}

	existing, err := s.Slots.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	result := &models.SlotBatchResult{}
	var accepted []models.Slot
	for _, iv := range intervals {
		if !iv.End.After(iv.Start) {
			result.Rejected = append(result.Rejected, models.SlotRejection{
				Start: iv.Start, End: iv.End, Reason: "interval end must be after start",
			})
			continue
		}
		if conflictsWith(existing, iv) || conflictsWith(accepted, iv) {
			result.Rejected = append(result.Rejected, models.SlotRejection{
				Start: iv.Start, End: iv.End, Reason: "overlaps an existing slot",
			})
			continue
		}
		accepted = append(accepted, models.Slot{
			MentorID: mentorID,
			PlanID:   planID,
			Start:    iv.Start,
			End:      iv.End,
		})
	}

	if len(accepted) > 0 {
		if err := s.Slots.CreateMany(ctx, accepted); err != nil {
			return nil, err
		}
		s.invalidateCache(ctx, mentorID)
	}
	result.Created = accepted

	if len(result.Rejected) > 0 {
		s.Logger.Debug("slot batch partially rejected",
			zap.String("mentorId", mentorID),
			zap.Int("created", len(result.Created)),
			zap.Int("rejected", len(result.Rejected)),
		)
	}
	return result, nil
}

func conflictsWith(slots []models.Slot, iv models.SlotInterval) bool {
	for _, s := range slots {
		if s.Overlaps(iv.Start, iv.End) {
			return true
		}
	}
	return false
}

func (s *DefaultScheduleService) ListMentorSlots(ctx context.Context, mentorID string) ([]models.Slot, error) {
	return s.Slots.ListByMentor(ctx, mentorID)
}

// ListAvailable serves unoccupied future slots, cached briefly per mentor.
func (s *DefaultScheduleService) ListAvailable(ctx context.Context, mentorID string) ([]models.Slot, error) {
	key := "slots:available:" + mentorID
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := s.Slots.ListAvailable(ctx, mentorID, time.Now())
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
				s.Logger.Debug("slot cache write failed", zap.String("mentorId", mentorID), zap.Error(err))
			}
		}
	}
	return slots, nil
}

func (s *DefaultScheduleService) invalidateCache(ctx context.Context, mentorID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, "slots:available:"+mentorID).Err(); err != nil {
		s.Logger.Debug("slot cache invalidation failed", zap.String("mentorId", mentorID), zap.Error(err))
	}
}
