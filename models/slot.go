package models

import "time"

// Slot represents a mentor's bookable time interval. At most one active
// booking (pending or confirmed) may hold a slot at any time; a released
// slot has no holder and is not occupied.
type Slot struct {
	ID        string    `bson:"id" json:"id"`
	MentorID  string    `bson:"mentorId" json:"mentorId"`
	PlanID    string    `bson:"planId" json:"planId"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Occupied  bool      `bson:"occupied" json:"occupied"`
	HolderID  string    `bson:"holderId,omitempty" json:"holderId,omitempty"` // client currently holding the slot
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotInterval is the caller-supplied half-open interval [Start, End) for
// slot creation.
type SlotInterval struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Overlaps reports whether the slot's interval intersects [start, end).
// Adjacent intervals (end == start) do not overlap.
func (s Slot) Overlaps(start, end time.Time) bool {
	return start.Before(s.End) && end.After(s.Start)
}

// SlotRejection reports a batch member that could not be created.
type SlotRejection struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason"`
}

// SlotBatchResult is the outcome of a batch slot creation: the members
// that were created and the members that conflicted.
type SlotBatchResult struct {
	Created  []Slot          `json:"created"`
	Rejected []SlotRejection `json:"rejected,omitempty"`
}
