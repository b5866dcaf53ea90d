package models

import "time"

// Plan is a mentor's priced session offering. Amounts are in the minor
// unit of the configured currency (e.g. paise), because that is what the
// payment gateway charges in. A plan is immutable once referenced by a
// booking: price and duration are captured onto the booking at creation
// time, not re-read later.
type Plan struct {
	ID              string    `bson:"id" json:"id"`
	MentorID        string    `bson:"mentorId" json:"mentorId"`
	Name            string    `bson:"name" json:"name"`
	Amount          int64     `bson:"amount" json:"amount"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	ChatWindowDays  int       `bson:"chatWindowDays" json:"chatWindowDays"` // post-session messaging window length
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
