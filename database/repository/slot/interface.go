// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"
	"log"
	"time"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no slot matches the given identifier.
var ErrNotFound = errors.New("slot not found")

// ErrSlotTaken is returned when a conditional claim finds the slot
// already occupied.
var ErrSlotTaken = errors.New("slot already occupied")

// SlotRepository owns the catalogue of bookable intervals and their
// exclusivity invariant. Reserve is the one operation that must be a
// single atomic conditional write.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	CreateMany(ctx context.Context, slots []models.Slot) error
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	Reserve(ctx context.Context, slotID, holderID string) (*models.Slot, error)
	Release(ctx context.Context, slotID string) error
	ListAvailable(ctx context.Context, mentorID string, from time.Time) ([]models.Slot, error)
	ListByMentor(ctx context.Context, mentorID string) ([]models.Slot, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	r := &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("slot repo: %v", err)
	}
	return r
}
