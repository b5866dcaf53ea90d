// File: database/repository/plan/interface.go
package planRepo

import (
	"context"
	"errors"
	"log"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no plan matches the given identifier.
var ErrNotFound = errors.New("plan not found")

// PlanRepository persists mentors' session offerings.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	GetByID(ctx context.Context, planID string) (*models.Plan, error)
	ListByMentor(ctx context.Context, mentorID string, activeOnly bool) ([]models.Plan, error)
	SetActive(ctx context.Context, mentorID, planID string, active bool) error
}

type mongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo constructs a new MongoDB PlanRepository.
func NewMongoPlanRepo() PlanRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	r := &mongoPlanRepo{
		coll: db.Collection("plans"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("plan repo: %v", err)
	}
	return r
}
