// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mentora/models"
)

// runInTransaction wraps fn in a mongo session transaction, aborting on
// any error so partial writes never survive.
func (r *mongoBookingRepo) runInTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithSlot claims the slot and inserts the booking as one unit. The
// slot claim is conditional on occupied=false; if it matches nothing the
// transaction aborts with ErrSlotTaken and no booking exists.
func (r *mongoBookingRepo) CreateWithSlot(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err := r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		claim := bson.M{"id": booking.SlotID, "occupied": false}
		update := bson.M{"$set": bson.M{"occupied": true, "holderId": booking.ClientID}}
		res, err := r.slotColl.UpdateOne(sc, claim, update)
		if err != nil {
			return fmt.Errorf("slot claim failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
	if err == ErrSlotTaken {
		return err
	}
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// Reschedule releases the old slot, claims the new one and repoints the
// booking in a single transaction; if the new slot is taken nothing moves.
func (r *mongoBookingRepo) Reschedule(ctx context.Context, bookingID, oldSlotID, newSlotID, holderID string, newStart, newEnd time.Time) error {
	err := r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		release := bson.M{
			"$set":   bson.M{"occupied": false},
			"$unset": bson.M{"holderId": ""},
		}
		if _, err := r.slotColl.UpdateOne(sc, bson.M{"id": oldSlotID}, release); err != nil {
			return fmt.Errorf("release of old slot failed: %w", err)
		}

		claim := bson.M{"id": newSlotID, "occupied": false}
		occupy := bson.M{"$set": bson.M{"occupied": true, "holderId": holderID}}
		res, err := r.slotColl.UpdateOne(sc, claim, occupy)
		if err != nil {
			return fmt.Errorf("claim of new slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotTaken
		}

		update := bson.M{"$set": bson.M{
			"slotId":       newSlotID,
			"sessionStart": newStart,
			"sessionEnd":   newEnd,
			"updatedAt":    time.Now(),
		}}
		bres, err := r.coll.UpdateOne(sc, bson.M{"id": bookingID}, update)
		if err != nil {
			return fmt.Errorf("booking update failed: %w", err)
		}
		if bres.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err == ErrSlotTaken || err == ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return nil
}
