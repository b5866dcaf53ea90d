// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentora/models"
)

func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) GetByOrderRef(ctx context.Context, orderRef string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"orderRef": orderRef}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &booking, nil
}

// ConfirmByOrderRef is the compare-and-swap both confirmation channels
// funnel into: the filter requires status=pending, so a duplicate
// delivery matches nothing and returns (nil, nil).
func (r *mongoBookingRepo) ConfirmByOrderRef(ctx context.Context, orderRef, paymentRef string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"orderRef": orderRef, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingStatusConfirmed,
		"paymentRef": paymentRef,
		"updatedAt":  time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) FailPendingByOrderRef(ctx context.Context, orderRef, reason string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"orderRef": orderRef, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{
		"status":        models.BookingStatusCancelled,
		"failureReason": reason,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark booking failed: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) TransitionStatus(ctx context.Context, bookingID, from, to, reason string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to, "updatedAt": time.Now()}
	if reason != "" {
		set["cancelReason"] = reason
	}

	filter := bson.M{"id": bookingID, "status": from}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to transition booking status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoBookingRepo) SetJoinLink(ctx context.Context, bookingID, link string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"joinLink": link, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to set join link: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) SetSessionStatus(ctx context.Context, bookingID, sessionStatus string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"sessionStatus": sessionStatus, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to set session status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.BookingStatusPending,
		"createdAt": bson.M{"$lt": olderThan},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stale bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) DeletePending(ctx context.Context, bookingID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "status": models.BookingStatusPending}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}
	return res.DeletedCount == 1, nil
}
