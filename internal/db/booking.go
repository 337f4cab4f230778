package db

import (
	"context"
	"time"

	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingCollection implements BookingCollection for MongoDB.
type MongoBookingCollection struct {
	Collection *mongo.Collection
}

// FindBookingByID finds a booking by its ID.
func (c *MongoBookingCollection) FindBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// FindBookingsByUser queries all bookings made by a client account.
func (c *MongoBookingCollection) FindBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SaveBooking persists an already-loaded booking document by its own ID.
func (c *MongoBookingCollection) SaveBooking(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("Booking not found")
	}
	return nil
}
