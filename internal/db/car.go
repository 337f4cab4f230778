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

// MongoCarCollection implements CarCollection for MongoDB.
type MongoCarCollection struct {
	Collection *mongo.Collection
}

// InsertCar inserts a car record into the collection.
func (c *MongoCarCollection) InsertCar(ctx context.Context, car models.Car) error {
	car.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, car)
	return err
}

// FindCarByID finds a car by its ID.
func (c *MongoCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Car not found. Please try again.")
	}

	var car models.Car
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Car not found. Please try again.")
		}
		return nil, err
	}
	return &car, nil
}

// FindCarsByOwner queries a showroom's cars, optionally filtered to a set of
// availability states.
func (c *MongoCarCollection) FindCarsByOwner(ctx context.Context, ownerID primitive.ObjectID, availability []string) ([]models.Car, error) {
	filter := bson.M{"owner_id": ownerID}
	if len(availability) > 0 {
		filter["availability"] = bson.M{"$in": availability}
	}

	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// FindAllCars returns the whole catalog.
func (c *MongoCarCollection) FindAllCars(ctx context.Context) ([]models.Car, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// SearchCars performs a case-insensitive substring match on model and/or brand.
func (c *MongoCarCollection) SearchCars(ctx context.Context, model, brand string) ([]models.Car, error) {
	filter := bson.M{}
	if model != "" {
		filter["model"] = primitive.Regex{Pattern: model, Options: "i"}
	}
	if brand != "" {
		filter["brand"] = primitive.Regex{Pattern: brand, Options: "i"}
	}

	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// ReplaceCar replaces a car's attributes by its ID.
func (c *MongoCarCollection) ReplaceCar(ctx context.Context, id string, car models.Car) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Car not found.")
	}

	car.ID = objectID
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, car)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("Car not found.")
	}
	return nil
}

// SaveCar persists an already-loaded car document by its own ID.
func (c *MongoCarCollection) SaveCar(ctx context.Context, car *models.Car) error {
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": car.ID}, car)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("Car not found.")
	}
	return nil
}

// UpdateCarFields partially updates the return details of a car.
func (c *MongoCarCollection) UpdateCarFields(ctx context.Context, id string, mileage, fuelLevel float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Car not found")
	}

	update := bson.M{"$set": bson.M{"mileage": mileage, "fuel_level": fuelLevel}}
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("Car not found")
	}
	return nil
}

// DeleteCar deletes a car by its ID.
func (c *MongoCarCollection) DeleteCar(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Car not found. Please try again.")
	}

	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("Car not found. Please try again.")
	}
	return nil
}
