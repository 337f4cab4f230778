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

// MongoAccountCollection implements AccountCollection for MongoDB.
type MongoAccountCollection struct {
	Collection *mongo.Collection
}

// InsertAccount inserts a new account and returns its id.
func (c *MongoAccountCollection) InsertAccount(ctx context.Context, account models.Account) (primitive.ObjectID, error) {
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, account)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindAccountByID finds an account by its ID.
func (c *MongoAccountCollection) FindAccountByID(ctx context.Context, id string) (*models.Account, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("account not found")
	}

	var account models.Account
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("account not found")
		}
		return nil, err
	}
	return &account, nil
}

// FindAccountByEmail finds an account by its email.
func (c *MongoAccountCollection) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("account not found")
		}
		return nil, err
	}
	return &account, nil
}

// FindAccountByShowroomName finds a showroom account by its showroom name.
func (c *MongoAccountCollection) FindAccountByShowroomName(ctx context.Context, name string) (*models.Account, error) {
	var account models.Account
	err := c.Collection.FindOne(ctx, bson.M{"showroom_name": name}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("account not found")
		}
		return nil, err
	}
	return &account, nil
}

// FindAccountByResetToken finds the account holding an unexpired reset token.
func (c *MongoAccountCollection) FindAccountByResetToken(ctx context.Context, token string) (*models.Account, error) {
	filter := bson.M{
		"reset_password_token":   token,
		"reset_password_expires": bson.M{"$gt": time.Now()},
	}

	var account models.Account
	err := c.Collection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Auth("Invalid or expired token")
		}
		return nil, err
	}
	return &account, nil
}

// UpdateAccount replaces an account document by its ID.
func (c *MongoAccountCollection) UpdateAccount(ctx context.Context, id string, account models.Account) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("account not found")
	}

	account.ID = objectID
	account.UpdatedAt = time.Now()

	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, account)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("account not found")
	}
	return nil
}

// MongoStatusCollection implements StatusCollection for MongoDB.
type MongoStatusCollection struct {
	Collection *mongo.Collection
}

// InsertStatus inserts a showroom status record.
func (c *MongoStatusCollection) InsertStatus(ctx context.Context, status models.ShowroomStatus) error {
	status.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, status)
	return err
}

// FindStatusByShowroomID finds the status record of a showroom account.
func (c *MongoStatusCollection) FindStatusByShowroomID(ctx context.Context, showroomID primitive.ObjectID) (*models.ShowroomStatus, error) {
	var status models.ShowroomStatus
	err := c.Collection.FindOne(ctx, bson.M{"showroom_id": showroomID}).Decode(&status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("showroom status not found")
		}
		return nil, err
	}
	return &status, nil
}
