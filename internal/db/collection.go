package db

import (
	"context"

	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountCollection defines the interface for account database operations.
type AccountCollection interface {
	InsertAccount(ctx context.Context, account models.Account) (primitive.ObjectID, error)
	FindAccountByID(ctx context.Context, id string) (*models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	FindAccountByShowroomName(ctx context.Context, name string) (*models.Account, error)
	FindAccountByResetToken(ctx context.Context, token string) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, account models.Account) error
}

// StatusCollection defines the interface for showroom status operations.
type StatusCollection interface {
	InsertStatus(ctx context.Context, status models.ShowroomStatus) error
	FindStatusByShowroomID(ctx context.Context, showroomID primitive.ObjectID) (*models.ShowroomStatus, error)
}

// CarCollection defines the interface for car inventory operations.
type CarCollection interface {
	InsertCar(ctx context.Context, car models.Car) error
	FindCarByID(ctx context.Context, id string) (*models.Car, error)
	FindCarsByOwner(ctx context.Context, ownerID primitive.ObjectID, availability []string) ([]models.Car, error)
	FindAllCars(ctx context.Context) ([]models.Car, error)
	SearchCars(ctx context.Context, model, brand string) ([]models.Car, error)
	ReplaceCar(ctx context.Context, id string, car models.Car) error
	SaveCar(ctx context.Context, car *models.Car) error
	UpdateCarFields(ctx context.Context, id string, mileage, fuelLevel float64) error
	DeleteCar(ctx context.Context, id string) error
}

// BookingCollection defines the interface for booking record operations.
type BookingCollection interface {
	FindBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FindBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	SaveBooking(ctx context.Context, booking *models.Booking) error
}

// TxnRunner runs a callback inside a single database transaction. Multi-entity
// mutations (car + booking) go through it so either both writes land or neither.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
