package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAccountCollection is a mock implementation of db.AccountCollection
type MockAccountCollection struct {
	mock.Mock
}

func (m *MockAccountCollection) InsertAccount(ctx context.Context, account models.Account) (primitive.ObjectID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAccountCollection) FindAccountByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountCollection) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountCollection) FindAccountByShowroomName(ctx context.Context, name string) (*models.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountCollection) FindAccountByResetToken(ctx context.Context, token string) (*models.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountCollection) UpdateAccount(ctx context.Context, id string, account models.Account) error {
	args := m.Called(ctx, id, account)
	return args.Error(0)
}

// MockStatusCollection is a mock implementation of db.StatusCollection
type MockStatusCollection struct {
	mock.Mock
}

func (m *MockStatusCollection) InsertStatus(ctx context.Context, status models.ShowroomStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusCollection) FindStatusByShowroomID(ctx context.Context, showroomID primitive.ObjectID) (*models.ShowroomStatus, error) {
	args := m.Called(ctx, showroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShowroomStatus), args.Error(1)
}

// MockCarCollection is a mock implementation of db.CarCollection
type MockCarCollection struct {
	mock.Mock
}

func (m *MockCarCollection) InsertCar(ctx context.Context, car models.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarCollection) FindCarsByOwner(ctx context.Context, ownerID primitive.ObjectID, availability []string) ([]models.Car, error) {
	args := m.Called(ctx, ownerID, availability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarCollection) FindAllCars(ctx context.Context) ([]models.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarCollection) SearchCars(ctx context.Context, model, brand string) ([]models.Car, error) {
	args := m.Called(ctx, model, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarCollection) ReplaceCar(ctx context.Context, id string, car models.Car) error {
	args := m.Called(ctx, id, car)
	return args.Error(0)
}

func (m *MockCarCollection) SaveCar(ctx context.Context, car *models.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarCollection) UpdateCarFields(ctx context.Context, id string, mileage, fuelLevel float64) error {
	args := m.Called(ctx, id, mileage, fuelLevel)
	return args.Error(0)
}

func (m *MockCarCollection) DeleteCar(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingCollection is a mock implementation of db.BookingCollection
type MockBookingCollection struct {
	mock.Mock
}

func (m *MockBookingCollection) FindBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingCollection) FindBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingCollection) SaveBooking(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
