// Package rental drives the car/booking lifecycle: maintenance logging,
// maintenance start with invoice emission, and return completion.
//
// Car.availability is a projection of the linked booking's state kept on the
// car for catalog filtering. Every transition therefore updates both documents
// in one transaction; no intermediate state is observable.
package rental

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/db"
	"github.com/wheelio/rental-backend/internal/events"
	"github.com/wheelio/rental-backend/internal/invoice"
	"github.com/wheelio/rental-backend/internal/models"
)

// Service executes lifecycle transitions over cars and bookings.
type Service struct {
	cars      db.CarCollection
	bookings  db.BookingCollection
	txn       db.TxnRunner
	generator invoice.Generator
	publisher events.Publisher
	baseURL   string
}

var now = time.Now

// NewService creates a lifecycle service.
func NewService(cars db.CarCollection, bookings db.BookingCollection, txn db.TxnRunner, generator invoice.Generator, publisher events.Publisher, baseURL string) *Service {
	return &Service{
		cars:      cars,
		bookings:  bookings,
		txn:       txn,
		generator: generator,
		publisher: publisher,
		baseURL:   baseURL,
	}
}

// AddMaintenanceLog appends a log entry and forces the car into maintenance,
// regardless of its prior state. The booking is not touched.
func (s *Service) AddMaintenanceLog(ctx context.Context, carID, tasks string) (*models.Car, error) {
	car, err := s.cars.FindCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	car.MaintenanceLogs = append(car.MaintenanceLogs, models.MaintenanceLog{Tasks: tasks, LoggedAt: now()})
	car.Availability = models.AvailabilityInMaintenance
	if err := s.cars.SaveCar(ctx, car); err != nil {
		return nil, err
	}

	s.publishTransition(car)
	return car, nil
}

// StartMaintenanceInput carries the facts a maintenance invoice is billed from.
type StartMaintenanceInput struct {
	CarID              string
	ShowroomID         string
	MaintenanceCost    float64
	MaintenanceLog     string
	RepairDescriptions string
	RentalStartDate    string
	RentalStartTime    string
	RentalEndDate      string
	RentalEndTime      string
}

// StartMaintenance computes the rental bill, emits an invoice, and moves the
// car into maintenance. Car and booking are persisted together.
func (s *Service) StartMaintenance(ctx context.Context, in StartMaintenanceInput) (*models.Car, string, error) {
	car, err := s.cars.FindCarByID(ctx, in.CarID)
	if err != nil {
		return nil, "", err
	}
	if car.RentalInfo == nil {
		return nil, "", apperrors.NotFound("Booking not found")
	}
	booking, err := s.bookings.FindBookingByID(ctx, *car.RentalInfo)
	if err != nil {
		return nil, "", err
	}

	startDate, err := ParseDate(in.RentalStartDate)
	if err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}
	endDate, err := ParseDate(in.RentalEndDate)
	if err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}
	startTime, err := FormatTime12Hour(in.RentalStartTime)
	if err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}
	endTime, err := FormatTime12Hour(in.RentalEndTime)
	if err != nil {
		return nil, "", apperrors.Validation(err.Error())
	}

	daysRented := RentalDays(startDate, endDate)
	totalPrice := TotalPrice(daysRented, car.RentRate)

	artifact, err := s.generator.Generate(invoice.Data{
		BookingID:       booking.ID.Hex(),
		CarID:           in.CarID,
		MaintenanceCost: in.MaintenanceCost,
		ClientID:        booking.UserID.Hex(),
		ShowroomID:      in.ShowroomID,
		RentalStartDate: startDate.Format(DateLayout),
		RentalEndDate:   endDate.Format(DateLayout),
		RentalStartTime: startTime,
		RentalEndTime:   endTime,
		TotalPrice:      totalPrice,
		InvoiceType:     "Maintenance Invoice Generated",
		UpdateCount:     0,
	})
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindInternal, "invoice generation failed", err)
	}

	invoiceURL := invoice.URL(s.baseURL, artifact)
	booking.InvoiceURLs = append(booking.InvoiceURLs, invoiceURL)
	booking.CurrentInvoiceURL = invoiceURL
	booking.RepairDescriptions = in.RepairDescriptions

	car.Availability = models.AvailabilityInMaintenance
	car.MaintenanceLogs = append(car.MaintenanceLogs, models.MaintenanceLog{
		BookingID:          &booking.ID,
		Tasks:              in.MaintenanceLog,
		RepairCosts:        in.MaintenanceCost,
		RepairDescriptions: in.RepairDescriptions,
		LoggedAt:           now(),
	})

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.bookings.SaveBooking(ctx, booking); err != nil {
			return err
		}
		return s.cars.SaveCar(ctx, car)
	})
	if err != nil {
		return nil, "", err
	}

	s.publishTransition(car)
	return car, invoiceURL, nil
}

// CompleteMaintenance marks the booking returned and the car available in one
// transaction; never one without the other.
func (s *Service) CompleteMaintenance(ctx context.Context, carID string) (*models.Car, error) {
	car, err := s.cars.FindCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.RentalInfo == nil {
		return nil, apperrors.NotFound("Booking not found")
	}
	booking, err := s.bookings.FindBookingByID(ctx, *car.RentalInfo)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingReturned
	car.Availability = models.AvailabilityAvailable

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.cars.SaveCar(ctx, car); err != nil {
			return err
		}
		return s.bookings.SaveBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransition(car)
	return car, nil
}

func (s *Service) publishTransition(car *models.Car) {
	event := events.AvailabilityEvent{
		CarID:        car.ID.Hex(),
		Availability: car.Availability,
	}
	if car.RentalInfo != nil {
		event.BookingID = car.RentalInfo.Hex()
	}
	s.publisher.PublishAvailability(event)
	log.WithFields(log.Fields{
		"car_id":       event.CarID,
		"availability": event.Availability,
	}).Info("car availability changed")
}
