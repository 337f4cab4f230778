package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/db"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarHandler handles car inventory requests.
type CarHandler struct {
	cars     db.CarCollection
	bookings db.BookingCollection
	accounts db.AccountCollection
}

// NewCarHandler creates a new car inventory handler.
func NewCarHandler(cars db.CarCollection, bookings db.BookingCollection, accounts db.AccountCollection) *CarHandler {
	return &CarHandler{cars: cars, bookings: bookings, accounts: accounts}
}

type carRequest struct {
	CarBrand        string   `json:"carBrand"`
	RentRate        float64  `json:"rentRate"`
	CarModel        string   `json:"carModel"`
	Year            int      `json:"year"`
	Make            string   `json:"make"`
	EngineType      string   `json:"engineType"`
	Images          []string `json:"images"`
	Color           string   `json:"color"`
	Mileage         float64  `json:"mileage"`
	BodyType        string   `json:"bodyType"`
	Transmission    string   `json:"transmission"`
	SeatCapacity    int      `json:"seatCapacity"`
	LuggageCapacity int      `json:"luggageCapacity"`
	FuelType        string   `json:"fuelType"`
	CarFeatures     []string `json:"carFeatures"`
}

func (r *carRequest) validate() error {
	if r.CarBrand == "" || r.RentRate == 0 || r.CarModel == "" || r.Year == 0 || r.EngineType == "" {
		return apperrors.Validation("Please provide all required fields.")
	}
	return nil
}

func (r *carRequest) apply(car *models.Car) {
	car.Brand = r.CarBrand
	car.RentRate = r.RentRate
	car.Model = r.CarModel
	car.Year = r.Year
	car.Make = r.Make
	car.EngineType = r.EngineType
	car.Images = r.Images
	car.Color = r.Color
	car.Mileage = r.Mileage
	car.BodyType = r.BodyType
	car.Transmission = r.Transmission
	car.SeatCapacity = r.SeatCapacity
	car.LuggageCapacity = r.LuggageCapacity
	car.FuelType = r.FuelType
	car.Features = r.CarFeatures
}

// AddCar creates a car owned by the calling showroom, available for rent.
func (h *CarHandler) AddCar(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		apperrors.Respond(c, err)
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(middleware.AccountID(c))
	if err != nil {
		apperrors.Respond(c, apperrors.Auth("Invalid session"))
		return
	}

	car := models.Car{
		OwnerID:      ownerID,
		Availability: models.AvailabilityAvailable,
	}
	req.apply(&car)

	if err := h.cars.InsertCar(c.Request.Context(), car); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Car has been added successfully."})
}

// ListOwnerCars returns the calling showroom's cars with booking and client
// details joined.
func (h *CarHandler) ListOwnerCars(c *gin.Context) {
	h.listOwnerCars(c, nil)
}

// ListReturnableCars returns the showroom's "needs attention" queue: cars
// pending return or in maintenance.
func (h *CarHandler) ListReturnableCars(c *gin.Context) {
	h.listOwnerCars(c, []string{models.AvailabilityPendingReturn, models.AvailabilityInMaintenance})
}

func (h *CarHandler) listOwnerCars(c *gin.Context, availability []string) {
	ownerID, err := primitive.ObjectIDFromHex(middleware.AccountID(c))
	if err != nil {
		apperrors.Respond(c, apperrors.Auth("Invalid session"))
		return
	}

	cars, err := h.cars.FindCarsByOwner(c.Request.Context(), ownerID, availability)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	populated, err := h.populateRentals(c.Request.Context(), cars)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, populated)
}

// ListAllCars returns the public catalog with owning showroom details joined.
func (h *CarHandler) ListAllCars(c *gin.Context) {
	cars, err := h.cars.FindAllCars(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	populated, err := h.populateOwners(c.Request.Context(), cars)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, populated)
}

// SearchCars filters the catalog by model and/or brand, case-insensitively.
func (h *CarHandler) SearchCars(c *gin.Context) {
	model := c.Query("carmodel")
	brand := c.Query("carbrand")
	if model == "" && brand == "" {
		apperrors.Respond(c, apperrors.Validation("Please enter car model or car brand to search"))
		return
	}

	cars, err := h.cars.SearchCars(c.Request.Context(), model, brand)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	if len(cars) == 0 {
		apperrors.Respond(c, apperrors.NotFound("No cars found matching your search criteria."))
		return
	}

	populated, err := h.populateOwners(c.Request.Context(), cars)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, populated)
}

// ListShowroomCars returns all cars of one showroom for catalog drill-down.
func (h *CarHandler) ListShowroomCars(c *gin.Context) {
	showroomID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NotFound("Showroom not found"))
		return
	}

	cars, err := h.cars.FindCarsByOwner(c.Request.Context(), showroomID, nil)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalcar": cars})
}

// UpdateCar replaces a car's attributes. Lifecycle state (availability,
// maintenance logs, booking reference) is kept as is.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		apperrors.Respond(c, err)
		return
	}

	car, err := h.cars.FindCarByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	req.apply(car)
	if err := h.cars.SaveCar(c.Request.Context(), car); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car has been updated successfully.", "car": car})
}

// RemoveCar deletes a car. Refused while the linked booking is not returned,
// and allowed only for the owning showroom. A car that never had a booking is
// deletable.
func (h *CarHandler) RemoveCar(c *gin.Context) {
	car, err := h.cars.FindCarByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if car.RentalInfo != nil {
		booking, err := h.bookings.FindBookingByID(c.Request.Context(), *car.RentalInfo)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if booking.Status != models.BookingReturned {
			apperrors.Respond(c, apperrors.Conflict("Car is currently booked. Cannot delete."))
			return
		}
		// returned: nothing to release, deletion may proceed
	}

	if middleware.AccountID(c) != car.OwnerID.Hex() {
		apperrors.Respond(c, apperrors.Authorization("Access denied. You can only delete cars you own."))
		return
	}

	if err := h.cars.DeleteCar(c.Request.Context(), car.ID.Hex()); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car has been successfully deleted."})
}

type returnDetailsRequest struct {
	CarID     string  `json:"carId"`
	Mileage   float64 `json:"mileage"`
	FuelLevel float64 `json:"fuelLevel"`
}

// UpdateReturnDetails records the mileage and fuel level observed at return.
func (h *CarHandler) UpdateReturnDetails(c *gin.Context) {
	var req returnDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CarID == "" {
		apperrors.Respond(c, apperrors.Validation("Car id is required"))
		return
	}

	if err := h.cars.UpdateCarFields(c.Request.Context(), req.CarID, req.Mileage, req.FuelLevel); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car return details updated successfully"})
}

// populateRentals expands each car's current booking and the booking's client.
func (h *CarHandler) populateRentals(ctx context.Context, cars []models.Car) ([]models.PopulatedCar, error) {
	populated := make([]models.PopulatedCar, 0, len(cars))
	for _, car := range cars {
		pc := models.PopulatedCar{Car: car}
		if car.RentalInfo != nil {
			booking, err := h.bookings.FindBookingByID(ctx, *car.RentalInfo)
			switch {
			case err == nil:
				pb := models.PopulatedBooking{Booking: *booking}
				client, err := h.accounts.FindAccountByID(ctx, booking.UserID.Hex())
				if err == nil {
					summary := client.Summary()
					pb.Client = &summary
				} else if apperrors.KindOf(err) != apperrors.KindNotFound {
					return nil, apperrors.Internal(err)
				}
				pc.Rental = &pb
			case apperrors.KindOf(err) == apperrors.KindNotFound:
				// dangling booking reference, car still listed
				log.WithField("car_id", car.ID.Hex()).Warn("car references missing booking")
			default:
				return nil, apperrors.Internal(err)
			}
		}
		populated = append(populated, pc)
	}
	return populated, nil
}

// populateOwners expands each car's owning showroom summary.
func (h *CarHandler) populateOwners(ctx context.Context, cars []models.Car) ([]models.PopulatedCar, error) {
	owners := make(map[primitive.ObjectID]*models.AccountSummary)
	populated := make([]models.PopulatedCar, 0, len(cars))
	for _, car := range cars {
		pc := models.PopulatedCar{Car: car}
		if summary, ok := owners[car.OwnerID]; ok {
			pc.Owner = summary
		} else {
			owner, err := h.accounts.FindAccountByID(ctx, car.OwnerID.Hex())
			switch {
			case err == nil:
				s := owner.Summary()
				s.Email = ""
				s.ContactNumber = ""
				owners[car.OwnerID] = &s
				pc.Owner = &s
			case apperrors.KindOf(err) == apperrors.KindNotFound:
				owners[car.OwnerID] = nil
			default:
				return nil, apperrors.Internal(err)
			}
		}
		populated = append(populated, pc)
	}
	return populated, nil
}
