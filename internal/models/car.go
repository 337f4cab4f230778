package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car availability states. Availability mirrors the state of the linked
// booking and must be updated together with it.
const (
	AvailabilityAvailable     = "Available"
	AvailabilityRented        = "Rented"
	AvailabilityPendingReturn = "Pending Return"
	AvailabilityInMaintenance = "In Maintenance"
)

// MaintenanceLog is one entry of a car's embedded maintenance history.
type MaintenanceLog struct {
	BookingID          *primitive.ObjectID `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Tasks              string              `bson:"tasks" json:"tasks"`
	RepairCosts        float64             `bson:"repair_costs,omitempty" json:"repairCosts,omitempty"`
	RepairDescriptions string              `bson:"repair_descriptions,omitempty" json:"repairDescriptions,omitempty"`
	LoggedAt           time.Time           `bson:"logged_at" json:"loggedAt"`
}

// Car represents a rentable car owned by exactly one showroom account.
type Car struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID         primitive.ObjectID  `bson:"owner_id" json:"ownerId"`
	Brand           string              `bson:"brand" json:"carBrand"`
	Model           string              `bson:"model" json:"carModel"`
	Year            int                 `bson:"year" json:"year"`
	Make            string              `bson:"make,omitempty" json:"make,omitempty"`
	EngineType      string              `bson:"engine_type" json:"engineType"`
	RentRate        float64             `bson:"rent_rate" json:"rentRate"`
	Availability    string              `bson:"availability" json:"availability"`
	Color           string              `bson:"color,omitempty" json:"color,omitempty"`
	Mileage         float64             `bson:"mileage,omitempty" json:"mileage,omitempty"`
	FuelLevel       float64             `bson:"fuel_level,omitempty" json:"fuelLevel,omitempty"`
	BodyType        string              `bson:"body_type,omitempty" json:"bodyType,omitempty"`
	Transmission    string              `bson:"transmission,omitempty" json:"transmission,omitempty"`
	SeatCapacity    int                 `bson:"seat_capacity,omitempty" json:"seatCapacity,omitempty"`
	LuggageCapacity int                 `bson:"luggage_capacity,omitempty" json:"luggageCapacity,omitempty"`
	FuelType        string              `bson:"fuel_type,omitempty" json:"fuelType,omitempty"`
	Features        []string            `bson:"features,omitempty" json:"carFeatures,omitempty"`
	Images          []string            `bson:"images,omitempty" json:"images,omitempty"`
	MaintenanceLogs []MaintenanceLog    `bson:"maintenance_logs,omitempty" json:"maintenanceLogs,omitempty"`
	RentalInfo      *primitive.ObjectID `bson:"rental_info,omitempty" json:"-"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}

// IsValidAvailability checks if an availability value is one of the known states.
func IsValidAvailability(availability string) bool {
	switch availability {
	case AvailabilityAvailable, AvailabilityRented, AvailabilityPendingReturn, AvailabilityInMaintenance:
		return true
	default:
		return false
	}
}

// NeedsAttention reports whether the car sits in the showroom's return queue.
func (c *Car) NeedsAttention() bool {
	return c.Availability == AvailabilityPendingReturn || c.Availability == AvailabilityInMaintenance
}

// PopulatedCar is a car with its current booking (and the booking's client)
// or its owning showroom expanded, depending on the endpoint.
type PopulatedCar struct {
	Car
	Rental *PopulatedBooking `json:"rentalInfo,omitempty"`
	Owner  *AccountSummary   `json:"owner,omitempty"`
}
