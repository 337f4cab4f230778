package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. A booking moves one way per cycle: rented -> returned.
const (
	BookingRented   = "rented"
	BookingReturned = "returned"
)

// Booking represents a rental transaction linked 1:1 to a car.
type Booking struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CarID              primitive.ObjectID `bson:"car_id" json:"carId"`
	UserID             primitive.ObjectID `bson:"user_id" json:"userId"`
	Status             string             `bson:"status" json:"status"`
	RepairDescriptions string             `bson:"repair_descriptions,omitempty" json:"repairDescriptions,omitempty"`
	InvoiceURLs        []string           `bson:"invoice_urls,omitempty" json:"invoiceUrls,omitempty"`
	CurrentInvoiceURL  string             `bson:"current_invoice_url,omitempty" json:"currentInvoiceUrl,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// PopulatedBooking is a booking with its client account expanded.
type PopulatedBooking struct {
	Booking
	Client *AccountSummary `json:"client,omitempty"`
}

// UserInvoice pairs a booking with one of its invoice artifacts.
type UserInvoice struct {
	BookingID  string `json:"bookingId"`
	InvoiceURL string `json:"invoiceUrl"`
}
