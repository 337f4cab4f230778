package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// carRouter wires the handler behind a fake session for ownerID.
func carRouter(h *CarHandler, ownerID primitive.ObjectID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAccountID, ownerID.Hex())
		c.Set(middleware.ContextRole, models.RoleShowroom)
	})
	r.POST("/cars", h.AddCar)
	r.GET("/cars", h.ListOwnerCars)
	r.GET("/cars/returnable", h.ListReturnableCars)
	r.PUT("/cars/return-details", h.UpdateReturnDetails)
	r.PUT("/cars/:id", h.UpdateCar)
	r.DELETE("/cars/:id", h.RemoveCar)
	r.GET("/catalog/cars", h.ListAllCars)
	r.GET("/catalog/cars/search", h.SearchCars)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCarRequest() gin.H {
	return gin.H{
		"carBrand":   "Toyota",
		"carModel":   "Corolla",
		"rentRate":   50.0,
		"year":       2022,
		"engineType": "Petrol",
	}
}

func TestAddCarSuccess(t *testing.T) {
	cars := new(MockCarCollection)
	ownerID := primitive.NewObjectID()
	cars.On("InsertCar", mock.Anything, mock.MatchedBy(func(car models.Car) bool {
		return car.OwnerID == ownerID &&
			car.Availability == models.AvailabilityAvailable &&
			car.Brand == "Toyota"
	})).Return(nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodPost, "/cars", validCarRequest())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Car has been added successfully.", decodeBody(t, w)["message"])
	cars.AssertExpectations(t)
}

func TestAddCarMissingFields(t *testing.T) {
	cars := new(MockCarCollection)
	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))

	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodPost, "/cars", gin.H{
		"carBrand": "Toyota",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide all required fields.", decodeBody(t, w)["error"])
	cars.AssertNotCalled(t, "InsertCar", mock.Anything, mock.Anything)
}

func TestListReturnableCarsFiltersAvailability(t *testing.T) {
	cars := new(MockCarCollection)
	ownerID := primitive.NewObjectID()
	cars.On("FindCarsByOwner", mock.Anything, ownerID,
		[]string{models.AvailabilityPendingReturn, models.AvailabilityInMaintenance}).
		Return([]models.Car{}, nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodGet, "/cars/returnable", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cars.AssertExpectations(t)
}

func TestListOwnerCarsPopulatesRental(t *testing.T) {
	cars := new(MockCarCollection)
	bookings := new(MockBookingCollection)
	accounts := new(MockAccountCollection)
	ownerID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	car := models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID, Brand: "Honda",
		Availability: models.AvailabilityRented, RentalInfo: &bookingID}
	cars.On("FindCarsByOwner", mock.Anything, ownerID, []string(nil)).Return([]models.Car{car}, nil)
	bookings.On("FindBookingByID", mock.Anything, bookingID).
		Return(&models.Booking{ID: bookingID, CarID: car.ID, UserID: clientID, Status: models.BookingRented}, nil)
	accounts.On("FindAccountByID", mock.Anything, clientID.Hex()).
		Return(&models.Account{ID: clientID, OwnerName: "Ali", Email: "ali@test.com"}, nil)

	h := NewCarHandler(cars, bookings, accounts)
	w := doJSON(t, carRouter(h, ownerID), http.MethodGet, "/cars", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	rental, ok := listed[0]["rentalInfo"].(map[string]any)
	require.True(t, ok, "rentalInfo should be populated")
	client, ok := rental["client"].(map[string]any)
	require.True(t, ok, "client should be populated")
	assert.Equal(t, "Ali", client["ownerName"])
}

func TestListOwnerCarsToleratesDanglingBooking(t *testing.T) {
	cars := new(MockCarCollection)
	bookings := new(MockBookingCollection)
	ownerID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()

	car := models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID, RentalInfo: &bookingID}
	cars.On("FindCarsByOwner", mock.Anything, ownerID, []string(nil)).Return([]models.Car{car}, nil)
	bookings.On("FindBookingByID", mock.Anything, bookingID).
		Return(nil, apperrors.NotFound("Booking not found"))

	h := NewCarHandler(cars, bookings, new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodGet, "/cars", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1, "car with a dangling booking reference is still listed")
}

func TestSearchCarsRequiresQuery(t *testing.T) {
	h := NewCarHandler(new(MockCarCollection), new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodGet, "/catalog/cars/search", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter car model or car brand to search", decodeBody(t, w)["error"])
}

func TestSearchCarsNoMatches(t *testing.T) {
	cars := new(MockCarCollection)
	cars.On("SearchCars", mock.Anything, "civic", "").Return([]models.Car{}, nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodGet, "/catalog/cars/search?carmodel=civic", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No cars found matching your search criteria.", decodeBody(t, w)["error"])
}

func TestSearchCarsStripsOwnerContactDetails(t *testing.T) {
	cars := new(MockCarCollection)
	accounts := new(MockAccountCollection)
	ownerID := primitive.NewObjectID()

	car := models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID, Brand: "Honda", Model: "Civic"}
	cars.On("SearchCars", mock.Anything, "civic", "").Return([]models.Car{car}, nil)
	accounts.On("FindAccountByID", mock.Anything, ownerID.Hex()).
		Return(&models.Account{ID: ownerID, ShowroomName: "Prime Motors",
			Email: "owner@test.com", ContactNumber: "0300"}, nil)

	h := NewCarHandler(cars, new(MockBookingCollection), accounts)
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodGet, "/catalog/cars/search?carmodel=civic", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	owner, ok := listed[0]["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Prime Motors", owner["showroomName"])
	assert.NotContains(t, owner, "email")
	assert.NotContains(t, owner, "contactNumber")
}

func TestRemoveCarRefusedWhileBooked(t *testing.T) {
	cars := new(MockCarCollection)
	bookings := new(MockBookingCollection)
	ownerID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()

	car := &models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID,
		Availability: models.AvailabilityRented, RentalInfo: &bookingID}
	cars.On("FindCarByID", mock.Anything, car.ID.Hex()).Return(car, nil)
	bookings.On("FindBookingByID", mock.Anything, bookingID).
		Return(&models.Booking{ID: bookingID, Status: models.BookingRented}, nil)

	h := NewCarHandler(cars, bookings, new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodDelete, "/cars/"+car.ID.Hex(), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Car is currently booked. Cannot delete.", decodeBody(t, w)["error"])
	cars.AssertNotCalled(t, "DeleteCar", mock.Anything, mock.Anything)
}

func TestRemoveCarRejectsNonOwner(t *testing.T) {
	cars := new(MockCarCollection)
	realOwner := primitive.NewObjectID()

	car := &models.Car{ID: primitive.NewObjectID(), OwnerID: realOwner}
	cars.On("FindCarByID", mock.Anything, car.ID.Hex()).Return(car, nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodDelete, "/cars/"+car.ID.Hex(), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. You can only delete cars you own.", decodeBody(t, w)["error"])
	cars.AssertNotCalled(t, "DeleteCar", mock.Anything, mock.Anything)
}

func TestRemoveCarWithReturnedBooking(t *testing.T) {
	cars := new(MockCarCollection)
	bookings := new(MockBookingCollection)
	ownerID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()

	car := &models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID, RentalInfo: &bookingID}
	cars.On("FindCarByID", mock.Anything, car.ID.Hex()).Return(car, nil)
	bookings.On("FindBookingByID", mock.Anything, bookingID).
		Return(&models.Booking{ID: bookingID, Status: models.BookingReturned}, nil)
	cars.On("DeleteCar", mock.Anything, car.ID.Hex()).Return(nil)

	h := NewCarHandler(cars, bookings, new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodDelete, "/cars/"+car.ID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Car has been successfully deleted.", decodeBody(t, w)["message"])
	cars.AssertExpectations(t)
}

func TestRemoveCarWithoutBookingReference(t *testing.T) {
	cars := new(MockCarCollection)
	ownerID := primitive.NewObjectID()

	car := &models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID}
	cars.On("FindCarByID", mock.Anything, car.ID.Hex()).Return(car, nil)
	cars.On("DeleteCar", mock.Anything, car.ID.Hex()).Return(nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodDelete, "/cars/"+car.ID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cars.AssertExpectations(t)
}

func TestRemoveCarNotFound(t *testing.T) {
	cars := new(MockCarCollection)
	id := primitive.NewObjectID()
	cars.On("FindCarByID", mock.Anything, id.Hex()).
		Return(nil, apperrors.NotFound("Car not found. Please try again."))

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodDelete, "/cars/"+id.Hex(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCarPreservesLifecycleState(t *testing.T) {
	cars := new(MockCarCollection)
	ownerID := primitive.NewObjectID()
	bookingID := primitive.NewObjectID()

	car := &models.Car{ID: primitive.NewObjectID(), OwnerID: ownerID, Brand: "Old",
		Availability: models.AvailabilityRented, RentalInfo: &bookingID}
	cars.On("FindCarByID", mock.Anything, car.ID.Hex()).Return(car, nil)
	cars.On("SaveCar", mock.Anything, mock.MatchedBy(func(c *models.Car) bool {
		return c.Brand == "Toyota" &&
			c.Availability == models.AvailabilityRented &&
			c.RentalInfo != nil && *c.RentalInfo == bookingID
	})).Return(nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, ownerID), http.MethodPut, "/cars/"+car.ID.Hex(), validCarRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	cars.AssertExpectations(t)
}

func TestUpdateReturnDetails(t *testing.T) {
	cars := new(MockCarCollection)
	carID := primitive.NewObjectID().Hex()
	cars.On("UpdateCarFields", mock.Anything, carID, 42000.0, 0.5).Return(nil)

	h := NewCarHandler(cars, new(MockBookingCollection), new(MockAccountCollection))
	w := doJSON(t, carRouter(h, primitive.NewObjectID()), http.MethodPut, "/cars/return-details", gin.H{
		"carId":     carID,
		"mileage":   42000.0,
		"fuelLevel": 0.5,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	cars.AssertExpectations(t)
}
