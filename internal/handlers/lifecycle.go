package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/rental"
)

// LifecycleHandler exposes the maintenance/return transitions.
type LifecycleHandler struct {
	service *rental.Service
}

// NewLifecycleHandler creates a new lifecycle handler.
func NewLifecycleHandler(service *rental.Service) *LifecycleHandler {
	return &LifecycleHandler{service: service}
}

// AddMaintenanceLog appends a maintenance log entry and moves the car into
// maintenance.
func (h *LifecycleHandler) AddMaintenanceLog(c *gin.Context) {
	var req struct {
		CarID string `json:"carId"`
		Tasks string `json:"tasks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CarID == "" {
		apperrors.Respond(c, apperrors.Validation("Car id is required"))
		return
	}

	car, err := h.service.AddMaintenanceLog(c.Request.Context(), req.CarID, req.Tasks)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance log added", "car": car})
}

type startMaintenanceRequest struct {
	CarID              string  `json:"carId"`
	ShowroomID         string  `json:"showroomId"`
	MaintenanceCost    float64 `json:"maintenanceCost"`
	MaintenanceLog     string  `json:"maintenanceLog"`
	RepairDescriptions string  `json:"repairDescriptions"`
	RentalStartDate    string  `json:"rentalStartDate"`
	RentalStartTime    string  `json:"rentalStartTime"`
	RentalEndDate      string  `json:"rentalEndDate"`
	RentalEndTime      string  `json:"rentalEndTime"`
}

// StartMaintenance bills the rental, emits the maintenance invoice and moves
// the car into maintenance.
func (h *LifecycleHandler) StartMaintenance(c *gin.Context) {
	var req startMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CarID == "" {
		apperrors.Respond(c, apperrors.Validation("Car id is required"))
		return
	}

	car, invoiceURL, err := h.service.StartMaintenance(c.Request.Context(), rental.StartMaintenanceInput{
		CarID:              req.CarID,
		ShowroomID:         req.ShowroomID,
		MaintenanceCost:    req.MaintenanceCost,
		MaintenanceLog:     req.MaintenanceLog,
		RepairDescriptions: req.RepairDescriptions,
		RentalStartDate:    req.RentalStartDate,
		RentalStartTime:    req.RentalStartTime,
		RentalEndDate:      req.RentalEndDate,
		RentalEndTime:      req.RentalEndTime,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Car status updated to Maintenance",
		"car":        car,
		"invoiceUrl": invoiceURL,
	})
}

// CompleteMaintenance returns the booking and makes the car available again.
func (h *LifecycleHandler) CompleteMaintenance(c *gin.Context) {
	car, err := h.service.CompleteMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car status updated to Available", "car": car})
}
