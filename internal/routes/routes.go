package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wheelio/rental-backend/internal/auth"
	"github.com/wheelio/rental-backend/internal/handlers"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/models"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Accounts  *handlers.AccountHandler
	Cars      *handlers.CarHandler
	Lifecycle *handlers.LifecycleHandler
	Invoices  *handlers.InvoiceHandler
}

// Setup registers all API routes.
func Setup(api *gin.RouterGroup, authService *auth.Service, h Handlers) {
	// Public routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Accounts.Signup)
		authGroup.POST("/login", h.Accounts.Login)
		authGroup.POST("/logout", h.Accounts.Logout)
		authGroup.POST("/forgot-password", h.Accounts.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.Accounts.ResetPassword)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/cars", h.Cars.ListAllCars)
		catalog.GET("/cars/search", h.Cars.SearchCars)
	}

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.Authenticate(authService))
	{
		protected.GET("/profile", h.Accounts.GetProfile)
		protected.PUT("/profile", h.Accounts.UpdateProfile)
		protected.GET("/invoices", h.Invoices.ListUserInvoices)
		protected.GET("/showrooms/:id/cars", h.Cars.ListShowroomCars)
	}

	// Showroom-only inventory and lifecycle routes
	showroom := api.Group("/cars")
	showroom.Use(middleware.Authenticate(authService), middleware.RequireRole(models.RoleShowroom))
	{
		showroom.POST("", h.Cars.AddCar)
		showroom.GET("", h.Cars.ListOwnerCars)
		showroom.GET("/returnable", h.Cars.ListReturnableCars)
		showroom.PUT("/return-details", h.Cars.UpdateReturnDetails)
		showroom.PUT("/:id", h.Cars.UpdateCar)
		showroom.DELETE("/:id", h.Cars.RemoveCar)

		showroom.POST("/maintenance-logs", h.Lifecycle.AddMaintenanceLog)
		showroom.POST("/maintenance/start", h.Lifecycle.StartMaintenance)
		showroom.PUT("/:id/maintenance/complete", h.Lifecycle.CompleteMaintenance)
	}
}
