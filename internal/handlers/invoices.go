package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/db"
	"github.com/wheelio/rental-backend/internal/invoice"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceHandler serves invoice listings for clients.
type InvoiceHandler struct {
	bookings db.BookingCollection
	store    *invoice.Store
	baseURL  string
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(bookings db.BookingCollection, store *invoice.Store, baseURL string) *InvoiceHandler {
	return &InvoiceHandler{bookings: bookings, store: store, baseURL: baseURL}
}

// ListUserInvoices returns {bookingId, invoiceUrl} pairs for every invoice
// artifact belonging to one of the caller's bookings. The two empty cases
// (no bookings at all, bookings but no artifacts) are distinct not-found
// responses.
func (h *InvoiceHandler) ListUserInvoices(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.AccountID(c))
	if err != nil {
		apperrors.Respond(c, apperrors.Auth("Invalid session"))
		return
	}

	bookings, err := h.bookings.FindBookingsByUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	if len(bookings) == 0 {
		apperrors.Respond(c, apperrors.NotFound("No bookings found for this user"))
		return
	}

	files, err := h.store.List()
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	var invoices []models.UserInvoice
	for _, file := range files {
		for _, booking := range bookings {
			if strings.Contains(file, booking.ID.Hex()) {
				invoices = append(invoices, models.UserInvoice{
					BookingID:  booking.ID.Hex(),
					InvoiceURL: invoice.URL(h.baseURL, file),
				})
				break
			}
		}
	}
	if len(invoices) == 0 {
		apperrors.Respond(c, apperrors.NotFound("No invoices found for your bookings"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": invoices})
}
