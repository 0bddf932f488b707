package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/api/middleware"
	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// BookingHandler serves booking routes.
type BookingHandler struct {
	bookings store.BookingStore
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings store.BookingStore) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /services/booking.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var booking domain.Booking
	if err := shared.DecodeJSON(r, &booking); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	booking.ID = uuid.Nil
	booking.Normalize()
	if err := booking.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.bookings.Insert(r.Context(), &booking)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to book service")
		return
	}

	logger.FromContext(r.Context()).Info("service booked",
		slog.String("booking_id", result.InsertedID.String()),
		slog.String("service_id", booking.ServiceID))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// List handles GET /booked/services. A user scope lists that user's
// bookings; otherwise the provider scope lists bookings made with that
// provider.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.BookingFilter
	name, value, _ := middleware.ScopeFromQuery(r, "user", "provider")
	if name == "user" {
		filter.UserEmail = value
	} else {
		filter.ProviderEmail = value
	}

	bookings, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list bookings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, bookings)
}

// UpdateStatus handles PATCH /booked-service/update-status/{id}. Any string
// is accepted as the new status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.bookings.UpdateStatus(r.Context(), id, *req.ServiceStatus)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update booking status")
		return
	}

	logger.FromContext(r.Context()).Info("booking status updated",
		slog.String("booking_id", id.String()),
		slog.Int64("matched", result.MatchedCount))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
