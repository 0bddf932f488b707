package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// ServiceHandler serves the service listing routes.
type ServiceHandler struct {
	services store.ServiceStore
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(services store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// List handles GET /services. searchParams is matched case-insensitively as
// a regular expression against the service name; limit caps the result.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ServiceFilter{
		Search: query.Get("searchParams"),
		Limit:  parseLimit(query.Get("limit")),
	}

	services, err := h.services.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list services")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, services)
}

// ListOwned handles GET /manage-services?email=. The ownership gate has
// already confirmed email is the caller's.
func (h *ServiceHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	filter := store.ServiceFilter{ProviderEmail: r.URL.Query().Get("email")}

	services, err := h.services.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list services")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, services)
}

// Get handles GET /services/{id}. A missing service is a 200 with a null
// body.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	service, err := h.services.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get service")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, service)
}

// Create handles POST /add-service. The body must use service fields only,
// the same rule Patch applies.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := shared.ReadBody(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	service, err := domain.DecodeService(body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := service.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.services.Insert(r.Context(), service)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add service")
		return
	}

	logger.FromContext(r.Context()).Info("service added",
		slog.String("service_id", result.InsertedID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Delete handles DELETE /services/{id}. Deleting a missing service reports
// a zero count.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.services.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete service")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Patch handles PATCH /service/{id}. The body's fields are set on the
// service, which is created when it does not exist.
func (h *ServiceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	body, err := shared.ReadBody(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	fields, err := domain.NewServicePatch(body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.services.Upsert(r.Context(), id, fields)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update service")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
