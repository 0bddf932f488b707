package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/servicehub-api/internal/api/middleware"
	"github.com/phrazzld/servicehub-api/internal/metrics"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// Gate names the access check a route runs before its handler.
type Gate string

const (
	// GatePublic routes run for any caller.
	GatePublic Gate = "public"
	// GateAuthenticated routes require a valid session cookie.
	GateAuthenticated Gate = "authenticated"
	// GateOwner routes also require a query scope equal to the caller's email.
	GateOwner Gate = "owner"
	// GateBodyOwner routes require a body field equal to the caller's email.
	GateBodyOwner Gate = "body-owner"
)

// Operation identifies the handler a policy row dispatches to.
type Operation string

const (
	OpIssueToken        Operation = "issue-token"
	OpRemoveToken       Operation = "remove-token"
	OpListServices      Operation = "list-services"
	OpListOwnedServices Operation = "list-owned-services"
	OpAddService        Operation = "add-service"
	OpGetService        Operation = "get-service"
	OpDeleteService     Operation = "delete-service"
	OpPatchService      Operation = "patch-service"
	OpBookService       Operation = "book-service"
	OpListBookings      Operation = "list-bookings"
	OpUpdateStatus      Operation = "update-booking-status"
	OpAddTestimonial    Operation = "add-testimonial"
	OpListTestimonials  Operation = "list-testimonials"
	OpRoot              Operation = "root"
	OpHealth            Operation = "health"
)

// Policy is one route: where it lives, who may call it and what it runs.
type Policy struct {
	Method    string
	Pattern   string
	Gate      Gate
	Operation Operation

	// OwnerParams are the query parameters checked by GateOwner, in order
	// of precedence.
	OwnerParams []string

	// BodyOwnerField is the JSON field checked by GateBodyOwner.
	BodyOwnerField string
}

// RoutePolicies returns the full route table. gateBookingWrites puts booking
// creation behind a body ownership check and status updates behind a valid
// session; otherwise both are public.
func RoutePolicies(gateBookingWrites bool) []Policy {
	book := Policy{Method: http.MethodPost, Pattern: "/services/booking", Gate: GatePublic, Operation: OpBookService}
	status := Policy{
		Method:    http.MethodPatch,
		Pattern:   "/booked-service/update-status/{id}",
		Gate:      GatePublic,
		Operation: OpUpdateStatus,
	}
	if gateBookingWrites {
		book.Gate = GateBodyOwner
		book.BodyOwnerField = "userEmail"
		status.Gate = GateAuthenticated
	}

	return []Policy{
		{Method: http.MethodGet, Pattern: "/", Gate: GatePublic, Operation: OpRoot},
		{Method: http.MethodGet, Pattern: "/health", Gate: GatePublic, Operation: OpHealth},
		{Method: http.MethodPost, Pattern: "/jwt", Gate: GatePublic, Operation: OpIssueToken},
		{Method: http.MethodPost, Pattern: "/remove-token", Gate: GatePublic, Operation: OpRemoveToken},
		{Method: http.MethodGet, Pattern: "/services", Gate: GatePublic, Operation: OpListServices},
		{
			Method:      http.MethodGet,
			Pattern:     "/manage-services",
			Gate:        GateOwner,
			Operation:   OpListOwnedServices,
			OwnerParams: []string{"email"},
		},
		{Method: http.MethodPost, Pattern: "/add-service", Gate: GatePublic, Operation: OpAddService},
		{Method: http.MethodGet, Pattern: "/services/{id}", Gate: GatePublic, Operation: OpGetService},
		{Method: http.MethodDelete, Pattern: "/services/{id}", Gate: GatePublic, Operation: OpDeleteService},
		{Method: http.MethodPatch, Pattern: "/service/{id}", Gate: GatePublic, Operation: OpPatchService},
		book,
		{
			Method:      http.MethodGet,
			Pattern:     "/booked/services",
			Gate:        GateOwner,
			Operation:   OpListBookings,
			OwnerParams: []string{"user", "provider"},
		},
		status,
		{Method: http.MethodPost, Pattern: "/add-testimonial", Gate: GatePublic, Operation: OpAddTestimonial},
		{Method: http.MethodGet, Pattern: "/testimonials", Gate: GatePublic, Operation: OpListTestimonials},
	}
}

// RouterDeps are the collaborators the API router needs.
type RouterDeps struct {
	Stores            store.Stores
	Tokens            auth.TokenService
	Cookies           auth.CookiePolicy
	GateBookingWrites bool

	// Recorder receives auth decisions. Nil disables them.
	Recorder metrics.Recorder
}

// NewRouter builds a chi router with one route per RoutePolicies row.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()
	Register(r, deps)
	return r
}

// Register adds the policy-driven routes to r.
func Register(r chi.Router, deps RouterDeps) {
	authMW := middleware.NewAuthMiddleware(deps.Tokens, deps.Cookies.Name, deps.Recorder)
	handlers := operations(deps)

	for _, p := range RoutePolicies(deps.GateBookingWrites) {
		h, ok := handlers[p.Operation]
		if !ok {
			panic("api: no handler for operation " + string(p.Operation))
		}

		switch p.Gate {
		case GateAuthenticated:
			h = authMW.Authenticate(h)
		case GateOwner:
			h = authMW.Authenticate(authMW.RequireOwner(p.OwnerParams...)(h))
		case GateBodyOwner:
			h = authMW.Authenticate(authMW.RequireBodyOwner(p.BodyOwnerField)(h))
		}

		r.Method(p.Method, p.Pattern, h)
	}
}

func operations(deps RouterDeps) map[Operation]http.Handler {
	authH := NewAuthHandler(deps.Tokens, deps.Cookies)
	services := NewServiceHandler(deps.Stores.Services)
	bookings := NewBookingHandler(deps.Stores.Bookings)
	testimonials := NewTestimonialHandler(deps.Stores.Testimonials)
	health := NewHealthHandler(deps.Stores.Health)

	return map[Operation]http.Handler{
		OpIssueToken:        http.HandlerFunc(authH.IssueToken),
		OpRemoveToken:       http.HandlerFunc(authH.RemoveToken),
		OpListServices:      http.HandlerFunc(services.List),
		OpListOwnedServices: http.HandlerFunc(services.ListOwned),
		OpAddService:        http.HandlerFunc(services.Create),
		OpGetService:        http.HandlerFunc(services.Get),
		OpDeleteService:     http.HandlerFunc(services.Delete),
		OpPatchService:      http.HandlerFunc(services.Patch),
		OpBookService:       http.HandlerFunc(bookings.Create),
		OpListBookings:      http.HandlerFunc(bookings.List),
		OpUpdateStatus:      http.HandlerFunc(bookings.UpdateStatus),
		OpAddTestimonial:    http.HandlerFunc(testimonials.Create),
		OpListTestimonials:  http.HandlerFunc(testimonials.List),
		OpRoot:              http.HandlerFunc(health.Root),
		OpHealth:            http.HandlerFunc(health.Health),
	}
}
