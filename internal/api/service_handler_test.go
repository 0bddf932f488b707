package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/memory"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceHandler_List(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)
	api.seedService("Plumbing repair", "alice@example.com")
	api.seedService("Garden care", "bob@example.com")
	api.seedService("Emergency PLUMBER", "carol@example.com")

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedNames  []string
	}{
		{
			name:           "all services in insertion order",
			target:         "/services",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Garden care", "Emergency PLUMBER"},
		},
		{
			name:           "limit caps results",
			target:         "/services?limit=2",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Garden care"},
		},
		{
			name:           "zero limit returns all",
			target:         "/services?limit=0",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Garden care", "Emergency PLUMBER"},
		},
		{
			name:           "malformed limit returns all",
			target:         "/services?limit=lots",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Garden care", "Emergency PLUMBER"},
		},
		{
			name:           "leading digits of limit are used",
			target:         "/services?limit=1abc",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair"},
		},
		{
			name:           "negative limit caps by magnitude",
			target:         "/services?limit=-2",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Garden care"},
		},
		{
			name:           "search is case-insensitive",
			target:         "/services?searchParams=plumb",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair", "Emergency PLUMBER"},
		},
		{
			name:           "search is a regular expression",
			target:         "/services?searchParams=%5Egarden",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Garden care"},
		},
		{
			name:           "search and limit combine",
			target:         "/services?searchParams=plumb&limit=1",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Plumbing repair"},
		},
		{
			name:           "no match is an empty list",
			target:         "/services?searchParams=roofing",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{},
		},
		{
			name:           "invalid pattern is a bad request",
			target:         "/services?searchParams=%28",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(http.MethodGet, tc.target, nil, nil)
			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.expectedNames == nil {
				return
			}

			services := decodeBody[[]domain.Service](t, w)
			names := make([]string, 0, len(services))
			for _, s := range services {
				names = append(names, s.ServiceName)
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}

func TestServiceHandler_CreateAndGet(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)

	w := api.do(http.MethodPost, "/add-service", map[string]interface{}{
		"_id":            "ignored",
		"serviceName":    "Window cleaning",
		"provider_email": "alice@example.com",
		"price":          25,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeBody[store.InsertResult](t, w)
	assert.True(t, result.Acknowledged)
	require.NotEqual(t, uuid.Nil, result.InsertedID)

	w = api.do(http.MethodGet, "/services/"+result.InsertedID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[domain.Service](t, w)
	assert.Equal(t, result.InsertedID, got.ID)
	assert.Equal(t, "Window cleaning", got.ServiceName)
	assert.Equal(t, "alice@example.com", got.ProviderEmail)
	assert.Equal(t, 25.0, got.Price)
}

func TestServiceHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing name", body: map[string]interface{}{"provider_email": "alice@example.com"}},
		{name: "missing provider", body: map[string]interface{}{"serviceName": "Cleaning"}},
		{name: "negative price", body: map[string]interface{}{
			"serviceName": "Cleaning", "provider_email": "alice@example.com", "price": -1,
		}},
		{name: "not json", body: "nope"},
		{name: "unknown field", body: map[string]interface{}{
			"serviceName": "Cleaning", "provider_email": "alice@example.com", "category": "home",
		}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api := newTestAPI(t, false)
			w := api.do(http.MethodPost, "/add-service", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, 0, api.db.Calls(), "store is not called for invalid input")
		})
	}
}

func TestServiceHandler_Get(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)

	t.Run("missing service is null", func(t *testing.T) {
		w := api.do(http.MethodGet, "/services/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null\n", w.Body.String())
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		w := api.do(http.MethodGet, "/services/not-an-id", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid ID format", decodeBody[map[string]interface{}](t, w)["error"])
	})
}

func TestServiceHandler_Delete(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)
	svc := api.seedService("Plumbing", "alice@example.com")

	w := api.do(http.MethodDelete, "/services/"+svc.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeBody[store.DeleteResult](t, w).DeletedCount)

	w = api.do(http.MethodDelete, "/services/"+svc.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decodeBody[store.DeleteResult](t, w).DeletedCount)

	w = api.do(http.MethodDelete, "/services/bad", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceHandler_Patch(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)
	svc := api.seedService("Plumbing", "alice@example.com")

	t.Run("sets named fields only", func(t *testing.T) {
		w := api.do(http.MethodPatch, "/service/"+svc.ID.String(), map[string]interface{}{"price": 99}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		result := decodeBody[store.UpdateResult](t, w)
		assert.Equal(t, int64(1), result.MatchedCount)
		assert.Equal(t, int64(1), result.ModifiedCount)
		assert.Nil(t, result.UpsertedID)

		got, err := api.stores.Services.Get(context.Background(), svc.ID)
		require.NoError(t, err)
		assert.Equal(t, 99.0, got.Price)
		assert.Equal(t, "Plumbing", got.ServiceName)
	})

	t.Run("same values report no modification", func(t *testing.T) {
		w := api.do(http.MethodPatch, "/service/"+svc.ID.String(), map[string]interface{}{"price": 99}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		result := decodeBody[store.UpdateResult](t, w)
		assert.Equal(t, int64(1), result.MatchedCount)
		assert.Equal(t, int64(0), result.ModifiedCount)
	})

	t.Run("missing service is created", func(t *testing.T) {
		id := uuid.New()
		w := api.do(http.MethodPatch, "/service/"+id.String(), map[string]interface{}{
			"serviceName": "Roofing",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		result := decodeBody[store.UpdateResult](t, w)
		assert.Equal(t, int64(0), result.MatchedCount)
		assert.Equal(t, int64(1), result.UpsertedCount)
		require.NotNil(t, result.UpsertedID)
		assert.Equal(t, id, *result.UpsertedID)

		got, err := api.stores.Services.Get(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Roofing", got.ServiceName)
	})

	t.Run("unknown field is a bad request", func(t *testing.T) {
		w := api.do(http.MethodPatch, "/service/"+svc.ID.String(), map[string]interface{}{
			"price": 10, "category": "home",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error: body contains an unknown or mistyped field",
			decodeBody[map[string]interface{}](t, w)["error"])
	})

	t.Run("non-object body is a bad request", func(t *testing.T) {
		w := api.do(http.MethodPatch, "/service/"+svc.ID.String(), `[1,2]`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		w := api.do(http.MethodPatch, "/service/123", map[string]interface{}{"price": 1}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServiceHandler_StoreFailure(t *testing.T) {
	t.Parallel()

	db := memory.New().WithError(errors.New("connection reset by peer"))
	router := NewRouter(RouterDeps{
		Stores:  db.Stores(),
		Cookies: auth.NewCookiePolicy("token", false),
	})
	api := &testAPI{t: t, db: db, stores: db.Stores(), router: router}

	w := api.do(http.MethodGet, "/services", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody[shared.ErrorResponse](t, w)
	assert.Equal(t, "Failed to list services", body.Error)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestServiceHandler_OwnerOnPrivateDomain(t *testing.T) {
	t.Parallel()

	const owner = "owner@corp.invalid"
	api := newTestAPI(t, false)
	cookie := api.login(owner)

	w := api.do(http.MethodPost, "/add-service", map[string]interface{}{
		"serviceName":    "Intranet support",
		"provider_email": owner,
		"price":          15,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/manage-services?email="+owner, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	services := decodeBody[[]domain.Service](t, w)
	require.Len(t, services, 1)
	assert.Equal(t, "Intranet support", services[0].ServiceName)

	w = api.do(http.MethodPost, "/services/booking", bookingBody(owner, "bob@example.com"), cookie)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
