package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingBody(user, provider string) map[string]interface{} {
	return map[string]interface{}{
		"serviceId":     uuid.NewString(),
		"serviceName":   "Plumbing",
		"userEmail":     user,
		"providerEmail": provider,
		"price":         40,
	}
}

func TestBookingHandler_Flow(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)

	w := api.do(http.MethodPost, "/services/booking", bookingBody("alice@example.com", "bob@example.com"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decodeBody[store.InsertResult](t, w)

	w = api.do(http.MethodPost, "/services/booking", bookingBody("carol@example.com", "bob@example.com"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	alice := api.login("alice@example.com")
	bob := api.login("bob@example.com")

	t.Run("user sees own bookings with default status", func(t *testing.T) {
		w := api.do(http.MethodGet, "/booked/services?user=alice@example.com", nil, alice)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		bookings := decodeBody[[]domain.Booking](t, w)
		require.Len(t, bookings, 1)
		assert.Equal(t, first.InsertedID, bookings[0].ID)
		assert.Equal(t, domain.BookingStatusPending, bookings[0].ServiceStatus)
	})

	t.Run("provider sees bookings made with them", func(t *testing.T) {
		w := api.do(http.MethodGet, "/booked/services?provider=bob@example.com", nil, bob)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decodeBody[[]domain.Booking](t, w), 2)
	})

	t.Run("user parameter shadows provider", func(t *testing.T) {
		w := api.do(http.MethodGet, "/booked/services?user=alice@example.com&provider=bob@example.com", nil, bob)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no scope is forbidden", func(t *testing.T) {
		w := api.do(http.MethodGet, "/booked/services", nil, bob)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		w := api.do(http.MethodGet, "/booked/services?user=alice@example.com", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("any status string is stored verbatim", func(t *testing.T) {
		target := "/booked-service/update-status/" + first.InsertedID.String()
		w := api.do(http.MethodPatch, target, map[string]string{"serviceStatus": "Working on it!"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		result := decodeBody[store.UpdateResult](t, w)
		assert.Equal(t, int64(1), result.MatchedCount)
		assert.Equal(t, int64(1), result.ModifiedCount)

		w = api.do(http.MethodGet, "/booked/services?user=alice@example.com", nil, alice)
		bookings := decodeBody[[]domain.Booking](t, w)
		require.Len(t, bookings, 1)
		assert.Equal(t, "Working on it!", bookings[0].ServiceStatus)
	})
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		id              string
		body            interface{}
		expectedStatus  int
		expectedMatched int64
	}{
		{
			name:            "missing booking is not created",
			id:              uuid.NewString(),
			body:            map[string]string{"serviceStatus": "completed"},
			expectedStatus:  http.StatusOK,
			expectedMatched: 0,
		},
		{
			name:           "status is required",
			id:             uuid.NewString(),
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed id",
			id:             "nope",
			body:           map[string]string{"serviceStatus": "completed"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api := newTestAPI(t, false)
			w := api.do(http.MethodPatch, "/booked-service/update-status/"+tc.id, tc.body, nil)
			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.expectedStatus != http.StatusOK {
				return
			}

			result := decodeBody[store.UpdateResult](t, w)
			assert.Equal(t, tc.expectedMatched, result.MatchedCount)
			assert.Equal(t, int64(0), result.UpsertedCount)

			bookings, err := api.stores.Bookings.List(context.Background(), store.BookingFilter{ProviderEmail: "bob@example.com"})
			require.NoError(t, err)
			assert.Empty(t, bookings)
		})
	}
}

func TestBookingHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, false)

	body := bookingBody("alice@example.com", "bob@example.com")
	delete(body, "userEmail")
	w := api.do(http.MethodPost, "/services/booking", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = bookingBody("alice@example.com", "bob@example.com")
	body["serviceId"] = ""
	w = api.do(http.MethodPost, "/services/booking", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_GatedWrites(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, true)
	alice := api.login("alice@example.com")
	body := bookingBody("alice@example.com", "bob@example.com")

	w := api.do(http.MethodPost, "/services/booking", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mallory := api.login("mallory@example.com")
	w = api.do(http.MethodPost, "/services/booking", body, mallory)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/services/booking", body, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	booking := decodeBody[store.InsertResult](t, w)

	target := "/booked-service/update-status/" + booking.InsertedID.String()
	w = api.do(http.MethodPatch, target, map[string]string{"serviceStatus": "done"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPatch, target, map[string]string{"serviceStatus": "done"}, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), decodeBody[store.UpdateResult](t, w).ModifiedCount)
}
