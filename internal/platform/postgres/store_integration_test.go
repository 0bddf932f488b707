//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/postgres"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/phrazzld/servicehub-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB returns an emptied, migrated test database.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db := testdb.Open(t)
	testdb.Reset(t, db)
	return db
}

func TestServiceStore_Integration(t *testing.T) {
	db := openTestDB(t)
	stores := postgres.NewStores(db, nil)
	ctx := context.Background()

	for _, name := range []string{"Plumbing", "Gardening", "Emergency plumber"} {
		_, err := stores.Services.Insert(ctx, &domain.Service{
			ServiceName:   name,
			ProviderEmail: "provider@example.com",
			Price:         25,
		})
		require.NoError(t, err)
	}

	got, err := stores.Services.List(ctx, store.ServiceFilter{Search: "plumb"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = stores.Services.List(ctx, store.ServiceFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = stores.Services.List(ctx, store.ServiceFilter{Search: "("})
	assert.ErrorIs(t, err, store.ErrInvalidQuery)

	id := got[0].ID
	res, err := stores.Services.Upsert(ctx, id, domain.Fields{"price": json.RawMessage(`40`)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	res, err = stores.Services.Upsert(ctx, id, domain.Fields{"price": json.RawMessage(`40`)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.ModifiedCount)

	updated, err := stores.Services.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 40.0, updated.Price)
	assert.Equal(t, "Plumbing", updated.ServiceName)

	newID := uuid.New()
	res, err = stores.Services.Upsert(ctx, newID, domain.Fields{"serviceName": json.RawMessage(`"Tiling"`)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)
	require.NotNil(t, res.UpsertedID)
	assert.Equal(t, newID, *res.UpsertedID)

	missing, err := stores.Services.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	del, err := stores.Services.Delete(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	del, err = stores.Services.Delete(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)

	require.NoError(t, stores.Health.Ping(ctx))
}

func TestBookingStore_Integration(t *testing.T) {
	db := openTestDB(t)
	stores := postgres.NewStores(db, nil)
	ctx := context.Background()

	booking := &domain.Booking{
		ServiceID:     uuid.NewString(),
		UserEmail:     "alice@example.com",
		ProviderEmail: "bob@example.com",
		ServiceStatus: domain.BookingStatusPending,
	}
	_, err := stores.Bookings.Insert(ctx, booking)
	require.NoError(t, err)

	byUser, err := stores.Bookings.List(ctx, store.BookingFilter{UserEmail: "alice@example.com"})
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	byProvider, err := stores.Bookings.List(ctx, store.BookingFilter{ProviderEmail: "bob@example.com"})
	require.NoError(t, err)
	require.Len(t, byProvider, 1)

	res, err := stores.Bookings.UpdateStatus(ctx, booking.ID, "on hold")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	byUser, err = stores.Bookings.List(ctx, store.BookingFilter{UserEmail: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "on hold", byUser[0].ServiceStatus)

	res, err = stores.Bookings.UpdateStatus(ctx, uuid.New(), "done")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
}

func TestTestimonialStore_Integration(t *testing.T) {
	db := openTestDB(t)
	stores := postgres.NewStores(db, nil)
	ctx := context.Background()

	_, err := stores.Testimonials.Insert(ctx, &domain.Testimonial{Name: "Ann", Review: "Great", Rating: 5})
	require.NoError(t, err)

	got, err := stores.Testimonials.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].Name)
}
