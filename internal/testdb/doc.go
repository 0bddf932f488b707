// Package testdb connects integration tests to a disposable Postgres
// database.
//
// Tests call Open to get a migrated connection pool. When no test database
// is configured, Open skips the test on a developer machine and fails it in
// CI, where a missing database always means a broken pipeline:
//
//	func TestBookingStore_Integration(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.Reset(t, db)
//		stores := postgres.NewStores(db, nil)
//		// ...
//	}
//
// Tables are shared between tests, so tests using the same database must
// not run in parallel; each one calls Reset before seeding.
package testdb
