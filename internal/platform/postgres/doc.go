// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces defined in internal/store. Records are kept as JSONB documents,
// one table per dataset, so partial updates behave like a document store's
// top-level field set. It also owns connection setup and the embedded
// schema migrations.
package postgres
