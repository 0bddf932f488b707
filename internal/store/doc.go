// Package store defines interfaces for document persistence. Each method is
// one logical document-store operation (find, insert, upsert, delete) over
// one dataset, so handlers stay thin and any backing store (PostgreSQL JSONB,
// in-memory) can be substituted.
package store
