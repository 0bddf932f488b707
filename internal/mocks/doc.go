// Package mocks provides function-field mocks of the service and store
// interfaces for tests.
//
// Each mock calls its Fn field when set and otherwise returns its default
// values. Store mocks count calls so tests can assert that a request was
// rejected before any data was touched:
//
//	services := &mocks.MockServiceStore{}
//	// ... exercise a gated route ...
//	assert.Zero(t, services.TotalCalls())
package mocks
