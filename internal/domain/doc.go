// Package domain defines the marketplace's core records (services, bookings,
// testimonials), their validation rules, and the sentinel errors shared by
// the store and API layers.
package domain
