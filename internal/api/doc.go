// Package api handles incoming HTTP requests for the marketplace: session
// issuance, service listings, bookings and testimonials. Routes and their
// access gates are declared in one policy table (see RoutePolicies), and
// handlers translate store results to JSON without interpreting them, so
// a lookup that matches nothing is an empty success rather than an error.
package api
