// Package marketplace is the HTTP client for the property marketplace API.
//
// Three endpoints are used, all relative to the configured api_base:
//
//	GET  public/plots/{id}/               plot layout, price and booked units
//	GET  public/plots/{id}/availability/  booked units, polled in the background
//	POST bookings/                        booking submission
//
// Requests carry a five second timeout. A 409 response to a submission maps
// to ErrConflict so callers can refresh availability and keep the rest of the
// selection. Every other status >= 400 is returned as a plain error naming
// the endpoint and status code.
package marketplace
