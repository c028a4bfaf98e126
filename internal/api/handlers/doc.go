// Package handlers implements HTTP handlers for the tcgradar API.
//
// Domain endpoints are registered through Huma, which generates the
// OpenAPI description; health probes bind straight to Echo.
package handlers
