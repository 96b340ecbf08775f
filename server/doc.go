// Package server exposes the normalizer over HTTP.
//
// Routes:
//
//	GET  /api/health
//	POST /api/flights/normalize   body: upstream search payload
//	GET  /api/flights/search      proxies the configured upstream search endpoint
//
// Both flight routes accept searchType, airline, airport, maxStops, maxRisk and view
// (flights|cards) query parameters.
package server
