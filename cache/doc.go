// Package cache memoizes normalized responses.
//
// Entries are keyed by a digest of the request (search type, filters and body) and expire
// after a TTL. When the cache is full the entry closest to expiry is evicted.
package cache
