// Package common provides shared utilities for Folio
package common

import "time"

// Freshness TTLs for cached data
const (
	// FreshnessFundCatalog is how long the fund catalog is served without
	// re-fetching from the registry.
	FreshnessFundCatalog = 30 * time.Minute

	// FreshnessFallback is the window applied when the catalog was loaded
	// from the static built-in fund list rather than the registry.
	FreshnessFallback = 1 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
