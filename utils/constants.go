package utils

import "time"

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds
	AccessTokenTTLSeconds = 86400

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// SessionTimeout is the default session timeout (24 hours)
	SessionTimeout = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Analytics constants
const (
	// RecentActivityLimit bounds the recent-events window returned per offer
	RecentActivityLimit = 10

	// AllOffersAnalyticsCacheKey is the redis key for the all-offers analytics snapshot
	AllOffersAnalyticsCacheKey = "analytics:all_offers"

	// AllOffersAnalyticsCacheTTL is how long the analytics snapshot stays cached
	AllOffersAnalyticsCacheTTL = 30 * time.Second
)
