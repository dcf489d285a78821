// Package constants holds configuration enum values.
package constants

// Environments
const (
	EnvLocal      = "local"
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Cache providers
const (
	CacheProviderNone   = "none"
	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"
)

// Pagination defaults
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)
