// Package redis provides connection management for the distributed cache
// tier: URL-based configuration, startup retry, and a healthcheck closure.
// The cache-aside logic itself lives in pkg/cache.
package redis
