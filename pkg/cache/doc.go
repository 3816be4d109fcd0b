// Package cache provides the two caching tiers the storefront data layer
// is built on.
//
// Local is a bounded in-process map with a fixed TTL and
// least-frequently-used eviction (ties broken by oldest write). It serves
// the hottest tenant aggregates with sub-millisecond latency and is
// private to each process.
//
// Remote is a best-effort cache-aside facade over redis shared by all
// instances. GetOrSet reads through to a producer function on miss and
// caches non-nil results only; every backend failure is logged and
// swallowed so the cache can never take the read path down with it.
//
// Construct caches explicitly and inject them; there is no package-level
// singleton, which keeps tests isolated.
package cache
