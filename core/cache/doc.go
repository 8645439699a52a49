// Package cache provides the bounded key/value caches sitting in front of
// the relational store, plus the GetOrLoad facade composing them with a
// loader.
//
// # Backends
//
//   - Memory: unbounded in-process map.
//   - LRU: capacity-bounded in-process cache with least-recently-used
//     eviction.
//   - Redis: shared network-backed cache for multi-instance (stateless)
//     deployments.
//
// All backends canonicalize keys to a single string form, so an int key and
// its decimal string address the same slot, and all share identical
// get/set/delete semantics. The in-process backends optionally deep-copy
// values on the way in and out so callers cannot mutate cached state through
// an alias; the Redis backend gets the same property from JSON serialization.
//
// # Deployment modes
//
// New selects the backend from configuration at startup: stateful
// (process-local, fastest, diverges across instances) or stateless (shared,
// consistent fleet-wide). The choice never changes at runtime.
package cache
