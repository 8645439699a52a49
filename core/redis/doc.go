// Package redis establishes the shared Redis connection.
//
// Redis plays three roles in the backend: the transport for the invalidation
// bus (pub/sub), the backing store for stateless-mode caches, and the sorted
// sets behind the leaderboards. All three share the one connection pool this
// package hands out.
package redis
