// Package user implements accounts: the MySQL source of truth mirrored into
// the users search index, the cache-backed profile lookup path, and the
// profile comment and friend/block surfaces layered on top.
package user
