// Package pubsub implements the invalidation bus: the publish/subscribe
// channel carrying control messages between server instances.
//
// Delivery is at-least-once and unordered; handlers must be idempotent.
// Messages published while an instance is down are lost — there is no replay
// log — which is acceptable because every message is a repair trigger that
// can simply be re-published.
//
// # Components
//
//   - Router: per-process subscriber loop. Registered handlers are isolated
//     from each other; a panic or error in one is logged and swallowed.
//   - Publisher: fire-and-forget publish over the shared Redis connection.
//
// # Topics
//
// Topic names follow the "gdps:<domain>:<action>" convention, e.g.
// "gdps:levels:sync_meili" triggers a full rebuild of the levels search
// index on every running instance.
package pubsub
