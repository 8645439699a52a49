// Package reconcile implements the consistency reconciler: a generic
// streaming engine that rebuilds a derived store from the relational source
// of truth.
//
// Steady-state writes keep MySQL and the search index in lockstep, but a
// mirror write can fail after the relational write succeeded, leaving the
// index stale. The engine repairs that divergence: a Source streams every
// live record out of MySQL in one pass, and a Sink upserts translated
// documents in bounded batches. Because document upserts overwrite by id,
// re-running a pass on an already-consistent state changes nothing.
//
// Features supply their own Source/Sink pairs; the triggers arrive over the
// invalidation bus so every instance in the fleet can run the repair.
package reconcile
