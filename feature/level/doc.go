// Package level implements the level domain: the canonical MySQL records,
// their mirrored projections in the search index, and the repair path that
// keeps the two aligned.
//
// # Write path
//
// Create and UpdatePartial write MySQL first, then push the corresponding
// document (full on create, the changed subset on update) into the search
// index. A mirror failure after a successful relational write is logged and
// deliberately not rolled back — the relational row is the source of truth
// and ResyncSearchIndex rebuilds the index from it on demand.
//
// # Read path
//
// Service.FromID goes cache → MySQL, populating the cache on a miss.
// Search goes straight to the index. Two concurrent partial updates on one
// id may mirror out of order; the index stays eventually consistent and the
// next resync pass squares it.
//
// # Components
//
//   - Repository: relational reads/writes + mirroring + full-scan streaming.
//   - Service: cache facade, likes, raw level data blobs, resync trigger.
//   - Handler/Feature: thin HTTP surface and loader registration.
package level
