// Package search wraps the Meilisearch client behind the small Index
// interface the repositories consume.
//
// Documents held by the index are projections of relational records, never a
// source of truth. Repositories push full documents on create, partial
// documents on update, and the resync path overwrites entire indices from a
// MySQL table scan.
//
// # Filter building
//
// Meilisearch filters are a textual predicate language. The Filter builder is
// the only sanctioned way to construct them: it escapes every value, closing
// the injection hole that naive string concatenation of caller input opens.
package search
