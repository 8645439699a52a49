// Package like stores per-user votes on levels and comments. Only the
// aggregated balance is denormalized onto the target record (and from there
// into its search document); individual votes stay relational-only.
package like
