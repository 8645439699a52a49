// Package database manages the MySQL connection, the canonical source of
// truth for every record the backend serves.
//
// The search index and the caches are derived, rebuildable artifacts; when
// they disagree with MySQL, MySQL wins and the reconciliation path overwrites
// them. Nothing in this package knows about those collaborators — it only
// hands out a configured *gorm.DB.
//
// # Components
//
//   - Connect: builds the DSN, tunes the pool and pings the server.
//   - VerifyTables / GetTableColumns: startup schema sanity checks.
package database
