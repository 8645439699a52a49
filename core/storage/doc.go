// Package storage provides access to S3-compatible object storage.
//
// Uploaded level data (the multi-megabyte object strings the game client
// produces) is too large for a MySQL row and never searched, so it lives in
// object storage keyed by level id. The Client interface keeps callers
// mockable and independent of the Minio SDK surface.
package storage
