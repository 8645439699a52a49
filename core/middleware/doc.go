// Package middleware groups the HTTP middlewares shared by the features:
// ray-id assignment for log correlation and API-key auth for the
// administrative resync endpoints.
package middleware
