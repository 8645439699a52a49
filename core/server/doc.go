// Package server holds the HTTP server configuration.
//
// The HTTP surface itself is deliberately thin: health, read endpoints and
// the administrative resync triggers. Game-protocol request handling lives in
// a separate frontend and is not this service's concern.
package server
