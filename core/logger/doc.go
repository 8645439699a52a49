// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, ensuring that all logs related to a specific request can
// be correlated — including the store failures and index divergences that the
// reconciliation machinery later repairs.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
package logger
