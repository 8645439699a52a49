// Package config loads the application configuration.
//
// Configuration is read from environment variables (optionally via a .env
// file) into nested structs, with defaults declared as struct tags next to
// the fields they describe. Each sub-configuration lives in the package it
// configures; this package only composes them.
//
// The cache deployment mode (stateful vs stateless) is part of this
// configuration and is fixed for the lifetime of the process.
package config
