// Package comment stores profile comments. They are never mirrored into the
// search index; listings come straight from MySQL, newest first.
package comment
