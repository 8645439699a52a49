// Package models defines the level record, its enums and the partial update
// shape.
//
// Field-to-column mappings are declared once on the struct tags and consumed
// by both the relational write path and the search mirror translation; no
// runtime reflection over the record type is involved anywhere.
package models
