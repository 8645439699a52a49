// Package relationship stores the directed friend/block edges between
// users. Edges are relational-only and soft-deleted like every other record.
package relationship
