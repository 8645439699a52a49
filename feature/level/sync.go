package level

import (
	"context"

	"gdps-backend/core/reconcile"
	"gdps-backend/feature/level/models"
)

// ResyncSearchIndex rebuilds the levels search index from the relational
// store: one streaming table scan, translated and upserted in batches.
// Re-running it on a consistent index overwrites every document with
// identical content, so the operation is safe to trigger repeatedly and from
// several instances at once.
func (r *Repository) ResyncSearchIndex(ctx context.Context) error {
	engine := reconcile.Engine[searchDoc]{Logger: r.logger}

	_, err := engine.Run(ctx, "levels",
		func(ctx context.Context, yield func(searchDoc) error) error {
			return r.ForEach(ctx, false, func(level models.Level) error {
				return yield(newSearchDoc(level))
			})
		},
		func(ctx context.Context, batch []searchDoc) error {
			return r.index.AddDocuments(ctx, batch)
		},
	)
	return err
}
