package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gdps-backend/core/reconcile"
	"gdps-backend/core/search"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncTopic is the invalidation bus topic triggering a full rebuild of the
// users search index.
const SyncTopic = "gdps:users:sync_meili"

// Repository owns the canonical read/write path for users, mirroring into
// the users search index the same way levels are mirrored.
type Repository struct {
	db     *gorm.DB
	index  search.Index
	logger *zap.Logger
}

// NewRepository creates a user repository over the given stores.
func NewRepository(db *gorm.DB, index search.Index, logger *zap.Logger) *Repository {
	return &Repository{
		db:     db,
		index:  index,
		logger: logger,
	}
}

// Create inserts a user and mirrors the document. Mirror failures are
// logged, never rolled back.
func (r *Repository) Create(ctx context.Context, user *User) (*User, error) {
	if user.RegisterTS.IsZero() {
		user.RegisterTS = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if err := r.index.AddDocuments(ctx, []searchDoc{newSearchDoc(*user)}); err != nil {
		r.logger.Error("User stored in MySQL but search mirror failed; awaiting resync",
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
	}
	return user, nil
}

// FromID fetches a user by id, nil when absent. Soft-deleted accounts are
// only returned when includeDeleted is set.
func (r *Repository) FromID(ctx context.Context, userID int, includeDeleted bool) (*User, error) {
	query := r.db.WithContext(ctx).Where("id = ?", userID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var user User
	err := query.Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return &user, nil
}

// FromUsername fetches a user by exact username.
func (r *Repository) FromUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? AND deleted = ?", username, false).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", username, err)
	}
	return &user, nil
}

// UpdatePartial writes only the supplied fields and mirrors the same delta.
// Returns nil when no row was affected.
func (r *Repository) UpdatePartial(ctx context.Context, userID int, update Update) (*User, error) {
	changes := update.Changes()
	if len(changes) == 0 {
		return r.FromID(ctx, userID, true)
	}

	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	delta := make(map[string]any, len(changes)+1)
	delta["id"] = userID
	for column, value := range changes {
		delta[column] = value
	}
	if err := r.index.UpdateDocuments(ctx, []map[string]any{delta}); err != nil {
		r.logger.Error("User updated in MySQL but search mirror failed; awaiting resync",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
	}

	return r.FromID(ctx, userID, true)
}

// ForEach streams every non-deleted user through fn in a single pass.
func (r *Repository) ForEach(ctx context.Context, fn func(User) error) error {
	rows, err := r.db.WithContext(ctx).Model(&User{}).
		Where("deleted = ?", false).Rows()
	if err != nil {
		return fmt.Errorf("failed to scan users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user User
		if err := r.db.ScanRows(rows, &user); err != nil {
			return fmt.Errorf("failed to scan user row: %w", err)
		}
		if err := fn(user); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountAll returns the total number of user rows, deleted included.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ResyncSearchIndex rebuilds the users search index from MySQL. Idempotent,
// at-least-once; triggered over the invalidation bus.
func (r *Repository) ResyncSearchIndex(ctx context.Context) error {
	engine := reconcile.Engine[searchDoc]{Logger: r.logger}

	_, err := engine.Run(ctx, "users",
		func(ctx context.Context, yield func(searchDoc) error) error {
			return r.ForEach(ctx, func(user User) error {
				return yield(newSearchDoc(user))
			})
		},
		func(ctx context.Context, batch []searchDoc) error {
			return r.index.AddDocuments(ctx, batch)
		},
	)
	return err
}
