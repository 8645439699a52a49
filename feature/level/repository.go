package level

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gdps-backend/core/search"
	"gdps-backend/feature/level/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncTopic is the invalidation bus topic triggering a full rebuild of the
// levels search index.
const SyncTopic = "gdps:levels:sync_meili"

// Repository owns the canonical read/write path for levels. Every write goes
// to MySQL first; the search index is mirrored afterwards and repaired by
// ResyncSearchIndex when a mirror write fails.
type Repository struct {
	db     *gorm.DB
	index  search.Index
	logger *zap.Logger
}

// NewRepository creates a level repository over the given stores.
func NewRepository(db *gorm.DB, index search.Index, logger *zap.Logger) *Repository {
	return &Repository{
		db:     db,
		index:  index,
		logger: logger,
	}
}

// Create inserts a level, letting MySQL assign the id, then mirrors the full
// document into the search index. A mirror failure does not roll the insert
// back: the relational row is authoritative and the index is repaired by the
// next reconciliation pass.
func (r *Repository) Create(ctx context.Context, level *models.Level) (*models.Level, error) {
	now := time.Now()
	if level.UploadTS.IsZero() {
		level.UploadTS = now
	}
	if level.UpdateTS.IsZero() {
		level.UpdateTS = now
	}
	if level.SongIDs == nil {
		level.SongIDs = models.IntList{}
	}
	if level.SfxIDs == nil {
		level.SfxIDs = models.IntList{}
	}

	if err := r.db.WithContext(ctx).Create(level).Error; err != nil {
		return nil, fmt.Errorf("failed to insert level: %w", err)
	}

	if err := r.index.AddDocuments(ctx, []searchDoc{newSearchDoc(*level)}); err != nil {
		r.logger.Error("Level indexed in MySQL but search mirror failed; awaiting resync",
			zap.Int("level_id", level.ID),
			zap.Error(err),
		)
	}

	return level, nil
}

// FromID fetches a level by id. Soft-deleted levels are only returned when
// includeDeleted is set; the result is nil (not an error) when no row
// matches.
func (r *Repository) FromID(ctx context.Context, levelID int, includeDeleted bool) (*models.Level, error) {
	query := r.db.WithContext(ctx).Where("id = ?", levelID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var level models.Level
	err := query.Take(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch level %d: %w", levelID, err)
	}
	return &level, nil
}

// MultipleFromID fetches the given ids, preserving the caller's ordering.
// Missing ids are skipped.
func (r *Repository) MultipleFromID(ctx context.Context, levelIDs []int) ([]models.Level, error) {
	if len(levelIDs) == 0 {
		return nil, nil
	}

	var levels []models.Level
	if err := r.db.WithContext(ctx).Where("id IN ?", levelIDs).Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch levels: %w", err)
	}

	byID := make(map[int]models.Level, len(levels))
	for _, level := range levels {
		byID[level.ID] = level
	}

	ordered := make([]models.Level, 0, len(levels))
	for _, id := range levelIDs {
		if level, ok := byID[id]; ok {
			ordered = append(ordered, level)
		}
	}
	return ordered, nil
}

// UpdatePartial writes only the supplied fields, then mirrors the same
// narrow delta into the search index. It returns nil when no row was
// affected. As with Create, a mirror failure after a successful relational
// write is logged and left to reconciliation.
func (r *Repository) UpdatePartial(ctx context.Context, levelID int, update models.Update) (*models.Level, error) {
	changes := update.Changes()
	if len(changes) == 0 {
		return r.FromID(ctx, levelID, true)
	}

	res := r.db.WithContext(ctx).Model(&models.Level{}).Where("id = ?", levelID).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update level %d: %w", levelID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	if err := r.index.UpdateDocuments(ctx, []map[string]any{mirrorDelta(levelID, changes)}); err != nil {
		r.logger.Error("Level updated in MySQL but search mirror failed; awaiting resync",
			zap.Int("level_id", levelID),
			zap.Error(err),
		)
	}

	return r.FromID(ctx, levelID, true)
}

// FromNameAndUserID fetches a user's level by exact name.
func (r *Repository) FromNameAndUserID(ctx context.Context, name string, userID int, includeDeleted bool) (*models.Level, error) {
	query := r.db.WithContext(ctx).Where("name = ? AND user_id = ?", name, userID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var level models.Level
	err := query.Take(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch level %q: %w", name, err)
	}
	return &level, nil
}

// ForEach streams every level through fn in a single pass without
// materializing the table, stopping on the first error fn returns.
func (r *Repository) ForEach(ctx context.Context, includeDeleted bool, fn func(models.Level) error) error {
	query := r.db.WithContext(ctx).Model(&models.Level{})
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	rows, err := query.Rows()
	if err != nil {
		return fmt.Errorf("failed to scan levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level models.Level
		if err := r.db.ScanRows(rows, &level); err != nil {
			return fmt.Errorf("failed to scan level row: %w", err)
		}
		if err := fn(level); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountAll returns the total number of level rows, deleted included.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Level{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count levels: %w", err)
	}
	return count, nil
}

// WellReceived returns level ids ordered by a downloads/likes formula that
// emphasises under-downloaded but well-liked levels, used by the
// recommendation paths.
func (r *Repository) WellReceived(ctx context.Context, minStars, maxStars int, minLength models.Length, excludedIDs []int, limit int) ([]int, error) {
	query := r.db.WithContext(ctx).Model(&models.Level{}).
		Where("stars >= ? AND stars <= ?", minStars, maxStars).
		Where("length >= ?", minLength).
		Where("deleted = ?", false)
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}

	var ids []int
	err := query.Order("(SQRT(downloads) / likes) DESC").Limit(limit).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch well received levels: %w", err)
	}
	return ids, nil
}
