package level

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gdps-backend/core/cache"
	"gdps-backend/core/pubsub"
	"gdps-backend/core/storage"
	"gdps-backend/feature/level/models"
	"gdps-backend/feature/like"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	// ErrNameTaken is returned when the user already has a level by that name.
	ErrNameTaken = errors.New("level name already in use by this user")
	// ErrAlreadyLiked is returned when the user already voted on the level.
	ErrAlreadyLiked = errors.New("level already liked by this user")
	// ErrUpdateLocked is returned when a level refuses re-uploads.
	ErrUpdateLocked = errors.New("level is locked for updates")
)

// Service orchestrates level operations: the cache-backed lookup path, the
// dual-store write path and the raw level data blobs.
type Service struct {
	repo      *Repository
	cache     cache.Cache[models.Level]
	likes     *like.Repository
	store     storage.Client
	bucket    string
	publisher *pubsub.Publisher
	logger    *zap.Logger
}

// NewService creates a level service.
func NewService(
	repo *Repository,
	levelCache cache.Cache[models.Level],
	likes *like.Repository,
	store storage.Client,
	bucket string,
	publisher *pubsub.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		cache:     levelCache,
		likes:     likes,
		store:     store,
		bucket:    bucket,
		publisher: publisher,
		logger:    logger,
	}
}

// FromID serves a level through the cache, falling back to MySQL and
// populating the cache on a miss. Absent levels are not negatively cached.
func (s *Service) FromID(ctx context.Context, levelID int) (*models.Level, error) {
	level, ok, err := cache.GetOrLoad(ctx, s.cache, levelID, func(ctx context.Context) (models.Level, bool, error) {
		loaded, err := s.repo.FromID(ctx, levelID, false)
		if err != nil || loaded == nil {
			return models.Level{}, false, err
		}
		return *loaded, true, nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return &level, nil
}

// Create uploads a level: uniqueness check, relational insert with mirror,
// level data blob to object storage, cache warm.
func (s *Service) Create(ctx context.Context, level *models.Level, data []byte) (*models.Level, error) {
	existing, err := s.repo.FromNameAndUserID(ctx, level.Name, level.UserID, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	created, err := s.repo.Create(ctx, level)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		if err := s.SaveData(ctx, created.ID, data); err != nil {
			// The record exists either way; the client can re-upload.
			s.logger.Error("Failed to store level data",
				zap.Int("level_id", created.ID),
				zap.Error(err),
			)
		}
	}

	if err := s.cache.Set(ctx, created.ID, *created); err != nil {
		s.logger.Warn("Failed to cache created level", zap.Error(err))
	}
	return created, nil
}

// UpdatePartial applies a narrow update and refreshes the cache entry.
func (s *Service) UpdatePartial(ctx context.Context, levelID int, update models.Update) (*models.Level, error) {
	updated, err := s.repo.UpdatePartial(ctx, levelID, update)
	if err != nil || updated == nil {
		return updated, err
	}

	if updated.Deleted {
		// Deleted levels leave the lookup path entirely.
		if err := s.cache.Delete(ctx, levelID); err != nil {
			s.logger.Warn("Failed to evict deleted level", zap.Error(err))
		}
		return updated, nil
	}

	if err := s.cache.Set(ctx, levelID, *updated); err != nil {
		s.logger.Warn("Failed to refresh cached level", zap.Error(err))
	}
	return updated, nil
}

// Delete soft-deletes a level. The row stays queryable by id for the owner's
// administrative paths, but disappears from search and default reads.
func (s *Service) Delete(ctx context.Context, levelID int) (*models.Level, error) {
	deleted := true
	return s.UpdatePartial(ctx, levelID, models.Update{Deleted: &deleted})
}

// Like records a user's vote and denormalizes the new balance onto the
// level (and through it, the search document).
func (s *Service) Like(ctx context.Context, levelID, userID, value int) (*models.Level, error) {
	level, err := s.FromID(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, nil
	}

	exists, err := s.likes.ExistsByTargetAndUser(ctx, like.TypeLevel, levelID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyLiked
	}

	if _, err := s.likes.Create(ctx, &like.Like{
		TargetType: like.TypeLevel,
		TargetID:   levelID,
		UserID:     userID,
		Value:      value,
	}); err != nil {
		return nil, err
	}

	sum, err := s.likes.SumByTarget(ctx, like.TypeLevel, levelID)
	if err != nil {
		return nil, err
	}
	return s.UpdatePartial(ctx, levelID, models.Update{Likes: &sum})
}

// Search proxies to the repository's index-backed search.
func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResults, error) {
	return s.repo.Search(ctx, params)
}

// RequestResync broadcasts the levels resync trigger to the whole fleet.
func (s *Service) RequestResync(ctx context.Context) error {
	return s.publisher.Publish(ctx, SyncTopic, nil)
}

// SaveData stores a level's raw object string.
func (s *Service) SaveData(ctx context.Context, levelID int, data []byte) error {
	_, err := s.store.PutObject(ctx, s.bucket, dataObjectName(levelID),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
	if err != nil {
		return fmt.Errorf("failed to store level data %d: %w", levelID, err)
	}
	return nil
}

// Data fetches a level's raw object string.
func (s *Service) Data(ctx context.Context, levelID int) ([]byte, error) {
	obj, err := s.store.GetObject(ctx, s.bucket, dataObjectName(levelID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch level data %d: %w", levelID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read level data %d: %w", levelID, err)
	}
	return data, nil
}

func dataObjectName(levelID int) string {
	return "levels/" + strconv.Itoa(levelID)
}
