package leaderboard

import (
	"context"
	"fmt"

	"gdps-backend/feature/user"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Topics triggering a full rebuild of the respective board over the
// invalidation bus.
const (
	SyncStarsTopic    = "gdps:leaderboards:sync_stars"
	SyncCreatorsTopic = "gdps:leaderboards:sync_creators"
)

// Board names a leaderboard variant.
type Board string

const (
	BoardStars    Board = "stars"
	BoardCreators Board = "creators"
)

func (b Board) key() string {
	return "gdps:leaderboards:" + string(b)
}

// IsValid reports whether the board name is known.
func (b Board) IsValid() bool {
	return b == BoardStars || b == BoardCreators
}

// Entry is one ranked row of a board.
type Entry struct {
	Rank   int     `json:"rank"`
	UserID int     `json:"user_id"`
	Value  float64 `json:"value"`
}

// redisZ is the slice of the redis client the boards need.
type redisZ interface {
	ZAdd(ctx context.Context, key string, members ...goredis.Z) *goredis.IntCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *goredis.IntCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *goredis.ZSliceCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Rename(ctx context.Context, key, newkey string) *goredis.StatusCmd
}

// Service keeps the leaderboards as redis sorted sets, rebuilt from the
// users table on demand and patched incrementally as scores change.
type Service struct {
	redis  redisZ
	users  *user.Repository
	logger *zap.Logger
}

// NewService creates a leaderboard service.
func NewService(redis redisZ, users *user.Repository, logger *zap.Logger) *Service {
	return &Service{
		redis:  redis,
		users:  users,
		logger: logger,
	}
}

// SetScore patches a single user's standing on a board.
func (s *Service) SetScore(ctx context.Context, board Board, userID int, value float64) error {
	err := s.redis.ZAdd(ctx, board.key(), goredis.Z{
		Score:  value,
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to set %s score for user %d: %w", board, userID, err)
	}
	return nil
}

// RemoveUser drops a user from a board, e.g. after account deletion.
func (s *Service) RemoveUser(ctx context.Context, board Board, userID int) error {
	if err := s.redis.ZRem(ctx, board.key(), userID).Err(); err != nil {
		return fmt.Errorf("failed to remove user %d from %s board: %w", userID, board, err)
	}
	return nil
}

// Top returns the highest-ranked n entries of a board.
func (s *Service) Top(ctx context.Context, board Board, n int) ([]Entry, error) {
	if n <= 0 {
		n = 100
	}

	rows, err := s.redis.ZRevRangeWithScores(ctx, board.key(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s board: %w", board, err)
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		var userID int
		if _, err := fmt.Sscanf(fmt.Sprint(row.Member), "%d", &userID); err != nil {
			continue
		}
		entries = append(entries, Entry{
			Rank:   i + 1,
			UserID: userID,
			Value:  row.Score,
		})
	}
	return entries, nil
}

// SyncStars rebuilds the stars board from the users table. The rebuild
// happens under a staging key and is swapped in atomically.
func (s *Service) SyncStars(ctx context.Context) error {
	return s.rebuild(ctx, BoardStars, func(u user.User) float64 {
		return float64(u.Stars)
	})
}

// SyncCreators rebuilds the creator points board from the users table.
func (s *Service) SyncCreators(ctx context.Context) error {
	return s.rebuild(ctx, BoardCreators, func(u user.User) float64 {
		return float64(u.CreatorPoints)
	})
}

func (s *Service) rebuild(ctx context.Context, board Board, score func(user.User) float64) error {
	staging := board.key() + ":staging"
	if err := s.redis.Del(ctx, staging).Err(); err != nil {
		return fmt.Errorf("failed to clear %s staging board: %w", board, err)
	}

	count := 0
	err := s.users.ForEach(ctx, func(u user.User) error {
		value := score(u)
		if value <= 0 {
			return nil
		}
		count++
		return s.redis.ZAdd(ctx, staging, goredis.Z{
			Score:  value,
			Member: u.ID,
		}).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild %s board: %w", board, err)
	}

	if count == 0 {
		// RENAME fails on a missing source key; an empty board is just
		// the old key deleted.
		if err := s.redis.Del(ctx, board.key()).Err(); err != nil {
			return fmt.Errorf("failed to clear %s board: %w", board, err)
		}
		s.logger.Info("Leaderboard rebuilt empty", zap.String("board", string(board)))
		return nil
	}

	if err := s.redis.Rename(ctx, staging, board.key()).Err(); err != nil {
		return fmt.Errorf("failed to swap %s board: %w", board, err)
	}

	s.logger.Info("Leaderboard rebuilt",
		zap.String("board", string(board)),
		zap.Int("entries", count),
	)
	return nil
}
