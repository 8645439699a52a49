package user

import (
	"context"
	"errors"

	"gdps-backend/core/cache"
	"gdps-backend/core/pubsub"
	"gdps-backend/feature/comment"
	"gdps-backend/feature/relationship"

	"go.uber.org/zap"
)

var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrAlreadyRelated is returned when the relationship edge already exists.
	ErrAlreadyRelated = errors.New("relationship already exists")
)

// Service orchestrates user operations: the cache-backed profile path, the
// dual-store write path, plus profile comments and friend/block edges.
type Service struct {
	repo          *Repository
	cache         cache.Cache[User]
	comments      *comment.Repository
	relationships *relationship.Repository
	publisher     *pubsub.Publisher
	logger        *zap.Logger
}

// NewService creates a user service.
func NewService(
	repo *Repository,
	userCache cache.Cache[User],
	comments *comment.Repository,
	relationships *relationship.Repository,
	publisher *pubsub.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:          repo,
		cache:         userCache,
		comments:      comments,
		relationships: relationships,
		publisher:     publisher,
		logger:        logger,
	}
}

// FromID serves a user through the cache, falling back to MySQL and
// populating the cache on a miss. Absent users are not negatively cached.
func (s *Service) FromID(ctx context.Context, userID int) (*User, error) {
	user, ok, err := cache.GetOrLoad(ctx, s.cache, userID, func(ctx context.Context) (User, bool, error) {
		loaded, err := s.repo.FromID(ctx, userID, false)
		if err != nil || loaded == nil {
			return User{}, false, err
		}
		return *loaded, true, nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// Create registers a user: uniqueness check, relational insert with mirror,
// cache warm.
func (s *Service) Create(ctx context.Context, user *User) (*User, error) {
	existing, err := s.repo.FromUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, created.ID, *created); err != nil {
		s.logger.Warn("Failed to cache created user", zap.Error(err))
	}
	return created, nil
}

// UpdatePartial applies a narrow update and refreshes the cache entry.
func (s *Service) UpdatePartial(ctx context.Context, userID int, update Update) (*User, error) {
	updated, err := s.repo.UpdatePartial(ctx, userID, update)
	if err != nil || updated == nil {
		return updated, err
	}

	if updated.Deleted {
		if err := s.cache.Delete(ctx, userID); err != nil {
			s.logger.Warn("Failed to evict deleted user", zap.Error(err))
		}
		return updated, nil
	}

	if err := s.cache.Set(ctx, userID, *updated); err != nil {
		s.logger.Warn("Failed to refresh cached user", zap.Error(err))
	}
	return updated, nil
}

// Delete soft-deletes an account and evicts it from the lookup path.
func (s *Service) Delete(ctx context.Context, userID int) (*User, error) {
	deleted := true
	return s.UpdatePartial(ctx, userID, Update{Deleted: &deleted})
}

// Search proxies to the repository's index-backed search.
func (s *Service) Search(ctx context.Context, query string, page, pageSize int) (*SearchResults, error) {
	return s.repo.Search(ctx, query, page, pageSize)
}

// RequestResync broadcasts the users resync trigger to the whole fleet.
func (s *Service) RequestResync(ctx context.Context) error {
	return s.publisher.Publish(ctx, SyncTopic, nil)
}

// PostComment stores a profile comment after checking the target exists.
func (s *Service) PostComment(ctx context.Context, userID int, content string) (*comment.Comment, error) {
	user, err := s.FromID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return s.comments.Create(ctx, &comment.Comment{
		UserID:  userID,
		Content: content,
	})
}

// Comments lists a page of a user's profile comments plus the live total.
func (s *Service) Comments(ctx context.Context, userID, page, pageSize int) ([]comment.Comment, int64, error) {
	comments, err := s.comments.FromUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.comments.CountFromUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// DeleteComment soft-deletes a comment; reports whether it existed.
func (s *Service) DeleteComment(ctx context.Context, commentID int) (bool, error) {
	return s.comments.SoftDelete(ctx, commentID)
}

// Relate creates a friend or block edge from one user to another.
func (s *Service) Relate(ctx context.Context, relType relationship.Type, userID, targetUserID int) (*relationship.Relationship, error) {
	existing, err := s.relationships.FromUserAndTarget(ctx, relType, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRelated
	}

	return s.relationships.Create(ctx, &relationship.Relationship{
		Type:         relType,
		UserID:       userID,
		TargetUserID: targetUserID,
	})
}

// Relationships lists a user's live edges of a given kind.
func (s *Service) Relationships(ctx context.Context, relType relationship.Type, userID int) ([]relationship.Relationship, error) {
	return s.relationships.AllFromUserID(ctx, relType, userID)
}

// Unrelate removes an edge; reports whether it existed.
func (s *Service) Unrelate(ctx context.Context, relType relationship.Type, userID, targetUserID int) (bool, error) {
	existing, err := s.relationships.FromUserAndTarget(ctx, relType, userID, targetUserID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return s.relationships.SoftDelete(ctx, existing.ID)
}
