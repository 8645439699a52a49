package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Comment is a message posted on a user's profile. Soft-deleted comments
// stay in the table but leave the default listings.
type Comment struct {
	ID      int       `gorm:"column:id;primaryKey" json:"id"`
	UserID  int       `gorm:"column:user_id" json:"user_id"`
	Content string    `gorm:"column:content" json:"content"`
	Likes   int       `gorm:"column:likes" json:"likes"`
	PostTS  time.Time `gorm:"column:post_ts" json:"post_ts"`
	Deleted bool      `gorm:"column:deleted" json:"deleted"`
}

// TableName overrides the table name.
func (Comment) TableName() string {
	return "user_comments"
}

// Repository owns the profile comment rows; comments are relational-only.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a comment, defaulting the post timestamp.
func (r *Repository) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	if comment.PostTS.IsZero() {
		comment.PostTS = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

// FromID fetches a comment by id, nil when absent.
func (r *Repository) FromID(ctx context.Context, commentID int, includeDeleted bool) (*Comment, error) {
	query := r.db.WithContext(ctx).Where("id = ?", commentID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var comment Comment
	err := query.Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment %d: %w", commentID, err)
	}
	return &comment, nil
}

// FromUserID returns a page of a user's comments, newest first.
func (r *Repository) FromUserID(ctx context.Context, userID, page, pageSize int) ([]Comment, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("post_ts DESC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for user %d: %w", userID, err)
	}
	return comments, nil
}

// CountFromUserID counts a user's live comments.
func (r *Repository) CountFromUserID(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Comment{}).
		Where("user_id = ? AND deleted = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count comments for user %d: %w", userID, err)
	}
	return count, nil
}

// SoftDelete flags a comment as deleted; reports whether a row was hit.
func (r *Repository) SoftDelete(ctx context.Context, commentID int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Comment{}).Where("id = ?", commentID).
		Update("deleted", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete comment %d: %w", commentID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateLikes rewrites a comment's denormalized like balance.
func (r *Repository) UpdateLikes(ctx context.Context, commentID, likes int) error {
	err := r.db.WithContext(ctx).Model(&Comment{}).Where("id = ?", commentID).
		Update("likes", likes).Error
	if err != nil {
		return fmt.Errorf("failed to update comment %d likes: %w", commentID, err)
	}
	return nil
}
