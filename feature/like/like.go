package like

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Type names what a like is attached to.
type Type int

const (
	TypeLevel       Type = 1
	TypeComment     Type = 2
	TypeUserComment Type = 3
)

// Like is a single user's vote on a target. Value is +1 or -1.
type Like struct {
	ID         int  `gorm:"column:id;primaryKey" json:"id"`
	TargetType Type `gorm:"column:target_type" json:"target_type"`
	TargetID   int  `gorm:"column:target_id" json:"target_id"`
	UserID     int  `gorm:"column:user_id" json:"user_id"`
	Value      int  `gorm:"column:value" json:"value"`
}

// TableName overrides the table name.
func (Like) TableName() string {
	return "user_likes"
}

// Repository owns the like rows. Likes are never mirrored into the search
// index; only their aggregate ends up on the target record.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a like repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a like and returns it with the assigned id.
func (r *Repository) Create(ctx context.Context, like *Like) (*Like, error) {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return nil, fmt.Errorf("failed to insert like: %w", err)
	}
	return like, nil
}

// FromID fetches a like by id, nil when absent.
func (r *Repository) FromID(ctx context.Context, likeID int) (*Like, error) {
	var like Like
	err := r.db.WithContext(ctx).Where("id = ?", likeID).Take(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch like %d: %w", likeID, err)
	}
	return &like, nil
}

// ExistsByTargetAndUser reports whether the user already voted on the target.
func (r *Repository) ExistsByTargetAndUser(ctx context.Context, targetType Type, targetID, userID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Like{}).
		Where("target_type = ? AND target_id = ? AND user_id = ?", targetType, targetID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return count > 0, nil
}

// SumByTarget returns the target's like balance; zero when nobody voted.
func (r *Repository) SumByTarget(ctx context.Context, targetType Type, targetID int) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&Like{}).
		Select("SUM(value)").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum likes: %w", err)
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// UpdateValue rewrites an existing like's value.
func (r *Repository) UpdateValue(ctx context.Context, likeID, value int) error {
	err := r.db.WithContext(ctx).Model(&Like{}).Where("id = ?", likeID).
		Update("value", value).Error
	if err != nil {
		return fmt.Errorf("failed to update like %d: %w", likeID, err)
	}
	return nil
}
