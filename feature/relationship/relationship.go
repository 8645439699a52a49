package relationship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Type distinguishes the two relationship kinds.
type Type int

const (
	TypeFriend  Type = 0
	TypeBlocked Type = 1
)

// Relationship is a directed edge between two users.
type Relationship struct {
	ID           int       `gorm:"column:id;primaryKey" json:"id"`
	Type         Type      `gorm:"column:relationship_type" json:"relationship_type"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	TargetUserID int       `gorm:"column:target_user_id" json:"target_user_id"`
	PostTS       time.Time `gorm:"column:post_ts" json:"post_ts"`
	Deleted      bool      `gorm:"column:deleted" json:"deleted"`
}

// TableName overrides the table name.
func (Relationship) TableName() string {
	return "user_relationships"
}

// Repository owns the relationship rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a relationship repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a relationship edge, defaulting the timestamp.
func (r *Repository) Create(ctx context.Context, rel *Relationship) (*Relationship, error) {
	if rel.PostTS.IsZero() {
		rel.PostTS = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return nil, fmt.Errorf("failed to insert relationship: %w", err)
	}
	return rel, nil
}

// FromID fetches a relationship by id, nil when absent.
func (r *Repository) FromID(ctx context.Context, relationshipID int, includeDeleted bool) (*Relationship, error) {
	query := r.db.WithContext(ctx).Where("id = ?", relationshipID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var rel Relationship
	err := query.Take(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationship %d: %w", relationshipID, err)
	}
	return &rel, nil
}

// FromUserAndTarget fetches the live edge between two users of a given kind.
func (r *Repository) FromUserAndTarget(ctx context.Context, relType Type, userID, targetUserID int) (*Relationship, error) {
	var rel Relationship
	err := r.db.WithContext(ctx).
		Where("relationship_type = ? AND user_id = ? AND target_user_id = ? AND deleted = ?",
			relType, userID, targetUserID, false).
		Take(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationship: %w", err)
	}
	return &rel, nil
}

// AllFromUserID lists a user's live edges of a given kind, newest first.
func (r *Repository) AllFromUserID(ctx context.Context, relType Type, userID int) ([]Relationship, error) {
	var rels []Relationship
	err := r.db.WithContext(ctx).
		Where("relationship_type = ? AND user_id = ? AND deleted = ?", relType, userID, false).
		Order("post_ts DESC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationships for user %d: %w", userID, err)
	}
	return rels, nil
}

// SoftDelete flags an edge as deleted; reports whether a row was hit.
func (r *Repository) SoftDelete(ctx context.Context, relationshipID int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Relationship{}).Where("id = ?", relationshipID).
		Update("deleted", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete relationship %d: %w", relationshipID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
