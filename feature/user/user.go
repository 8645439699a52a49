package user

import (
	"time"
)

// User is the canonical relational record for a player account. Statistics
// are denormalized here by the score submission paths and mirrored into the
// search index and leaderboards.
type User struct {
	ID            int       `gorm:"column:id;primaryKey" json:"id"`
	Username      string    `gorm:"column:username" json:"username"`
	Email         string    `gorm:"column:email" json:"email"`
	Stars         int       `gorm:"column:stars" json:"stars"`
	Demons        int       `gorm:"column:demons" json:"demons"`
	CreatorPoints int       `gorm:"column:creator_points" json:"creator_points"`
	Coins         int       `gorm:"column:coins" json:"coins"`
	UserCoins     int       `gorm:"column:user_coins" json:"user_coins"`
	Diamonds      int       `gorm:"column:diamonds" json:"diamonds"`
	RegisterTS    time.Time `gorm:"column:register_ts" json:"register_ts"`
	Deleted       bool      `gorm:"column:deleted" json:"deleted"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}

// Clone returns an independent copy for the cache layer. User currently has
// no reference fields, so a value copy suffices; the method keeps the cache
// wiring uniform with levels.
func (u User) Clone() User {
	return u
}

// Update is a partial update of a user; nil fields are untouched.
type Update struct {
	Username      *string
	Email         *string
	Stars         *int
	Demons        *int
	CreatorPoints *int
	Coins         *int
	UserCoins     *int
	Diamonds      *int
	Deleted       *bool
}

// Changes returns the supplied fields as a column map.
func (u Update) Changes() map[string]any {
	changes := make(map[string]any)
	if u.Username != nil {
		changes["username"] = *u.Username
	}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.Stars != nil {
		changes["stars"] = *u.Stars
	}
	if u.Demons != nil {
		changes["demons"] = *u.Demons
	}
	if u.CreatorPoints != nil {
		changes["creator_points"] = *u.CreatorPoints
	}
	if u.Coins != nil {
		changes["coins"] = *u.Coins
	}
	if u.UserCoins != nil {
		changes["user_coins"] = *u.UserCoins
	}
	if u.Diamonds != nil {
		changes["diamonds"] = *u.Diamonds
	}
	if u.Deleted != nil {
		changes["deleted"] = *u.Deleted
	}
	return changes
}
