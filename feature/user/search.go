package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gdps-backend/core/search"
)

// searchDoc is the user's projection in the search index; the registration
// timestamp is stored as epoch seconds.
type searchDoc struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Stars         int    `json:"stars"`
	Demons        int    `json:"demons"`
	CreatorPoints int    `json:"creator_points"`
	Coins         int    `json:"coins"`
	UserCoins     int    `json:"user_coins"`
	Diamonds      int    `json:"diamonds"`
	RegisterTS    int64  `json:"register_ts"`
	Deleted       bool   `json:"deleted"`
}

func newSearchDoc(u User) searchDoc {
	return searchDoc{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Stars:         u.Stars,
		Demons:        u.Demons,
		CreatorPoints: u.CreatorPoints,
		Coins:         u.Coins,
		UserCoins:     u.UserCoins,
		Diamonds:      u.Diamonds,
		RegisterTS:    u.RegisterTS.Unix(),
		Deleted:       u.Deleted,
	}
}

func (d searchDoc) toUser() User {
	return User{
		ID:            d.ID,
		Username:      d.Username,
		Email:         d.Email,
		Stars:         d.Stars,
		Demons:        d.Demons,
		CreatorPoints: d.CreatorPoints,
		Coins:         d.Coins,
		UserCoins:     d.UserCoins,
		Diamonds:      d.Diamonds,
		RegisterTS:    time.Unix(d.RegisterTS, 0),
		Deleted:       d.Deleted,
	}
}

// SearchResults is a page of users plus the index's total estimate.
type SearchResults struct {
	Results []User
	Total   int64
}

// Search queries users by name fragment; deleted accounts are always
// filtered out.
func (r *Repository) Search(ctx context.Context, query string, page, pageSize int) (*SearchResults, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	filter := search.NewFilter().Eq("deleted", false)

	res, err := r.index.Search(ctx, query, search.Options{
		Offset: int64(page * pageSize),
		Limit:  int64(pageSize),
		Filter: filter.String(),
		Sort:   []string{"stars:desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("user search failed: %w", err)
	}

	users := make([]User, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var doc searchDoc
		if err := json.Unmarshal(hit, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode user hit: %w", err)
		}
		users = append(users, doc.toUser())
	}

	return &SearchResults{Results: users, Total: res.EstimatedTotal}, nil
}
