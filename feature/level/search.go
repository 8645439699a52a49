package level

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gdps-backend/core/search"
	"gdps-backend/feature/level/models"
)

// searchDoc is the level's projection in the search index. Timestamps become
// epoch seconds and the search-flag bitmask is expanded into one boolean per
// bit, since the index cannot filter on bitwise expressions. The document is
// always rebuilt from the relational record, never the other way round.
type searchDoc struct {
	ID              int                     `json:"id"`
	Name            string                  `json:"name"`
	UserID          int                     `json:"user_id"`
	Description     string                  `json:"description"`
	CustomSongID    *int                    `json:"custom_song_id"`
	OfficialSongID  *int                    `json:"official_song_id"`
	Version         int                     `json:"version"`
	Length          models.Length           `json:"length"`
	TwoPlayer       bool                    `json:"two_player"`
	Publicity       models.Publicity        `json:"publicity"`
	RenderStr       string                  `json:"render_str"`
	GameVersion     int                     `json:"game_version"`
	BinaryVersion   int                     `json:"binary_version"`
	UploadTS        int64                   `json:"upload_ts"`
	UpdateTS        int64                   `json:"update_ts"`
	OriginalID      *int                    `json:"original_id"`
	Downloads       int                     `json:"downloads"`
	Likes           int                     `json:"likes"`
	Stars           int                     `json:"stars"`
	Difficulty      models.Difficulty       `json:"difficulty"`
	DemonDifficulty *models.DemonDifficulty `json:"demon_difficulty"`
	Coins           int                     `json:"coins"`
	CoinsVerified   bool                    `json:"coins_verified"`
	RequestedStars  int                     `json:"requested_stars"`
	FeatureOrder    int                     `json:"feature_order"`
	SearchFlags     models.SearchFlag       `json:"search_flags"`
	LowDetailMode   bool                    `json:"low_detail_mode"`
	ObjectCount     int                     `json:"object_count"`
	BuildingTime    int                     `json:"building_time"`
	UpdateLocked    bool                    `json:"update_locked"`
	SongIDs         models.IntList          `json:"song_ids"`
	SfxIDs          models.IntList          `json:"sfx_ids"`
	Deleted         bool                    `json:"deleted"`

	Epic      bool `json:"epic"`
	Magic     bool `json:"magic"`
	Awarded   bool `json:"awarded"`
	Legendary bool `json:"legendary"`
	Mythical  bool `json:"mythical"`
}

func newSearchDoc(l models.Level) searchDoc {
	return searchDoc{
		ID:              l.ID,
		Name:            l.Name,
		UserID:          l.UserID,
		Description:     l.Description,
		CustomSongID:    l.CustomSongID,
		OfficialSongID:  l.OfficialSongID,
		Version:         l.Version,
		Length:          l.Length,
		TwoPlayer:       l.TwoPlayer,
		Publicity:       l.Publicity,
		RenderStr:       l.RenderStr,
		GameVersion:     l.GameVersion,
		BinaryVersion:   l.BinaryVersion,
		UploadTS:        l.UploadTS.Unix(),
		UpdateTS:        l.UpdateTS.Unix(),
		OriginalID:      l.OriginalID,
		Downloads:       l.Downloads,
		Likes:           l.Likes,
		Stars:           l.Stars,
		Difficulty:      l.Difficulty,
		DemonDifficulty: l.DemonDifficulty,
		Coins:           l.Coins,
		CoinsVerified:   l.CoinsVerified,
		RequestedStars:  l.RequestedStars,
		FeatureOrder:    l.FeatureOrder,
		SearchFlags:     l.SearchFlags,
		LowDetailMode:   l.LowDetailMode,
		ObjectCount:     l.ObjectCount,
		BuildingTime:    l.BuildingTime,
		UpdateLocked:    l.UpdateLocked,
		SongIDs:         l.SongIDs,
		SfxIDs:          l.SfxIDs,
		Deleted:         l.Deleted,
		Epic:            l.SearchFlags.Has(models.SearchFlagEpic),
		Magic:           l.SearchFlags.Has(models.SearchFlagMagic),
		Awarded:         l.SearchFlags.Has(models.SearchFlagAwarded),
		Legendary:       l.SearchFlags.Has(models.SearchFlagLegendary),
		Mythical:        l.SearchFlags.Has(models.SearchFlagMythical),
	}
}

// toLevel reverses the projection. The flag booleans are folded back into
// the bitmask rather than trusting the stored mask, matching what the write
// path flattened.
func (d searchDoc) toLevel() models.Level {
	flags := models.SearchFlagNone
	if d.Epic {
		flags |= models.SearchFlagEpic
	}
	if d.Magic {
		flags |= models.SearchFlagMagic
	}
	if d.Awarded {
		flags |= models.SearchFlagAwarded
	}
	if d.Legendary {
		flags |= models.SearchFlagLegendary
	}
	if d.Mythical {
		flags |= models.SearchFlagMythical
	}

	return models.Level{
		ID:              d.ID,
		Name:            d.Name,
		UserID:          d.UserID,
		Description:     d.Description,
		CustomSongID:    d.CustomSongID,
		OfficialSongID:  d.OfficialSongID,
		Version:         d.Version,
		Length:          d.Length,
		TwoPlayer:       d.TwoPlayer,
		Publicity:       d.Publicity,
		RenderStr:       d.RenderStr,
		GameVersion:     d.GameVersion,
		BinaryVersion:   d.BinaryVersion,
		UploadTS:        time.Unix(d.UploadTS, 0),
		UpdateTS:        time.Unix(d.UpdateTS, 0),
		OriginalID:      d.OriginalID,
		Downloads:       d.Downloads,
		Likes:           d.Likes,
		Stars:           d.Stars,
		Difficulty:      d.Difficulty,
		DemonDifficulty: d.DemonDifficulty,
		Coins:           d.Coins,
		CoinsVerified:   d.CoinsVerified,
		RequestedStars:  d.RequestedStars,
		FeatureOrder:    d.FeatureOrder,
		SearchFlags:     flags,
		LowDetailMode:   d.LowDetailMode,
		ObjectCount:     d.ObjectCount,
		BuildingTime:    d.BuildingTime,
		UpdateLocked:    d.UpdateLocked,
		SongIDs:         d.SongIDs,
		SfxIDs:          d.SfxIDs,
		Deleted:         d.Deleted,
	}
}

// mirrorDelta translates a partial column update into a partial search
// document carrying only the changed keys plus the id. Timestamps are
// converted to epoch form and a changed bitmask re-expands its booleans.
func mirrorDelta(levelID int, changes map[string]any) map[string]any {
	doc := make(map[string]any, len(changes)+1)
	doc["id"] = levelID

	for column, value := range changes {
		switch v := value.(type) {
		case time.Time:
			doc[column] = v.Unix()
		case models.SearchFlag:
			doc[column] = int(v)
			doc["epic"] = v.Has(models.SearchFlagEpic)
			doc["magic"] = v.Has(models.SearchFlagMagic)
			doc["awarded"] = v.Has(models.SearchFlagAwarded)
			doc["legendary"] = v.Has(models.SearchFlagLegendary)
			doc["mythical"] = v.Has(models.SearchFlagMythical)
		default:
			doc[column] = value
		}
	}
	return doc
}

// OrderBy names the statistic a search is sorted on.
type OrderBy string

const (
	OrderByDownloads OrderBy = "downloads"
	OrderByLikes     OrderBy = "likes"
	OrderByStars     OrderBy = "stars"
)

// SearchParams narrows a level search. Nil/empty members add no filter.
type SearchParams struct {
	Query    string
	Page     int
	PageSize int

	RequiredLengths           []models.Length
	RequiredDifficulties      []models.Difficulty
	RequiredDemonDifficulties []models.DemonDifficulty
	SongID                    *int
	RatedOnly                 *bool
	TwoPlayerOnly             *bool
	ExcludedUserIDs           []int
	RequiredUserIDs           []int
	RequiredLevelIDs          []int
	ExcludedLevelIDs          []int
	OrderBy                   OrderBy
}

// SearchResults is a page of hits plus the index's estimate of the total.
type SearchResults struct {
	Results []models.Level
	Total   int64
}

// Search queries the search index. Soft-deleted and unlisted levels are
// always filtered out; the relational store is not touched.
func (r *Repository) Search(ctx context.Context, params SearchParams) (*SearchResults, error) {
	if params.PageSize <= 0 {
		params.PageSize = 10
	}
	orderBy := params.OrderBy
	if orderBy == "" {
		orderBy = OrderByDownloads
	}

	filter := search.NewFilter().
		Eq("deleted", false).
		Eq("publicity", int(models.PublicityPublic))

	if params.RequiredLengths != nil {
		filter.In("length", intsOf(params.RequiredLengths))
	}
	if params.RequiredDifficulties != nil {
		filter.In("difficulty", intsOf(params.RequiredDifficulties))
	}
	if params.RequiredDemonDifficulties != nil {
		filter.In("demon_difficulty", intsOf(params.RequiredDemonDifficulties))
	}
	if params.SongID != nil {
		filter.In("song_ids", []int{*params.SongID})
	}
	if params.RatedOnly != nil {
		if *params.RatedOnly {
			filter.Gt("stars", 0)
		} else {
			filter.Eq("stars", 0)
		}
	}
	if params.TwoPlayerOnly != nil {
		filter.Eq("two_player", *params.TwoPlayerOnly)
	}
	if len(params.ExcludedUserIDs) > 0 {
		filter.NotIn("user_id", params.ExcludedUserIDs)
	} else if len(params.RequiredUserIDs) > 0 {
		filter.In("user_id", params.RequiredUserIDs)
	}
	if len(params.RequiredLevelIDs) > 0 {
		filter.In("id", params.RequiredLevelIDs)
	} else if len(params.ExcludedLevelIDs) > 0 {
		filter.NotIn("id", params.ExcludedLevelIDs)
	}

	res, err := r.index.Search(ctx, params.Query, search.Options{
		Offset: int64(params.Page * params.PageSize),
		Limit:  int64(params.PageSize),
		Filter: filter.String(),
		Sort:   []string{string(orderBy) + ":desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("level search failed: %w", err)
	}

	levels := make([]models.Level, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var doc searchDoc
		if err := json.Unmarshal(hit, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode level hit: %w", err)
		}
		levels = append(levels, doc.toLevel())
	}

	return &SearchResults{Results: levels, Total: res.EstimatedTotal}, nil
}

func intsOf[T ~int](values []T) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
