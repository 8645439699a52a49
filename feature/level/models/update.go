package models

import "time"

// Update is a partial update of a level. Nil fields are untouched; only the
// supplied fields reach the UPDATE statement and the mirrored search
// document, keeping both writes as narrow as the delta.
type Update struct {
	Name            *string
	UserID          *int
	Description     *string
	CustomSongID    *int
	OfficialSongID  *int
	Version         *int
	Length          *Length
	TwoPlayer       *bool
	Publicity       *Publicity
	RenderStr       *string
	GameVersion     *int
	BinaryVersion   *int
	UploadTS        *time.Time
	UpdateTS        *time.Time
	OriginalID      *int
	Downloads       *int
	Likes           *int
	Stars           *int
	Difficulty      *Difficulty
	DemonDifficulty *DemonDifficulty
	Coins           *int
	CoinsVerified   *bool
	RequestedStars  *int
	FeatureOrder    *int
	SearchFlags     *SearchFlag
	LowDetailMode   *bool
	ObjectCount     *int
	BuildingTime    *int
	UpdateLocked    *bool
	SongIDs         *IntList
	SfxIDs          *IntList
	Deleted         *bool
}

// Changes returns the supplied fields as a column map.
func (u Update) Changes() map[string]any {
	changes := make(map[string]any)

	setIf(changes, "name", u.Name)
	setIf(changes, "user_id", u.UserID)
	setIf(changes, "description", u.Description)
	setIf(changes, "custom_song_id", u.CustomSongID)
	setIf(changes, "official_song_id", u.OfficialSongID)
	setIf(changes, "version", u.Version)
	setIf(changes, "length", u.Length)
	setIf(changes, "two_player", u.TwoPlayer)
	setIf(changes, "publicity", u.Publicity)
	setIf(changes, "render_str", u.RenderStr)
	setIf(changes, "game_version", u.GameVersion)
	setIf(changes, "binary_version", u.BinaryVersion)
	setIf(changes, "upload_ts", u.UploadTS)
	setIf(changes, "update_ts", u.UpdateTS)
	setIf(changes, "original_id", u.OriginalID)
	setIf(changes, "downloads", u.Downloads)
	setIf(changes, "likes", u.Likes)
	setIf(changes, "stars", u.Stars)
	setIf(changes, "difficulty", u.Difficulty)
	setIf(changes, "demon_difficulty", u.DemonDifficulty)
	setIf(changes, "coins", u.Coins)
	setIf(changes, "coins_verified", u.CoinsVerified)
	setIf(changes, "requested_stars", u.RequestedStars)
	setIf(changes, "feature_order", u.FeatureOrder)
	setIf(changes, "search_flags", u.SearchFlags)
	setIf(changes, "low_detail_mode", u.LowDetailMode)
	setIf(changes, "object_count", u.ObjectCount)
	setIf(changes, "building_time", u.BuildingTime)
	setIf(changes, "update_locked", u.UpdateLocked)
	setIf(changes, "song_ids", u.SongIDs)
	setIf(changes, "sfx_ids", u.SfxIDs)
	setIf(changes, "deleted", u.Deleted)

	return changes
}

func setIf[T any](changes map[string]any, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}
