package models

import (
	"time"
)

// Length buckets a level's playtime.
type Length int

const (
	LengthTiny Length = iota
	LengthShort
	LengthMedium
	LengthLong
	LengthXL
	LengthPlatformer
)

// Difficulty is the rated difficulty face shown in-game.
type Difficulty int

const (
	DifficultyNA     Difficulty = 0
	DifficultyEasy   Difficulty = 10
	DifficultyNormal Difficulty = 20
	DifficultyHard   Difficulty = 30
	DifficultyHarder Difficulty = 40
	DifficultyInsane Difficulty = 50
)

var difficultyStars = map[int]Difficulty{
	2: DifficultyEasy,
	3: DifficultyNormal,
	4: DifficultyHard,
	5: DifficultyHard,
	6: DifficultyHarder,
	7: DifficultyHarder,
	8: DifficultyInsane,
	9: DifficultyInsane,
}

// DifficultyFromStars derives the difficulty face from an awarded star count.
func DifficultyFromStars(stars int) Difficulty {
	if d, ok := difficultyStars[stars]; ok {
		return d
	}
	return DifficultyNA
}

// DemonDifficulty is the sub-rating for demon levels. The zero value is the
// default demon face, not "absent"; absence is a nil pointer on the record.
type DemonDifficulty int

const (
	DemonDifficultyHard    DemonDifficulty = 0
	DemonDifficultyEasy    DemonDifficulty = 3
	DemonDifficultyMedium  DemonDifficulty = 4
	DemonDifficultyInsane  DemonDifficulty = 5
	DemonDifficultyExtreme DemonDifficulty = 6
)

// Publicity controls who can find a level.
type Publicity int

const (
	PublicityPublic Publicity = iota
	// Levels only accessible through direct ID.
	PublicityGlobalUnlisted
	PublicityFriendsUnlisted
)

// SearchFlag is a bitmask of rating distinctions. The search index cannot
// filter on bitwise operations, so the mirror expands each bit into its own
// boolean field.
type SearchFlag int

const (
	SearchFlagNone      SearchFlag = 0
	SearchFlagEpic      SearchFlag = 1 << 0
	SearchFlagAwarded   SearchFlag = 1 << 1
	SearchFlagMagic     SearchFlag = 1 << 2
	SearchFlagLegendary SearchFlag = 1 << 3
	SearchFlagMythical  SearchFlag = 1 << 4
)

// Has reports whether all bits of flag are set.
func (f SearchFlag) Has(flag SearchFlag) bool {
	return f&flag == flag
}

// Feature is the ordered feature tier derived from the search flags.
type Feature int

const (
	FeatureNone Feature = iota
	FeatureFeatured
	FeatureEpic
	FeatureLegendary
	FeatureMythical
)

// AsFeature collapses the flag bits into the highest feature tier.
func (f SearchFlag) AsFeature() Feature {
	switch {
	case f.Has(SearchFlagMythical):
		return FeatureMythical
	case f.Has(SearchFlagLegendary):
		return FeatureLegendary
	case f.Has(SearchFlagEpic):
		return FeatureEpic
	default:
		return FeatureNone
	}
}

var featureFlags = map[Feature]SearchFlag{
	FeatureNone:      SearchFlagNone,
	FeatureFeatured:  SearchFlagNone,
	FeatureEpic:      SearchFlagEpic,
	FeatureLegendary: SearchFlagEpic | SearchFlagLegendary,
	FeatureMythical:  SearchFlagEpic | SearchFlagLegendary | SearchFlagMythical,
}

// AsSearchFlag expands a feature tier into its implied flag bits.
func (f Feature) AsSearchFlag() SearchFlag {
	return featureFlags[f]
}

// Level is the canonical relational record for an uploaded level. The id is
// assigned by MySQL on first insert and never changes; deletion is a soft
// flag, never a row removal.
type Level struct {
	ID              int              `gorm:"column:id;primaryKey" json:"id"`
	Name            string           `gorm:"column:name" json:"name"`
	UserID          int              `gorm:"column:user_id" json:"user_id"`
	Description     string           `gorm:"column:description" json:"description"`
	CustomSongID    *int             `gorm:"column:custom_song_id" json:"custom_song_id"`
	OfficialSongID  *int             `gorm:"column:official_song_id" json:"official_song_id"`
	Version         int              `gorm:"column:version" json:"version"`
	Length          Length           `gorm:"column:length" json:"length"`
	TwoPlayer       bool             `gorm:"column:two_player" json:"two_player"`
	Publicity       Publicity        `gorm:"column:publicity" json:"publicity"`
	RenderStr       string           `gorm:"column:render_str" json:"render_str"` // Officially called extra string
	GameVersion     int              `gorm:"column:game_version" json:"game_version"`
	BinaryVersion   int              `gorm:"column:binary_version" json:"binary_version"`
	UploadTS        time.Time        `gorm:"column:upload_ts" json:"upload_ts"`
	UpdateTS        time.Time        `gorm:"column:update_ts" json:"update_ts"`
	OriginalID      *int             `gorm:"column:original_id" json:"original_id"`
	Downloads       int              `gorm:"column:downloads" json:"downloads"`
	Likes           int              `gorm:"column:likes" json:"likes"`
	Stars           int              `gorm:"column:stars" json:"stars"`
	Difficulty      Difficulty       `gorm:"column:difficulty" json:"difficulty"`
	DemonDifficulty *DemonDifficulty `gorm:"column:demon_difficulty" json:"demon_difficulty"`
	Coins           int              `gorm:"column:coins" json:"coins"`
	CoinsVerified   bool             `gorm:"column:coins_verified" json:"coins_verified"`
	RequestedStars  int              `gorm:"column:requested_stars" json:"requested_stars"`
	FeatureOrder    int              `gorm:"column:feature_order" json:"feature_order"`
	SearchFlags     SearchFlag       `gorm:"column:search_flags" json:"search_flags"`
	LowDetailMode   bool             `gorm:"column:low_detail_mode" json:"low_detail_mode"`
	ObjectCount     int              `gorm:"column:object_count" json:"object_count"`
	BuildingTime    int              `gorm:"column:building_time" json:"building_time"`
	UpdateLocked    bool             `gorm:"column:update_locked" json:"update_locked"`
	SongIDs         IntList          `gorm:"column:song_ids" json:"song_ids"`
	SfxIDs          IntList          `gorm:"column:sfx_ids" json:"sfx_ids"`
	Deleted         bool             `gorm:"column:deleted" json:"deleted"`
}

// TableName overrides the table name.
func (Level) TableName() string {
	return "levels"
}

// IsDemon reports whether the level carries a demon rating.
func (l Level) IsDemon() bool {
	return l.Stars == 10
}

// IsAuto reports whether the level is rated auto.
func (l Level) IsAuto() bool {
	return l.Stars == 1
}

// Clone returns a deep copy, detaching the slice and pointer fields so a
// cached snapshot cannot be mutated through the original.
func (l Level) Clone() Level {
	c := l
	c.SongIDs = l.SongIDs.Clone()
	c.SfxIDs = l.SfxIDs.Clone()
	c.CustomSongID = cloneIntPtr(l.CustomSongID)
	c.OfficialSongID = cloneIntPtr(l.OfficialSongID)
	c.OriginalID = cloneIntPtr(l.OriginalID)
	if l.DemonDifficulty != nil {
		d := *l.DemonDifficulty
		c.DemonDifficulty = &d
	}
	return c
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
