package level

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gdps-backend/feature/level/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewSearchDoc_FlattensFlagsAndTimestamps(t *testing.T) {
	uploaded := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	level := models.Level{
		ID:          1,
		Name:        "Polargeist",
		UploadTS:    uploaded,
		UpdateTS:    uploaded.Add(time.Hour),
		SearchFlags: models.SearchFlagEpic | models.SearchFlagMagic,
	}

	doc := newSearchDoc(level)

	assert.Equal(t, uploaded.Unix(), doc.UploadTS)
	assert.Equal(t, uploaded.Add(time.Hour).Unix(), doc.UpdateTS)
	assert.True(t, doc.Epic)
	assert.True(t, doc.Magic)
	assert.False(t, doc.Awarded)
	assert.False(t, doc.Legendary)
	assert.False(t, doc.Mythical)
	assert.Equal(t, models.SearchFlagEpic|models.SearchFlagMagic, doc.SearchFlags)
}

func TestSearchDoc_ToLevelRebuildsFlagsFromBooleans(t *testing.T) {
	doc := searchDoc{
		ID:        3,
		Name:      "Dry Out",
		Awarded:   true,
		Legendary: true,
		// A stale stored mask must lose against the flattened booleans.
		SearchFlags: models.SearchFlagNone,
	}

	level := doc.toLevel()

	assert.Equal(t, models.SearchFlagAwarded|models.SearchFlagLegendary, level.SearchFlags)
	assert.True(t, level.SearchFlags.Has(models.SearchFlagAwarded))
	assert.False(t, level.SearchFlags.Has(models.SearchFlagEpic))
}

func TestSearchDoc_RoundTrip(t *testing.T) {
	songID := 123
	original := models.Level{
		ID:           9,
		Name:         "Base After Base",
		UserID:       4,
		CustomSongID: &songID,
		Length:       models.LengthLong,
		UploadTS:     time.Unix(1700000000, 0),
		UpdateTS:     time.Unix(1700000100, 0),
		Stars:        10,
		SearchFlags:  models.SearchFlagMythical,
		SongIDs:      models.IntList{1, 2},
		SfxIDs:       models.IntList{},
	}

	restored := newSearchDoc(original).toLevel()

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.CustomSongID, restored.CustomSongID)
	assert.Equal(t, original.Length, restored.Length)
	assert.True(t, original.UploadTS.Equal(restored.UploadTS))
	assert.True(t, original.UpdateTS.Equal(restored.UpdateTS))
	assert.Equal(t, original.SearchFlags, restored.SearchFlags)
	assert.Equal(t, original.SongIDs, restored.SongIDs)
}

func TestMirrorDelta_TranslatesColumnValues(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	delta := mirrorDelta(7, map[string]any{
		"stars":        10,
		"update_ts":    ts,
		"search_flags": models.SearchFlagEpic | models.SearchFlagAwarded,
	})

	assert.Equal(t, 7, delta["id"])
	assert.Equal(t, 10, delta["stars"])
	assert.Equal(t, int64(1700000000), delta["update_ts"])
	assert.Equal(t, int(models.SearchFlagEpic|models.SearchFlagAwarded), delta["search_flags"])
	assert.Equal(t, true, delta["epic"])
	assert.Equal(t, true, delta["awarded"])
	assert.Equal(t, false, delta["magic"])
	assert.Equal(t, false, delta["legendary"])
	assert.Equal(t, false, delta["mythical"])
}

func TestRepository_Search_FilterConstruction(t *testing.T) {
	db, _ := setupMockDB(t)

	hit, err := json.Marshal(newSearchDoc(models.Level{ID: 1, Name: "Jumper", Stars: 10}))
	assert.NoError(t, err)

	index := &fakeIndex{hits: []json.RawMessage{hit}, total: 1}
	repo := NewRepository(db, index, zap.NewNop())

	rated := true
	results, err := repo.Search(context.Background(), SearchParams{
		Query:           "jump",
		Page:            2,
		PageSize:        25,
		RequiredLengths: []models.Length{models.LengthTiny, models.LengthShort},
		RatedOnly:       &rated,
		ExcludedUserIDs: []int{13},
		OrderBy:         OrderByStars,
	})
	assert.NoError(t, err)

	assert.Equal(t, []string{"jump"}, index.queries)
	assert.Equal(t, int64(50), index.options.Offset)
	assert.Equal(t, int64(25), index.options.Limit)
	assert.Equal(t, []string{"stars:desc"}, index.options.Sort)
	assert.Equal(t,
		"deleted = false AND publicity = 0 AND length IN [0, 1] AND stars > 0 AND user_id NOT IN [13]",
		index.options.Filter)

	assert.Equal(t, int64(1), results.Total)
	assert.Len(t, results.Results, 1)
	assert.Equal(t, "Jumper", results.Results[0].Name)
}

func TestRepository_Search_Defaults(t *testing.T) {
	db, _ := setupMockDB(t)
	index := &fakeIndex{}
	repo := NewRepository(db, index, zap.NewNop())

	results, err := repo.Search(context.Background(), SearchParams{})
	assert.NoError(t, err)
	assert.Empty(t, results.Results)

	// Unrated-only is explicit; the zero SearchParams adds no rating clause.
	assert.Equal(t, "deleted = false AND publicity = 0", index.options.Filter)
	assert.Equal(t, int64(0), index.options.Offset)
	assert.Equal(t, int64(10), index.options.Limit)
	assert.Equal(t, []string{"downloads:desc"}, index.options.Sort)
}
