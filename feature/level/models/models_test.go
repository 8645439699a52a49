package models_test

import (
	"testing"

	"gdps-backend/feature/level/models"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyFromStars(t *testing.T) {
	tests := []struct {
		name  string
		stars int
		want  models.Difficulty
	}{
		{"Unrated", 0, models.DifficultyNA},
		{"Auto", 1, models.DifficultyNA},
		{"Easy", 2, models.DifficultyEasy},
		{"Normal", 3, models.DifficultyNormal},
		{"HardLow", 4, models.DifficultyHard},
		{"HardHigh", 5, models.DifficultyHard},
		{"HarderLow", 6, models.DifficultyHarder},
		{"HarderHigh", 7, models.DifficultyHarder},
		{"InsaneLow", 8, models.DifficultyInsane},
		{"InsaneHigh", 9, models.DifficultyInsane},
		{"Demon", 10, models.DifficultyNA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DifficultyFromStars(tt.stars))
		})
	}
}

func TestSearchFlag_Has(t *testing.T) {
	flags := models.SearchFlagEpic | models.SearchFlagLegendary

	assert.True(t, flags.Has(models.SearchFlagEpic))
	assert.True(t, flags.Has(models.SearchFlagLegendary))
	assert.True(t, flags.Has(models.SearchFlagEpic|models.SearchFlagLegendary))
	assert.False(t, flags.Has(models.SearchFlagMythical))
	assert.False(t, flags.Has(models.SearchFlagEpic|models.SearchFlagMythical))
}

func TestSearchFlag_AsFeature(t *testing.T) {
	tests := []struct {
		name  string
		flags models.SearchFlag
		want  models.Feature
	}{
		{"None", models.SearchFlagNone, models.FeatureNone},
		{"AwardedOnly", models.SearchFlagAwarded, models.FeatureNone},
		{"Epic", models.SearchFlagEpic, models.FeatureEpic},
		{"Legendary", models.SearchFlagEpic | models.SearchFlagLegendary, models.FeatureLegendary},
		{"MythicalWins", models.SearchFlagEpic | models.SearchFlagLegendary | models.SearchFlagMythical, models.FeatureMythical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.AsFeature())
		})
	}
}

func TestFeature_AsSearchFlag_RoundTrip(t *testing.T) {
	// Tiers imply their lower bits, and collapsing again lands on the same
	// tier.
	for _, feature := range []models.Feature{
		models.FeatureNone,
		models.FeatureEpic,
		models.FeatureLegendary,
		models.FeatureMythical,
	} {
		assert.Equal(t, feature, feature.AsSearchFlag().AsFeature())
	}
}

func TestIntList_ValueAndScan(t *testing.T) {
	tests := []struct {
		name string
		list models.IntList
		want string
	}{
		{"Empty", models.IntList{}, ""},
		{"Single", models.IntList{7}, "7"},
		{"Multiple", models.IntList{1, 22, 333}, "1,22,333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.list.Value()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, value)

			var scanned models.IntList
			assert.NoError(t, scanned.Scan(tt.want))
			assert.Equal(t, tt.list, scanned)
		})
	}
}

func TestIntList_ScanRejectsGarbage(t *testing.T) {
	var list models.IntList
	assert.Error(t, list.Scan("1,abc,3"))
	assert.Error(t, list.Scan(42))
}

func TestIntList_ScanNil(t *testing.T) {
	list := models.IntList{1, 2}
	assert.NoError(t, list.Scan(nil))
	assert.Nil(t, list)
}

func TestLevel_CloneDetachesReferences(t *testing.T) {
	songID := 100
	demon := models.DemonDifficultyExtreme
	original := models.Level{
		ID:              1,
		CustomSongID:    &songID,
		DemonDifficulty: &demon,
		SongIDs:         models.IntList{1, 2, 3},
	}

	clone := original.Clone()
	*clone.CustomSongID = 999
	*clone.DemonDifficulty = models.DemonDifficultyEasy
	clone.SongIDs[0] = 999

	assert.Equal(t, 100, *original.CustomSongID)
	assert.Equal(t, models.DemonDifficultyExtreme, *original.DemonDifficulty)
	assert.Equal(t, models.IntList{1, 2, 3}, original.SongIDs)
}

func TestLevel_RatingHelpers(t *testing.T) {
	assert.True(t, models.Level{Stars: 10}.IsDemon())
	assert.False(t, models.Level{Stars: 9}.IsDemon())
	assert.True(t, models.Level{Stars: 1}.IsAuto())
	assert.False(t, models.Level{Stars: 0}.IsAuto())
}
