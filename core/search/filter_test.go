package search_test

import (
	"testing"

	"gdps-backend/core/search"

	"github.com/stretchr/testify/assert"
)

func TestFilter_SingleClauses(t *testing.T) {
	tests := []struct {
		name  string
		build func() *search.Filter
		want  string
	}{
		{"EqBool", func() *search.Filter { return search.NewFilter().Eq("deleted", false) }, "deleted = false"},
		{"EqInt", func() *search.Filter { return search.NewFilter().Eq("stars", 10) }, "stars = 10"},
		{"EqString", func() *search.Filter { return search.NewFilter().Eq("name", "Bloodbath") }, `name = "Bloodbath"`},
		{"Gt", func() *search.Filter { return search.NewFilter().Gt("stars", 0) }, "stars > 0"},
		{"In", func() *search.Filter { return search.NewFilter().In("length", []int{1, 2, 3}) }, "length IN [1, 2, 3]"},
		{"NotIn", func() *search.Filter { return search.NewFilter().NotIn("song_id", []int{7}) }, "song_id NOT IN [7]"},
		{"InEmpty", func() *search.Filter { return search.NewFilter().In("length", nil) }, "length IN []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().String())
		})
	}
}

func TestFilter_EscapesStringValues(t *testing.T) {
	f := search.NewFilter().Eq("name", `evil" OR deleted = true OR name = "`)
	assert.Equal(t, `name = "evil\" OR deleted = true OR name = \""`, f.String())

	f = search.NewFilter().Eq("name", `back\slash`)
	assert.Equal(t, `name = "back\\slash"`, f.String())
}

func TestFilter_JoinsWithAnd(t *testing.T) {
	f := search.NewFilter().
		Eq("deleted", false).
		Eq("publicity", 0).
		Gt("stars", 0)
	assert.Equal(t, "deleted = false AND publicity = 0 AND stars > 0", f.String())
}

func TestFilter_Empty(t *testing.T) {
	f := search.NewFilter()
	assert.True(t, f.Empty())
	assert.Equal(t, "", f.String())

	f.Eq("deleted", false)
	assert.False(t, f.Empty())
}
