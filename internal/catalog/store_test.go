package catalog

import (
	"errors"
	"testing"

	"mediadeck/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	assert.Equal(t, types.NoFilters(), s.Filters())
	assert.Equal(t, types.All, s.ActiveCategory())
	assert.False(t, s.Connected())
	assert.Empty(t, s.Files())
	assert.Equal(t, []string{types.All}, s.CategoryOptions())
}

func TestSetControlsUsesActiveCategory(t *testing.T) {
	s := NewStore()
	s.SetActiveCategory("images")

	f := s.SetControls("image", types.ScoreHigh)
	assert.Equal(t, types.FilterState{Type: "image", Score: types.ScoreHigh, Category: "images"}, f)
	assert.Equal(t, f, s.Filters())

	f = s.SetControls("", "")
	assert.Equal(t, types.FilterState{Type: types.All, Score: types.ScoreAll, Category: "images"}, f)
}

func TestSetActiveCategoryKeepsSelects(t *testing.T) {
	s := NewStore()
	s.SetControls("pdf", types.ScoreLow)
	f := s.SetActiveCategory("docs")
	assert.Equal(t, types.FilterState{Type: "pdf", Score: types.ScoreLow, Category: "docs"}, f)

	f = s.SetActiveCategory("")
	assert.Equal(t, types.All, f.Category)
}

func TestReplaceOverwrites(t *testing.T) {
	s := NewStore()
	s.BeginLoad()
	assert.True(t, s.Loading())

	s.Replace(types.FileListResult{
		Data:       []types.FileRecord{{Name: "a"}, {Name: "b"}},
		Categories: []types.CategoryCount{{Name: "images", Count: 2}},
	})
	assert.False(t, s.Loading())
	assert.True(t, s.Connected())
	assert.Len(t, s.Files(), 2)
	assert.Equal(t, uint64(1), s.Generation())

	s.Replace(types.FileListResult{Data: []types.FileRecord{{Name: "c"}}})
	assert.Equal(t, []types.FileRecord{{Name: "c"}}, s.Files())
	count, ok := s.CategoryCount("images")
	assert.True(t, ok)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{types.All, "images"}, s.CategoryOptions())
}

func TestFailKeepsListing(t *testing.T) {
	s := NewStore()
	s.Replace(types.FileListResult{Data: []types.FileRecord{{Name: "a"}}})

	s.BeginLoad()
	boom := errors.New("boom")
	s.Fail(boom)

	assert.False(t, s.Loading())
	assert.False(t, s.Connected())
	assert.Equal(t, boom, s.LastError())
	assert.Equal(t, []types.FileRecord{{Name: "a"}}, s.Files())
	assert.Equal(t, uint64(1), s.Generation())

	s.Succeed()
	assert.True(t, s.Connected())
	assert.Nil(t, s.LastError())
}

func TestLoadingCountsOverlappingCalls(t *testing.T) {
	s := NewStore()
	s.BeginLoad()
	s.BeginLoad()
	s.BeginLoad()

	s.Replace(types.FileListResult{Data: []types.FileRecord{{Name: "a"}}})
	assert.True(t, s.Loading(), "two calls still in flight")

	s.Fail(errors.New("boom"))
	assert.True(t, s.Loading(), "one call still in flight")

	s.Succeed()
	assert.False(t, s.Loading())

	// a settle without a matching BeginLoad does not go negative
	s.Succeed()
	s.BeginLoad()
	assert.True(t, s.Loading())
}
