package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecordScoreFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"canonical", `{"name":"a","consistency_score":87}`, 87},
		{"legacy alias", `{"name":"a","score":55.5}`, 55.5},
		{"canonical wins", `{"name":"a","consistency_score":10,"score":90}`, 10},
		{"absent", `{"name":"a"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r FileRecord
			require.NoError(t, json.Unmarshal([]byte(tt.in), &r))
			assert.Equal(t, tt.want, r.ConsistencyScore)
		})
	}
}

func TestFileRecordIDAndTimestamp(t *testing.T) {
	var r FileRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":12,"name":"a","timestamp":"2024-03-01T10:20:30"}`), &r))
	assert.Equal(t, "12", r.ID)
	require.NotNil(t, r.Timestamp)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), *r.Timestamp)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","name":"a","timestamp":"2024-03-01T10:20:30Z"}`), &r))
	assert.Equal(t, "abc", r.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","timestamp":"yesterday"}`), &r))
	assert.Equal(t, "a", r.Name)
	assert.Nil(t, r.Timestamp)
}

func TestFileRecordTimestampShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"date only", `"2024-01-15"`, ptrTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))},
		{"unix seconds", `1705312800`, ptrTime(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))},
		{"offset without colon", `"2024-01-15T10:00:00.123+0000"`, ptrTime(time.Date(2024, 1, 15, 10, 0, 0, 123e6, time.UTC))},
		{"microseconds", `"2024-01-15T10:00:00.123456"`, ptrTime(time.Date(2024, 1, 15, 10, 0, 0, 123456e3, time.UTC))},
		{"unparseable", `"next tuesday"`, nil},
		{"wrong shape", `{"when":"now"}`, nil},
		{"null", `null`, nil},
		{"empty", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r FileRecord
			require.NoError(t, json.Unmarshal([]byte(`{"name":"a.png","timestamp":`+tt.in+`}`), &r))
			if tt.want == nil {
				assert.Nil(t, r.Timestamp)
				return
			}
			require.NotNil(t, r.Timestamp)
			assert.True(t, tt.want.Equal(*r.Timestamp), "got %v", *r.Timestamp)
		})
	}
}

func TestListingSurvivesBadTimestamp(t *testing.T) {
	var res FileListResult
	require.NoError(t, json.Unmarshal([]byte(
		`{"data":[{"name":"a.png","timestamp":"2024-01-15"},{"name":"b.png","timestamp":"soon"},{"name":"c.png","timestamp":1705312800}]}`,
	), &res))
	require.Len(t, res.Data, 3)
	assert.NotNil(t, res.Data[0].Timestamp)
	assert.Nil(t, res.Data[1].Timestamp)
	assert.NotNil(t, res.Data[2].Timestamp)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestFileListResultShapes(t *testing.T) {
	var env FileListResult
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"name":"a"}],"categories":[{"name":"x","count":2}]}`), &env))
	assert.Len(t, env.Data, 1)
	assert.Equal(t, 2, env.Categories[0].Count)

	var bare FileListResult
	require.NoError(t, json.Unmarshal([]byte(` [{"name":"a"},{"name":"b"}]`), &bare))
	assert.Len(t, bare.Data, 2)
	assert.Nil(t, bare.Categories)
}

func TestUploadResultOK(t *testing.T) {
	yes, no := true, false
	assert.True(t, UploadResult{}.OK())
	assert.True(t, UploadResult{Success: &yes}.OK())
	assert.False(t, UploadResult{Success: &no}.OK())

	res := UploadResult{
		SavedFile:  &SavedFile{Filename: "a.png"},
		SavedFiles: []SavedFile{{Filename: "b.png"}},
	}
	assert.Len(t, res.Saved(), 2)
}

func TestCycle(t *testing.T) {
	opts := TypeOptions()
	assert.Equal(t, All, opts[0])
	assert.Equal(t, "image", Cycle(opts, All, 1))
	assert.Equal(t, "file", Cycle(opts, All, -1))
	assert.Equal(t, All, Cycle(opts, "file", 1))
	assert.Equal(t, All, Cycle(opts, "bogus", 1))
}

func TestToggles(t *testing.T) {
	assert.Equal(t, ViewList, ViewGrid.Toggle())
	assert.Equal(t, ViewGrid, ViewList.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ViewList, ParseViewMode("list"))
	assert.Equal(t, ThemeDark, ParseTheme("nonsense"))
}

func TestPage(t *testing.T) {
	assert.Equal(t, "landing", Landing.String())
	assert.Equal(t, "app", App.String())
	assert.True(t, Entering.Transitioning())
	assert.True(t, Leaving.Transitioning())
	assert.False(t, App.Transitioning())
	assert.False(t, Landing.Transitioning())
}
