package render

import (
	"strings"
	"testing"
	"time"

	"mediadeck/pkg/testutils"
	"mediadeck/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMimePrecedence(t *testing.T) {
	tests := []struct {
		mime string
		want types.FileType
	}{
		{"image/png", types.TypeImage},
		{"video/mp4", types.TypeVideo},
		{"application/json", types.TypeJSON},
		{"text/plain", types.TypeText},
		{"text/x-pdf-notes", types.TypeText},
		{"application/pdf", types.TypePDF},
		{"application/msword", types.TypeDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", types.TypeDocument},
		{"application/vnd.ms-excel", types.TypeSpreadsheet},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", types.TypeSpreadsheet},
		{"application/vnd.ms-powerpoint", types.TypePresentation},
		{"application/vnd.openxmlformats-officedocument.presentationml.presentation", types.TypePresentation},
		{"application/x-word-presentation", types.TypeDocument},
		{"application/octet-stream", types.TypeFile},
		{"", types.TypeFile},
		{"IMAGE/JPEG", types.TypeImage},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify("", tt.mime))
		})
	}
}

func TestClassifyExplicitTypeWins(t *testing.T) {
	assert.Equal(t, types.TypeJSON, Classify(types.TypeJSON, "image/png"))
	assert.Equal(t, types.TypePDF, Classify("audio", "application/pdf"))
}

func TestDescribe(t *testing.T) {
	d := Describe(types.TypeSpreadsheet)
	assert.Equal(t, "SPREADSHEET", d.Label)
	assert.NotEmpty(t, d.Icon)

	unknown := Describe("weird")
	assert.Equal(t, types.TypeFile, unknown.Type)
	assert.Equal(t, "FILE", unknown.Label)

	for _, ft := range types.FileTypes {
		assert.NotEmpty(t, Describe(ft).Icon, ft)
	}
}

func TestBuildCardPreview(t *testing.T) {
	t.Run("image with preview url", func(t *testing.T) {
		c := BuildCard(types.FileRecord{Name: "a.png", Type: types.TypeImage, PreviewURL: "http://cdn/x/a.png"})
		assert.Equal(t, PreviewImage, c.Preview)
		assert.Equal(t, "http://cdn/x/a.png", c.PreviewURL)
		assert.Equal(t, "▣ a.png", c.PreviewText())
	})

	t.Run("video with preview url", func(t *testing.T) {
		c := BuildCard(types.FileRecord{Name: "v.mp4", MimeType: "video/mp4", PreviewURL: "http://cdn/v.jpg"})
		assert.Equal(t, PreviewImage, c.Preview)
	})

	t.Run("image without preview url", func(t *testing.T) {
		c := BuildCard(types.FileRecord{Name: "a.png", Type: types.TypeImage})
		assert.Equal(t, PreviewIcon, c.Preview)
		assert.Equal(t, Describe(types.TypeImage).Icon, c.PreviewText())
	})

	t.Run("pdf ignores preview url", func(t *testing.T) {
		c := BuildCard(types.FileRecord{Name: "a.pdf", MimeType: "application/pdf", PreviewURL: "http://cdn/a.png"})
		assert.Equal(t, PreviewIcon, c.Preview)
		assert.Equal(t, Describe(types.TypePDF).Icon, c.PreviewText())
	})
}

func TestBuildCardFields(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	c := BuildCard(types.FileRecord{Name: "r.json", Type: types.TypeJSON, ConsistencyScore: 66.6, Category: "data", Timestamp: &ts})
	assert.Equal(t, "JSON", c.Label())
	assert.Equal(t, 67, c.Score)
	assert.Equal(t, "67%", c.ScoreText())
	assert.Equal(t, "data", c.Category)
	assert.Equal(t, "May 6, 2024 07:08", c.Timestamp)

	bare := BuildCard(types.FileRecord{Name: "x"})
	assert.Equal(t, "0%", bare.ScoreText())
	assert.Equal(t, "", bare.Category)
	assert.Equal(t, "", bare.Timestamp)
	assert.Equal(t, "FILE", bare.Label())

	assert.Equal(t, 100, BuildCard(types.FileRecord{ConsistencyScore: 140}).Score)
	assert.Equal(t, 0, BuildCard(types.FileRecord{ConsistencyScore: -3}).Score)
}

func TestScoreBar(t *testing.T) {
	c := Card{Score: 50}
	assert.Equal(t, 5, c.Fill(10))
	assert.Equal(t, "█████░░░░░", c.ScoreBar(10))
	assert.Equal(t, 0, Card{Score: 0}.Fill(10))
	assert.Equal(t, 10, Card{Score: 100}.Fill(10))
}

func sampleFiles(n int) []types.FileRecord {
	files := make([]types.FileRecord, n)
	for i := range files {
		files[i] = types.FileRecord{Name: "file" + string(rune('a'+i)) + ".txt", MimeType: "text/plain", ConsistencyScore: float64(i * 10)}
	}
	return files
}

func TestBoardToggleKeepsData(t *testing.T) {
	b := NewBoard(types.ViewGrid)
	b.SetWidth(3 * (GridCardWidth + gridGutter))
	files := sampleFiles(7)
	b.Render(files)
	require.Len(t, b.Cards(), 7)

	before := make([]types.FileRecord, 0, 7)
	for _, c := range b.Cards() {
		assert.Equal(t, types.ViewGrid, c.Slot.Mode)
		before = append(before, c.Record)
	}
	assert.Equal(t, 1, b.Cards()[4].Slot.Row)
	assert.Equal(t, 1, b.Cards()[4].Slot.Col)

	b.SetMode(types.ViewList)
	for i, c := range b.Cards() {
		assert.Equal(t, types.ViewList, c.Slot.Mode)
		assert.Equal(t, i, c.Slot.Row)
		assert.Equal(t, 0, c.Slot.Col)
		assert.Equal(t, before[i], c.Record)
	}
	assert.Equal(t, files, before)

	b.SetMode(types.ViewGrid)
	assert.Equal(t, 2, b.Cards()[6].Slot.Row)
	assert.Equal(t, 0, b.Cards()[6].Slot.Col)
}

func TestBoardRenderReplaces(t *testing.T) {
	b := NewBoard(types.ViewList)
	b.Render(sampleFiles(3))
	b.Render(sampleFiles(1))
	assert.Len(t, b.Cards(), 1)
	assert.Equal(t, types.ViewList, b.Cards()[0].Slot.Mode)

	b.Render(nil)
	assert.True(t, b.Empty())
	out := testutils.StripANSI(b.View(NewPalette(types.ThemeDark)))
	assert.Contains(t, out, "No files found.")
}

func TestBoardViews(t *testing.T) {
	b := NewBoard(types.ViewGrid)
	b.SetWidth(120)
	b.Render([]types.FileRecord{{Name: "a.png", Type: types.TypeImage, ConsistencyScore: 87, Category: "images"}})

	grid := testutils.StripANSI(b.View(NewPalette(types.ThemeLight)))
	assert.Contains(t, grid, "a.png")
	assert.Contains(t, grid, "IMAGE")
	assert.Contains(t, grid, "87%")
	assert.Contains(t, grid, "images")

	b.SetMode(types.ViewList)
	list := testutils.StripANSI(b.View(NewPalette(types.ThemeDark)))
	assert.Contains(t, list, "a.png")
	assert.Contains(t, list, "87%")
	assert.Equal(t, 1, strings.Count(list, "\n")+1)
}

func TestThemeGlyph(t *testing.T) {
	assert.NotEqual(t, ThemeGlyph(types.ThemeDark), ThemeGlyph(types.ThemeLight))
	assert.Equal(t, ThemeGlyph(types.ThemeLight), NewPalette(types.ThemeLight).Glyph)
}
