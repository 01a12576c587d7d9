package render

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"strings"

	"mediadeck/pkg/types"
)

// TimestampLayout is how card timestamps are printed
const TimestampLayout = "Jan 2, 2006 15:04"

// PreviewKind says what goes in the card's preview slot
type PreviewKind int

const (
	PreviewIcon PreviewKind = iota
	PreviewImage
)

// Slot holds a card's layout attributes. It is rewritten on every view mode
// change; the card content is not.
type Slot struct {
	Mode  types.ViewMode
	Row   int
	Col   int
	Width int
}

// Card is the rendered form of one file record
type Card struct {
	Record     types.FileRecord
	Descriptor Descriptor
	Preview    PreviewKind
	PreviewURL string
	Name       string
	Score      int
	Category   string
	Timestamp  string
	Slot       Slot
}

// BuildCard derives a card from r
func BuildCard(r types.FileRecord) Card {
	d := DescribeRecord(r)
	c := Card{
		Record:     r,
		Descriptor: d,
		Preview:    PreviewIcon,
		Name:       r.Name,
		Score:      clampScore(r.ConsistencyScore),
		Category:   r.Category,
	}
	if (d.Type == types.TypeImage || d.Type == types.TypeVideo) && r.PreviewURL != "" {
		c.Preview = PreviewImage
		c.PreviewURL = r.PreviewURL
	}
	if r.Timestamp != nil && !r.Timestamp.IsZero() {
		c.Timestamp = r.Timestamp.Format(TimestampLayout)
	}
	return c
}

// BuildCards builds one card per record, preserving order
func BuildCards(files []types.FileRecord) []Card {
	cards := make([]Card, 0, len(files))
	for _, f := range files {
		cards = append(cards, BuildCard(f))
	}
	return cards
}

func clampScore(s float64) int {
	if math.IsNaN(s) {
		return 0
	}
	v := int(math.Round(s))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Label is the upper-cased type label
func (c Card) Label() string {
	return c.Descriptor.Label
}

// ScoreText renders the score as "NN%"
func (c Card) ScoreText() string {
	return fmt.Sprintf("%d%%", c.Score)
}

// Fill returns how many of width cells the score bar covers
func (c Card) Fill(width int) int {
	if width <= 0 {
		return 0
	}
	return int(math.Round(float64(c.Score) * float64(width) / 100))
}

// ScoreBar draws the proportional fill bar
func (c Card) ScoreBar(width int) string {
	n := c.Fill(width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// PreviewText is the terminal stand-in for the preview slot
func (c Card) PreviewText() string {
	if c.Preview == PreviewImage {
		return "▣ " + previewName(c.PreviewURL)
	}
	return c.Descriptor.Icon
}

func previewName(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return raw
}
