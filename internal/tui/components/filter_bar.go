package components

import (
	"fmt"
	"strings"

	"mediadeck/internal/render"
	"mediadeck/pkg/types"
)

// FilterBar renders the two select controls and the category badges
type FilterBar struct {
	filters    types.FilterState
	categories []types.CategoryCount
	active     string
}

func NewFilterBar() *FilterBar {
	return &FilterBar{filters: types.NoFilters(), active: types.All}
}

// Set replaces everything the bar shows
func (fb *FilterBar) Set(filters types.FilterState, categories []types.CategoryCount, active string) {
	fb.filters = filters
	fb.categories = categories
	fb.active = active
}

// Badge renders one category badge as "name count"
func Badge(c types.CategoryCount) string {
	return fmt.Sprintf("%s %d", c.Name, c.Count)
}

func (fb *FilterBar) View(p render.Palette) string {
	var s strings.Builder

	s.WriteString(p.Muted.Render("Type: "))
	s.WriteString(p.Label.Render(fb.filters.Type))
	s.WriteString(p.Muted.Render("   Score: "))
	s.WriteString(p.Label.Render(string(fb.filters.Score)))
	s.WriteString("\n")

	badges := []string{badge(p, types.All, fb.active == types.All)}
	for _, c := range fb.categories {
		badges = append(badges, badge(p, Badge(c), fb.active == c.Name))
	}
	s.WriteString(strings.Join(badges, " "))
	return s.String()
}

func badge(p render.Palette, text string, active bool) string {
	if active {
		return p.Active.Render(text)
	}
	return p.Inactive.Render(text)
}
