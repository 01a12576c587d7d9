package types

// All is the sentinel filter value meaning "no restriction"
const All = "all"

// ScoreBand is a coarse consistency-score filter passed verbatim to the backend
type ScoreBand string

const (
	ScoreAll    ScoreBand = All
	ScoreHigh   ScoreBand = "high"
	ScoreMedium ScoreBand = "medium"
	ScoreLow    ScoreBand = "low"
)

// ScoreBands lists the score filter options in display order
var ScoreBands = []ScoreBand{ScoreAll, ScoreHigh, ScoreMedium, ScoreLow}

// FilterState is the current filter selection. It is always overwritten as a
// whole, never merged.
type FilterState struct {
	Type     string
	Score    ScoreBand
	Category string
}

// NoFilters returns a FilterState with every field set to "all"
func NoFilters() FilterState {
	return FilterState{Type: All, Score: ScoreAll, Category: All}
}

// TypeOptions returns the type filter options, "all" first
func TypeOptions() []string {
	opts := make([]string, 0, len(FileTypes)+1)
	opts = append(opts, All)
	for _, t := range FileTypes {
		opts = append(opts, string(t))
	}
	return opts
}

// Cycle returns the option after (or, with step -1, before) current,
// wrapping around. An unknown current value yields the first option.
func Cycle(options []string, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			n := (i + step) % len(options)
			if n < 0 {
				n += len(options)
			}
			return options[n]
		}
	}
	return options[0]
}
