// Package search decides what a settled query turns into and paces
// keystrokes so only the settled value reaches the backend.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"mediadeck/pkg/types"
)

// DefaultMinQuery is the shortest query that is sent as a search
const DefaultMinQuery = 2

// Kind is the type of backend request a query maps to
type Kind int

const (
	KindList Kind = iota
	KindSearch
)

func (k Kind) String() string {
	if k == KindSearch {
		return "search"
	}
	return "list"
}

// Request is a planned backend call
type Request struct {
	Kind    Kind
	Query   string
	Filters types.FilterState
	// Fallback is set when a short query was replaced by an unfiltered
	// listing, so the active filters do not apply to the result
	Fallback bool
}

// Summary is the status line for a reply of count files
func (r Request) Summary(count int) string {
	if r.Fallback {
		return fmt.Sprintf("Showing all files (%d)", count)
	}
	return fmt.Sprintf("%d files", count)
}

// List plans a filtered listing
func List(filters types.FilterState) Request {
	return Request{Kind: KindList, Filters: filters}
}

// Plan maps a settled query to a request. Queries shorter than minLen runes
// after trimming, including the empty query, fall back to an unfiltered
// listing.
func Plan(query string, minLen int) Request {
	if minLen < 1 {
		minLen = DefaultMinQuery
	}
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minLen {
		req := List(types.NoFilters())
		req.Fallback = true
		return req
	}
	return Request{Kind: KindSearch, Query: q}
}

// Backend is the part of the API client that serves listings
type Backend interface {
	ListFiles(ctx context.Context, filters types.FilterState) (types.FileListResult, error)
	SearchFiles(ctx context.Context, query string) (types.FileListResult, error)
}

// Execute issues the single backend call req describes
func Execute(ctx context.Context, b Backend, req Request) (types.FileListResult, error) {
	if req.Kind == KindSearch {
		return b.SearchFiles(ctx, req.Query)
	}
	return b.ListFiles(ctx, req.Filters)
}
