package messages

import (
	"mediadeck/internal/search"
	"mediadeck/pkg/types"
)

// FilesLoadedMsg carries the outcome of a list or search call
type FilesLoadedMsg struct {
	Request search.Request
	Result  types.FileListResult
	Err     error
}

// CategoriesLoadedMsg carries the outcome of a categories call
type CategoriesLoadedMsg struct {
	Categories []types.CategoryCount
	Err        error
}

// UploadDoneMsg carries the outcome of an upload
type UploadDoneMsg struct {
	Count  int
	Result types.UploadResult
	Err    error
}

// DebounceMsg fires when a search keystroke's quiet period ends
type DebounceMsg struct {
	Token uint64
	Query string
}

// StaggerMsg ends a page transition
type StaggerMsg struct{}

// DropMsg is a file that landed in the drop directory
type DropMsg struct {
	Path string
}
