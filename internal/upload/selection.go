// Package upload manages the pending file selection for the upload modal:
// which local files are queued, whether they are acceptable, and how they
// are handed to the API client.
package upload

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"mediadeck/internal/api"
	"mediadeck/internal/errors"
	"mediadeck/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/h2non/filetype"
)

// sniffLen is how many leading bytes are read for content-type detection
const sniffLen = 262

// Item is one queued local file
type Item struct {
	Path     string
	Name     string
	Size     int64
	MimeType string
}

// HumanSize renders the size for display
func (i Item) HumanSize() string {
	return humanize.Bytes(uint64(i.Size))
}

// Rules decides which files may join a selection
type Rules struct {
	accept   []glob.Glob
	patterns []string
	maxSize  int64
}

// NewRules compiles accept patterns. An empty pattern list accepts every
// name; maxSize <= 0 disables the size cap.
func NewRules(patterns []string, maxSize int64) (*Rules, error) {
	r := &Rules{maxSize: maxSize, patterns: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, errors.NewUploadError("invalid accept pattern", p, errors.InvalidUpload, err)
		}
		r.accept = append(r.accept, g)
	}
	return r, nil
}

// Patterns returns the accept patterns as configured, nil when every name is
// accepted
func (r *Rules) Patterns() []string {
	if r == nil {
		return nil
	}
	return r.patterns
}

// Check validates name and size
func (r *Rules) Check(path string, size int64) error {
	if r == nil {
		return nil
	}
	if r.maxSize > 0 && size > r.maxSize {
		return errors.NewUploadError("file too large (max "+humanize.Bytes(uint64(r.maxSize))+")", path, errors.InvalidUpload, nil)
	}
	if len(r.accept) == 0 {
		return nil
	}
	name := strings.ToLower(filepath.Base(path))
	for _, g := range r.accept {
		if g.Match(name) {
			return nil
		}
	}
	return errors.NewUploadError("file type not accepted", path, errors.InvalidUpload, nil)
}

// Selection is the ordered, de-duplicated set of files waiting to be uploaded
type Selection struct {
	rules *Rules
	items []Item
}

// NewSelection creates an empty selection governed by rules (nil accepts all)
func NewSelection(rules *Rules) *Selection {
	return &Selection{rules: rules}
}

// Add stats, validates and queues path. Adding a path twice is a no-op.
func (s *Selection) Add(path string) (Item, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, it := range s.items {
		if it.Path == abs {
			return it, nil
		}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Item{}, errors.NewUploadError("cannot read file", abs, errors.FileAccessDenied, err)
	}
	if info.IsDir() {
		return Item{}, errors.NewUploadError("directories cannot be uploaded", abs, errors.InvalidUpload, nil)
	}
	if err := s.rules.Check(abs, info.Size()); err != nil {
		return Item{}, err
	}

	mimeType, err := DetectMime(abs)
	if err != nil {
		return Item{}, errors.NewUploadError("cannot read file", abs, errors.FileAccessDenied, err)
	}

	item := Item{
		Path:     abs,
		Name:     filepath.Base(abs),
		Size:     info.Size(),
		MimeType: mimeType,
	}
	s.items = append(s.items, item)
	return item, nil
}

// AddAll queues every path, collecting the ones that were refused
func (s *Selection) AddAll(paths []string) (added []Item, refused []error) {
	for _, p := range paths {
		it, err := s.Add(p)
		if err != nil {
			refused = append(refused, err)
			continue
		}
		added = append(added, it)
	}
	return added, refused
}

// Remove drops path from the selection
func (s *Selection) Remove(path string) bool {
	for i, it := range s.items {
		if it.Path == path {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLast drops the most recently added item
func (s *Selection) RemoveLast() (Item, bool) {
	if len(s.items) == 0 {
		return Item{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.items = nil
}

// Items returns the queued files in insertion order
func (s *Selection) Items() []Item {
	return s.items
}

// Snapshot copies the selection so it can be sent while the original keeps
// changing
func (s *Selection) Snapshot() *Selection {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return &Selection{rules: s.rules, items: items}
}

// Len returns the number of queued files
func (s *Selection) Len() int {
	return len(s.items)
}

// Empty reports whether nothing is queued
func (s *Selection) Empty() bool {
	return len(s.items) == 0
}

// TotalSize sums the queued file sizes
func (s *Selection) TotalSize() int64 {
	var total int64
	for _, it := range s.items {
		total += it.Size
	}
	return total
}

// Uploader is the part of the API client that accepts uploads
type Uploader interface {
	UploadFiles(ctx context.Context, files []api.UploadFile) (types.UploadResult, error)
}

// Send opens every queued file and uploads them in one request. The
// selection is left untouched so a failed upload can be retried.
func (s *Selection) Send(ctx context.Context, up Uploader) (types.UploadResult, error) {
	files := make([]api.UploadFile, 0, len(s.items))
	closers := make([]io.Closer, 0, len(s.items))
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, it := range s.items {
		f, err := os.Open(it.Path)
		if err != nil {
			return types.UploadResult{}, errors.NewUploadError("cannot read file", it.Path, errors.FileAccessDenied, err)
		}
		closers = append(closers, f)
		files = append(files, api.UploadFile{
			Name:     it.Name,
			MimeType: it.MimeType,
			Size:     it.Size,
			Body:     f,
		})
	}
	return up.UploadFiles(ctx, files)
}

// DetectMime sniffs the file header, falling back to the extension and
// finally to application/octet-stream.
func DetectMime(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value, nil
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if i := strings.Index(byExt, ";"); i >= 0 {
			byExt = byExt[:i]
		}
		return byExt, nil
	}
	return "application/octet-stream", nil
}
