// Package api is the HTTP client for the Media Storage API backend.
//
// Every operation issues exactly one request against BaseURL plus a fixed
// path. There are no retries and no client-side timeouts: callers cancel
// through the context. All failures come back as *errors.RequestError.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"mediadeck/internal/errors"
	"mediadeck/internal/log"
	"mediadeck/pkg/types"
)

// Endpoint paths relative to the base URL
const (
	PathUpload     = "/upload"
	PathFiles      = "/files"
	PathSearch     = "/search"
	PathCategories = "/categories"
)

// Operation names used in errors and logs
const (
	OpUpload     = "upload files"
	OpList       = "list files"
	OpSearch     = "search files"
	OpCategories = "get categories"
)

// maxErrorBody caps how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// UploadFile is one local file to send. Body is read exactly once.
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	Body     io.Reader
}

// uploadMetadata is the JSON blob sent next to every file part
type uploadMetadata struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// ReaderWrapper decorates a file body before it is streamed, e.g. to track progress
type ReaderWrapper func(f UploadFile) io.Reader

// Client talks to the backend
type Client struct {
	baseURL string
	http    *http.Client
	wrap    ReaderWrapper
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithReaderWrapper installs a body decorator for uploads
func WithReaderWrapper(w ReaderWrapper) Option {
	return func(cl *Client) { cl.wrap = w }
}

// New creates a client for baseURL (e.g. http://localhost:8000/api)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadFiles sends every file in one multipart request. Each file
// contributes a "file" part followed by a "metadata" part.
func (c *Client) UploadFiles(ctx context.Context, files []UploadFile) (types.UploadResult, error) {
	var result types.UploadResult
	if len(files) == 0 {
		return result, errors.NewRequestError(OpUpload, errors.UploadRejected, 0, "no files selected", nil)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := c.writeParts(mw, files)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathUpload, pr)
	if err != nil {
		pr.Close()
		return result, errors.NewRequestError(OpUpload, errors.NetworkFailure, 0, "", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if err := c.do(req, OpUpload, &result); err != nil {
		return result, err
	}
	if !result.OK() {
		msg := result.Message
		if msg == "" {
			msg = "backend refused the upload"
		}
		return result, errors.NewRequestError(OpUpload, errors.UploadRejected, 0, msg, nil)
	}
	return result, nil
}

func (c *Client) writeParts(mw *multipart.Writer, files []UploadFile) error {
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(f.Name)))
		h.Set("Content-Type", f.MimeType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}

		body := f.Body
		if c.wrap != nil {
			body = c.wrap(f)
		}
		if _, err := io.Copy(part, body); err != nil {
			return fmt.Errorf("streaming %s: %w", f.Name, err)
		}

		meta, err := json.Marshal(uploadMetadata{Filename: f.Name, MimeType: f.MimeType, Size: f.Size})
		if err != nil {
			return err
		}
		if err := mw.WriteField("metadata", string(meta)); err != nil {
			return err
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// ListFiles fetches the listing. Filter values equal to "all" are not sent.
func (c *Client) ListFiles(ctx context.Context, filters types.FilterState) (types.FileListResult, error) {
	var result types.FileListResult
	err := c.get(ctx, OpList, PathFiles, ListQuery(filters), &result)
	return result, err
}

// ListQuery encodes the filters that are not the "all" sentinel
func ListQuery(filters types.FilterState) url.Values {
	q := url.Values{}
	if filters.Type != "" && filters.Type != types.All {
		q.Set("type", filters.Type)
	}
	if filters.Score != "" && filters.Score != types.ScoreAll {
		q.Set("score", string(filters.Score))
	}
	if filters.Category != "" && filters.Category != types.All {
		q.Set("category", filters.Category)
	}
	return q
}

// SearchFiles runs a backend search for query
func (c *Client) SearchFiles(ctx context.Context, query string) (types.FileListResult, error) {
	var result types.FileListResult
	err := c.get(ctx, OpSearch, PathSearch, url.Values{"q": {query}}, &result)
	return result, err
}

// GetCategories fetches the category histogram
func (c *Client) GetCategories(ctx context.Context) ([]types.CategoryCount, error) {
	var result []types.CategoryCount
	err := c.get(ctx, OpCategories, PathCategories, nil, &result)
	return result, err
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + encodeQuery(query)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.NewRequestError(op, errors.NetworkFailure, 0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, op, out)
}

// encodeQuery percent-encodes spaces as %20 rather than "+". Literal plus
// signs are already escaped to %2B by Encode.
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "+", "%20")
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	log.LogWithFields(log.F("op", op), log.F("url", req.URL.String())).Debug("request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewRequestError(op, errors.NetworkFailure, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.NewRequestError(op, errors.HTTPError, resp.StatusCode, errorMessage(resp.StatusCode, body), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewRequestError(op, errors.DecodeFailure, resp.StatusCode, "malformed response", err)
	}
	return nil
}

// errorMessage lifts {"detail": "..."} (FastAPI) or {"message": "..."} out of
// an error body, falling back to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		var detail string
		if len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &detail) == nil && detail != "" {
			return detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
