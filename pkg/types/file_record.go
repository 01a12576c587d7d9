package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"mediadeck/internal/log"
)

// FileType is the coarse classification used for icons, labels and filters
type FileType string

const (
	TypeImage        FileType = "image"
	TypeVideo        FileType = "video"
	TypeJSON         FileType = "json"
	TypeText         FileType = "text"
	TypeDocument     FileType = "document"
	TypePDF          FileType = "pdf"
	TypeSpreadsheet  FileType = "spreadsheet"
	TypePresentation FileType = "presentation"
	TypeFile         FileType = "file"
)

// FileTypes lists every known type in display order
var FileTypes = []FileType{
	TypeImage, TypeVideo, TypeJSON, TypeText, TypeDocument,
	TypePDF, TypeSpreadsheet, TypePresentation, TypeFile,
}

// Known reports whether t is one of FileTypes
func (t FileType) Known() bool {
	for _, k := range FileTypes {
		if k == t {
			return true
		}
	}
	return false
}

// FileRecord is the backend's description of one stored file.
// Records are read-only on the client.
type FileRecord struct {
	ID               string     `json:"id,omitempty"`
	Name             string     `json:"name"`
	Type             FileType   `json:"type,omitempty"`
	MimeType         string     `json:"mime_type,omitempty"`
	ConsistencyScore float64    `json:"consistency_score"`
	Category         string     `json:"category,omitempty"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	PreviewURL       string     `json:"preview_url,omitempty"`
}

// timestampLayouts are tried in order. The backend emits either RFC 3339 or
// an ISO 8601 local time, sometimes with a colon-less offset or no time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// UnmarshalJSON decodes the canonical record schema. The legacy "score" field
// is accepted when "consistency_score" is absent; ids may be numbers or strings.
func (r *FileRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID               json.RawMessage `json:"id"`
		Name             string          `json:"name"`
		Type             FileType        `json:"type"`
		MimeType         string          `json:"mime_type"`
		ConsistencyScore *float64        `json:"consistency_score"`
		Score            *float64        `json:"score"`
		Category         string          `json:"category"`
		Timestamp        json.RawMessage `json:"timestamp"`
		PreviewURL       string          `json:"preview_url"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = FileRecord{
		Name:       wire.Name,
		Type:       wire.Type,
		MimeType:   wire.MimeType,
		Category:   wire.Category,
		PreviewURL: wire.PreviewURL,
	}

	switch {
	case wire.ConsistencyScore != nil:
		r.ConsistencyScore = *wire.ConsistencyScore
	case wire.Score != nil:
		r.ConsistencyScore = *wire.Score
	}

	if len(wire.ID) > 0 && !bytes.Equal(wire.ID, []byte("null")) {
		var s string
		if err := json.Unmarshal(wire.ID, &s); err == nil {
			r.ID = s
		} else {
			r.ID = string(wire.ID)
		}
	}

	// The timestamp is display-only: an unreadable one leaves the card without
	// a date instead of failing the whole listing.
	if ts, err := decodeTimestamp(wire.Timestamp); err != nil {
		log.LogWithFields(log.F("name", r.Name), log.F("error", err)).Debug("ignoring file timestamp")
	} else {
		r.Timestamp = ts
	}
	return nil
}

// decodeTimestamp accepts a formatted string or a number of unix seconds.
// Absent and null values decode to nil.
func decodeTimestamp(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, nil
		}
		ts, err := parseTimestamp(s)
		if err != nil {
			return nil, err
		}
		return &ts, nil
	}

	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return nil, fmt.Errorf("unrecognised timestamp %s", raw)
	}
	whole := int64(secs)
	ts := time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC()
	return &ts, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// CategoryCount is one entry of the backend's category histogram
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FileListResult is the reply of the list and search endpoints
type FileListResult struct {
	Data       []FileRecord    `json:"data"`
	Categories []CategoryCount `json:"categories,omitempty"`
}

// UnmarshalJSON accepts the canonical {data, categories} envelope and, as a
// compatibility shim, a bare array of records.
func (r *FileListResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []FileRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return err
		}
		*r = FileListResult{Data: records}
		return nil
	}

	type envelope FileListResult
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*r = FileListResult(env)
	return nil
}

// UploadResult is the reply of the upload endpoint
type UploadResult struct {
	Success     *bool           `json:"success,omitempty"`
	Message     string          `json:"message,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	StorageMode string          `json:"storage_mode,omitempty"`
	SavedFiles  []SavedFile     `json:"saved_files,omitempty"`
	SavedFile   *SavedFile      `json:"saved_file,omitempty"`
}

// SavedFile describes where the backend put one uploaded file
type SavedFile struct {
	Filename  string `json:"filename"`
	LocalPath string `json:"local_path,omitempty"`
	OnlineURL string `json:"online_url,omitempty"`
}

// OK reports whether the backend accepted the upload. A missing success flag
// on a 2xx reply counts as accepted.
func (u UploadResult) OK() bool {
	return u.Success == nil || *u.Success
}

// Saved returns every file the backend reported as stored
func (u UploadResult) Saved() []SavedFile {
	saved := make([]SavedFile, 0, len(u.SavedFiles)+1)
	if u.SavedFile != nil {
		saved = append(saved, *u.SavedFile)
	}
	return append(saved, u.SavedFiles...)
}
