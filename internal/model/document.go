package model

import "time"

// FileInfo describes the originally uploaded file. Only metadata lives in the
// database; the file bytes themselves are archived in object storage.
type FileInfo struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Document is an uploaded text or PDF document with its extracted plain-text
// content. Documents are immutable after creation: annotation offsets anchor
// into Content and stay valid only because Content never changes.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	OriginalFile FileInfo  `json:"originalFile"`
	UploadedBy   UserRef   `json:"uploadedBy"`
	StoragePath  string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DocumentSummary is the listing view: everything but the content blob.
type DocumentSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	OriginalFile FileInfo  `json:"originalFile"`
	UploadedBy   UserRef   `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DocumentCreated is the minimal view returned by a successful upload.
type DocumentCreated struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}
