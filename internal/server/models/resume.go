package models

import "time"

// Resume describes a stored resume. The file bytes live in blob storage
// under StorageKey; an empty key means the resume carries metadata only.
type Resume struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	FileName   string    `json:"fileName,omitempty"`
	FileType   string    `json:"fileType,omitempty"`
	StorageKey string    `json:"-"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasFile reports whether binary content was uploaded for the resume.
func (r *Resume) HasFile() bool {
	return r.StorageKey != ""
}
