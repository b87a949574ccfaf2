// Package storage keeps uploaded resume files, either on the local
// filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore stores opaque binaries under slash-separated keys.
// Get returns common.ErrorNotFound for an unknown key; Delete of an unknown
// key is not an error.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh storage key partitioned by upload date.
func NewKey(now time.Time) string {
	return fmt.Sprintf("resumes/%d/%d/%d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}
