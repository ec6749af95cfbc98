// Package storage is the payload archive: a copy of each raw upstream body,
// written once per forwarded lookup and read back only through the
// /lookups/:id/payload route. The proxy path never reads from it.
package storage

import (
	"context"
	"io"
	"time"

	"weatherapi/internal/upstream"
)

// PayloadOptions describe an archived body. Size is the exact byte count,
// or -1 when the writer cannot tell.
type PayloadOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// PayloadInfo is what the archive knows about a stored body.
type PayloadInfo struct {
	Key         string
	Size        int64
	ContentType string
	StoredAt    time.Time
	Metadata    map[string]string
}

// Archive keeps raw provider replies keyed by PayloadKey.
type Archive interface {
	// Put stores the body read from r under key.
	Put(ctx context.Context, key string, r io.Reader, opt PayloadOptions) (PayloadInfo, error)
	// Get opens the body stored under key. ErrPayloadNotFound means nothing is there.
	Get(ctx context.Context, key string) (io.ReadCloser, PayloadInfo, error)
	// Delete drops the body stored under key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a download link for key that expires after expiry.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// PayloadKey is the archive key for a lookup's raw upstream body,
// "lookups/<kind>/<id>.json".
func PayloadKey(kind upstream.Kind, lookupID string) string {
	return "lookups/" + string(kind) + "/" + lookupID + ".json"
}
