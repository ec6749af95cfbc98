package model

import "time"

// Lookup is one forwarded weather request as recorded in the journal.
// The upstream body itself is never stored here; ArchiveKey points at the
// archived copy when archiving is enabled.
type Lookup struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	City           string    `json:"city"`
	UpstreamStatus int       `json:"upstream_status"`
	DurationMs     int64     `json:"duration_ms"`
	ArchiveKey     string    `json:"archive_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Archived reports whether a raw payload copy exists for this lookup.
func (l Lookup) Archived() bool {
	return l.ArchiveKey != ""
}
