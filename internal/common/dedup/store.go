package dedup

import "context"

// SeenStore persists the set of listing ids already reported in earlier
// runs. The set only ever grows: Load once at startup, Save after each
// category that produced new listings.
type SeenStore interface {
	// Load reads the full seen set. Absent or unreadable durable
	// state yields an empty set, not an error.
	Load(ctx context.Context) (map[string]struct{}, error)

	// Save persists the full current set. A failed Save must be
	// treated as fatal by the caller; swallowing it would re-notify
	// every listing on the next run.
	Save(ctx context.Context, seen map[string]struct{}) error
}
