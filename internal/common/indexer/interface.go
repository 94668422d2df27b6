package indexer

import (
	"context"

	"github.com/apprentice-alert/go-scraper/internal/domain"
)

// Indexer defines the interface for listing archive backends. The
// archive is a convenience mirror of everything ever reported as new;
// the seen-set store stays the source of truth for deduplication.
type Indexer interface {
	// BulkIndex archives multiple listings at once
	BulkIndex(ctx context.Context, listings []*domain.Listing) error
}
