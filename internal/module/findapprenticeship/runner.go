package findapprenticeship

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/apprentice-alert/go-scraper/internal/common/dedup"
	"github.com/apprentice-alert/go-scraper/internal/common/extractor"
	"github.com/apprentice-alert/go-scraper/internal/common/fetcher"
	"github.com/apprentice-alert/go-scraper/internal/domain"
	"github.com/apprentice-alert/go-scraper/internal/notify"
)

// Runner drives one full check of the configured categories against the
// Find an apprenticeship site: fetch, extract, persist the seen set,
// notify per role label, accumulate
type Runner struct {
	fetcher   *fetcher.Fetcher
	extractor *extractor.Extractor
	store     dedup.SeenStore
	notifier  notify.Notifier
	now       func() time.Time
}

// NewRunner creates a category runner
func NewRunner(f *fetcher.Fetcher, e *extractor.Extractor, store dedup.SeenStore, notifier notify.Notifier) *Runner {
	return &Runner{
		fetcher:   f,
		extractor: e,
		store:     store,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Source returns the source identifier
func (r *Runner) Source() domain.ListingSource {
	return domain.SourceFindApprenticeship
}

// Run processes categories in order and returns all new listings across
// them, in category-then-entry order. A fetch or extract failure for
// one category yields zero listings for it and does not abort the
// others; a failed seen-set save aborts the run.
func (r *Runner) Run(ctx context.Context, categories []domain.Category) ([]*domain.Listing, error) {
	seen, err := r.store.Load(ctx)
	if err != nil {
		log.Printf("[%s] Seen set unavailable, starting empty: %v", r.Source(), err)
	}
	log.Printf("[%s] Loaded %d seen listing ids", r.Source(), len(seen))

	refDate := r.now()
	var all []*domain.Listing

	for _, cat := range categories {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		var listings []*domain.Listing

		body, err := r.fetcher.Fetch(ctx, cat.URL)
		if err != nil {
			log.Printf("[%s] Fetch failed for category %s: %v", r.Source(), cat.Name, err)
		} else {
			listings, err = r.extractor.Extract(body, seen, refDate)
			if err != nil {
				log.Printf("[%s] Extract failed for category %s: %v", r.Source(), cat.Name, err)
				listings = nil
			}
		}

		// Flush before notifying: a crash loses at most this
		// category's notifications, never its dedup state
		if len(listings) > 0 {
			for _, l := range listings {
				seen[l.ID] = struct{}{}
			}
			if err := r.store.Save(ctx, seen); err != nil {
				return all, fmt.Errorf("save seen set: %w", err)
			}
		}

		// An explicit empty message per label still goes out, so the
		// channel knows the check ran
		for _, label := range cat.RoleLabels {
			msg := notify.Format(listings, label)
			if err := r.notifier.Notify(ctx, msg); err != nil {
				log.Printf("[%s] Notify failed for label %s: %v", r.Source(), label, err)
			}
		}

		all = append(all, listings...)
		log.Printf("[%s] Category %s: %d new listings", r.Source(), cat.Name, len(listings))
	}

	return all, nil
}
