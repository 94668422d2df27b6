package main

import (
	"context"
	"log"

	"github.com/apprentice-alert/go-scraper/internal/common/cleaner"
	"github.com/apprentice-alert/go-scraper/internal/common/dedup"
	"github.com/apprentice-alert/go-scraper/internal/common/extractor"
	"github.com/apprentice-alert/go-scraper/internal/common/fetcher"
	"github.com/apprentice-alert/go-scraper/internal/common/indexer"
	"github.com/apprentice-alert/go-scraper/internal/config"
	"github.com/apprentice-alert/go-scraper/internal/domain"
	"github.com/apprentice-alert/go-scraper/internal/export"
	"github.com/apprentice-alert/go-scraper/internal/module/findapprenticeship"
	"github.com/apprentice-alert/go-scraper/internal/notify"
	"github.com/apprentice-alert/go-scraper/internal/queue"
	"github.com/redis/go-redis/v9"
)

// One full check is one process run: an external scheduler re-invokes
// the binary periodically, so failures are self-healing and there is no
// in-process loop.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting apprenticeship listings check")

	cfg := config.Load()
	ctx := context.Background()

	categories, err := config.LoadCategories(cfg.Scraper.CategoriesFile)
	if err != nil {
		log.Fatalf("Load categories failed: %v", err)
	}

	// Redis is optional; it backs the seen set and/or the
	// notification delivery queue when configured
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Println("Redis connected")
	}

	var store dedup.SeenStore
	if cfg.Scraper.SeenBackend == "redis" {
		if rdb == nil {
			log.Fatalf("SEEN_BACKEND=redis requires REDIS_ADDR")
		}
		store = dedup.NewRedisStore(rdb, cfg.Redis.SeenKey)
	} else {
		store = dedup.NewFileStore(cfg.Scraper.SeenFile)
	}

	notifiers := notify.Multi{notify.StdoutNotifier{}}
	if rdb != nil && cfg.Redis.NotifyQueue != "" {
		publisher := queue.NewPublisher(rdb, cfg.Redis.NotifyQueue)
		notifiers = append(notifiers, notify.NewQueueNotifier(publisher))
	}

	runner := findapprenticeship.NewRunner(
		fetcher.NewFetcher(fetcher.Config{
			UserAgent:      cfg.Scraper.UserAgent,
			Accept:         cfg.Scraper.Accept,
			AcceptLanguage: cfg.Scraper.AcceptLanguage,
			Timeout:        cfg.Scraper.Timeout,
		}),
		extractor.NewExtractor(extractor.DefaultSelectors(), cleaner.NewCleaner()),
		store,
		notifiers,
	)

	listings, err := runner.Run(ctx, categories)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Found %d new listings across %d categories", len(listings), len(categories))

	if len(listings) == 0 {
		return
	}

	filename, err := export.NewExporter(cfg.Export.Filename).Export(listings, categories)
	if err != nil {
		log.Fatalf("Workbook export failed: %v", err)
	}
	log.Printf("Workbook saved as %s", filename)

	archive(ctx, cfg, listings)
}

// archive mirrors the run's new listings into the configured backends.
// The archive is best effort: errors are logged, never fatal, since the
// seen set has already been flushed.
func archive(ctx context.Context, cfg *config.Config, listings []*domain.Listing) {
	if cfg.Postgres.ConnectionString != "" {
		pg, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
		if err != nil {
			log.Printf("PostgreSQL connection failed: %v", err)
		} else {
			defer pg.Close()
			if err := pg.BulkIndex(ctx, listings); err != nil {
				log.Printf("PostgreSQL archive failed: %v", err)
			} else {
				log.Printf("Archived %d listings to PostgreSQL", len(listings))
			}
		}
	}

	if len(cfg.Elasticsearch.Addresses) > 0 && cfg.Elasticsearch.Addresses[0] != "" {
		es, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Printf("Elasticsearch connection failed: %v", err)
			return
		}
		if err := es.EnsureIndex(ctx); err != nil {
			log.Printf("Warning: ensure index failed: %v", err)
		}
		if err := es.BulkIndex(ctx, listings); err != nil {
			log.Printf("Elasticsearch archive failed: %v", err)
		} else {
			log.Printf("Archived %d listings to Elasticsearch", len(listings))
		}
	}
}
