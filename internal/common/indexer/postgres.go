package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/apprentice-alert/go-scraper/internal/domain"
	_ "github.com/lib/pq"
)

// PostgresIndexer archives listings to PostgreSQL
type PostgresIndexer struct {
	db        *sql.DB
	tableName string
}

// NewPostgresIndexer creates a new PostgreSQL indexer
func NewPostgresIndexer(connStr string, tableName string) (*PostgresIndexer, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	indexer := &PostgresIndexer{
		db:        db,
		tableName: tableName,
	}

	// Ensure table exists
	if err := indexer.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}

	return indexer, nil
}

// ensureTable creates the listings table if it doesn't exist
func (i *PostgresIndexer) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			location TEXT,
			company TEXT,
			wage TEXT,
			closing_date TEXT,
			job_url TEXT,
			first_seen_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, i.tableName)

	_, err := i.db.Exec(query)
	return err
}

// Index archives a single listing. Listings are immutable once
// reported, so a conflicting id is left untouched.
func (i *PostgresIndexer) Index(ctx context.Context, l *domain.Listing) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, location, company, wage, closing_date, job_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, i.tableName)

	_, err := i.db.ExecContext(ctx, query,
		l.ID, l.Title, l.Location, l.Company, l.Wage, l.ClosingDate, l.JobURL,
	)
	return err
}

// BulkIndex archives multiple listings inside one transaction
func (i *PostgresIndexer) BulkIndex(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, location, company, wage, closing_date, job_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, i.tableName)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		if _, err := stmt.ExecContext(ctx,
			l.ID, l.Title, l.Location, l.Company, l.Wage, l.ClosingDate, l.JobURL,
		); err != nil {
			log.Printf("Error archiving listing %s: %v", l.ID, err)
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (i *PostgresIndexer) Close() error {
	return i.db.Close()
}
