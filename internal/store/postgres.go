package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bojo24/contentforge/internal/model"
)

const defaultListLimit = 500

// Postgres is the production Store backed by a pgx connection pool. The
// duplicate ledger's insert-if-absent is a unique constraint plus
// ON CONFLICT DO NOTHING, so two concurrent claims for the same hash
// serialize inside the database.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Migrate creates the tables this store owns. The benefit_records table
// belongs to the ingestion job and is only created here for fresh
// environments.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS benefit_records (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			governing_org TEXT NOT NULL DEFAULT '',
			detail_json JSONB NOT NULL DEFAULT '{}',
			summary TEXT NOT NULL DEFAULT '',
			last_updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS benefit_content (
			record_id TEXT NOT NULL,
			content_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			uniqueness_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			generated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (record_id, content_type)
		)`,
		`CREATE TABLE IF NOT EXISTS content_hashes (
			content_hash TEXT NOT NULL,
			content_type TEXT NOT NULL,
			record_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (content_hash, content_type)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, id string) (model.BenefitRecord, error) {
	var rec model.BenefitRecord
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, category, governing_org, detail_json, summary, last_updated_at
		 FROM benefit_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Category, &rec.GoverningOrg, &rec.Detail, &rec.Summary, &rec.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BenefitRecord{}, ErrNotFound
	}
	if err != nil {
		return model.BenefitRecord{}, fmt.Errorf("load record %s: %w", id, err)
	}
	return rec, nil
}

func (p *Postgres) RecordIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := p.pool.Query(ctx,
		`SELECT id FROM benefit_records ORDER BY last_updated_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list record ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan record id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (p *Postgres) Content(ctx context.Context, recordID string, ct model.ContentType) (model.OptimizedContent, error) {
	var content model.OptimizedContent
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM benefit_content WHERE record_id = $1 AND content_type = $2`,
		recordID, string(ct),
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.OptimizedContent{}, ErrNotFound
	}
	if err != nil {
		return model.OptimizedContent{}, fmt.Errorf("load content %s/%s: %w", recordID, ct, err)
	}
	return content, nil
}

func (p *Postgres) PutContent(ctx context.Context, content model.OptimizedContent) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO benefit_content (record_id, content_type, payload, body, content_hash, uniqueness_score, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (record_id, content_type) DO UPDATE SET
			payload = EXCLUDED.payload,
			body = EXCLUDED.body,
			content_hash = EXCLUDED.content_hash,
			uniqueness_score = EXCLUDED.uniqueness_score,
			generated_at = EXCLUDED.generated_at`,
		content.RecordID, string(content.ContentType), content, content.Body(),
		content.ContentHash, content.UniquenessScore, content.GeneratedAt)
	if err != nil {
		return fmt.Errorf("store content %s/%s: %w", content.RecordID, content.ContentType, err)
	}
	return nil
}

func (p *Postgres) SampleBodies(ctx context.Context, excludeRecordID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := p.pool.Query(ctx,
		`SELECT body FROM benefit_content WHERE record_id <> $1 AND body <> '' LIMIT $2`,
		excludeRecordID, limit)
	if err != nil {
		return nil, fmt.Errorf("sample bodies: %w", err)
	}
	defer rows.Close()

	var bodies []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan body: %w", err)
		}
		bodies = append(bodies, body)
	}
	return bodies, rows.Err()
}

// Claim is insert-if-absent on the (hash, content_type) primary key. When
// the insert is a no-op the existing owner is read back, which is safe
// because ledger rows are never deleted during a run.
func (p *Postgres) Claim(ctx context.Context, hash string, ct model.ContentType, recordID string) (string, bool, error) {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO content_hashes (content_hash, content_type, record_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (content_hash, content_type) DO NOTHING`,
		hash, string(ct), recordID)
	if err != nil {
		return "", false, fmt.Errorf("claim hash: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return recordID, true, nil
	}

	var owner string
	err = p.pool.QueryRow(ctx,
		`SELECT record_id FROM content_hashes WHERE content_hash = $1 AND content_type = $2`,
		hash, string(ct),
	).Scan(&owner)
	if err != nil {
		return "", false, fmt.Errorf("read hash owner: %w", err)
	}
	return owner, false, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
