// Package store is the persistence boundary: benefit records in, optimized
// content bundles and duplicate-ledger rows out. Two implementations exist,
// postgres for real runs and an in-memory store for dry runs and tests;
// both satisfy the same narrow interfaces so the pipeline never knows
// which one it is talking to.
package store

import (
	"context"
	"errors"

	"github.com/bojo24/contentforge/internal/model"
)

// ErrNotFound is returned when a record or content bundle does not exist.
var ErrNotFound = errors.New("store: not found")

// RecordStore reads benefit records materialized by the external
// ingestion job. This subsystem never writes records.
type RecordStore interface {
	// Record returns one record by id, or ErrNotFound.
	Record(ctx context.Context, id string) (model.BenefitRecord, error)

	// RecordIDs lists record ids for batch processing, newest first.
	// A non-positive limit applies the store's default.
	RecordIDs(ctx context.Context, limit int) ([]string, error)
}

// ContentStore persists optimized content bundles.
type ContentStore interface {
	// Content returns the stored bundle for (record, type), or ErrNotFound.
	Content(ctx context.Context, recordID string, ct model.ContentType) (model.OptimizedContent, error)

	// PutContent stores a bundle, replacing any prior bundle for the same
	// (record, type).
	PutContent(ctx context.Context, content model.OptimizedContent) error

	// SampleBodies returns up to limit stored content bodies excluding
	// the given record, for uniqueness scoring.
	SampleBodies(ctx context.Context, excludeRecordID string, limit int) ([]string, error)
}

// HashLedger tracks which record owns each published content hash.
type HashLedger interface {
	// Claim atomically records ownership of (hash, contentType) for the
	// record, insert-if-absent. It returns the owning record id and
	// whether this call created the entry. inserted=false with a
	// different ownerID is the duplicate signal: some other record
	// already published this hash.
	Claim(ctx context.Context, hash string, ct model.ContentType, recordID string) (ownerID string, inserted bool, err error)
}

// Store is the full persistence surface the pipeline needs.
type Store interface {
	RecordStore
	ContentStore
	HashLedger

	Close()
}
