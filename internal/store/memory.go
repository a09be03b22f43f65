package store

import (
	"context"
	"sync"

	"github.com/bojo24/contentforge/internal/model"
)

type contentKey struct {
	recordID    string
	contentType model.ContentType
}

type hashKey struct {
	hash        string
	contentType model.ContentType
}

// Memory is an in-process Store for dry runs and tests. The single mutex
// makes the ledger's check-then-insert atomic, mirroring the unique
// constraint the postgres store relies on.
type Memory struct {
	mu       sync.Mutex
	records  map[string]model.BenefitRecord
	order    []string
	contents map[contentKey]model.OptimizedContent
	hashes   map[hashKey]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records:  make(map[string]model.BenefitRecord),
		contents: make(map[contentKey]model.OptimizedContent),
		hashes:   make(map[hashKey]string),
	}
}

// AddRecord seeds a record. Insertion order is the listing order.
func (m *Memory) AddRecord(rec model.BenefitRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.ID]; !exists {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec
}

func (m *Memory) Record(_ context.Context, id string) (model.BenefitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return model.BenefitRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) RecordIDs(_ context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *Memory) Content(_ context.Context, recordID string, ct model.ContentType) (model.OptimizedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.contents[contentKey{recordID, ct}]
	if !ok {
		return model.OptimizedContent{}, ErrNotFound
	}
	return content, nil
}

func (m *Memory) PutContent(_ context.Context, content model.OptimizedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[contentKey{content.RecordID, content.ContentType}] = content
	return nil
}

func (m *Memory) SampleBodies(_ context.Context, excludeRecordID string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bodies []string
	for key, content := range m.contents {
		if key.recordID == excludeRecordID {
			continue
		}
		if body := content.Body(); body != "" {
			bodies = append(bodies, body)
		}
		if limit > 0 && len(bodies) == limit {
			break
		}
	}
	return bodies, nil
}

func (m *Memory) Claim(_ context.Context, hash string, ct model.ContentType, recordID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := hashKey{hash, ct}
	if owner, ok := m.hashes[key]; ok {
		return owner, false, nil
	}
	m.hashes[key] = recordID
	return recordID, true, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
