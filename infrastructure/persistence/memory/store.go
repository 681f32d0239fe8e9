// Package memory provides an in-memory implementation of the key-value
// store port. It backs the test suite and local development without a
// DynamoDB endpoint, and mirrors the adapter's semantics: prefix queries
// in sort-key order, existence-conditioned updates, idempotent deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"wishlist-backend/application/ports"
	apperrors "wishlist-backend/pkg/errors"
)

// Store implements ports.KVStore with an in-memory table.
type Store struct {
	mu    sync.RWMutex
	table map[string]map[string]map[string]string // pk -> sk -> attributes

	// DeleteErr, when set, is consulted before every delete so tests can
	// inject partial failures into multi-key operations.
	DeleteErr func(key ports.Key) error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		table: make(map[string]map[string]map[string]string),
	}
}

// Query returns records under pk whose sort key begins with skPrefix,
// in sort-key order.
func (s *Store) Query(ctx context.Context, pk, skPrefix string) ([]ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partition := s.table[pk]
	sks := make([]string, 0, len(partition))
	for sk := range partition {
		if strings.HasPrefix(sk, skPrefix) {
			sks = append(sks, sk)
		}
	}
	sort.Strings(sks)

	records := make([]ports.Record, 0, len(sks))
	for _, sk := range sks {
		records = append(records, ports.Record{
			PK:         pk,
			SK:         sk,
			Attributes: copyAttributes(partition[sk]),
		})
	}
	return records, nil
}

// QueryByID scans for a record by sort key alone, emulating the GSI.
func (s *Store) QueryByID(ctx context.Context, sk string) (*ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for pk, partition := range s.table {
		if attrs, ok := partition[sk]; ok {
			return &ports.Record{PK: pk, SK: sk, Attributes: copyAttributes(attrs)}, nil
		}
	}
	return nil, nil
}

// Put writes a full record, overwriting any existing record.
func (s *Store) Put(ctx context.Context, rec ports.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	partition, ok := s.table[rec.PK]
	if !ok {
		partition = make(map[string]map[string]string)
		s.table[rec.PK] = partition
	}
	partition[rec.SK] = copyAttributes(rec.Attributes)
	return nil
}

// UpdateAttributes applies a partial update to an existing record. A
// missing key is a not-found error, matching the adapter's existence
// condition.
func (s *Store) UpdateAttributes(ctx context.Context, key ports.Key, updates map[string]*string) (*ports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs, ok := s.table[key.PK][key.SK]
	if !ok {
		return nil, apperrors.NewNotFoundError("record")
	}

	for attr, value := range updates {
		if value != nil {
			attrs[attr] = *value
		} else {
			delete(attrs, attr)
		}
	}

	return &ports.Record{PK: key.PK, SK: key.SK, Attributes: copyAttributes(attrs)}, nil
}

// Delete removes a record. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key ports.Key) error {
	if s.DeleteErr != nil {
		if err := s.DeleteErr(key); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table[key.PK], key.SK)
	return nil
}

func copyAttributes(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
