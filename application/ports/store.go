package ports

import "context"

// Key identifies a single record in the table.
type Key struct {
	PK string
	SK string
}

// Record is the store's native shape: a composite key plus a flat set of
// string attributes.
type Record struct {
	PK         string
	SK         string
	Attributes map[string]string
}

// KVStore abstracts the key-value table the repositories are built on.
// Implementations translate these operations into the store's native API.
type KVStore interface {
	// Query returns every record in the partition whose sort key starts
	// with the given prefix, in sort-key order. An empty slice means no
	// matches.
	Query(ctx context.Context, pk, skPrefix string) ([]Record, error)

	// QueryByID resolves a record by its sort key alone, via a secondary
	// index keyed independently of the partition. Returns nil when absent.
	QueryByID(ctx context.Context, sk string) (*Record, error)

	// Put writes a full record, overwriting any existing record with the
	// same key.
	Put(ctx context.Context, rec Record) error

	// UpdateAttributes applies a partial update to an existing record: a
	// non-nil value sets the attribute, nil removes it. The record must
	// already exist; updating a missing key is a not-found error, never a
	// silent write. Returns the merged record.
	UpdateAttributes(ctx context.Context, key Key, updates map[string]*string) (*Record, error)

	// Delete removes a record. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error
}
