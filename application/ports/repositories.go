// Package ports declares the interfaces between the HTTP layer, the
// repositories and the storage adapter. Handlers depend on these
// interfaces, never on concrete implementations, so storage can be
// substituted in tests.
package ports

import (
	"context"

	"wishlist-backend/domain/wishlist"
)

// ListRepository provides CRUD access to wishlists.
type ListRepository interface {
	// GetLists returns every wishlist owned by the given identity.
	GetLists(ctx context.Context, owner string) ([]wishlist.Wishlist, error)

	// GetList resolves a wishlist by id alone, regardless of owner.
	// Returns a not-found error when no such list exists.
	GetList(ctx context.Context, id string) (*wishlist.Wishlist, error)

	// CreateList writes a new wishlist with a freshly generated id.
	CreateList(ctx context.Context, name, owner string) (*wishlist.Wishlist, error)

	// UpdateList renames a wishlist. The owner is part of the storage key;
	// a wrong owner surfaces as not-found, never as a silent no-op.
	UpdateList(ctx context.Context, id, name, owner string) (*wishlist.Wishlist, error)

	// DeleteList removes a wishlist and, best-effort, every item that
	// belongs to it. The cascade is not atomic: item deletions that fail
	// are logged and reported, already-deleted items are not restored.
	DeleteList(ctx context.Context, id, owner string) error
}

// ItemRepository provides CRUD access to the items of a wishlist. Every
// mutation re-fetches the parent list and verifies that the caller owns
// it before writing.
type ItemRepository interface {
	GetItems(ctx context.Context, listID string) ([]wishlist.Item, error)
	CreateItem(ctx context.Context, listID, owner string, fields wishlist.ItemFields) (*wishlist.Item, error)
	UpdateItem(ctx context.Context, listID, itemID, owner string, fields wishlist.ItemFields) (*wishlist.Item, error)
	DeleteItem(ctx context.Context, listID, itemID, owner string) error
}
