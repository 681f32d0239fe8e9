package repository

import (
	"context"

	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/domain/wishlist"
	apperrors "wishlist-backend/pkg/errors"
)

// ItemRepository implements ports.ItemRepository on a KVStore. Every
// mutation re-fetches the parent list and verifies ownership before any
// write.
type ItemRepository struct {
	store  ports.KVStore
	lists  ports.ListRepository
	logger *zap.Logger
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(store ports.KVStore, lists ports.ListRepository, logger *zap.Logger) ports.ItemRepository {
	return &ItemRepository{
		store:  store,
		lists:  lists,
		logger: logger,
	}
}

// GetItems returns every item in the given wishlist. Missing optional
// attributes stay absent; they are never defaulted to empty strings.
func (r *ItemRepository) GetItems(ctx context.Context, listID string) ([]wishlist.Item, error) {
	records, err := r.store.Query(ctx, listSortKey(listID), itemKeyPrefix)
	if err != nil {
		return nil, err
	}

	items := make([]wishlist.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, itemFromRecord(rec))
	}
	return items, nil
}

// CreateItem writes a new item after verifying the caller owns the
// parent list. Optional attributes are included only when non-empty.
func (r *ItemRepository) CreateItem(ctx context.Context, listID, owner string, fields wishlist.ItemFields) (*wishlist.Item, error) {
	if err := r.requireOwnership(ctx, listID, owner); err != nil {
		return nil, err
	}

	id := newID()
	attrs := map[string]string{
		attrDescription: fields.Description,
	}
	if url := presentValue(fields.URL); url != nil {
		attrs[attrURL] = *url
	}
	if price := presentValue(fields.Price); price != nil {
		attrs[attrPrice] = *price
	}

	rec := ports.Record{
		PK:         listSortKey(listID),
		SK:         itemSortKey(id),
		Attributes: attrs,
	}
	if err := r.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	r.logger.Info("item created",
		zap.String("wishlistID", listID),
		zap.String("itemID", id),
	)

	return &wishlist.Item{
		ID:          id,
		Description: fields.Description,
		URL:         presentValue(fields.URL),
		Price:       presentValue(fields.Price),
	}, nil
}

// UpdateItem applies a partial update after the ownership check. The
// description is always set; url and price are set when non-empty and
// removed from the stored record otherwise.
func (r *ItemRepository) UpdateItem(ctx context.Context, listID, itemID, owner string, fields wishlist.ItemFields) (*wishlist.Item, error) {
	if err := r.requireOwnership(ctx, listID, owner); err != nil {
		return nil, err
	}

	updates := map[string]*string{
		attrDescription: &fields.Description,
		attrURL:         presentValue(fields.URL),
		attrPrice:       presentValue(fields.Price),
	}

	key := ports.Key{PK: listSortKey(listID), SK: itemSortKey(itemID)}
	rec, err := r.store.UpdateAttributes(ctx, key, updates)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("item")
		}
		return nil, err
	}

	item := itemFromRecord(*rec)
	return &item, nil
}

// DeleteItem removes an item after the ownership check. Deleting an
// already-deleted item is not an error.
func (r *ItemRepository) DeleteItem(ctx context.Context, listID, itemID, owner string) error {
	if err := r.requireOwnership(ctx, listID, owner); err != nil {
		return err
	}

	key := ports.Key{PK: listSortKey(listID), SK: itemSortKey(itemID)}
	if err := r.store.Delete(ctx, key); err != nil {
		return err
	}

	r.logger.Info("item deleted",
		zap.String("wishlistID", listID),
		zap.String("itemID", itemID),
	)

	return nil
}

// requireOwnership resolves the parent list and compares its owner to
// the caller. A missing list is not-found, a mismatch is forbidden; in
// both cases the mutation is aborted before any write.
func (r *ItemRepository) requireOwnership(ctx context.Context, listID, owner string) error {
	list, err := r.lists.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if list.Owner != owner {
		return apperrors.NewForbiddenError("you do not own the requested list")
	}
	return nil
}

// itemFromRecord maps a store record to an Item, tolerating missing
// optional attributes.
func itemFromRecord(rec ports.Record) wishlist.Item {
	item := wishlist.Item{
		ID:          idFromSortKey(rec.SK, itemKeyPrefix),
		Description: rec.Attributes[attrDescription],
	}
	if url, ok := rec.Attributes[attrURL]; ok {
		item.URL = &url
	}
	if price, ok := rec.Attributes[attrPrice]; ok {
		item.Price = &price
	}
	return item
}

// presentValue normalizes an optional field: nil or empty means absent.
func presentValue(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
