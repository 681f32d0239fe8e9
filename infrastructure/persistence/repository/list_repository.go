package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/domain/wishlist"
	apperrors "wishlist-backend/pkg/errors"
)

// ListRepository implements ports.ListRepository on a KVStore.
type ListRepository struct {
	store  ports.KVStore
	logger *zap.Logger
}

// NewListRepository creates a new ListRepository
func NewListRepository(store ports.KVStore, logger *zap.Logger) ports.ListRepository {
	return &ListRepository{
		store:  store,
		logger: logger,
	}
}

// GetLists returns every wishlist owned by the given identity.
func (r *ListRepository) GetLists(ctx context.Context, owner string) ([]wishlist.Wishlist, error) {
	records, err := r.store.Query(ctx, owner, listKeyPrefix)
	if err != nil {
		return nil, err
	}

	lists := make([]wishlist.Wishlist, 0, len(records))
	for _, rec := range records {
		lists = append(lists, listFromRecord(rec))
	}
	return lists, nil
}

// GetList resolves a wishlist by id alone via the secondary index.
func (r *ListRepository) GetList(ctx context.Context, id string) (*wishlist.Wishlist, error) {
	rec, err := r.store.QueryByID(ctx, listSortKey(id))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NewNotFoundError("wishlist")
	}

	list := listFromRecord(*rec)
	return &list, nil
}

// CreateList writes a new wishlist with a freshly generated id.
func (r *ListRepository) CreateList(ctx context.Context, name, owner string) (*wishlist.Wishlist, error) {
	id := newID()

	rec := ports.Record{
		PK: owner,
		SK: listSortKey(id),
		Attributes: map[string]string{
			attrName: name,
		},
	}
	if err := r.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	r.logger.Info("wishlist created",
		zap.String("wishlistID", id),
		zap.String("owner", owner),
	)

	return &wishlist.Wishlist{ID: id, Name: name, Owner: owner}, nil
}

// UpdateList renames a wishlist, keyed by (owner, id). The owner is part
// of the key: a wrong owner composes a key that does not exist, the
// update's existence condition fails, and the result is not-found.
func (r *ListRepository) UpdateList(ctx context.Context, id, name, owner string) (*wishlist.Wishlist, error) {
	key := ports.Key{PK: owner, SK: listSortKey(id)}
	updates := map[string]*string{
		attrName: &name,
	}

	rec, err := r.store.UpdateAttributes(ctx, key, updates)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("wishlist")
		}
		return nil, err
	}

	list := listFromRecord(*rec)
	return &list, nil
}

// DeleteList removes the wishlist record and then, best-effort, every
// item in its partition. The cascade has no isolation or atomicity: a
// failed item deletion is logged and the loop continues, already-deleted
// items are not restored, and the joined failure is returned.
func (r *ListRepository) DeleteList(ctx context.Context, id, owner string) error {
	list, err := r.GetList(ctx, id)
	if err != nil {
		return err
	}
	if list.Owner != owner {
		return apperrors.NewForbiddenError("you do not own the requested list")
	}

	if err := r.store.Delete(ctx, ports.Key{PK: owner, SK: listSortKey(id)}); err != nil {
		return err
	}

	records, err := r.store.Query(ctx, listSortKey(id), itemKeyPrefix)
	if err != nil {
		return fmt.Errorf("cascade delete of wishlist %s: %w", id, err)
	}

	var failed []error
	for _, rec := range records {
		if err := r.store.Delete(ctx, ports.Key{PK: rec.PK, SK: rec.SK}); err != nil {
			r.logger.Error("cascade delete: item deletion failed",
				zap.String("wishlistID", id),
				zap.String("itemSK", rec.SK),
				zap.Error(err),
			)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("cascade delete of wishlist %s left %d items: %w",
			id, len(failed), errors.Join(failed...))
	}

	r.logger.Info("wishlist deleted",
		zap.String("wishlistID", id),
		zap.String("owner", owner),
		zap.Int("itemsDeleted", len(records)),
	)

	return nil
}

// listFromRecord maps a store record to a Wishlist by splitting the
// sort key.
func listFromRecord(rec ports.Record) wishlist.Wishlist {
	return wishlist.Wishlist{
		ID:    idFromSortKey(rec.SK, listKeyPrefix),
		Name:  rec.Attributes[attrName],
		Owner: rec.PK,
	}
}
