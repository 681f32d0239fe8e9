package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/domain/wishlist"
	"wishlist-backend/infrastructure/persistence/memory"
	apperrors "wishlist-backend/pkg/errors"
)

func newTestRepos(t *testing.T) (*memory.Store, ports.ListRepository, ports.ItemRepository) {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	lists := NewListRepository(store, logger)
	items := NewItemRepository(store, lists, logger)
	return store, lists, items
}

func TestCreateListAppearsInOwnerLists(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Birthday", created.Name)
	assert.Equal(t, "a@x.com", created.Owner)
	assert.NotEmpty(t, created.ID)

	other, err := lists.CreateList(ctx, "Christmas", "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)

	owned, err := lists.GetLists(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, owned, 2)

	names := []string{owned[0].Name, owned[1].Name}
	assert.Contains(t, names, "Birthday")
	assert.Contains(t, names, "Christmas")
}

func TestGetListsOnlyReturnsOwnLists(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	_, err := lists.CreateList(ctx, "Mine", "a@x.com")
	require.NoError(t, err)
	_, err = lists.CreateList(ctx, "Theirs", "b@y.com")
	require.NoError(t, err)

	owned, err := lists.GetLists(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Mine", owned[0].Name)
}

func TestGetListsEmptyForUnknownOwner(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	owned, err := lists.GetLists(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestGetListByIDIndependentOfOwner(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)

	// Lookup by id alone, without knowing the partition key.
	got, err := lists.GetList(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Birthday", got.Name)
	assert.Equal(t, "a@x.com", got.Owner)
}

func TestGetListNotFound(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	_, err := lists.GetList(ctx, "does-not-exist")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateList(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)

	updated, err := lists.UpdateList(ctx, created.ID, "Big Birthday", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Big Birthday", updated.Name)
	assert.Equal(t, "a@x.com", updated.Owner)

	got, err := lists.GetList(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Birthday", got.Name)
}

func TestUpdateListWrongOwnerFails(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)

	// The wrong owner composes a key that does not exist; this must fail
	// loudly, not silently no-op or write a phantom record.
	_, err = lists.UpdateList(ctx, created.ID, "Hijacked", "b@y.com")
	assert.True(t, apperrors.IsNotFound(err))

	got, err := lists.GetList(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Birthday", got.Name)

	stolen, err := lists.GetLists(ctx, "b@y.com")
	require.NoError(t, err)
	assert.Empty(t, stolen)
}

func TestUpdateListMissingFails(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	_, err := lists.UpdateList(ctx, "does-not-exist", "Name", "a@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteListCascadesToItems(t *testing.T) {
	ctx := context.Background()
	_, lists, items := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)

	for _, desc := range []string{"Book", "Bike", "Boat"} {
		_, err := items.CreateItem(ctx, created.ID, "a@x.com", wishlist.ItemFields{Description: desc})
		require.NoError(t, err)
	}

	require.NoError(t, lists.DeleteList(ctx, created.ID, "a@x.com"))

	remaining, err := items.GetItems(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = lists.GetList(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteListWrongOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	_, lists, items := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, created.ID, "a@x.com", wishlist.ItemFields{Description: "Book"})
	require.NoError(t, err)

	err = lists.DeleteList(ctx, created.ID, "b@y.com")
	assert.True(t, apperrors.IsForbidden(err))

	// Neither the list nor its items were touched.
	_, err = lists.GetList(ctx, created.ID)
	require.NoError(t, err)
	got, err := items.GetItems(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDeleteListMissingNotFound(t *testing.T) {
	ctx := context.Background()
	_, lists, _ := newTestRepos(t)

	err := lists.DeleteList(ctx, "does-not-exist", "a@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteListPartialCascadeFailure(t *testing.T) {
	ctx := context.Background()
	store, lists, items := newTestRepos(t)

	created, err := lists.CreateList(ctx, "Birthday", "a@x.com")
	require.NoError(t, err)

	var itemIDs []string
	for _, desc := range []string{"Book", "Bike"} {
		item, err := items.CreateItem(ctx, created.ID, "a@x.com", wishlist.ItemFields{Description: desc})
		require.NoError(t, err)
		itemIDs = append(itemIDs, item.ID)
	}

	// Fail the deletion of the first item only. The cascade must keep
	// going, delete the second item, and report the failure.
	stuck := itemSortKey(itemIDs[0])
	injected := errors.New("provisioned throughput exceeded")
	store.DeleteErr = func(key ports.Key) error {
		if key.SK == stuck {
			return injected
		}
		return nil
	}

	err = lists.DeleteList(ctx, created.ID, "a@x.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	store.DeleteErr = nil

	// The list record is gone, the stuck item survived, the other did
	// not. Nothing is restored: the cascade is not all-or-nothing.
	_, err = lists.GetList(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))

	remaining, err := items.GetItems(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, itemIDs[0], remaining[0].ID)
}
