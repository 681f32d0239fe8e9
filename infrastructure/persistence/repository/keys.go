// Package repository implements the list and item repositories on top of
// the key-value store adapter. Two logical entities share one physical
// table: wishlists live under pk = owner, sk = "wishlist_<id>", items
// under pk = "wishlist_<listID>", sk = "item_<id>". Referential
// integrity between them is enforced here, not by the store.
package repository

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const (
	listKeyPrefix = "wishlist_"
	itemKeyPrefix = "item_"

	attrName        = "name"
	attrDescription = "description"
	attrURL         = "url"
	attrPrice       = "price"
)

// listSortKey composes the sort key for a wishlist record.
func listSortKey(id string) string {
	return listKeyPrefix + id
}

// itemSortKey composes the sort key for an item record.
func itemSortKey(id string) string {
	return itemKeyPrefix + id
}

// idFromSortKey recovers the entity id from a composed sort key.
func idFromSortKey(sk, prefix string) string {
	return strings.TrimPrefix(sk, prefix)
}

// newID generates a content-independent identifier: the md5 hex digest
// of a random uuid. No uniqueness check is performed before writing;
// collision probability is negligible given the id space.
func newID() string {
	sum := md5.Sum([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
