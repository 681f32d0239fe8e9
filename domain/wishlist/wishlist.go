// Package wishlist defines the domain entities persisted by the backend.
package wishlist

// Wishlist is a named collection of items owned by a single user. The owner
// is the authenticated identity (email) that created the list and never
// changes afterwards.
type Wishlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// Item belongs to exactly one wishlist. URL and Price are optional: a nil
// pointer means the attribute is absent from the store, which is distinct
// from an empty string and serializes as an explicit null.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
	Price       *string `json:"price"`
}

// ItemFields carries the caller-supplied attributes for creating or
// updating an item. Optional fields left nil (or empty) are stored as
// absent rather than as empty strings.
type ItemFields struct {
	Description string
	URL         *string
	Price       *string
}
