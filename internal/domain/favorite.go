package domain

// FavoriteItem is one entry of a favorites set.
// The pair (ID, ItemType) is unique within a set.
type FavoriteItem struct {
	ID       string   `json:"id"`
	ItemType ItemType `json:"type"`
	AddedAt  int64    `json:"addedAt"` // epoch milliseconds
}

// Matches reports whether the item has the given identity.
func (f FavoriteItem) Matches(id string, itemType ItemType) bool {
	return f.ID == id && f.ItemType == itemType
}
