package models

import "time"

// Favorite links a user to a catalog item. (UserID, ItemID) is unique.
type Favorite struct {
	ID       string
	UserID   string
	ItemID   int
	ItemName string
	// ImageURL is empty when the catalog had no artwork for the item.
	ImageURL string
	AddedAt  time.Time
}

// CatalogItem is the part of a catalog record the favorites store keeps.
type CatalogItem struct {
	ID       int
	Name     string
	ImageURL string
}
