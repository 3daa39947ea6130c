package models

// InventoryItem is a stack of items owned by a player.
type InventoryItem struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_inventory_owner_item" json:"external_user_id"`
	Item           string `gorm:"type:varchar(128);not null;uniqueIndex:idx_inventory_owner_item" json:"item"`
	Quantity       int    `gorm:"not null;default:0" json:"quantity"`

	Timestamps
}
