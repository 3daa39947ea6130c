package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a player's balance in one currency.
// Table name: wallets
type Wallet struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_wallet_owner_currency" json:"external_user_id"`
	Currency       string  `gorm:"type:varchar(32);not null;uniqueIndex:idx_wallet_owner_currency" json:"currency"`
	Balance        float64 `gorm:"not null;default:0" json:"balance"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
