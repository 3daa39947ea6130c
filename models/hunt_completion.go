package models

import "time"

// HuntCompletion = a player completed a hunt and received its rewards
type HuntCompletion struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Board          string    `gorm:"index;not null" json:"board"`
	HuntID         string    `gorm:"type:uuid;uniqueIndex;not null" json:"hunt_id"`
	Species        string    `gorm:"not null" json:"species"`
	Trait          string    `gorm:"not null" json:"trait"`
	ExternalUserID string    `gorm:"index;not null" json:"external_user_id"`
	PlayerName     string    `json:"player_name,omitempty"`
	Rewards        string    `gorm:"type:text" json:"rewards,omitempty"` // reward descriptions, newline separated
	Failed         int       `gorm:"not null;default:0" json:"failed"`  // rewards whose distribution errored
	CompletedAt    time.Time `json:"completed_at" gorm:"autoCreateTime"`
}
