package models

import "time"

// ShopConfig is a singleton row, all pages read it for branding.
type ShopConfig struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string `gorm:"size:100;not null" json:"name"`
	Address           string `gorm:"size:255" json:"address"`
	LogoKey           string `gorm:"size:255" json:"logo_key"`
	Timezone          string `gorm:"size:50" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
