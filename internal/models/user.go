package models

import "time"

// User is the single actor table: clients, barbers and admins all
// authenticate through it and are told apart by Role.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	// Barber-only fields. Barbers are deactivated, never deleted.
	Active    bool   `gorm:"default:true" json:"active"`
	AvatarKey string `gorm:"size:255" json:"avatar_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
