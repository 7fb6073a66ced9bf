package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// GuestSession identifies an anonymous shopper; the cart snapshot is keyed by it.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
