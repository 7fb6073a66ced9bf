package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentQR is a bank-transfer QR code shown to the customer at checkout.
type PaymentQR struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName  string         `json:"file_name" gorm:"not null"`
	FileURL   string         `json:"file_url" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
