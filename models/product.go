package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string             `gorm:"not null" json:"name"`
	Description     string             `json:"description"`
	Unit            string             `gorm:"not null" json:"unit"` // e.g. "kg", "piece", "dozen"
	Price           float64            `gorm:"not null" json:"price"`
	DiscountPercent float64            `json:"discount_percent"`
	Image           string             `gorm:"not null" json:"image"`
	Variations      []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variations"`
	Categories      []Category         `gorm:"many2many:product_categories;" json:"categories"`
	Stock           int                `json:"stock"`
	Featured        bool               `json:"featured"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}

// ProductVariation is a purchasable size/cut of a product (e.g. "500g", "1kg")
// with its own price.
type ProductVariation struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint    `gorm:"index" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
}

// VariationPrice returns the price for the named variation, falling back to the
// product's base price when the variation is empty or unknown.
func (p *Product) VariationPrice(variation string) float64 {
	if variation == "" {
		return p.Price
	}
	for _, v := range p.Variations {
		if v.Name == variation {
			return v.Price
		}
	}
	return p.Price
}
