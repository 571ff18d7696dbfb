// internal/domain/product/entity.go
package product

import (
	"time"
)

// Product represents an item available for purchase
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:100" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // Price in cents
	ImageURL    string `gorm:"not null;size:200" json:"image_url"`
	Category    string `gorm:"not null;size:50;index" json:"category"`

	// Descriptive attributes
	Fit      string `gorm:"size:50" json:"fit,omitempty"`
	Size     string `gorm:"size:20" json:"size,omitempty"`
	Color    string `gorm:"size:30" json:"color,omitempty"`
	Material string `gorm:"size:50" json:"material,omitempty"`
	Style    string `gorm:"size:50" json:"style,omitempty"`
	Season   string `gorm:"size:20" json:"season,omitempty"`
	Gender   string `gorm:"size:20" json:"gender,omitempty"`

	InStock       bool `gorm:"default:true" json:"in_stock"`
	StockQuantity int  `gorm:"default:0" json:"stock_quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// GetFormattedPrice returns the price in currency units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
