// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartLine represents one product in an owner's cart.
//
// The composite unique index is what makes concurrent adds safe: two
// requests racing on the same (owner_key, product_id) pair resolve into a
// single row via ON CONFLICT instead of duplicating the line. There is no
// soft delete here; a tombstoned row would collide with the index when the
// owner re-adds the product.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerKey  string    `gorm:"not null;size:100;index;uniqueIndex:idx_cart_lines_owner_product,priority:1" json:"owner_key"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_lines_owner_product,priority:2" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartLine) TableName() string {
	return "cart_lines"
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // In cents
}
