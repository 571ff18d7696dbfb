// internal/domain/user/entity.go
package user

import (
	"time"
)

// User represents a stored account. The table exists and is seeded, but
// the login flow never consults it: authentication accepts any non-empty
// credential pair and the cart is keyed by the username string alone.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Password  string    `gorm:"not null;size:120" json:"-"` // bcrypt hash, never returned
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
