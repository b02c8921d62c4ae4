package model

import (
	"time"
)

// CartItem is one pre-checkout line, partitioned by an opaque session token.
// The (session_id, product_id) pair is unique: a repeat add merges quantities
// at the row via upsert instead of creating a duplicate. Rows are hard
// deleted so the unique index keeps holding after remove-then-readd.
type CartItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	SessionID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_session_product,priority:1" json:"session_id"`
	ProductID      uint      `gorm:"not null;uniqueIndex:idx_cart_session_product,priority:2" json:"product_id"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	Customizations string    `gorm:"type:text" json:"customizations,omitempty"` // opaque, echoed back verbatim
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
