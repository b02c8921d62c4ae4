package model

import (
	"time"
)

// Notification is a write-once message tied to a product. There is no read
// state and no delivery guarantee; DispatchedAt records the emission time.
type Notification struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	DispatchedAt time.Time `gorm:"not null" json:"dispatched_at"`
	CreatedAt    time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
