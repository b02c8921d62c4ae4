package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategorySingleOrigin ProductCategory = "single_origin"
	CategoryBlend        ProductCategory = "blend"
	CategoryEspresso     ProductCategory = "espresso"
	CategoryDecaf        ProductCategory = "decaf"
)

type RoastLevel string

const (
	RoastLight      RoastLevel = "light"
	RoastMedium     RoastLevel = "medium"
	RoastMediumDark RoastLevel = "medium_dark"
	RoastDark       RoastLevel = "dark"
)

// Product is the catalog record. Price is fixed-point decimal; order lines
// copy it at commit time, so later price edits never touch placed orders.
type Product struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category     ProductCategory `gorm:"type:varchar(50)" json:"category"`
	Origin       string          `gorm:"type:varchar(100)" json:"origin"`
	RoastLevel   RoastLevel      `gorm:"type:varchar(20)" json:"roast_level"`
	TastingNotes pq.StringArray  `gorm:"type:text[]" json:"tasting_notes"`
	ImageURL     string          `json:"image_url"`
	InStock      bool            `gorm:"default:true" json:"in_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
