package models

import (
	"time"

	"github.com/google/uuid"
)

// Variant is a purchasable catalog item. Identity is immutable; pricing
// fields are maintained by the (out-of-scope) catalog admin flows and are
// read-only to the pricing engine. A SalePriceCents of 0 means "no sale".
type Variant struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU               string          `gorm:"column:sku;not null"`
	RegularPriceCents int             `gorm:"column:regular_price_cents;not null"`
	SalePriceCents    int             `gorm:"column:sale_price_cents;not null;default:0"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true"`
	SegmentPrices     []SegmentPrice  `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	BulkPriceBands    []BulkPriceBand `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BasePriceCents returns the variant's effective base price: the sale price
// when one is set, otherwise the regular price.
func (v Variant) BasePriceCents() int {
	if v.SalePriceCents > 0 {
		return v.SalePriceCents
	}
	return v.RegularPriceCents
}
