package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/enums"
)

// SegmentPrice is the published per-pricing-tier price of a variant.
// At most one row exists per (variant, tier).
type SegmentPrice struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID         uuid.UUID         `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:idx_segment_prices_variant_tier"`
	Tier              enums.PricingTier `gorm:"column:tier;not null;uniqueIndex:idx_segment_prices_variant_tier"`
	RegularPriceCents int               `gorm:"column:regular_price_cents;not null"`
	SalePriceCents    int               `gorm:"column:sale_price_cents;not null;default:0"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePriceCents returns the sale price when set, else the regular price.
func (s SegmentPrice) EffectivePriceCents() int {
	if s.SalePriceCents > 0 {
		return s.SalePriceCents
	}
	return s.RegularPriceCents
}
