package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of an authenticated cart. ResolvedUnitPriceCents,
// when present and positive, is the price resolved and persisted at the
// moment the item was added; the resolver chain treats it as authoritative
// and skips re-resolution.
type CartItem struct {
	ID                     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID                 uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	VariantID              uuid.UUID `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	Quantity               int       `gorm:"column:quantity;not null"`
	ResolvedUnitPriceCents *int      `gorm:"column:resolved_unit_price_cents"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CachedPriceCents returns the cached resolved price and whether it is
// usable (present and positive).
func (c CartItem) CachedPriceCents() (int, bool) {
	if c.ResolvedUnitPriceCents == nil || *c.ResolvedUnitPriceCents <= 0 {
		return 0, false
	}
	return *c.ResolvedUnitPriceCents, true
}
