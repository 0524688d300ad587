package models

import (
	"time"

	"github.com/google/uuid"
)

// BulkPriceBand is a negotiated flat unit price for a quantity range.
// MaxQty nil means the band is unbounded above. Bands for one variant are
// maintained non-overlapping by the catalog admin flows.
type BulkPriceBand struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID      uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	MinQty         int       `gorm:"column:min_qty;not null"`
	MaxQty         *int      `gorm:"column:max_qty"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Matches reports whether qty falls inside the band.
func (b BulkPriceBand) Matches(qty int) bool {
	if qty < b.MinQty {
		return false
	}
	return b.MaxQty == nil || qty <= *b.MaxQty
}
