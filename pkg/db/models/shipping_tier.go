package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingTier maps a subtotal band onto a flat shipping rate. Active tiers
// are expected to partition [0, inf) without gaps, but the selector must
// stay correct when they do not.
type ShippingTier struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MinSubtotalCents int       `gorm:"column:min_subtotal_cents;not null"`
	MaxSubtotalCents *int      `gorm:"column:max_subtotal_cents"`
	RateCents        int       `gorm:"column:rate_cents;not null"`
	ServiceName      *string   `gorm:"column:service_name"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Matches reports whether the subtotal falls inside the tier's band.
func (s ShippingTier) Matches(subtotalCents int) bool {
	if subtotalCents < s.MinSubtotalCents {
		return false
	}
	return s.MaxSubtotalCents == nil || subtotalCents <= *s.MaxSubtotalCents
}
