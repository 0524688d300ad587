package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/enums"
)

// Promotion is a redeemable coupon code. IsActive is a derived flag kept
// fresh by the lifecycle scheduler; eligibility decisions always recompute
// from StartsAt/ExpiresAt so redemption stays correct between ticks.
type Promotion struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string              `gorm:"column:code;not null;uniqueIndex"`
	Type          enums.PromotionType `gorm:"column:type;not null"`
	Value         int                 `gorm:"column:value;not null"`
	StartsAt      time.Time           `gorm:"column:starts_at;not null"`
	ExpiresAt     *time.Time          `gorm:"column:expires_at"`
	IsActive      bool                `gorm:"column:is_active;not null;default:false"`
	UsageLimit    *int                `gorm:"column:usage_limit"`
	UsageCount    int                 `gorm:"column:usage_count;not null;default:0"`
	MinOrderCents *int                `gorm:"column:min_order_cents"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// InWindow reports whether now falls inside the promotion's time window.
// This, not IsActive, is the source of truth for eligibility.
func (p Promotion) InWindow(now time.Time) bool {
	if now.Before(p.StartsAt) {
		return false
	}
	return p.ExpiresAt == nil || !p.ExpiresAt.Before(now)
}

// Exhausted reports whether the usage limit has been reached.
func (p Promotion) Exhausted() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}
