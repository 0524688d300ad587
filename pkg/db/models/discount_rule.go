package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/enums"
)

// DiscountRule is one step of a high-value discount table. The rule with the
// largest MinSubtotalCents not exceeding the order subtotal applies. Percent
// is expressed in basis points; FlatCents is added on top when configured.
// Tables are business configuration, never hard-coded.
type DiscountRule struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Audience         enums.DiscountAudience `gorm:"column:audience;not null"`
	MinSubtotalCents int                    `gorm:"column:min_subtotal_cents;not null"`
	PercentBps       int                    `gorm:"column:percent_bps;not null;default:0"`
	FlatCents        int                    `gorm:"column:flat_cents;not null;default:0"`
	IsActive         bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
