package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/types"
)

// Warehouse is a fulfillment location. Position is the configured ordering
// used to break exact distance ties deterministically.
type Warehouse struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string               `gorm:"column:name;not null"`
	Geom      types.GeographyPoint `gorm:"column:geom;type:geography(Point,4326);not null"`
	IsActive  bool                 `gorm:"column:is_active;not null;default:true"`
	Position  int                  `gorm:"column:position;not null;default:0"`
	Stock     []WarehouseStock     `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// StockFor returns the on-hand quantity for the variant at this warehouse.
func (w Warehouse) StockFor(variantID uuid.UUID) int {
	for _, s := range w.Stock {
		if s.VariantID == variantID {
			return s.Quantity
		}
	}
	return 0
}
