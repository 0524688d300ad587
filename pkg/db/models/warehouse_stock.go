package models

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseStock is the per-variant on-hand quantity at one warehouse.
type WarehouseStock struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_warehouse_stock_wh_variant"`
	VariantID   uuid.UUID `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:idx_warehouse_stock_wh_variant"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
