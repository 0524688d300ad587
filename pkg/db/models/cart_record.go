package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/enums"
)

// CartRecord is the persisted cart of an authenticated customer. Guest carts
// never reach this table; they exist only as client-held snapshots merged in
// at login. One active cart per customer.
type CartRecord struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID        `gorm:"column:customer_id;type:uuid;not null"`
	Status     enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	Items      []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
