package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
)

// CartRepository abstracts cart persistence so the service can run against
// a transaction-scoped copy.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	UpdateStatus(ctx context.Context, id, customerID uuid.UUID, status enums.CartStatus) error
}
