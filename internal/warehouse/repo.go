package warehouse

import (
	"context"

	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
)

// Repository reads warehouse and stock configuration. Both are maintained
// by out-of-scope inventory flows and read-only to the engine.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListActiveWithStock returns active warehouses with their stock rows in
// configuration order.
func (r *Repository) ListActiveWithStock(ctx context.Context) ([]models.Warehouse, error) {
	var rows []models.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Stock").
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
