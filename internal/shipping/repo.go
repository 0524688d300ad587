package shipping

import (
	"context"

	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
)

// TierRepository reads shipping tier configuration. Tiers are administrative
// data and read-only to the engine.
type TierRepository struct {
	db *gorm.DB
}

// NewTierRepository binds the repository to the provided GORM handle.
func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *TierRepository) WithTx(tx *gorm.DB) *TierRepository {
	if tx == nil {
		return r
	}
	return &TierRepository{db: tx}
}

// ListActive returns active tiers ordered by ascending subtotal threshold.
func (r *TierRepository) ListActive(ctx context.Context) ([]models.ShippingTier, error) {
	var rows []models.ShippingTier
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_subtotal_cents ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
