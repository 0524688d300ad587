package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
)

// CatalogRepository reads variants with their pricing associations. Catalog
// rows are administrative data and read-only to the engine.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository binds the repository to the provided GORM handle.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *CatalogRepository) WithTx(tx *gorm.DB) *CatalogRepository {
	if tx == nil {
		return r
	}
	return &CatalogRepository{db: tx}
}

// FindVariantWithPricing loads a variant with segment prices and bulk bands.
func (r *CatalogRepository) FindVariantWithPricing(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Preload("SegmentPrices").
		Preload("BulkPriceBands").
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindVariantsWithPricing loads a batch of variants keyed by id.
func (r *CatalogRepository) FindVariantsWithPricing(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Variant, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*models.Variant{}, nil
	}
	var rows []models.Variant
	err := r.db.WithContext(ctx).
		Preload("SegmentPrices").
		Preload("BulkPriceBands").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*models.Variant, len(rows))
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}
