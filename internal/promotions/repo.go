package promotions

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
)

// Repository owns promotion persistence. The lifecycle sweeps are set-based
// UPDATEs so a tick costs two statements regardless of row count, and
// re-running them with no time elapsed touches zero rows.
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

// ActivateDue flips on every promotion whose window contains now and whose
// flag is still off. Returns the number of rows changed.
func (r *Repository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("is_active = ? AND starts_at <= ? AND (expires_at IS NULL OR expires_at >= ?)", false, now, now).
		Update("is_active", true)
	return result.RowsAffected, result.Error
}

// DeactivateExpired flips off every promotion whose window has closed.
// Returns the number of rows changed.
func (r *Repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// FindByCode loads a promotion by its unique code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Promotion, error) {
	var promo models.Promotion
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}
