package discount

import (
	"context"

	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
)

// RuleRepository reads discount step tables. Tables are business
// configuration maintained out of band and read-only to the engine.
type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository binds the repository to the provided GORM handle.
func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *RuleRepository) WithTx(tx *gorm.DB) *RuleRepository {
	if tx == nil {
		return r
	}
	return &RuleRepository{db: tx}
}

// ListActiveByAudience returns the active rules for the audience ordered by
// ascending subtotal threshold.
func (r *RuleRepository) ListActiveByAudience(ctx context.Context, audience enums.DiscountAudience) ([]models.DiscountRule, error) {
	var rows []models.DiscountRule
	err := r.db.WithContext(ctx).
		Where("audience = ? AND is_active = ?", audience, true).
		Order("min_subtotal_cents ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
