package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
)

type codeFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Promotion, error)
}

// EligibilityService answers whether a coupon code can be applied to an
// order. Eligibility always recomputes from the promotion's time window;
// the IsActive flag is a scheduler-maintained cache and is deliberately
// ignored here so a stale flag can never honor an expired code.
type EligibilityService struct {
	repo codeFinder
	now  func() time.Time
}

// NewEligibilityService builds the eligibility checker.
func NewEligibilityService(repo codeFinder) (*EligibilityService, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotion repository required")
	}
	return &EligibilityService{repo: repo, now: time.Now}, nil
}

// ValidateCode returns the promotion when the code is currently redeemable
// against the given order total.
func (s *EligibilityService) ValidateCode(ctx context.Context, code string, orderTotalCents int) (*models.Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion code is required")
	}
	if orderTotalCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total must be non-negative")
	}

	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promotion")
	}

	if !promo.InWindow(s.now().UTC()) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "promotion is not currently active")
	}
	if promo.Exhausted() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "promotion usage limit reached")
	}
	if promo.MinOrderCents != nil && orderTotalCents < *promo.MinOrderCents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total below promotion minimum")
	}
	return promo, nil
}
