package shipping

import (
	"context"
	"fmt"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

type tierLister interface {
	ListActive(ctx context.Context) ([]models.ShippingTier, error)
}

// Selector maps a subtotal to the shipping tier covering it. A subtotal no
// active tier covers is a configuration gap and surfaces as a typed failure
// rather than a silently improvised rate.
type Selector struct {
	tiers tierLister
	logg  *logger.Logger
}

// NewSelector builds a shipping tier selector.
func NewSelector(tiers tierLister, logg *logger.Logger) (*Selector, error) {
	if tiers == nil {
		return nil, fmt.Errorf("tier lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Selector{tiers: tiers, logg: logg}, nil
}

// SelectTier returns the tier whose band contains the subtotal. Bands are
// configured non-overlapping; if the data nonetheless yields several
// matches, the one with the highest threshold wins and the anomaly is
// logged.
func (s *Selector) SelectTier(ctx context.Context, subtotalCents int) (*models.ShippingTier, error) {
	if subtotalCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be non-negative")
	}

	tiers, err := s.tiers.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping tiers")
	}

	var selected *models.ShippingTier
	matches := 0
	for i := range tiers {
		tier := tiers[i]
		if !tier.Matches(subtotalCents) {
			continue
		}
		matches++
		if selected == nil || tier.MinSubtotalCents > selected.MinSubtotalCents {
			copied := tier
			selected = &copied
		}
	}

	if selected == nil {
		ctx = s.logg.WithField(ctx, "subtotal_cents", subtotalCents)
		s.logg.Warn(ctx, "no shipping tier covers subtotal")
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "no shipping tier covers the subtotal")
	}
	if matches > 1 {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"subtotal_cents": subtotalCents,
			"matches":        matches,
		})
		s.logg.Warn(ctx, "overlapping shipping tiers, using highest threshold")
	}
	return selected, nil
}
