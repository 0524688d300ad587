package pricing

import (
	"context"
	"fmt"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

// PriceSource identifies which rung of the precedence chain produced a price.
type PriceSource string

const (
	SourceCached  PriceSource = "cached"
	SourceBulk    PriceSource = "bulk"
	SourceSegment PriceSource = "segment"
	SourceBase    PriceSource = "base"
)

// LineInput carries everything needed to price one cart line.
type LineInput struct {
	Variant          *models.Variant
	Quantity         int
	CachedPriceCents *int
	Tier             enums.CustomerTier
}

// LinePrice is the authoritative unit price for a line plus its provenance.
type LinePrice struct {
	UnitPriceCents int
	Source         PriceSource
}

// Resolver produces authoritative unit prices for cart lines. Precedence is
// a hard contract: cached price, then bulk band, then segment price, then
// the variant base price.
type Resolver struct {
	logg *logger.Logger
}

// NewResolver builds a price resolver.
func NewResolver(logg *logger.Logger) (*Resolver, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Resolver{logg: logg}, nil
}

// ResolveLinePrice resolves one line through the precedence chain.
func (r *Resolver) ResolveLinePrice(ctx context.Context, input LineInput) (LinePrice, error) {
	if input.Variant == nil {
		return LinePrice{}, pkgerrors.New(pkgerrors.CodeValidation, "variant is required")
	}
	if input.Quantity <= 0 {
		return LinePrice{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	if input.CachedPriceCents != nil && *input.CachedPriceCents > 0 {
		return LinePrice{UnitPriceCents: *input.CachedPriceCents, Source: SourceCached}, nil
	}

	// A matching bulk band is a negotiated volume rate and always beats
	// segment pricing.
	if band := r.ResolveBulkPrice(ctx, input.Variant, input.Quantity); band != nil {
		return LinePrice{UnitPriceCents: band.UnitPriceCents, Source: SourceBulk}, nil
	}

	if price, ok := ResolveSegmentPrice(input.Variant, input.Tier); ok {
		return LinePrice{UnitPriceCents: price, Source: SourceSegment}, nil
	}

	return LinePrice{UnitPriceCents: input.Variant.BasePriceCents(), Source: SourceBase}, nil
}

// ResolveBulkPrice returns the bulk band matching the quantity, or nil when
// none applies. Bands are non-overlapping by construction; if the data
// nonetheless contains overlapping matches, the band with the smallest
// MinQty wins and the anomaly is logged. Processing continues rather than
// failing the cart.
func (r *Resolver) ResolveBulkPrice(ctx context.Context, variant *models.Variant, qty int) *models.BulkPriceBand {
	var selected *models.BulkPriceBand
	matches := 0
	for i := range variant.BulkPriceBands {
		band := variant.BulkPriceBands[i]
		if !band.Matches(qty) {
			continue
		}
		matches++
		if selected == nil || band.MinQty < selected.MinQty {
			copied := band
			selected = &copied
		}
	}
	if matches > 1 {
		ctx = r.logg.WithFields(ctx, map[string]any{
			"variant_id": variant.ID.String(),
			"quantity":   qty,
			"matches":    matches,
		})
		r.logg.Warn(ctx, "overlapping bulk price bands, using smallest min_qty")
	}
	return selected
}

// ResolveSegmentPrice looks up the published price for the canonical pricing
// tier derived from the raw customer tier. Guests have no pricing tier and
// always report no entry.
func ResolveSegmentPrice(variant *models.Variant, tier enums.CustomerTier) (int, bool) {
	canonical, ok := tier.PricingTier()
	if !ok {
		return 0, false
	}
	for _, entry := range variant.SegmentPrices {
		if entry.Tier == canonical {
			return entry.EffectivePriceCents(), true
		}
	}
	return 0, false
}
