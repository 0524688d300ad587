package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/internal/cart"
	"github.com/oakmart/storefront-backend/internal/discount"
	"github.com/oakmart/storefront-backend/internal/warehouse"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type subtotalComputer interface {
	ComputeSubtotal(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier) (*cart.SubtotalResult, error)
}

type discountCalculator interface {
	Calculate(ctx context.Context, subtotalCents int, tier enums.CustomerTier) (discount.Result, error)
}

type shippingSelector interface {
	SelectTier(ctx context.Context, subtotalCents int) (*models.ShippingTier, error)
}

type dispatchSelector interface {
	SelectDispatch(ctx context.Context, destination types.GeographyPoint, required map[uuid.UUID]int) (*warehouse.DispatchPlan, error)
}

// Quote is the full pricing picture for a cart: fresh subtotal, high-value
// discount, and the shipping rate for the discounted total.
type Quote struct {
	Lines                []cart.LineQuote
	SubtotalCents        int
	DiscountCents        int
	DiscountedTotalCents int
	ShippingRateCents    int
	ShippingServiceName  *string
	TotalCents           int
}

// Dispatch is a warehouse plan optionally annotated with the shipping rate
// the quoted subtotal maps to.
type Dispatch struct {
	Plan              *warehouse.DispatchPlan
	ShippingRateCents *int
}

// Service is the in-process entry point checkout handlers call. It wires
// the aggregator, discount calculator, and the two selectors into single
// operations; it owns no state of its own.
type Service struct {
	carts     subtotalComputer
	discounts discountCalculator
	shipping  shippingSelector
	dispatch  dispatchSelector
	logg      *logger.Logger
}

// NewService builds the checkout facade.
func NewService(carts subtotalComputer, discounts discountCalculator, shipping shippingSelector, dispatch dispatchSelector, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount calculator required")
	}
	if shipping == nil {
		return nil, fmt.Errorf("shipping selector required")
	}
	if dispatch == nil {
		return nil, fmt.Errorf("dispatch selector required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		carts:     carts,
		discounts: discounts,
		shipping:  shipping,
		dispatch:  dispatch,
		logg:      logg,
	}, nil
}

// QuoteCart computes the authoritative totals for the customer's active
// cart. The discount applies to the fresh subtotal and shipping is selected
// on the discounted total. Failures propagate as typed errors; there is no
// silent fallback price.
func (s *Service) QuoteCart(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier) (*Quote, error) {
	subtotal, err := s.carts.ComputeSubtotal(ctx, customerID, tier)
	if err != nil {
		return nil, err
	}

	disc, err := s.discounts.Calculate(ctx, subtotal.SubtotalCents, tier)
	if err != nil {
		return nil, err
	}

	shippingTier, err := s.shipping.SelectTier(ctx, disc.DiscountedTotalCents)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Lines:                subtotal.Lines,
		SubtotalCents:        subtotal.SubtotalCents,
		DiscountCents:        disc.DiscountCents,
		DiscountedTotalCents: disc.DiscountedTotalCents,
		ShippingRateCents:    shippingTier.RateCents,
		ShippingServiceName:  shippingTier.ServiceName,
		TotalCents:           disc.DiscountedTotalCents + shippingTier.RateCents,
	}, nil
}

// PlanDispatch selects the dispatch warehouse for the customer's active
// cart and, when the discounted total maps to a shipping tier, annotates
// the plan with the same rate a quote would carry. A shipping configuration
// gap does not fail the dispatch plan; the rate is simply absent.
func (s *Service) PlanDispatch(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier, destination types.GeographyPoint) (*Dispatch, error) {
	subtotal, err := s.carts.ComputeSubtotal(ctx, customerID, tier)
	if err != nil {
		return nil, err
	}

	disc, err := s.discounts.Calculate(ctx, subtotal.SubtotalCents, tier)
	if err != nil {
		return nil, err
	}

	required := make(map[uuid.UUID]int, len(subtotal.Lines))
	for _, line := range subtotal.Lines {
		required[line.VariantID] += line.Quantity
	}

	plan, err := s.dispatch.SelectDispatch(ctx, destination, required)
	if err != nil {
		return nil, err
	}

	dispatch := &Dispatch{Plan: plan}
	shippingTier, err := s.shipping.SelectTier(ctx, disc.DiscountedTotalCents)
	switch {
	case err == nil:
		rate := shippingTier.RateCents
		dispatch.ShippingRateCents = &rate
	case !isConfigurationGap(err):
		s.logg.Warn(s.logg.WithField(ctx, "customer_id", customerID.String()), "shipping rate lookup failed for dispatch plan")
	}
	return dispatch, nil
}

func isConfigurationGap(err error) bool {
	appErr := pkgerrors.As(err)
	return appErr != nil && appErr.Code() == pkgerrors.CodeConfiguration
}
