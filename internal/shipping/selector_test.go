package shipping

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

type stubTierLister struct {
	tiers []models.ShippingTier
}

func (s *stubTierLister) ListActive(context.Context) ([]models.ShippingTier, error) {
	return s.tiers, nil
}

func intPtr(v int) *int { return &v }

func newSelector(t *testing.T, tiers []models.ShippingTier) (*Selector, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	selector, err := NewSelector(&stubTierLister{tiers: tiers}, logg)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return selector, buf
}

func standardTiers() []models.ShippingTier {
	return []models.ShippingTier{
		{MinSubtotalCents: 0, MaxSubtotalCents: intPtr(4999), RateCents: 999, IsActive: true},
		{MinSubtotalCents: 5000, MaxSubtotalCents: intPtr(14999), RateCents: 499, IsActive: true},
		{MinSubtotalCents: 15000, RateCents: 0, IsActive: true},
	}
}

func TestSelectTierBandBoundaries(t *testing.T) {
	selector, _ := newSelector(t, standardTiers())

	cases := []struct {
		subtotal int
		rate     int
	}{
		{subtotal: 0, rate: 999},
		{subtotal: 4999, rate: 999},
		{subtotal: 5000, rate: 499},
		{subtotal: 14999, rate: 499},
		{subtotal: 15000, rate: 0},
		{subtotal: 50000, rate: 0},
	}
	for _, tc := range cases {
		tier, err := selector.SelectTier(context.Background(), tc.subtotal)
		if err != nil {
			t.Fatalf("subtotal %d: unexpected error: %v", tc.subtotal, err)
		}
		if tier.RateCents != tc.rate {
			t.Errorf("subtotal %d: expected rate %d, got %d", tc.subtotal, tc.rate, tier.RateCents)
		}
	}
}

func TestSelectTierConfigurationGap(t *testing.T) {
	// hole between 5000 and 9999
	selector, buf := newSelector(t, []models.ShippingTier{
		{MinSubtotalCents: 0, MaxSubtotalCents: intPtr(4999), RateCents: 999, IsActive: true},
		{MinSubtotalCents: 10000, RateCents: 0, IsActive: true},
	})

	_, err := selector.SelectTier(context.Background(), 7500)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConfiguration {
		t.Fatalf("expected configuration gap error, got %v", err)
	}
	meta := pkgerrors.MetadataFor(appErr.Code())
	if meta.PublicMessage == "" || meta.DetailsAllowed {
		t.Fatalf("configuration gap must map to a generic public message, got %+v", meta)
	}
	if !strings.Contains(buf.String(), "no shipping tier covers subtotal") {
		t.Fatalf("expected gap warning, log output: %s", buf.String())
	}
}

func TestSelectTierOverlapPicksHighestThreshold(t *testing.T) {
	selector, buf := newSelector(t, []models.ShippingTier{
		{MinSubtotalCents: 0, MaxSubtotalCents: intPtr(9999), RateCents: 999, IsActive: true},
		{MinSubtotalCents: 5000, RateCents: 499, IsActive: true},
	})

	tier, err := selector.SelectTier(context.Background(), 7500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.MinSubtotalCents != 5000 || tier.RateCents != 499 {
		t.Fatalf("expected highest-threshold tier, got %+v", tier)
	}
	if !strings.Contains(buf.String(), "overlapping shipping tiers") {
		t.Fatalf("expected overlap warning, log output: %s", buf.String())
	}
}

func TestSelectTierRejectsNegativeSubtotal(t *testing.T) {
	selector, _ := newSelector(t, standardTiers())

	_, err := selector.SelectTier(context.Background(), -1)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSelectTierNoActiveTiersIsAGap(t *testing.T) {
	selector, _ := newSelector(t, nil)

	_, err := selector.SelectTier(context.Background(), 100)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConfiguration {
		t.Fatalf("expected configuration gap, got %v", err)
	}
}
