package enums

import "fmt"

// CustomerTier is the raw account classification carried on a customer
// record. Guests (unauthenticated shoppers) carry TierNone.
type CustomerTier string

const (
	TierB2C         CustomerTier = "b2c"
	TierB2B         CustomerTier = "b2b"
	TierEnterprise1 CustomerTier = "enterprise_1"
	TierEnterprise2 CustomerTier = "enterprise_2"
	TierNone        CustomerTier = "none"
)

var validCustomerTiers = []CustomerTier{
	TierB2C,
	TierB2B,
	TierEnterprise1,
	TierEnterprise2,
	TierNone,
}

// PricingTier is the canonical tier actually used for segment price lookups.
// It is a narrower set than CustomerTier: sibling raw tiers collapse onto it.
type PricingTier string

const (
	PricingTierB2C         PricingTier = "b2c"
	PricingTierEnterprise1 PricingTier = "enterprise_1"
)

// String implements fmt.Stringer.
func (c CustomerTier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerTier.
func (c CustomerTier) IsValid() bool {
	for _, candidate := range validCustomerTiers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerTier converts raw input into a CustomerTier.
func ParseCustomerTier(value string) (CustomerTier, error) {
	for _, candidate := range validCustomerTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer tier %q", value)
}

// PricingTier maps the raw tier onto the canonical pricing tier. B2B and the
// second enterprise tier are billed at the next tier down's published price;
// this collapse is a pricing-only decision and must never drive
// authorization. Guests have no pricing tier and the second return is false.
//
// The switch is exhaustive over validCustomerTiers: adding a raw tier without
// extending it makes the new tier price like a guest, which the tier tests
// reject.
func (c CustomerTier) PricingTier() (PricingTier, bool) {
	switch c {
	case TierB2C, TierB2B:
		return PricingTierB2C, true
	case TierEnterprise1, TierEnterprise2:
		return PricingTierEnterprise1, true
	case TierNone:
		return "", false
	default:
		return "", false
	}
}

// IsB2B reports whether the raw tier participates in the B2B discount table.
func (c CustomerTier) IsB2B() bool {
	return c == TierB2B
}

// String implements fmt.Stringer.
func (p PricingTier) String() string {
	return string(p)
}
