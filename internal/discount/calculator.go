package discount

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
)

type ruleLister interface {
	ListActiveByAudience(ctx context.Context, audience enums.DiscountAudience) ([]models.DiscountRule, error)
}

// Result is the outcome of applying the high-value discount step table.
type Result struct {
	DiscountCents        int
	DiscountedTotalCents int
	AppliedRule          *models.DiscountRule
}

// Calculator applies the configured high-value discount table to a cart
// subtotal. B2C and B2B audiences carry independent tables.
type Calculator struct {
	rules ruleLister
}

// NewCalculator builds a discount calculator over the rule store.
func NewCalculator(rules ruleLister) (*Calculator, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule lister required")
	}
	return &Calculator{rules: rules}, nil
}

// Calculate resolves the applicable step for the subtotal and returns the
// discount plus the discounted total. The discounted total is never
// negative: the discount is clamped to the subtotal.
func (c *Calculator) Calculate(ctx context.Context, subtotalCents int, tier enums.CustomerTier) (Result, error) {
	if subtotalCents < 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be non-negative")
	}

	audience := enums.DiscountAudienceB2C
	if tier.IsB2B() {
		audience = enums.DiscountAudienceB2B
	}

	rules, err := c.rules.ListActiveByAudience(ctx, audience)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount rules")
	}
	if err := ValidateRules(rules); err != nil {
		return Result{}, err
	}

	rule := selectRule(rules, subtotalCents)
	if rule == nil {
		return Result{DiscountCents: 0, DiscountedTotalCents: subtotalCents}, nil
	}

	discount := applyRule(*rule, subtotalCents)
	if discount > subtotalCents {
		discount = subtotalCents
	}
	return Result{
		DiscountCents:        discount,
		DiscountedTotalCents: subtotalCents - discount,
		AppliedRule:          rule,
	}, nil
}

// ValidateRules checks that the step table is usable: thresholds strictly
// increasing and the total discount monotonically non-decreasing in the
// subtotal. The percentage must never shrink across steps, and at every
// threshold the new step's discount (percent at that subtotal plus flat)
// must be at least what the previous step would have granted there, so the
// flat component cannot make a bigger cart earn a smaller discount. A
// broken table is a configuration fault, not a pricing decision the engine
// may improvise around.
func ValidateRules(rules []models.DiscountRule) error {
	sorted := make([]models.DiscountRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinSubtotalCents < sorted[j].MinSubtotalCents
	})

	for i, rule := range sorted {
		if rule.PercentBps < 0 || rule.PercentBps > 10000 {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "discount percent out of range")
		}
		if rule.FlatCents < 0 || rule.MinSubtotalCents < 0 {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "discount rule has negative values")
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if rule.MinSubtotalCents == prev.MinSubtotalCents {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "duplicate discount threshold")
		}
		if rule.PercentBps < prev.PercentBps {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "discount table is not monotonic")
		}
		if applyRule(rule, rule.MinSubtotalCents) < applyRule(prev, rule.MinSubtotalCents) {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "discount table is not monotonic")
		}
	}
	return nil
}

// selectRule picks the step with the largest threshold not exceeding the
// subtotal.
func selectRule(rules []models.DiscountRule, subtotalCents int) *models.DiscountRule {
	var selected *models.DiscountRule
	for i := range rules {
		rule := rules[i]
		if rule.MinSubtotalCents > subtotalCents {
			continue
		}
		if selected == nil || rule.MinSubtotalCents > selected.MinSubtotalCents {
			copied := rule
			selected = &copied
		}
	}
	return selected
}

// applyRule computes the discount in cents. Percentage math runs on
// decimals and truncates toward zero so repeated computation is
// deterministic.
func applyRule(rule models.DiscountRule, subtotalCents int) int {
	percent := decimal.NewFromInt(int64(subtotalCents)).
		Mul(decimal.NewFromInt(int64(rule.PercentBps))).
		Div(decimal.NewFromInt(10000))
	return int(percent.IntPart()) + rule.FlatCents
}
