package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakmart/storefront-backend/internal/pricing"
	"github.com/oakmart/storefront-backend/pkg/db"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type variantLoader interface {
	FindVariantsWithPricing(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Variant, error)
}

type linePricer interface {
	ResolveLinePrice(ctx context.Context, input pricing.LineInput) (pricing.LinePrice, error)
}

// Service owns cart aggregation and the guest-cart merge performed at login.
type Service interface {
	MergeGuestCart(ctx context.Context, customerID uuid.UUID, snapshot types.GuestCartSnapshot) (*models.CartRecord, error)
	ComputeSubtotal(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier) (*SubtotalResult, error)
	GetActiveCart(ctx context.Context, customerID uuid.UUID) (*models.CartRecord, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	variants variantLoader
	pricer   linePricer
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, variants variantLoader, pricer linePricer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if variants == nil {
		return nil, fmt.Errorf("variant loader required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("line pricer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		variants: variants,
		pricer:   pricer,
		logg:     logg,
	}, nil
}

// LineQuote is one priced cart line inside a subtotal computation.
type LineQuote struct {
	VariantID      uuid.UUID
	Quantity       int
	UnitPriceCents int
	LineTotalCents int
	Source         pricing.PriceSource
}

// SubtotalResult is a freshly computed cart subtotal. Nothing here is
// cached; every read recomputes from the current lines.
type SubtotalResult struct {
	Cart          *models.CartRecord
	Lines         []LineQuote
	SubtotalCents int
}

// MergeGuestCart folds the client-held guest cart into the customer's active
// cart. Quantities for the same variant are summed; an existing line's cached
// price is never overwritten by the guest's. The merge is atomic: a conflict
// with a concurrent writer is retried once under a fresh transaction, then
// surfaced.
func (s *service) MergeGuestCart(ctx context.Context, customerID uuid.UUID, snapshot types.GuestCartSnapshot) (*models.CartRecord, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	for _, line := range snapshot.Lines {
		if line.VariantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest line variant id is required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest line quantity must be positive")
		}
	}

	merged, err := s.mergeOnce(ctx, customerID, snapshot)
	if err == nil {
		return merged, nil
	}
	if !isMergeConflict(err) {
		return nil, err
	}

	s.logg.Warn(s.logg.WithField(ctx, "customer_id", customerID.String()), "guest cart merge conflict, retrying once")

	merged, err = s.mergeOnce(ctx, customerID, snapshot)
	if err != nil {
		if isMergeConflict(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "guest cart merge conflicted twice")
		}
		return nil, err
	}
	return merged, nil
}

func (s *service) mergeOnce(ctx context.Context, customerID uuid.UUID, snapshot types.GuestCartSnapshot) (*models.CartRecord, error) {
	var merged *models.CartRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindActiveByCustomer(ctx, customerID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record, err = txRepo.Create(ctx, &models.CartRecord{CustomerID: customerID})
			if err != nil {
				return err
			}
		}

		existingByVariant := make(map[uuid.UUID]models.CartItem, len(record.Items))
		for _, item := range record.Items {
			existingByVariant[item.VariantID] = item
		}

		for _, line := range snapshot.Lines {
			if existing, ok := existingByVariant[line.VariantID]; ok {
				if err := txRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+line.Quantity); err != nil {
					return err
				}
				continue
			}
			item := models.CartItem{
				CartID:    record.ID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
			}
			if line.ResolvedUnitPriceCents != nil && *line.ResolvedUnitPriceCents > 0 {
				price := *line.ResolvedUnitPriceCents
				item.ResolvedUnitPriceCents = &price
			}
			if err := txRepo.CreateItem(ctx, &item); err != nil {
				return err
			}
		}

		merged, err = txRepo.FindActiveByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// ComputeSubtotal prices every line of the active cart through the resolver
// chain and sums the line totals.
func (s *service) ComputeSubtotal(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier) (*SubtotalResult, error) {
	record, err := s.GetActiveCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(record.Items))
	for _, item := range record.Items {
		ids = append(ids, item.VariantID)
	}
	variants, err := s.variants.FindVariantsWithPricing(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart variants")
	}

	result := &SubtotalResult{Cart: record, Lines: make([]LineQuote, 0, len(record.Items))}
	for _, item := range record.Items {
		variant, ok := variants[item.VariantID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart references unknown variant")
		}
		price, err := s.pricer.ResolveLinePrice(ctx, pricing.LineInput{
			Variant:          variant,
			Quantity:         item.Quantity,
			CachedPriceCents: item.ResolvedUnitPriceCents,
			Tier:             tier,
		})
		if err != nil {
			return nil, err
		}
		lineTotal := price.UnitPriceCents * item.Quantity
		result.Lines = append(result.Lines, LineQuote{
			VariantID:      item.VariantID,
			Quantity:       item.Quantity,
			UnitPriceCents: price.UnitPriceCents,
			LineTotalCents: lineTotal,
			Source:         price.Source,
		})
		result.SubtotalCents += lineTotal
	}

	if result.SubtotalCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "computed subtotal is negative")
	}
	return result, nil
}

// GetActiveCart returns the active cart for the customer, or not-found.
func (s *service) GetActiveCart(ctx context.Context, customerID uuid.UUID) (*models.CartRecord, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	record, err := s.repo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
		}
		return nil, err
	}
	return record, nil
}

func isMergeConflict(err error) bool {
	if db.IsUniqueViolation(err, "idx_cart_items_cart_variant") {
		return true
	}
	appErr := pkgerrors.As(err)
	return appErr != nil && appErr.Code() == pkgerrors.CodeConflict
}
