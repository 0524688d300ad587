package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/api/middleware"
	"github.com/oakmart/storefront-backend/api/responses"
	"github.com/oakmart/storefront-backend/api/validators"
	cartsvc "github.com/oakmart/storefront-backend/internal/cart"
	checkoutsvc "github.com/oakmart/storefront-backend/internal/checkout"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type quoteService interface {
	QuoteCart(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier) (*checkoutsvc.Quote, error)
}

// CartFetch returns the caller's active cart verbatim, cached prices
// included. Totals are deliberately absent here; quoting is its own call.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetActiveCart(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartQuote recomputes the cart's totals from scratch on every call.
func CartQuote(svc quoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteCart(r.Context(), customerID, middleware.TierFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

// CartMerge folds a client-held guest cart into the caller's active cart.
func CartMerge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload mergeCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.MergeGuestCart(r.Context(), customerID, payload.toSnapshot())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

type mergeCartRequest struct {
	LocalID string               `json:"localId"`
	Lines   []mergeCartLineEntry `json:"lines" validate:"dive"`
}

type mergeCartLineEntry struct {
	VariantID              uuid.UUID `json:"variantId" validate:"required"`
	Quantity               int       `json:"quantity" validate:"required,min=1"`
	ResolvedUnitPriceCents *int      `json:"resolvedUnitPriceCents"`
}

func (r mergeCartRequest) toSnapshot() types.GuestCartSnapshot {
	lines := make([]types.GuestCartLine, len(r.Lines))
	for i, entry := range r.Lines {
		lines[i] = types.GuestCartLine{
			VariantID:              entry.VariantID,
			Quantity:               entry.Quantity,
			ResolvedUnitPriceCents: entry.ResolvedUnitPriceCents,
		}
	}
	return types.GuestCartSnapshot{LocalID: r.LocalID, Lines: lines}
}

type cartResponse struct {
	ID         uuid.UUID          `json:"id"`
	CustomerID uuid.UUID          `json:"customerId"`
	Status     string             `json:"status"`
	Items      []cartItemResponse `json:"items"`
}

type cartItemResponse struct {
	VariantID              uuid.UUID `json:"variantId"`
	Quantity               int       `json:"quantity"`
	ResolvedUnitPriceCents *int      `json:"resolvedUnitPriceCents,omitempty"`
}

func newCartResponse(record *models.CartRecord) cartResponse {
	resp := cartResponse{
		ID:         record.ID,
		CustomerID: record.CustomerID,
		Status:     record.Status.String(),
		Items:      make([]cartItemResponse, len(record.Items)),
	}
	for i, item := range record.Items {
		resp.Items[i] = cartItemResponse{
			VariantID:              item.VariantID,
			Quantity:               item.Quantity,
			ResolvedUnitPriceCents: item.ResolvedUnitPriceCents,
		}
	}
	return resp
}

type quoteResponse struct {
	Lines                []quoteLineResponse `json:"lines"`
	SubtotalCents        int                 `json:"subtotalCents"`
	DiscountCents        int                 `json:"discountCents"`
	DiscountedTotalCents int                 `json:"discountedTotalCents"`
	ShippingRateCents    int                 `json:"shippingRateCents"`
	ShippingServiceName  *string             `json:"shippingServiceName,omitempty"`
	TotalCents           int                 `json:"totalCents"`
}

type quoteLineResponse struct {
	VariantID      uuid.UUID `json:"variantId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unitPriceCents"`
	LineTotalCents int       `json:"lineTotalCents"`
	Source         string    `json:"source"`
}

func newQuoteResponse(quote *checkoutsvc.Quote) quoteResponse {
	resp := quoteResponse{
		Lines:                make([]quoteLineResponse, len(quote.Lines)),
		SubtotalCents:        quote.SubtotalCents,
		DiscountCents:        quote.DiscountCents,
		DiscountedTotalCents: quote.DiscountedTotalCents,
		ShippingRateCents:    quote.ShippingRateCents,
		ShippingServiceName:  quote.ShippingServiceName,
		TotalCents:           quote.TotalCents,
	}
	for i, line := range quote.Lines {
		resp.Lines[i] = quoteLineResponse{
			VariantID:      line.VariantID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: line.LineTotalCents,
			Source:         string(line.Source),
		}
	}
	return resp
}

func customerIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.CustomerIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "customer identity required")
	}
	customerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
	}
	return customerID, nil
}
