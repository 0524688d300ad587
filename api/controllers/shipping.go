package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oakmart/storefront-backend/api/responses"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

type tierSelector interface {
	SelectTier(ctx context.Context, subtotalCents int) (*models.ShippingTier, error)
}

// ShippingRate resolves the shipping tier for a subtotal passed as a query
// parameter. A tier table gap surfaces as a configuration error; free
// shipping is never assumed.
func ShippingRate(svc tierSelector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping selector unavailable"))
			return
		}

		raw := r.URL.Query().Get("subtotalCents")
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "subtotalCents query parameter is required"))
			return
		}
		subtotalCents, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subtotalCents"))
			return
		}

		tier, err := svc.SelectTier(r.Context(), subtotalCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newShippingTierResponse(tier))
	}
}

type shippingTierResponse struct {
	RateCents        int     `json:"rateCents"`
	ServiceName      *string `json:"serviceName,omitempty"`
	MinSubtotalCents int     `json:"minSubtotalCents"`
	MaxSubtotalCents *int    `json:"maxSubtotalCents,omitempty"`
}

func newShippingTierResponse(tier *models.ShippingTier) shippingTierResponse {
	return shippingTierResponse{
		RateCents:        tier.RateCents,
		ServiceName:      tier.ServiceName,
		MinSubtotalCents: tier.MinSubtotalCents,
		MaxSubtotalCents: tier.MaxSubtotalCents,
	}
}
