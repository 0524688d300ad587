package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/oakmart/storefront-backend/api/responses"
	"github.com/oakmart/storefront-backend/api/validators"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

type promotionValidator interface {
	ValidateCode(ctx context.Context, code string, orderTotalCents int) (*models.Promotion, error)
}

// PromotionValidate checks a promotion code against the current clock and
// the caller's order total. The stored is_active flag plays no part here.
func PromotionValidate(svc promotionValidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
			return
		}

		var payload validatePromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promo, err := svc.ValidateCode(r.Context(), payload.Code, payload.OrderTotalCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPromotionResponse(promo))
	}
}

type validatePromotionRequest struct {
	Code            string `json:"code" validate:"required"`
	OrderTotalCents int    `json:"orderTotalCents" validate:"min=0"`
}

type promotionResponse struct {
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     int        `json:"value"`
	StartsAt  time.Time  `json:"startsAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func newPromotionResponse(promo *models.Promotion) promotionResponse {
	return promotionResponse{
		Code:      promo.Code,
		Type:      promo.Type.String(),
		Value:     promo.Value,
		StartsAt:  promo.StartsAt,
		ExpiresAt: promo.ExpiresAt,
	}
}
