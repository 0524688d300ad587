package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/api/middleware"
	"github.com/oakmart/storefront-backend/api/responses"
	"github.com/oakmart/storefront-backend/api/validators"
	checkoutsvc "github.com/oakmart/storefront-backend/internal/checkout"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type dispatchService interface {
	PlanDispatch(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier, destination types.GeographyPoint) (*checkoutsvc.Dispatch, error)
}

// DispatchPlan resolves the warehouse the caller's active cart should ship
// from, given a destination coordinate.
func DispatchPlan(svc dispatchService, logg *logger.Logger) http.HandlerFunc {
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

		var payload dispatchPlanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		destination := types.GeographyPoint{Lat: payload.Lat, Lng: payload.Lng}
		dispatch, err := svc.PlanDispatch(r.Context(), customerID, middleware.TierFromContext(r.Context()), destination)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newDispatchResponse(dispatch))
	}
}

type dispatchPlanRequest struct {
	Lat float64 `json:"lat" validate:"required,latitude"`
	Lng float64 `json:"lng" validate:"required,longitude"`
}

type dispatchResponse struct {
	WarehouseID       uuid.UUID `json:"warehouseId"`
	WarehouseName     string    `json:"warehouseName"`
	DistanceKm        float64   `json:"distanceKm"`
	StockAvailable    bool      `json:"stockAvailable"`
	ShippingRateCents *int      `json:"shippingRateCents,omitempty"`
}

func newDispatchResponse(dispatch *checkoutsvc.Dispatch) dispatchResponse {
	return dispatchResponse{
		WarehouseID:       dispatch.Plan.WarehouseID,
		WarehouseName:     dispatch.Plan.WarehouseName,
		DistanceKm:        dispatch.Plan.DistanceKm,
		StockAvailable:    dispatch.Plan.StockAvailable,
		ShippingRateCents: dispatch.ShippingRateCents,
	}
}
