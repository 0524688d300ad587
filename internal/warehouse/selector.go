package warehouse

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type warehouseLister interface {
	ListActiveWithStock(ctx context.Context) ([]models.Warehouse, error)
}

// DispatchPlan names the warehouse an order should ship from. When
// StockAvailable is false no single warehouse can cover the whole order and
// the named one is only the nearest partial candidate; splitting the order
// is the caller's problem.
type DispatchPlan struct {
	WarehouseID    uuid.UUID
	WarehouseName  string
	DistanceKm     float64
	StockAvailable bool
}

// Selector picks the dispatch warehouse for a set of required quantities.
type Selector struct {
	warehouses warehouseLister
	logg       *logger.Logger
}

// NewSelector builds a warehouse dispatch selector.
func NewSelector(warehouses warehouseLister, logg *logger.Logger) (*Selector, error) {
	if warehouses == nil {
		return nil, fmt.Errorf("warehouse lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Selector{warehouses: warehouses, logg: logg}, nil
}

// SelectDispatch ranks active warehouses by great-circle distance to the
// destination. A fully stocked warehouse always beats a closer partially
// stocked one; among equals the nearest wins, and exact distance ties fall
// back to configuration order.
func (s *Selector) SelectDispatch(ctx context.Context, destination types.GeographyPoint, required map[uuid.UUID]int) (*DispatchPlan, error) {
	if len(required) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one required variant is needed")
	}
	for variantID, qty := range required {
		if variantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
		}
		if qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "required quantity must be positive")
		}
	}

	warehouses, err := s.warehouses.ListActiveWithStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouses")
	}
	if len(warehouses) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "no active warehouses configured")
	}

	var bestFull, bestPartial *candidate
	for i := range warehouses {
		wh := &warehouses[i]
		c := &candidate{
			warehouse: wh,
			distance:  destination.DistanceKm(wh.Geom),
		}
		if coversAll(wh, required) {
			bestFull = closer(bestFull, c)
		} else {
			bestPartial = closer(bestPartial, c)
		}
	}

	if bestFull != nil {
		return bestFull.plan(true), nil
	}

	ctx = s.logg.WithField(ctx, "warehouse_id", bestPartial.warehouse.ID.String())
	s.logg.Warn(ctx, "no single warehouse fully stocked for order")
	return bestPartial.plan(false), nil
}

type candidate struct {
	warehouse *models.Warehouse
	distance  float64
}

func (c *candidate) plan(stockAvailable bool) *DispatchPlan {
	return &DispatchPlan{
		WarehouseID:    c.warehouse.ID,
		WarehouseName:  c.warehouse.Name,
		DistanceKm:     c.distance,
		StockAvailable: stockAvailable,
	}
}

// closer keeps the nearer candidate. Equal distances keep the earlier one,
// which preserves configuration order because warehouses arrive sorted.
func closer(current, next *candidate) *candidate {
	if current == nil {
		return next
	}
	if next.distance < current.distance {
		return next
	}
	return current
}

func coversAll(wh *models.Warehouse, required map[uuid.UUID]int) bool {
	for variantID, qty := range required {
		if wh.StockFor(variantID) < qty {
			return false
		}
	}
	return true
}
