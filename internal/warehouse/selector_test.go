package warehouse

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type stubWarehouseLister struct {
	warehouses []models.Warehouse
}

func (s *stubWarehouseLister) ListActiveWithStock(context.Context) ([]models.Warehouse, error) {
	return s.warehouses, nil
}

func newSelector(t *testing.T, warehouses []models.Warehouse) (*Selector, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	selector, err := NewSelector(&stubWarehouseLister{warehouses: warehouses}, logg)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return selector, buf
}

// destination in central Berlin; offsets in latitude give predictable
// distances (1 degree of latitude is ~111km)
var destination = types.GeographyPoint{Lat: 52.5200, Lng: 13.4050}

func warehouseAt(name string, latOffset float64, position int, stock map[uuid.UUID]int) models.Warehouse {
	wh := models.Warehouse{
		ID:       uuid.New(),
		Name:     name,
		Geom:     types.GeographyPoint{Lat: destination.Lat + latOffset, Lng: destination.Lng},
		IsActive: true,
		Position: position,
	}
	for variantID, qty := range stock {
		wh.Stock = append(wh.Stock, models.WarehouseStock{
			WarehouseID: wh.ID,
			VariantID:   variantID,
			Quantity:    qty,
		})
	}
	return wh
}

func TestFullyStockedBeatsCloserPartial(t *testing.T) {
	variant := uuid.New()
	// ~10km away, fully stocked
	far := warehouseAt("far-full", 0.09, 0, map[uuid.UUID]int{variant: 10})
	// ~2km away, not enough stock
	near := warehouseAt("near-partial", 0.018, 1, map[uuid.UUID]int{variant: 3})

	selector, _ := newSelector(t, []models.Warehouse{near, far})

	plan, err := selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{variant: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.WarehouseID != far.ID {
		t.Fatalf("expected fully stocked warehouse, got %s", plan.WarehouseName)
	}
	if !plan.StockAvailable {
		t.Fatalf("expected stockAvailable=true")
	}
	if plan.DistanceKm < 9 || plan.DistanceKm > 11 {
		t.Fatalf("expected ~10km distance, got %.2f", plan.DistanceKm)
	}
}

func TestNearestFullyStockedWins(t *testing.T) {
	variant := uuid.New()
	far := warehouseAt("far", 0.5, 0, map[uuid.UUID]int{variant: 10})
	near := warehouseAt("near", 0.05, 1, map[uuid.UUID]int{variant: 10})

	selector, _ := newSelector(t, []models.Warehouse{far, near})

	plan, err := selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{variant: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.WarehouseID != near.ID {
		t.Fatalf("expected nearest fully stocked warehouse, got %s", plan.WarehouseName)
	}
}

func TestPartialFallbackFlagsStockUnavailable(t *testing.T) {
	variantA := uuid.New()
	variantB := uuid.New()
	// neither warehouse covers both variants in full
	first := warehouseAt("first", 0.05, 0, map[uuid.UUID]int{variantA: 10})
	second := warehouseAt("second", 0.2, 1, map[uuid.UUID]int{variantB: 10})

	selector, buf := newSelector(t, []models.Warehouse{first, second})

	plan, err := selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{variantA: 5, variantB: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.StockAvailable {
		t.Fatalf("expected stockAvailable=false")
	}
	if plan.WarehouseID != first.ID {
		t.Fatalf("expected nearest partial warehouse, got %s", plan.WarehouseName)
	}
	if !strings.Contains(buf.String(), "no single warehouse fully stocked") {
		t.Fatalf("expected partial-stock warning, log output: %s", buf.String())
	}
}

func TestExactDistanceTieUsesConfigurationOrder(t *testing.T) {
	variant := uuid.New()
	// identical coordinates, both fully stocked
	first := warehouseAt("first", 0.1, 0, map[uuid.UUID]int{variant: 10})
	second := warehouseAt("second", 0.1, 1, map[uuid.UUID]int{variant: 10})

	selector, _ := newSelector(t, []models.Warehouse{first, second})

	plan, err := selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{variant: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.WarehouseID != first.ID {
		t.Fatalf("expected configuration-order tie-break, got %s", plan.WarehouseName)
	}
}

func TestSelectDispatchValidation(t *testing.T) {
	selector, _ := newSelector(t, []models.Warehouse{warehouseAt("wh", 0.1, 0, nil)})

	_, err := selector.SelectDispatch(context.Background(), destination, nil)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty requirements, got %v", err)
	}

	_, err = selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{uuid.New(): 0})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestNoActiveWarehousesIsConfigurationGap(t *testing.T) {
	selector, _ := newSelector(t, nil)

	_, err := selector.SelectDispatch(context.Background(), destination, map[uuid.UUID]int{uuid.New(): 1})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
