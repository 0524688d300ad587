package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	cartsvc "github.com/oakmart/storefront-backend/internal/cart"
	checkoutsvc "github.com/oakmart/storefront-backend/internal/checkout"
	"github.com/oakmart/storefront-backend/internal/discount"
	"github.com/oakmart/storefront-backend/internal/promotions"
	"github.com/oakmart/storefront-backend/internal/shipping"
	"github.com/oakmart/storefront-backend/internal/warehouse"
	"github.com/oakmart/storefront-backend/pkg/config"
	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type stubCartService struct{}

func (s *stubCartService) MergeGuestCart(_ context.Context, customerID uuid.UUID, _ types.GuestCartSnapshot) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), CustomerID: customerID, Status: enums.CartStatusActive}, nil
}

func (s *stubCartService) ComputeSubtotal(_ context.Context, customerID uuid.UUID, _ enums.CustomerTier) (*cartsvc.SubtotalResult, error) {
	return &cartsvc.SubtotalResult{
		Cart:          &models.CartRecord{ID: uuid.New(), CustomerID: customerID},
		Lines:         []cartsvc.LineQuote{{VariantID: uuid.New(), Quantity: 2, UnitPriceCents: 1000, LineTotalCents: 2000}},
		SubtotalCents: 2000,
	}, nil
}

func (s *stubCartService) GetActiveCart(_ context.Context, customerID uuid.UUID) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), CustomerID: customerID, Status: enums.CartStatusActive}, nil
}

type passthroughDiscount struct{}

func (passthroughDiscount) Calculate(_ context.Context, subtotalCents int, _ enums.CustomerTier) (discount.Result, error) {
	return discount.Result{DiscountedTotalCents: subtotalCents}, nil
}

type flatShipping struct{}

func (flatShipping) SelectTier(context.Context, int) (*models.ShippingTier, error) {
	return &models.ShippingTier{RateCents: 499}, nil
}

type fixedDispatch struct{}

func (fixedDispatch) SelectDispatch(context.Context, types.GeographyPoint, map[uuid.UUID]int) (*warehouse.DispatchPlan, error) {
	return &warehouse.DispatchPlan{WarehouseID: uuid.New(), WarehouseName: "main", StockAvailable: true}, nil
}

type singleTierLister struct{}

func (singleTierLister) ListActive(context.Context) ([]models.ShippingTier, error) {
	return []models.ShippingTier{{MinSubtotalCents: 0, RateCents: 499, IsActive: true}}, nil
}

type noPromoFinder struct{}

func (noPromoFinder) FindByCode(context.Context, string) (*models.Promotion, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	carts := &stubCartService{}
	checkoutService, err := checkoutsvc.NewService(carts, passthroughDiscount{}, flatShipping{}, fixedDispatch{}, logg)
	if err != nil {
		t.Fatalf("new checkout service: %v", err)
	}
	promotionService, err := promotions.NewEligibilityService(noPromoFinder{})
	if err != nil {
		t.Fatalf("new eligibility service: %v", err)
	}
	shippingSelector, err := shipping.NewSelector(singleTierLister{}, logg)
	if err != nil {
		t.Fatalf("new shipping selector: %v", err)
	}

	return NewRouter(cfg, logg, nil, nil, carts, checkoutService, promotionService, shippingSelector)
}

func TestHealthLiveStampsRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestHealthReadySkipsNilPingers(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestQuoteRouteWiresCheckout(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/quote", nil)
	req.Header.Set("X-Customer-Id", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			SubtotalCents int `json:"subtotalCents"`
			TotalCents    int `json:"totalCents"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.SubtotalCents != 2000 || envelope.Data.TotalCents != 2499 {
		t.Fatalf("unexpected quote: %+v", envelope.Data)
	}
}

func TestShippingRateRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shipping/rate?subtotalCents=2000", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
