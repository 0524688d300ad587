package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/oakmart/storefront-backend/internal/checkout"
	"github.com/oakmart/storefront-backend/internal/warehouse"
	"github.com/oakmart/storefront-backend/pkg/enums"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type stubDispatchService struct {
	dispatch    *checkoutsvc.Dispatch
	destination types.GeographyPoint
	err         error
}

func (s *stubDispatchService) PlanDispatch(_ context.Context, _ uuid.UUID, _ enums.CustomerTier, destination types.GeographyPoint) (*checkoutsvc.Dispatch, error) {
	s.destination = destination
	return s.dispatch, s.err
}

func TestDispatchPlanReturnsWarehouse(t *testing.T) {
	warehouseID := uuid.New()
	svc := &stubDispatchService{dispatch: &checkoutsvc.Dispatch{
		Plan: &warehouse.DispatchPlan{WarehouseID: warehouseID, WarehouseName: "berlin-east", DistanceKm: 4.2, StockAvailable: true},
	}}

	req := httptest.NewRequest(http.MethodPost, "/dispatch/plan", strings.NewReader(`{"lat":52.52,"lng":13.405}`))
	req.Header.Set("X-Customer-Id", uuid.NewString())
	rec := httptest.NewRecorder()

	withCustomer(DispatchPlan(svc, testLogger())).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.destination.Lat != 52.52 || svc.destination.Lng != 13.405 {
		t.Fatalf("unexpected destination: %+v", svc.destination)
	}

	var envelope struct {
		Data dispatchResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.WarehouseID != warehouseID || !envelope.Data.StockAvailable {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestDispatchPlanRejectsBadCoordinates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/dispatch/plan", strings.NewReader(`{"lat":123.0,"lng":13.405}`))
	req.Header.Set("X-Customer-Id", uuid.NewString())
	rec := httptest.NewRecorder()

	withCustomer(DispatchPlan(&stubDispatchService{}, testLogger())).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
