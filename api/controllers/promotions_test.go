package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oakmart/storefront-backend/pkg/db/models"
	"github.com/oakmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakmart/storefront-backend/pkg/errors"
	"github.com/oakmart/storefront-backend/pkg/types"
)

type stubPromotionValidator struct {
	promo *models.Promotion
	err   error
}

func (s *stubPromotionValidator) ValidateCode(context.Context, string, int) (*models.Promotion, error) {
	return s.promo, s.err
}

func TestPromotionValidateReturnsPromotion(t *testing.T) {
	svc := &stubPromotionValidator{promo: &models.Promotion{
		Code:     "SUMMER10",
		Type:     enums.PromotionTypePercentage,
		Value:    10,
		StartsAt: time.Now().Add(-time.Hour),
	}}

	req := httptest.NewRequest(http.MethodPost, "/promotions/validate", strings.NewReader(`{"code":"SUMMER10","orderTotalCents":5000}`))
	rec := httptest.NewRecorder()

	PromotionValidate(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data promotionResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Code != "SUMMER10" || envelope.Data.Value != 10 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestPromotionValidateMapsStateConflict(t *testing.T) {
	svc := &stubPromotionValidator{err: pkgerrors.New(pkgerrors.CodeStateConflict, "promotion is not currently active")}

	req := httptest.NewRequest(http.MethodPost, "/promotions/validate", strings.NewReader(`{"code":"EXPIRED","orderTotalCents":5000}`))
	rec := httptest.NewRecorder()

	PromotionValidate(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Message != "promotion is not currently active" {
		t.Fatalf("expected message passthrough, got %q", envelope.Error.Message)
	}
}

func TestPromotionValidateRequiresCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/promotions/validate", strings.NewReader(`{"orderTotalCents":5000}`))
	rec := httptest.NewRecorder()

	PromotionValidate(&stubPromotionValidator{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
