package middleware

import (
	"context"
	"net/http"

	"github.com/oakmart/storefront-backend/pkg/enums"
	"github.com/oakmart/storefront-backend/pkg/logger"
)

const (
	customerIDHeader   = "X-Customer-Id"
	customerTierHeader = "X-Customer-Tier"
)

type contextKey string

const (
	customerIDKey   contextKey = "customer_id"
	customerTierKey contextKey = "customer_tier"
)

// CustomerContext lifts the identity headers stamped by the edge gateway
// into the request context. An absent or unknown tier resolves to none,
// which downstream pricing treats as an undefined pricing tier.
func CustomerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if customerID := r.Header.Get(customerIDHeader); customerID != "" {
				ctx = context.WithValue(ctx, customerIDKey, customerID)
				if logg != nil {
					ctx = logg.WithCustomerID(ctx, customerID)
				}
			}

			tier := enums.TierNone
			if raw := r.Header.Get(customerTierHeader); raw != "" {
				if parsed, err := enums.ParseCustomerTier(raw); err == nil {
					tier = parsed
				}
			}
			ctx = context.WithValue(ctx, customerTierKey, tier)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerIDFromContext returns the raw customer id header value, or "".
func CustomerIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(customerIDKey).(string); ok {
		return v
	}
	return ""
}

// TierFromContext returns the caller's raw tier; none when absent.
func TierFromContext(ctx context.Context) enums.CustomerTier {
	if v, ok := ctx.Value(customerTierKey).(enums.CustomerTier); ok {
		return v
	}
	return enums.TierNone
}
