package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakmart/storefront-backend/api/controllers"
	"github.com/oakmart/storefront-backend/api/middleware"
	cartsvc "github.com/oakmart/storefront-backend/internal/cart"
	checkoutsvc "github.com/oakmart/storefront-backend/internal/checkout"
	"github.com/oakmart/storefront-backend/internal/promotions"
	"github.com/oakmart/storefront-backend/internal/shipping"
	"github.com/oakmart/storefront-backend/pkg/config"
	"github.com/oakmart/storefront-backend/pkg/db"
	"github.com/oakmart/storefront-backend/pkg/logger"
	"github.com/oakmart/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	cartService cartsvc.Service,
	checkoutService *checkoutsvc.Service,
	promotionService *promotions.EligibilityService,
	shippingSelector *shipping.Selector,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CustomerContext(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Get("/quote", controllers.CartQuote(checkoutService, logg))
			r.Post("/merge", controllers.CartMerge(cartService, logg))
		})

		r.Get("/shipping/rate", controllers.ShippingRate(shippingSelector, logg))
		r.Post("/dispatch/plan", controllers.DispatchPlan(checkoutService, logg))
		r.Post("/promotions/validate", controllers.PromotionValidate(promotionService, logg))
	})

	return r
}
