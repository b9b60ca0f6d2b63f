package bot

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/admin/grant"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/admin/revoke"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/admin/subscription"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/health"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/payment/paymentstatus"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/payment/robokassaresult"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/handlers/payment/yookassawebhook"
	"github.com/magabrotheeeer/paid-channel-bot/internal/http/middlewarectx"
	"github.com/magabrotheeeer/paid-channel-bot/internal/lib/jwt"
	"github.com/magabrotheeeer/paid-channel-bot/internal/paymentprovider/robokassa"
	"github.com/magabrotheeeer/paid-channel-bot/internal/services/lifecycle"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, lifecycleService *lifecycle.Service,
	jwtMaker jwt.Maker, roboVerifier *robokassa.Client, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки оплаты
		r.Post("/payments", paymentcreate.New(logger, lifecycleService).ServeHTTP)
		r.Get("/payments/{paymentID}", paymentstatus.New(logger, lifecycleService).ServeHTTP)

		// Webhook endpoints (без аутентификации, защищены подписями)
		r.Post("/webhook/yookassa", yookassawebhook.New(logger, lifecycleService, webhookSecret).ServeHTTP)
		r.Post("/webhook/robokassa", robokassaresult.New(logger, lifecycleService, roboVerifier).ServeHTTP)

		// Админский API под JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/admin/subscriptions/{userID}", subscription.New(logger, lifecycleService).ServeHTTP)
			r.Post("/admin/grant", grant.New(logger, lifecycleService).ServeHTTP)
			r.Post("/admin/revoke", revoke.New(logger, lifecycleService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
