package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	Payments PaymentService
	Orders   OrderService
	Logger   *slog.Logger

	AdminJWTSecret string
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy     bool
	RateLimit      float64
	RateBurst      int
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) (http.Handler, error) {
	if cfg.Payments == nil {
		return nil, errors.New("payments is nil")
	}
	if cfg.Orders == nil {
		return nil, errors.New("orders is nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is nil")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	limiter, err := NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	if err != nil {
		return nil, err
	}

	paymentHandler := NewPaymentHandler(cfg.Payments, cfg.Logger, cfg.RequestTimeout)
	adminHandler := NewAdminHandler(cfg.Orders, cfg.Logger, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/payment/verify", paymentHandler.VerifyPayment)

		// signed by the provider, which delivers in bursts from a few addresses
		r.Post("/webhooks/razorpay", paymentHandler.RazorpayWebhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuth(cfg.AdminJWTSecret))

			r.Get("/orders", adminHandler.ListOrders)
			r.Get("/orders/{order_id}", adminHandler.GetOrder)
			r.Patch("/orders/{order_id}/status", adminHandler.UpdateStatus)
		})
	})

	return otelhttp.NewHandler(r, "shoppay",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		})), nil
}
