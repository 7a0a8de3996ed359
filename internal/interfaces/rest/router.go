package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billingbridge/getnet-gateway/internal/interfaces/rest/middleware"
)

// NewRouter wires the handlers into the route tree exposed to the host
// platform.
func NewRouter(handlers *Handlers, logger *slog.Logger, requestTimeout time.Duration) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Timeout(requestTimeout))

	router.Route("/payments/{kbPaymentId}", func(r chi.Router) {
		r.Get("/", handlers.GetPaymentInfo)
		r.Post("/authorize", handlers.AuthorizePayment)
		r.Post("/purchase", handlers.PurchasePayment)
		r.Post("/capture", handlers.CapturePayment)
		r.Post("/void", handlers.VoidPayment)
		r.Post("/refund", handlers.RefundPayment)
	})

	router.Route("/payment-methods", func(r chi.Router) {
		r.Post("/", handlers.AddPaymentMethod)
		r.Get("/{kbPaymentMethodId}", handlers.GetPaymentMethodDetail)
		r.Delete("/{kbPaymentMethodId}", handlers.DeletePaymentMethod)
	})

	router.Route("/accounts/{kbAccountId}", func(r chi.Router) {
		r.Get("/payment-methods", handlers.ListPaymentMethods)
		r.Put("/payment-methods/{kbPaymentMethodId}/default", handlers.SetDefaultPaymentMethod)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}
