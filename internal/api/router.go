package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Lucia2467/mibot/internal/observability"
)

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Read-only routes answer from memory or a single backend call; a
	// deadline is safe here.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(2 * time.Minute))

		r.Get("/status", h.Status)
		r.Get("/notifications", h.Notifications)
		r.Get("/ranking", h.PtsRanking)
		r.Get("/wallet", h.WalletOverview)
		r.Get("/wallet/payments/{id}", h.WalletPaymentStatus)
		r.Get("/wallet/receipt/{id}", h.WalletReceipt)
		r.Post("/wallet/link-ton", h.WalletLinkTon)
		r.Post("/wallet/withdraw-ton", h.WalletWithdrawTon)
		r.Post("/wallet/link", h.WalletLink)
		r.Post("/wallet/withdraw", h.WalletRequestWithdraw)
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Handle("/metrics", observability.MetricsHandler())
	})

	// Flow triggers block for the whole presentation: a ShrinkEarn mission
	// can legitimately take minutes to verify. Only the server's write
	// timeout bounds these.
	r.Post("/flows/{name}", h.RunFlow)

	return r
}
