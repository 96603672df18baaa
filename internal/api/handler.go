package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/cache"
	"github.com/Lucia2467/mibot/internal/flow"
	"github.com/Lucia2467/mibot/internal/notify"
	"github.com/Lucia2467/mibot/internal/wallet"
)

// Snapshots are the poller-maintained projections served read-only.
type Snapshots struct {
	Boost *cache.Snapshot[backend.BoostStatus]
	Pts   *cache.Snapshot[backend.PtsStatus]
	DB    *cache.Snapshot[backend.DBStatus]
}

// Trigger starts one named ad-reward flow.
type Trigger func(r *http.Request) flow.Report

type Handler struct {
	Snaps    Snapshots
	Notes    *notify.Center
	Triggers map[string]Trigger
	Wallet   *wallet.Service
	Ranking  func(ctx context.Context) (backend.PtsRanking, error)
}

func NewHandler(snaps Snapshots, notes *notify.Center, triggers map[string]Trigger, w *wallet.Service) *Handler {
	return &Handler{Snaps: snaps, Notes: notes, Triggers: triggers, Wallet: w}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusResponse struct {
	Boost *backend.BoostStatus `json:"boost,omitempty"`
	Pts   *backend.PtsStatus   `json:"pts,omitempty"`
	DB    *backend.DBStatus    `json:"db,omitempty"`
}

// Status serves the latest polled projections. Absent sections simply have
// not been polled yet.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	var resp statusResponse
	if v, ok := h.Snaps.Boost.Load(); ok {
		resp.Boost = &v
	}
	if v, ok := h.Snaps.Pts.Load(); ok {
		resp.Pts = &v
	}
	if v, ok := h.Snaps.DB.Load(); ok {
		resp.DB = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	writeJSON(w, http.StatusOK, h.Notes.Recent(n))
}

// RunFlow triggers a named flow synchronously and reports its result. A
// busy drop maps to 409.
func (h *Handler) RunFlow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	trigger, ok := h.Triggers[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown flow"})
		return
	}
	report := trigger(r)
	code := http.StatusOK
	if report.Status == flow.StatusBusy {
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]string{
		"status":  string(report.Status),
		"message": report.Message,
	})
}

// PtsRanking proxies the weekly competition board.
func (h *Handler) PtsRanking(w http.ResponseWriter, r *http.Request) {
	if h.Ranking == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ranking unavailable"})
		return
	}
	ranking, err := h.Ranking(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if _, ok := backend.AsAPIError(err); ok {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (h *Handler) WalletOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Wallet.Overview(r.Context())
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// walletError maps the error taxonomy to response codes: transport
// failures are the backend's fault (502), everything else is a rejected
// request (400).
func walletError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if backend.IsConnection(err) {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) WalletLinkTon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.Wallet.LinkTon(r.Context(), req.Address)
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) WalletWithdrawTon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string          `json:"address"`
		Amount  decimal.Decimal `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.Wallet.WithdrawTon(r.Context(), req.Amount, req.Address)
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) WalletLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address    string `json:"address"`
		WalletType string `json:"wallet_type"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.Wallet.LinkWallet(r.Context(), req.Address, req.WalletType)
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) WalletRequestWithdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.Wallet.RequestWithdraw(r.Context(), req.Currency, req.Amount)
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) WalletPaymentStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.Wallet.PaymentStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		walletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) WalletReceipt(w http.ResponseWriter, r *http.Request) {
	html, err := h.Wallet.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		walletError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
