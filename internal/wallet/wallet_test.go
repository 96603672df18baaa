package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucia2467/mibot/internal/backend"
)

type fakeBackend struct {
	mu        sync.Mutex
	hits      map[string]int
	responses map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{hits: map[string]int{}, responses: map[string]any{}}
}

func (f *fakeBackend) respond(path string, v any) { f.responses[path] = v }

func (f *fakeBackend) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()
	v, ok := f.responses[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if s, isRaw := v.(string); isRaw {
		_, _ = w.Write([]byte(s))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestService(t *testing.T, be *fakeBackend) *Service {
	t.Helper()
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)
	client := backend.New(backend.Options{
		BaseURL:        srv.URL,
		UserID:         "123456789",
		RequestsPerSec: 1000,
		Burst:          1000,
	})
	return NewService(client)
}

const tonFoundation = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"

func TestOverview_AggregatesAllPanels(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/wallet/balance/123456789", map[string]any{
		"success": true, "balance": "12.5", "currency": "DOGE",
	})
	be.respond("/api/wallet/stats/123456789", map[string]any{
		"success": true, "withdraw_count": 3,
	})
	be.respond("/api/wallet/info", map[string]any{
		"success": true, "currencies": []string{"DOGE", "TON"},
	})
	be.respond("/api/wallet/history/123456789", map[string]any{
		"success": true, "withdrawals": []any{},
	})
	be.respond("/api/ton/history/123456789", map[string]any{
		"success": true, "payments": []any{},
	})

	o, err := newTestService(t, be).Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, o.Balance.Balance.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "DOGE", o.Balance.Currency)
	assert.Equal(t, 3, o.Stats.WithdrawCount)
	assert.Equal(t, []string{"DOGE", "TON"}, o.Info.Currencies)
}

func TestOverview_FirstFailureWins(t *testing.T) {
	be := newFakeBackend()
	// balance missing -> 404 -> APIError; later panels never fetched.
	_, err := newTestService(t, be).Overview(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance")
	assert.Zero(t, be.count("/api/wallet/stats/123456789"))
}

func TestLinkTon_ValidatesThenLinks(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/ton/validate-address", map[string]any{
		"valid": true, "type": "bounceable",
	})
	be.respond("/api/ton/link-wallet", map[string]any{
		"success": true, "message": "Wallet linked",
	})

	res, err := newTestService(t, be).LinkTon(context.Background(), tonFoundation)
	require.NoError(t, err)
	assert.Equal(t, "Wallet linked", res.Message)
	assert.Equal(t, 1, be.count("/api/ton/validate-address"))
	assert.Equal(t, 1, be.count("/api/ton/link-wallet"))
}

func TestLinkTon_MalformedAddressNeverReachesBackend(t *testing.T) {
	be := newFakeBackend()

	_, err := newTestService(t, be).LinkTon(context.Background(), "not-a-ton-address")
	require.Error(t, err)
	assert.Zero(t, be.count("/api/ton/validate-address"))
	assert.Zero(t, be.count("/api/ton/link-wallet"))
}

func TestLinkTon_BackendRejectionStopsLink(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/ton/validate-address", map[string]any{
		"valid": false, "error": "address is on a denylist",
	})

	_, err := newTestService(t, be).LinkTon(context.Background(), tonFoundation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denylist")
	assert.Zero(t, be.count("/api/ton/link-wallet"))
}

func TestWithdrawTon_ValidatesAddressFirst(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/ton/withdraw", map[string]any{
		"success": true, "payment_id": "pay-1", "amount": "2.5", "status": "pending",
	})

	res, err := newTestService(t, be).WithdrawTon(
		context.Background(), decimal.RequireFromString("2.5"), tonFoundation)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", res.PaymentID)

	_, err = newTestService(t, be).WithdrawTon(
		context.Background(), decimal.RequireFromString("2.5"), "garbage")
	require.Error(t, err)
}

func TestRequestWithdraw_RejectionBecomesAPIError(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/wallet/request_withdraw", map[string]any{
		"success": false, "error": "Below minimum withdrawal",
	})

	_, err := newTestService(t, be).RequestWithdraw(
		context.Background(), "DOGE", decimal.RequireFromString("0.01"))
	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Below minimum withdrawal", apiErr.Message)
}

func TestPaymentStatus(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/ton/status/pay-1", map[string]any{
		"success": true, "payment_id": "pay-1", "status": "completed", "tx_hash": "abc",
	})

	res, err := newTestService(t, be).PaymentStatus(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	assert.Equal(t, "abc", res.TxHash)
}

func TestReceipt_ReturnsRenderedBody(t *testing.T) {
	be := newFakeBackend()
	be.respond("/api/wallet/receipt/w-9", "<html><body>receipt w-9</body></html>")

	html, err := newTestService(t, be).Receipt(context.Background(), "w-9")
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "receipt w-9"))
}
