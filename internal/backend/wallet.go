package backend

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// TON wallet surface

func (c *Client) TonValidateAddress(ctx context.Context, address string) (TonAddressValidation, error) {
	var out TonAddressValidation
	err := c.post(ctx, "/api/ton/validate-address", nil,
		map[string]string{"address": address}, &out)
	return out, err
}

func (c *Client) TonLinkWallet(ctx context.Context, address string) (TonLinkResult, error) {
	var out TonLinkResult
	err := c.post(ctx, "/api/ton/link-wallet", nil,
		map[string]string{"user_id": c.userID, "address": address}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

type tonWithdrawReq struct {
	UserID  string          `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	Address string          `json:"address"`
}

func (c *Client) TonWithdraw(ctx context.Context, amount decimal.Decimal, address string) (TonWithdrawal, error) {
	var out TonWithdrawal
	err := c.post(ctx, "/api/ton/withdraw", nil,
		tonWithdrawReq{UserID: c.userID, Amount: amount, Address: address}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

func (c *Client) TonPaymentStatus(ctx context.Context, paymentID string) (TonPaymentStatus, error) {
	var out TonPaymentStatus
	err := c.get(ctx, "/api/ton/status/"+paymentID, nil, &out)
	return out, err
}

func (c *Client) TonHistory(ctx context.Context) (TonHistory, error) {
	var out TonHistory
	err := c.get(ctx, "/api/ton/history/"+c.userID, nil, &out)
	return out, err
}

// Generic wallet surface

func (c *Client) WalletBalance(ctx context.Context) (WalletBalance, error) {
	var out WalletBalance
	err := c.get(ctx, "/api/wallet/balance/"+c.userID, nil, &out)
	return out, err
}

func (c *Client) WalletLink(ctx context.Context, address, walletType string) (WalletLinkResult, error) {
	var out WalletLinkResult
	err := c.post(ctx, "/api/wallet/link_wallet", nil,
		map[string]string{"user_id": c.userID, "address": address, "wallet_type": walletType}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

type walletWithdrawReq struct {
	UserID   string          `json:"user_id"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

func (c *Client) WalletRequestWithdraw(ctx context.Context, currency string, amount decimal.Decimal) (WithdrawRequestResult, error) {
	var out WithdrawRequestResult
	err := c.post(ctx, "/api/wallet/request_withdraw", nil,
		walletWithdrawReq{UserID: c.userID, Currency: currency, Amount: amount}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, rejection(out.Error, "", 0)
	}
	return out, nil
}

func (c *Client) WalletHistory(ctx context.Context) (WalletHistory, error) {
	var out WalletHistory
	err := c.get(ctx, "/api/wallet/history/"+c.userID, nil, &out)
	return out, err
}

func (c *Client) WalletStats(ctx context.Context) (WalletStats, error) {
	var out WalletStats
	err := c.get(ctx, "/api/wallet/stats/"+c.userID, nil, &out)
	return out, err
}

func (c *Client) WalletInfo(ctx context.Context) (WalletInfo, error) {
	var out WalletInfo
	err := c.get(ctx, "/api/wallet/info", nil, &out)
	return out, err
}

// WalletReceipt fetches a rendered receipt. format is "html" or empty for
// the backend default.
func (c *Client) WalletReceipt(ctx context.Context, receiptID, format string) (string, error) {
	query := map[string]string{}
	if format != "" {
		query["format"] = format
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: GET /api/wallet/receipt: %v", ErrConnection, err)
	}
	resp, err := c.http.R().SetContext(ctx).SetQueryParams(query).Get("/api/wallet/receipt/" + receiptID)
	if err != nil {
		return "", fmt.Errorf("%w: GET /api/wallet/receipt: %v", ErrConnection, err)
	}
	if resp.IsError() {
		return "", &APIError{Status: resp.StatusCode(), Message: "receipt unavailable"}
	}
	return string(resp.Body()), nil
}
