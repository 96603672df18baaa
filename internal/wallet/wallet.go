// Package wallet drives the withdrawal surface: balances, linking and
// withdrawal requests for the generic wallet and the TON rail.
package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/tonaddr"
)

type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

// Overview aggregates everything the wallet panel shows in one fetch pass.
type Overview struct {
	Balance    backend.WalletBalance `json:"balance"`
	Stats      backend.WalletStats   `json:"stats"`
	Info       backend.WalletInfo    `json:"info"`
	History    backend.WalletHistory `json:"history"`
	TonHistory backend.TonHistory    `json:"ton_history"`
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		o   Overview
		err error
	)
	if o.Balance, err = s.client.WalletBalance(ctx); err != nil {
		return o, fmt.Errorf("balance: %w", err)
	}
	if o.Stats, err = s.client.WalletStats(ctx); err != nil {
		return o, fmt.Errorf("stats: %w", err)
	}
	if o.Info, err = s.client.WalletInfo(ctx); err != nil {
		return o, fmt.Errorf("info: %w", err)
	}
	if o.History, err = s.client.WalletHistory(ctx); err != nil {
		return o, fmt.Errorf("history: %w", err)
	}
	if o.TonHistory, err = s.client.TonHistory(ctx); err != nil {
		return o, fmt.Errorf("ton history: %w", err)
	}
	return o, nil
}

// LinkTon validates the address locally, then with the backend, then links
// it to the account.
func (s *Service) LinkTon(ctx context.Context, address string) (backend.TonLinkResult, error) {
	if _, err := tonaddr.Validate(address); err != nil {
		return backend.TonLinkResult{}, err
	}
	check, err := s.client.TonValidateAddress(ctx, address)
	if err != nil {
		return backend.TonLinkResult{}, err
	}
	if !check.Valid {
		return backend.TonLinkResult{}, fmt.Errorf("backend rejected address: %s", check.Error)
	}
	return s.client.TonLinkWallet(ctx, address)
}

// WithdrawTon requests a TON payout after local address validation.
func (s *Service) WithdrawTon(ctx context.Context, amount decimal.Decimal, address string) (backend.TonWithdrawal, error) {
	if _, err := tonaddr.Validate(address); err != nil {
		return backend.TonWithdrawal{}, err
	}
	return s.client.TonWithdraw(ctx, amount, address)
}

// LinkWallet links a generic (non-TON) wallet address.
func (s *Service) LinkWallet(ctx context.Context, address, walletType string) (backend.WalletLinkResult, error) {
	return s.client.WalletLink(ctx, address, walletType)
}

// RequestWithdraw files a generic withdrawal request.
func (s *Service) RequestWithdraw(ctx context.Context, currency string, amount decimal.Decimal) (backend.WithdrawRequestResult, error) {
	return s.client.WalletRequestWithdraw(ctx, currency, amount)
}

// PaymentStatus looks up one TON payment.
func (s *Service) PaymentStatus(ctx context.Context, paymentID string) (backend.TonPaymentStatus, error) {
	return s.client.TonPaymentStatus(ctx, paymentID)
}

// Receipt fetches the rendered receipt for a completed withdrawal.
func (s *Service) Receipt(ctx context.Context, receiptID string) (string, error) {
	return s.client.WalletReceipt(ctx, receiptID, "html")
}
