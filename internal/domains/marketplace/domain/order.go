package domain

import (
	"errors"
	"math/big"
	"strings"
)

// Gas limit hints attached to state-changing marketplace calls.
const (
	PurchaseGasLimit     uint64 = 500_000
	NameTransferGasLimit uint64 = 300_000
)

// OrderRequest is a single purchase intent. Prepaid orders pay with the marketplace token
// through an allowance; neither rail attaches native currency.
type OrderRequest struct {
	ProductID uint64
	Prepaid   bool
}

// OrderResult is returned to the caller once the purchase transaction is final.
type OrderResult struct {
	Success         bool
	TransactionHash string
	ProductID       uint64
	Amount          *big.Int
}

// Receipt is the confirmation of a mined transaction.
type Receipt struct {
	TransactionHash string
	BlockNumber     uint64
	GasUsed         uint64
	Succeeded       bool
}

// NameTransferRequest moves an NFT name token to another account.
type NameTransferRequest struct {
	To      string
	TokenID *big.Int
}

var (
	ErrMissingRecipient = errors.New("transfer recipient is required")
	ErrInvalidTokenID   = errors.New("token id must be zero or greater")
)

// Validate checks the request before any remote call is made.
func (r NameTransferRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return ErrMissingRecipient
	}
	if r.TokenID == nil || r.TokenID.Sign() < 0 {
		return ErrInvalidTokenID
	}
	return nil
}

// NeedsApproval reports whether the current allowance is below the price.
func NeedsApproval(allowance, price *big.Int) bool {
	if price == nil || price.Sign() <= 0 {
		return false
	}
	if allowance == nil {
		return true
	}
	return allowance.Cmp(price) < 0
}
