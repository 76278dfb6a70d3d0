package ports

import (
	"context"
	"errors"
	"math/big"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
)

var (
	// ErrInvalidAddress is returned when a contract or account address is not a well-formed hex address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidDescriptor marks a contract descriptor from configuration that cannot be bound.
	// It accompanies ErrInvalidAddress when the configured address is malformed.
	ErrInvalidDescriptor = errors.New("invalid contract descriptor")
	// ErrSignerUnavailable is returned when no signing capability can be obtained.
	ErrSignerUnavailable = errors.New("signer unavailable")
	// ErrProductNotFound is returned when the marketplace holds no priced record for an id.
	ErrProductNotFound = errors.New("product not found")
	// ErrRemoteUnavailable wraps transport failures talking to the chain node.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrMalformedRecord is returned when a store record does not unpack into the expected shape.
	ErrMalformedRecord = errors.New("malformed product record")
)

// Resolver produces contract handles bound to the current signer. Every call resolves afresh.
type Resolver interface {
	Resolve(ctx context.Context) (*Bindings, error)
	// ResolveReadOnly binds the contracts without a signer; state-changing calls on the
	// returned handles fail with ErrSignerUnavailable.
	ResolveReadOnly(ctx context.Context) (*Bindings, error)
}

// Bindings groups the handles produced by a single resolution.
type Bindings struct {
	// Account is the signer's address.
	Account     string
	Marketplace Marketplace
	Token       Token
	NFT         NameRegistry
}

// PendingTransaction is a submitted state-changing call awaiting finality.
type PendingTransaction interface {
	Hash() string
	// Wait blocks until the ledger reports the transaction mined.
	Wait(ctx context.Context) (*domain.Receipt, error)
}

// Marketplace is the product store contract.
type Marketplace interface {
	Address() string
	ProductCount(ctx context.Context) (uint64, error)
	Product(ctx context.Context, id uint64) (*domain.ProductRecord, error)
	BuyProduct(ctx context.Context, id uint64, prepaid bool) (PendingTransaction, error)
}

// Token is the fungible payment token.
type Token interface {
	Allowance(ctx context.Context, owner, spender string) (*big.Int, error)
	Approve(ctx context.Context, spender string, amount *big.Int) (PendingTransaction, error)
}

// NameRegistry is the NFT contract exposing name transfers.
type NameRegistry interface {
	NameTransfer(ctx context.Context, to string, tokenID *big.Int) (PendingTransaction, error)
}
