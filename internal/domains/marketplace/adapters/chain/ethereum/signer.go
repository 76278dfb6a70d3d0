package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

// SignerSource yields transaction options for the account that signs state-changing calls.
type SignerSource interface {
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
}

// ChainIDReader reports the chain id used for replay-protected signing.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// KeySigner signs with a locally held secp256k1 key.
type KeySigner struct {
	key   *ecdsa.PrivateKey
	chain ChainIDReader
}

// NewKeySigner parses a hex encoded private key, with or without a 0x prefix.
func NewKeySigner(hexKey string, chain ChainIDReader) (*KeySigner, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("%w: empty private key", ports.ErrSignerUnavailable)
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %w", ports.ErrSignerUnavailable, err)
	}
	return &KeySigner{key: key, chain: chain}, nil
}

// Address returns the signer's account address.
func (s *KeySigner) Address() string {
	return crypto.PubkeyToAddress(s.key.PublicKey).Hex()
}

// Transactor reads the chain id and builds fresh transact options.
func (s *KeySigner) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	chainID, err := s.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read chain id: %w", ports.ErrSignerUnavailable, err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrSignerUnavailable, err)
	}
	opts.Context = ctx
	return opts, nil
}

// NoSigner is used when no key is configured.
type NoSigner struct{}

func (NoSigner) Transactor(context.Context) (*bind.TransactOpts, error) {
	return nil, fmt.Errorf("%w: no private key configured", ports.ErrSignerUnavailable)
}

var (
	_ SignerSource = (*KeySigner)(nil)
	_ SignerSource = NoSigner{}
)
