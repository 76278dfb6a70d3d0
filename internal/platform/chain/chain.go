package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/chain/ethereum"
)

// Config names the node, signer key and contract descriptors.
type Config struct {
	RPCURL        string
	PrivateKey    string
	ContractsFile string
}

// Connect dials the node and checks it answers a chain id request.
func Connect(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	if strings.TrimSpace(rpcURL) == "" {
		return nil, errors.New("chain RPC URL is empty")
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.ChainID(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("query chain id: %w", err)
	}
	return client, nil
}

// NewResolver connects to the node and builds the contract resolver. Without a private key the
// resolver serves reads only. The returned cleanup closes the node connection.
func NewResolver(ctx context.Context, cfg Config, logger *slog.Logger) (*ethereum.Resolver, func(), error) {
	if strings.TrimSpace(cfg.ContractsFile) == "" {
		return nil, func() {}, errors.New("CONTRACTS_FILE is required")
	}
	descriptors, err := ethereum.LoadDescriptors(cfg.ContractsFile)
	if err != nil {
		return nil, func() {}, err
	}
	client, err := Connect(ctx, cfg.RPCURL)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { client.Close() }

	var signer ethereum.SignerSource = ethereum.NoSigner{}
	if strings.TrimSpace(cfg.PrivateKey) != "" {
		keySigner, err := ethereum.NewKeySigner(cfg.PrivateKey, client)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		signer = keySigner
		logger.Info("chain signer configured", slog.String("account", keySigner.Address()))
	} else {
		logger.Warn("CHAIN_PRIVATE_KEY not set, marketplace is read-only")
	}

	resolver, err := ethereum.NewResolver(client, descriptors, signer)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	logger.Info("chain contracts loaded",
		slog.String("marketplace", descriptors.Marketplace.Address),
		slog.String("token", descriptors.Token.Address),
		slog.String("nft", descriptors.NFT.Address),
	)
	return resolver, cleanup, nil
}
