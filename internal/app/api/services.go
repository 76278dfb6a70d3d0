package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Apurer/brtx-marketplace/internal/clients/http/opensea"
	marketobs "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/observability"
	marketapp "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/application"
	marketports "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
	"github.com/Apurer/brtx-marketplace/internal/platform/chain"
	platformobservability "github.com/Apurer/brtx-marketplace/internal/platform/observability"
)

// NewMarketplaceService connects to the configured node and returns the decorated marketplace
// service plus a cleanup closing the connection.
func NewMarketplaceService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (marketports.Service, func(), error) {
	if !cfg.ChainEnabled() {
		return nil, func() {}, fmt.Errorf("CHAIN_RPC_URL not set")
	}
	logger := instruments.Logger
	resolver, cleanup, err := chain.NewResolver(ctx, cfg.Chain, logger)
	if err != nil {
		return nil, func() {}, err
	}
	core := marketapp.NewService(resolver, marketapp.WithLogger(logger))
	service := marketobs.New(
		core,
		marketobs.WithLogger(logger),
		marketobs.WithTracer(instruments.Tracer("internal.marketplace.application")),
		marketobs.WithMeter(instruments.Meter("internal.marketplace.application")),
	)
	return service, cleanup, nil
}

// NewOpenSeaClient builds the listing service client from configuration.
func NewOpenSeaClient(cfg Config, logger *slog.Logger) (*opensea.Client, error) {
	client, err := opensea.NewClient(
		cfg.OpenSeaBaseURL,
		opensea.WithChain(cfg.OpenSeaChain),
		opensea.WithAPIKey(cfg.OpenSeaAPIKey),
	)
	if err != nil {
		return nil, err
	}
	if cfg.OpenSeaAPIKey == "" {
		logger.Warn("OPENSEA_API_KEY not set, listing requests are unauthenticated")
	}
	return client, nil
}
