package api

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/brtx-marketplace/internal/clients/http/opensea"
	marketdomain "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/platform/chain"
	platformtemporal "github.com/Apurer/brtx-marketplace/internal/platform/temporal"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	Chain             chain.Config
	TokenDecimals     int32
	OpenSeaBaseURL    string
	OpenSeaChain      string
	OpenSeaAPIKey     string
	StoreWallet       string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		Chain: chain.Config{
			RPCURL:        strings.TrimSpace(os.Getenv("CHAIN_RPC_URL")),
			PrivateKey:    strings.TrimSpace(os.Getenv("CHAIN_PRIVATE_KEY")),
			ContractsFile: envDefault("CONTRACTS_FILE", "contracts.yaml"),
		},
		TokenDecimals:  marketdomain.DefaultTokenDecimals,
		OpenSeaBaseURL: envDefault("OPENSEA_BASE_URL", opensea.DefaultBaseURL),
		OpenSeaChain:   envDefault("OPENSEA_CHAIN", opensea.DefaultChain),
		OpenSeaAPIKey:  strings.TrimSpace(os.Getenv("OPENSEA_API_KEY")),
		StoreWallet:    strings.TrimSpace(os.Getenv("STORE_WALLET")),
	}
	if raw := strings.TrimSpace(os.Getenv("TOKEN_DECIMALS")); raw != "" {
		decimals, err := strconv.Atoi(raw)
		if err != nil || decimals < 0 || decimals > 77 {
			return Config{}, fmt.Errorf("TOKEN_DECIMALS must be an integer between 0 and 77")
		}
		cfg.TokenDecimals = int32(decimals)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric")
	}
	if u, err := url.Parse(cfg.OpenSeaBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("OPENSEA_BASE_URL must be an absolute URL")
	}
	return cfg, nil
}

// ChainEnabled reports whether a node is configured for the marketplace.
func (c Config) ChainEnabled() bool {
	return c.Chain.RPCURL != ""
}

// Temporal returns the cluster settings shared by the API and the worker.
func (c Config) Temporal() platformtemporal.Config {
	return platformtemporal.Config{
		Address:   c.TemporalAddress,
		Namespace: c.TemporalNamespace,
		Disabled:  c.TemporalDisabled,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
