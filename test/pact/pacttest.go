//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	// ProviderName is this service as seen by the storefront.
	ProviderName = "brtx-marketplace-api"
	// ConsumerName is the storefront calling the slug directory.
	ConsumerName = "brtx-storefront"
	// ListingProviderName is the external collection listing service this service consumes.
	ListingProviderName = "opensea-listings"

	StateWalletWithSlugs  = "wallet 0xpact follows pact-cats"
	StateWalletMissing    = "no wallet 0xghost"
	StateDirectoryEmpty   = "slug directory empty"
	StateCollectionListed = "collection pact-cats has listings"
	StateAccountHoldsNFTs = "account holds one NFT"
)

const (
	ExistingWallet = "0xpact"
	MissingWallet  = "0xghost"
	ExistingSlug   = "pact-cats"
	NewSlug        = "pact-dogs"

	ListingAPIKey  = "pact-key"
	AccountAddress = "0x00000000000000000000000000000000000000d4"
	ContractAddr   = "0x00000000000000000000000000000000000000c3"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleListingPayload is a trimmed collection listing as the listing service returns it.
func ExampleListingPayload() map[string]any {
	return map[string]any{
		"listings": []map[string]any{{
			"order_hash": "0x5e1f",
			"chain":      "sepolia",
			"price": map[string]any{
				"current": map[string]any{"currency": "ETH", "decimals": 18, "value": "10000000000000000"},
			},
		}},
		"next": "",
	}
}

// ExampleNFTPayload is one account holding without price data.
func ExampleNFTPayload() map[string]any {
	return map[string]any{
		"identifier":     "7",
		"collection":     ExistingSlug,
		"contract":       ContractAddr,
		"token_standard": "erc721",
		"name":           "Pact Cat #7",
		"image_url":      "https://example.pact/cats/7.png",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
