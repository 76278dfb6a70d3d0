//go:build pact
// +build pact

package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	marketplaceserver "github.com/Apurer/brtx-marketplace/go"
	slugsmemory "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/memory"
	slugsobs "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/observability"
	slugsapp "github.com/Apurer/brtx-marketplace/internal/domains/slugs/application"
	pacttest "github.com/Apurer/brtx-marketplace/test/pact"
)

func TestStorefrontProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateWalletWithSlugs: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			if setup {
				app.seedSlug(t, pacttest.ExistingWallet, pacttest.ExistingSlug)
			}
			return nil, nil
		},
		pacttest.StateWalletMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			return nil, nil
		},
		pacttest.StateDirectoryEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.repo.Reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// staticListings answers every slug with the same listing payload.
type staticListings struct{}

func (staticListings) CollectionListings(context.Context, string) (json.RawMessage, error) {
	return json.Marshal(pacttest.ExampleListingPayload())
}

type contractProviderApp struct {
	repo   *slugsmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := slugsmemory.NewRepository()
	slugService := slugsobs.New(slugsapp.NewService(repo, staticListings{}))

	handlers := marketplaceserver.ApiHandleFunctions{
		MarketplaceAPI: marketplaceserver.NewMarketplaceAPI(nil, nil, 0),
		SlugsAPI:       marketplaceserver.NewSlugsAPI(slugService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = marketplaceserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{repo: repo, server: server}
}

func (a *contractProviderApp) seedSlug(t testing.TB, walletID, slug string) {
	t.Helper()
	_, err := a.repo.AddSlug(context.Background(), walletID, slug)
	require.NoError(t, err)
}
