package marketplaceserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	collectionsapp "github.com/Apurer/brtx-marketplace/internal/domains/collections/application"
	collectionsdomain "github.com/Apurer/brtx-marketplace/internal/domains/collections/domain"
	collectionsports "github.com/Apurer/brtx-marketplace/internal/domains/collections/ports"
	marketapp "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/application"
	marketdomain "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	marketports "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
	slugsapp "github.com/Apurer/brtx-marketplace/internal/domains/slugs/application"
	slugsdomain "github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	slugsports "github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	apierrors "github.com/Apurer/brtx-marketplace/internal/shared/errors"
)

type fakeMarketService struct {
	products   []*marketdomain.Product
	err        error
	orders     []marketdomain.OrderRequest
	transfers  []marketdomain.NameTransferRequest
	orderError error
}

func (f *fakeMarketService) ListProducts(context.Context) ([]*marketdomain.Product, error) {
	return f.products, f.err
}

func (f *fakeMarketService) GetProduct(_ context.Context, id uint64) (*marketdomain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %d", marketports.ErrProductNotFound, id)
}

func (f *fakeMarketService) PlaceOrder(_ context.Context, req marketdomain.OrderRequest) (*marketdomain.OrderResult, error) {
	f.orders = append(f.orders, req)
	if f.orderError != nil {
		return nil, f.orderError
	}
	return &marketdomain.OrderResult{Success: true, TransactionHash: "0xabc", ProductID: req.ProductID, Amount: big.NewInt(1000)}, nil
}

func (f *fakeMarketService) TransferName(_ context.Context, req marketdomain.NameTransferRequest) (*marketdomain.Receipt, error) {
	f.transfers = append(f.transfers, req)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", marketapp.ErrInvalidInput, err)
	}
	return &marketdomain.Receipt{TransactionHash: "0xdef", BlockNumber: 7, GasUsed: 21000, Succeeded: true}, nil
}

type fakeSlugService struct {
	records map[string][]string
	profile *slugsdomain.Profile
}

func (f *fakeSlugService) Slugs(_ context.Context, walletID string) (*slugsports.WalletSlugsProjection, error) {
	slugs, ok := f.records[walletID]
	if !ok {
		return nil, slugsports.ErrNotFound
	}
	return &slugsports.WalletSlugsProjection{Entity: &slugsdomain.WalletSlugs{WalletID: walletID, Slugs: slugs}}, nil
}

func (f *fakeSlugService) SetSlug(_ context.Context, walletID, slug string) (*slugsports.WalletSlugsProjection, error) {
	if err := slugsdomain.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("%w: %w", slugsapp.ErrInvalidInput, err)
	}
	record := slugsdomain.NewWalletSlugs(walletID)
	for _, existing := range f.records[walletID] {
		record.Add(existing)
	}
	record.Add(slug)
	f.records[walletID] = record.Slugs
	return &slugsports.WalletSlugsProjection{Entity: record}, nil
}

func (f *fakeSlugService) GetSlugs(_ context.Context, walletID string) (*slugsdomain.Profile, error) {
	if _, ok := f.records[walletID]; !ok {
		return nil, slugsports.ErrNotFound
	}
	return f.profile, nil
}

type fakeCollections struct {
	wallets []string
	err     error
}

func (f *fakeCollections) WalletNFTs(_ context.Context, walletAddress string) ([]*collectionsdomain.NFT, error) {
	f.wallets = append(f.wallets, walletAddress)
	if f.err != nil {
		return nil, f.err
	}
	nft := &collectionsdomain.NFT{Contract: "0x1", Identifier: "2", Name: "Moon"}
	nft.ApplyDefaults(0)
	return []*collectionsdomain.NFT{nft}, nil
}

func (f *fakeCollections) CollectionListings(_ context.Context, slug string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"listings":[{"slug":"` + slug + `"}]}`), nil
}

type recordingWorkflows struct {
	inner marketports.Service
	calls int
}

func (w *recordingWorkflows) PlaceOrder(ctx context.Context, req marketdomain.OrderRequest) (*marketdomain.OrderResult, error) {
	w.calls++
	return w.inner.PlaceOrder(ctx, req)
}

type testServer struct {
	router      *gin.Engine
	market      *fakeMarketService
	workflows   *recordingWorkflows
	slugs       *fakeSlugService
	collections *fakeCollections
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	market := &fakeMarketService{products: []*marketdomain.Product{{
		ID:          1,
		Price:       big.NewInt(1_500_000_000_000_000_000),
		Stock:       5,
		Name:        "Lamp",
		Image:       []byte("ipfs://bafy/lamp.png"),
		ProductType: "physical",
		Condition:   "new",
		Seller:      "0x00000000000000000000000000000000000000d4",
	}}}
	workflows := &recordingWorkflows{inner: market}
	slugs := &fakeSlugService{records: map[string][]string{"w1": {"foo", "bar"}}}
	collections := &fakeCollections{}
	handlers := ApiHandleFunctions{
		MarketplaceAPI: NewMarketplaceAPI(market, workflows, 18),
		SlugsAPI:       NewSlugsAPI(slugs),
		CollectionsAPI: NewCollectionsAPI(collections),
	}
	return &testServer{
		router:      NewRouterWithGinEngine(gin.New(), handlers),
		market:      market,
		workflows:   workflows,
		slugs:       slugs,
		collections: collections,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestMarketplaceAPI_ListProducts(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "1500000000000000000", body[0]["price"])
	require.Equal(t, "1.5", body[0]["displayPrice"])
	require.Equal(t, "https://ipfs.io/ipfs/bafy/lamp.png", body[0]["image"])
	require.Equal(t, true, body[0]["inStock"])
}

func TestMarketplaceAPI_GetProduct(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Lamp"`)

	rec = srv.do(t, http.MethodGet, "/api/products/9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "product", decodeProblem(t, rec).Extensions["resourceType"])

	rec = srv.do(t, http.MethodGet, "/api/products/-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketplaceAPI_PlaceOrderRunsThroughWorkflows(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/orders", `{"productId":1,"prepaid":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"transactionHash":"0xabc","productId":1,"amount":"1000"}`, rec.Body.String())
	require.Equal(t, 1, srv.workflows.calls)
	require.Equal(t, []marketdomain.OrderRequest{{ProductID: 1, Prepaid: true}}, srv.market.orders)
}

func TestMarketplaceAPI_PlaceOrderRequiresProduct(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/orders", `{"prepaid":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, srv.market.orders)
}

func TestMarketplaceAPI_OrderErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		step   string
	}{
		{"approval", fmt.Errorf("%w: reverted", marketapp.ErrApprovalFailed), http.StatusConflict, "approve"},
		{"purchase", fmt.Errorf("%w: reverted", marketapp.ErrPurchaseFailed), http.StatusConflict, "buyProduct"},
		{"node down", fmt.Errorf("%w: %w", marketapp.ErrPurchaseFailed, marketports.ErrRemoteUnavailable), http.StatusBadGateway, ""},
		{"signer", marketports.ErrSignerUnavailable, http.StatusServiceUnavailable, ""},
		{"address", marketports.ErrInvalidAddress, http.StatusBadRequest, ""},
		{"descriptor", misconfiguredDescriptor(), http.StatusInternalServerError, ""},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t)
			srv.market.orderError = tc.err

			rec := srv.do(t, http.MethodPost, "/api/orders", `{"productId":1}`)
			require.Equal(t, tc.status, rec.Code)
			problem := decodeProblem(t, rec)
			require.Equal(t, "/api/orders", problem.Instance)
			if tc.step != "" {
				require.Equal(t, tc.step, problem.Extensions["step"])
			}
		})
	}
}

func misconfiguredDescriptor() error {
	return fmt.Errorf("%w: %w: ERC20 contract address %q",
		marketports.ErrInvalidDescriptor, marketports.ErrInvalidAddress, "0xnot-an-address")
}

func TestMarketplaceAPI_MisconfiguredContractIsServerError(t *testing.T) {
	srv := newTestServer(t)
	srv.market.err = misconfiguredDescriptor()

	rec := srv.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	require.Equal(t, apierrors.TypeInternal, problem.Type)
	require.Contains(t, problem.Detail, "ERC20")
}

func TestMarketplaceAPI_TransferName(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/nft/transfer", `{"to":"0x00000000000000000000000000000000000000d4","tokenId":115792089237316195423570985008687907853269984665640564039457584007913129639935}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"transactionHash":"0xdef","blockNumber":7,"gasUsed":21000,"succeeded":true}`, rec.Body.String())
	require.Len(t, srv.market.transfers, 1)
	require.Equal(t, 256, srv.market.transfers[0].TokenID.BitLen())

	rec = srv.do(t, http.MethodPost, "/api/nft/transfer", `{"to":"0xd4","tokenId":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketplaceAPI_WithoutChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		MarketplaceAPI: NewMarketplaceAPI(nil, nil, 0),
	})

	for _, path := range []string{"/api/products", "/api/products/1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/slugstore", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "POST", rec.Header().Get("Allow"))
	require.Equal(t, http.StatusMethodNotAllowed, decodeProblem(t, rec).Status)

	rec = srv.do(t, http.MethodDelete, "/api/products/4", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestSlugsAPI_GetSlug(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/getSlug", `{"walletId":"w1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"data slugs","data":{"Slug":["foo","bar"]}}`, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/getSlug", `{"walletId":"nobody"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/getSlug", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlugsAPI_StoreSlug(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/slugstore", `{"walletId":"w2","slug":"cool-cats"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"walletId":"w2","slugs":["cool-cats"]}`, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/slugstore", `{"walletId":"w2","slug":"Cool--Cats"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"cool-cats"}, srv.slugs.records["w2"])
}

func TestSlugsAPI_ProfileCollections(t *testing.T) {
	srv := newTestServer(t)
	srv.slugs.profile = &slugsdomain.Profile{
		Slugs: []string{"foo", "bar"},
		Collections: []slugsdomain.SlugCollection{
			{Slug: "foo", Data: json.RawMessage(`{"listings":[]}`)},
			{Slug: "bar", Err: fmt.Errorf("%w: status 500", slugsports.ErrRemoteUnavailable)},
		},
	}

	rec := srv.do(t, http.MethodPost, "/api/profile/collections", `{"walletId":"w1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"slugs":["foo","bar"],
		"collections":[
			{"slug":"foo","data":{"listings":[]}},
			{"slug":"bar","error":"remote unavailable: status 500"}
		]
	}`, rec.Body.String())
}

func TestCollectionsAPI_CollectionListings(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/opensea", `{"slug":"foo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"success","data":{"out":{"listings":[{"slug":"foo"}]}}}`, rec.Body.String())

	srv.collections.err = fmt.Errorf("%w: timeout", collectionsports.ErrRemoteUnavailable)
	rec = srv.do(t, http.MethodPost, "/api/opensea", `{"slug":"foo"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCollectionsAPI_WalletNFTs(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/mystore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{""}, srv.collections.wallets)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "0x1-2", body[0]["key"])
	require.Equal(t, "1020000000000000", body[0]["price"])
	require.Equal(t, collectionsdomain.DefaultImageURL, body[0]["imageUrl"])

	rec = srv.do(t, http.MethodPost, "/api/mystore", `{"walletAddress":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0xabc", srv.collections.wallets[1])

	srv.collections.err = fmt.Errorf("%w: %w", collectionsapp.ErrInvalidInput, collectionsdomain.ErrMissingWallet)
	rec = srv.do(t, http.MethodPost, "/api/mystore", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
