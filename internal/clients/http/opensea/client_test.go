package opensea

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectionListings(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"listings":[{"order_hash":"0x1"}],"next":""}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/api/v2", WithAPIKey("secret"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	payload, err := client.CollectionListings(context.Background(), "cool-cats")
	require.NoError(t, err)
	require.Equal(t, "/api/v2/listings/collection/cool-cats/all", gotPath)
	require.Equal(t, "secret", gotKey)
	require.JSONEq(t, `{"listings":[{"order_hash":"0x1"}],"next":""}`, string(payload))
}

func TestCollectionListings_EscapesSlug(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	_, err = client.CollectionListings(context.Background(), "a b/c")
	require.NoError(t, err)
	require.Equal(t, "/listings/collection/a%20b%2Fc/all", gotPath)
}

func TestCollectionListings_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":["collection not found"]}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = client.CollectionListings(context.Background(), "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "collection not found")
}

func TestAccountNFTs(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"nfts":[{"identifier":"7","collection":"brtx","contract":"0xc0ffee","name":"Seven","image_url":"https://img/7.png"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithChain("holesky"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	nfts, err := client.AccountNFTs(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Equal(t, "/chain/holesky/account/0xabc/nfts", gotPath)
	require.Len(t, nfts, 1)
	require.Equal(t, "7", nfts[0].Identifier)
	require.Equal(t, "0xc0ffee", nfts[0].Contract)
	require.Equal(t, "https://img/7.png", nfts[0].ImageURL)
}

func TestAccountNFTs_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	nfts, err := client.AccountNFTs(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Empty(t, nfts)
	require.NotNil(t, nfts)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("")
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, client.baseURL.String())
	require.Equal(t, DefaultChain, client.chain)

	_, err = NewClient("not a url")
	require.Error(t, err)
}
