package opensea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultBaseURL is the public testnet API.
	DefaultBaseURL = "https://testnets-api.opensea.io/api/v2"
	// DefaultChain is the chain queried for account holdings.
	DefaultChain = "sepolia"

	apiKeyHeader = "x-api-key"
	// maxErrorBody caps how much of a failed response is kept for the error message.
	maxErrorBody = 4 << 10
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("opensea API error: %s", e.Status)
	}
	return fmt.Sprintf("opensea API error: %s: %s", e.Status, e.Body)
}

// NFT is one token held by an account.
type NFT struct {
	Identifier    string `json:"identifier"`
	Collection    string `json:"collection"`
	Contract      string `json:"contract"`
	TokenStandard string `json:"token_standard,omitempty"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	MetadataURL   string `json:"metadata_url,omitempty"`
	OpenseaURL    string `json:"opensea_url,omitempty"`
	// Price and Currency are absent from the account endpoint but honoured when a proxy supplies them.
	Price    string `json:"price,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type accountNFTsResponse struct {
	NFTs []NFT  `json:"nfts"`
	Next string `json:"next,omitempty"`
}

// Client talks to the collection listing service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	apiKey     string
	chain      string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAPIKey sends the key on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithChain selects the chain for account lookups.
func WithChain(chain string) Option {
	return func(c *Client) {
		if chain = strings.TrimSpace(chain); chain != "" {
			c.chain = chain
		}
	}
}

// NewClient instantiates the listing client with sane defaults.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse opensea base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("opensea base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		chain: DefaultChain,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// CollectionListings returns the raw listing payload for a collection slug.
func (c *Client) CollectionListings(ctx context.Context, slug string) (json.RawMessage, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, errors.New("collection slug is required")
	}
	segment, err := pathParam("slug", slug)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "listings", "collection", segment, "all")
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("opensea listing response is not valid JSON")
	}
	return json.RawMessage(body), nil
}

// AccountNFTs lists the NFTs an account holds on the configured chain.
func (c *Client) AccountNFTs(ctx context.Context, address string) ([]NFT, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("account address is required")
	}
	chain, err := pathParam("chain", c.chain)
	if err != nil {
		return nil, err
	}
	account, err := pathParam("address", address)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "chain", chain, "account", account, "nfts")
	if err != nil {
		return nil, err
	}
	var decoded accountNFTsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode account nfts: %w", err)
	}
	if decoded.NFTs == nil {
		decoded.NFTs = []NFT{}
	}
	return decoded.NFTs, nil
}

func (c *Client) get(ctx context.Context, segments ...string) ([]byte, error) {
	if c == nil || c.baseURL == nil {
		return nil, errors.New("opensea client not configured")
	}
	target := *c.baseURL
	escaped := strings.TrimSuffix(target.EscapedPath(), "/") + "/" + strings.Join(segments, "/")
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, err
	}
	target.Path, target.RawPath = unescaped, escaped
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call opensea API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(snippet))}
	}
	return io.ReadAll(resp.Body)
}

// pathParam renders a simple-style path parameter. The result is already escaped.
func pathParam(name, value string) (string, error) {
	rendered, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return rendered, nil
}
