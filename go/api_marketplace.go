package marketplaceserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	markethttpmapper "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/http/mapper"
	marketdomain "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	marketports "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

var errChainUnavailable = errors.New("marketplace chain backend is not configured")

// MarketplaceAPI wires HTTP transport with the on-chain catalog and order workflows.
// A nil service means no node is configured and every route answers 503.
type MarketplaceAPI struct {
	service       marketports.Service
	workflows     marketports.WorkflowOrchestrator
	tokenDecimals int32
}

// NewMarketplaceAPI creates a MarketplaceAPI backed by the provided service.
func NewMarketplaceAPI(service marketports.Service, workflows marketports.WorkflowOrchestrator, tokenDecimals int32) MarketplaceAPI {
	if tokenDecimals < 0 {
		tokenDecimals = marketdomain.DefaultTokenDecimals
	}
	return MarketplaceAPI{service: service, workflows: workflows, tokenDecimals: tokenDecimals}
}

// Get /api/products
// Lists the on-chain catalog
func (api *MarketplaceAPI) ListProducts(c *gin.Context) {
	if !api.available(c) {
		return
	}
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, markethttpmapper.FromDomainProducts(products, api.tokenDecimals))
}

// Get /api/products/:productId
// Reads one catalog entry
func (api *MarketplaceAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if !api.available(c) {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, markethttpmapper.FromDomainProduct(product, api.tokenDecimals))
}

// Post /api/orders
// Buys one unit of a product
func (api *MarketplaceAPI) PlaceOrder(c *gin.Context) {
	var payload markethttpmapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !api.available(c) {
		return
	}
	result, err := api.placeOrder(c.Request.Context(), markethttpmapper.ToDomainOrderRequest(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, markethttpmapper.FromDomainOrder(result))
}

func (api *MarketplaceAPI) placeOrder(ctx context.Context, req marketdomain.OrderRequest) (*marketdomain.OrderResult, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, req)
	}
	return api.service.PlaceOrder(ctx, req)
}

// Post /api/nft/transfer
// Transfers an NFT name token
func (api *MarketplaceAPI) TransferName(c *gin.Context) {
	var payload markethttpmapper.NameTransferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !api.available(c) {
		return
	}
	receipt, err := api.service.TransferName(c.Request.Context(), markethttpmapper.ToDomainNameTransfer(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, markethttpmapper.FromDomainReceipt(receipt))
}

func (api *MarketplaceAPI) available(c *gin.Context) bool {
	if api.service == nil {
		respondError(c, http.StatusServiceUnavailable, errChainUnavailable)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
