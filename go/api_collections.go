package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	collectionshttpmapper "github.com/Apurer/brtx-marketplace/internal/domains/collections/adapters/http/mapper"
	collectionsports "github.com/Apurer/brtx-marketplace/internal/domains/collections/ports"
)

// CollectionsAPI wires HTTP transport with the listing service proxy.
type CollectionsAPI struct {
	service collectionsports.Service
}

// NewCollectionsAPI creates a CollectionsAPI backed by the provided service.
func NewCollectionsAPI(service collectionsports.Service) CollectionsAPI {
	return CollectionsAPI{service: service}
}

// Post /api/opensea
// Proxies the listings of one collection
func (api *CollectionsAPI) CollectionListings(c *gin.Context) {
	var payload collectionshttpmapper.ListingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	listing, err := api.service.CollectionListings(c.Request.Context(), payload.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectionshttpmapper.FromListing(listing))
}

// Post /api/mystore
// Lists the NFTs held by a wallet
func (api *CollectionsAPI) WalletNFTs(c *gin.Context) {
	var payload collectionshttpmapper.WalletRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	nfts, err := api.service.WalletNFTs(c.Request.Context(), payload.WalletAddress)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectionshttpmapper.FromDomainNFTs(nfts))
}
