package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	slugshttpmapper "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/http/mapper"
	slugsports "github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
)

// SlugsAPI wires HTTP transport with the wallet slug directory.
type SlugsAPI struct {
	service slugsports.Service
}

// NewSlugsAPI creates a SlugsAPI backed by the provided service.
func NewSlugsAPI(service slugsports.Service) SlugsAPI {
	return SlugsAPI{service: service}
}

// Post /api/getSlug
// Returns the slugs stored for a wallet
func (api *SlugsAPI) GetSlug(c *gin.Context) {
	var payload slugshttpmapper.WalletRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	record, err := api.service.Slugs(c.Request.Context(), payload.WalletID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slugshttpmapper.FromProjectionSlugList(record))
}

// Post /api/slugstore
// Adds a slug to a wallet, creating the wallet record on first use
func (api *SlugsAPI) StoreSlug(c *gin.Context) {
	var payload slugshttpmapper.SlugStoreRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	record, err := api.service.SetSlug(c.Request.Context(), payload.WalletID, payload.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slugshttpmapper.FromProjectionWalletSlugs(record))
}

// Post /api/profile/collections
// Resolves every stored slug to its collection listing
func (api *SlugsAPI) ProfileCollections(c *gin.Context) {
	var payload slugshttpmapper.WalletRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	profile, err := api.service.GetSlugs(c.Request.Context(), payload.WalletID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slugshttpmapper.FromDomainProfile(profile))
}
