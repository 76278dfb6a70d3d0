package mapper

import (
	"encoding/json"

	"github.com/Apurer/brtx-marketplace/internal/domains/collections/domain"
)

// ListingRequest names the collection to proxy.
type ListingRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// ListingResponse wraps the upstream listing payload untouched.
type ListingResponse struct {
	Message string      `json:"message"`
	Data    ListingData `json:"data"`
}

type ListingData struct {
	Out json.RawMessage `json:"out"`
}

// WalletRequest names the account whose NFTs are listed. An empty address selects the store wallet.
type WalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// NFT is the storefront card for one token. Price is in wei.
type NFT struct {
	Key         string `json:"key"`
	Identifier  string `json:"identifier"`
	Collection  string `json:"collection"`
	Contract    string `json:"contract"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Currency    string `json:"currency"`
	Price       string `json:"price"`
}

// FromListing wraps a listing payload.
func FromListing(payload json.RawMessage) ListingResponse {
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return ListingResponse{Message: "success", Data: ListingData{Out: payload}}
}

// FromDomainNFTs converts wallet holdings for display.
func FromDomainNFTs(nfts []*domain.NFT) []NFT {
	out := make([]NFT, 0, len(nfts))
	for _, nft := range nfts {
		if nft == nil {
			continue
		}
		price := "0"
		if nft.Price != nil {
			price = nft.Price.String()
		}
		out = append(out, NFT{
			Key:         nft.UniqueKey,
			Identifier:  nft.Identifier,
			Collection:  nft.Collection,
			Contract:    nft.Contract,
			Name:        nft.Name,
			Description: nft.Description,
			ImageURL:    nft.ImageURL,
			Currency:    nft.Currency,
			Price:       price,
		})
	}
	return out
}
