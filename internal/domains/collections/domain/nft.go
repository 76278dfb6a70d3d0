package domain

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Storefront defaults for NFTs the listing service returns without display data.
const (
	DefaultCurrency = "ETH"
	DefaultImageURL = "/image.png"
)

// ErrMissingWallet is returned when no wallet address is supplied or configured.
var ErrMissingWallet = errors.New("wallet address is required")

// pricePatterns are placeholder prices in whole ether.
var pricePatterns = []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5}

// NFT is a token held by a wallet, ready for display.
type NFT struct {
	UniqueKey   string
	Identifier  string
	Collection  string
	Contract    string
	Name        string
	Description string
	ImageURL    string
	Currency    string
	// Price is in wei.
	Price *big.Int
}

// ApplyDefaults fills display fields the listing service left empty. index is the NFT's
// position in the listing and keys NFTs without an identifier.
func (n *NFT) ApplyDefaults(index int) {
	key := n.Identifier
	if key == "" {
		key = strconv.Itoa(index)
	}
	n.UniqueKey = fmt.Sprintf("%s-%s", n.Contract, key)
	if n.Price == nil || n.Price.Sign() == 0 {
		n.Price = StablePrice(n.Contract, n.Identifier)
	}
	if n.Currency == "" {
		n.Currency = DefaultCurrency
	}
	if n.ImageURL == "" {
		n.ImageURL = DefaultImageURL
	}
}

// StablePrice derives a deterministic placeholder price in wei from the token's contract and id.
func StablePrice(contract, identifier string) *big.Int {
	hash := 0
	for _, r := range contract + "-" + identifier {
		hash += int(r)
	}
	pattern := pricePatterns[hash%len(pricePatterns)]
	variation := 0.9 + float64(hash%20)/100
	wei := math.Round(pattern * variation * 1e18)
	out, _ := big.NewFloat(wei).Int(nil)
	return out
}
