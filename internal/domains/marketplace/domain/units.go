package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTokenDecimals matches the BRTX token and native ether.
const DefaultTokenDecimals int32 = 18

const ipfsGateway = "https://ipfs.io/ipfs/"

// FormatUnits renders an amount in smallest units as a decimal string, e.g. 1500000000000000000 -> "1.5".
func FormatUnits(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// ImageURL returns the product image as a fetchable URL when the blob holds a text URI.
// ipfs:// URIs are rewritten to the public gateway; binary blobs yield "".
func (p *Product) ImageURL() string {
	if p == nil || len(p.Image) == 0 {
		return ""
	}
	raw := strings.TrimSpace(string(p.Image))
	switch {
	case strings.HasPrefix(raw, "ipfs://ipfs/"):
		return ipfsGateway + strings.TrimPrefix(raw, "ipfs://ipfs/")
	case strings.HasPrefix(raw, "ipfs://"):
		return ipfsGateway + strings.TrimPrefix(raw, "ipfs://")
	case strings.HasPrefix(raw, "https://"), strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "/"):
		return raw
	default:
		return ""
	}
}
