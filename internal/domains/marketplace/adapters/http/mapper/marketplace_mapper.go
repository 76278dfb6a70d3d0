package mapper

import (
	"math/big"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
)

// Product is the catalog entry as rendered to storefront clients. Amounts stay in smallest
// token units; DisplayPrice is the same value scaled by the token decimals.
type Product struct {
	ID           uint64 `json:"id"`
	Price        string `json:"price"`
	DisplayPrice string `json:"displayPrice"`
	Stock        uint64 `json:"stock"`
	InStock      bool   `json:"inStock"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	ProductType  string `json:"productType"`
	Condition    string `json:"condition"`
	Seller       string `json:"seller"`
}

// OrderRequest is the purchase payload.
type OrderRequest struct {
	ProductID *uint64 `json:"productId" binding:"required"`
	Prepaid   bool    `json:"prepaid"`
}

// Order is the purchase outcome.
type Order struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash"`
	ProductID       uint64 `json:"productId"`
	Amount          string `json:"amount"`
}

// NameTransferRequest accepts the token id as a JSON number of any size.
type NameTransferRequest struct {
	To      string   `json:"to" binding:"required"`
	TokenID *big.Int `json:"tokenId" binding:"required"`
}

// Receipt is a confirmed transaction.
type Receipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed"`
	Succeeded       bool   `json:"succeeded"`
}

// FromDomainProduct converts a catalog entry for display.
func FromDomainProduct(product *domain.Product, decimals int32) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:           product.ID,
		Price:        amountString(product.Price),
		DisplayPrice: domain.FormatUnits(product.Price, decimals),
		Stock:        product.Stock,
		InStock:      product.InStock(),
		Name:         product.Name,
		Description:  product.Description,
		Image:        product.ImageURL(),
		ProductType:  product.ProductType,
		Condition:    product.Condition,
		Seller:       product.Seller,
	}
}

// FromDomainProducts converts a catalog listing, keeping its order.
func FromDomainProducts(products []*domain.Product, decimals int32) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, FromDomainProduct(product, decimals))
	}
	return out
}

// ToDomainOrderRequest converts the purchase payload.
func ToDomainOrderRequest(req OrderRequest) domain.OrderRequest {
	out := domain.OrderRequest{Prepaid: req.Prepaid}
	if req.ProductID != nil {
		out.ProductID = *req.ProductID
	}
	return out
}

// FromDomainOrder converts the purchase outcome.
func FromDomainOrder(result *domain.OrderResult) Order {
	if result == nil {
		return Order{}
	}
	return Order{
		Success:         result.Success,
		TransactionHash: result.TransactionHash,
		ProductID:       result.ProductID,
		Amount:          amountString(result.Amount),
	}
}

// ToDomainNameTransfer converts the transfer payload.
func ToDomainNameTransfer(req NameTransferRequest) domain.NameTransferRequest {
	return domain.NameTransferRequest{To: req.To, TokenID: req.TokenID}
}

// FromDomainReceipt converts a transaction receipt.
func FromDomainReceipt(receipt *domain.Receipt) Receipt {
	if receipt == nil {
		return Receipt{}
	}
	return Receipt{
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     receipt.BlockNumber,
		GasUsed:         receipt.GasUsed,
		Succeeded:       receipt.Succeeded,
	}
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}
