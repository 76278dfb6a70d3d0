package domain

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

var (
	ErrMissingPrice     = errors.New("product price is missing")
	ErrNegativeAmount   = errors.New("product amounts must not be negative")
	ErrStockOverflow    = errors.New("product stock does not fit in 64 bits")
	ErrIDOverflow       = errors.New("product id does not fit in 64 bits")
	ErrMalformedText    = errors.New("product text field is not valid utf-8")
	ErrUnsetProductSlot = errors.New("product slot is unset")
)

// ProductRecord is the raw tuple returned by the marketplace store getter.
type ProductRecord struct {
	ID          *big.Int
	Price       *big.Int
	Stock       *big.Int
	Name        [32]byte
	Description []byte
	Image       []byte
	ProductType [32]byte
	Condition   [32]byte
	Seller      string
}

// Product is the display-ready catalog entry.
type Product struct {
	ID          uint64
	Price       *big.Int
	Stock       uint64
	Name        string
	Description string
	Image       []byte
	ProductType string
	Condition   string
	Seller      string
}

// DecodeProduct converts the on-chain encoding of the record stored at index into a Product.
// The index is authoritative for the product ID because purchases address products by store key.
func DecodeProduct(index uint64, record *ProductRecord) (*Product, error) {
	if record == nil || record.Price == nil {
		return nil, ErrMissingPrice
	}
	if record.Price.Sign() < 0 || (record.Stock != nil && record.Stock.Sign() < 0) {
		return nil, ErrNegativeAmount
	}
	if record.Price.Sign() == 0 && isZeroAddress(record.Seller) {
		return nil, ErrUnsetProductSlot
	}
	stock := uint64(0)
	if record.Stock != nil {
		if !record.Stock.IsUint64() {
			return nil, ErrStockOverflow
		}
		stock = record.Stock.Uint64()
	}
	name, err := decodeFixed("name", record.Name)
	if err != nil {
		return nil, err
	}
	productType, err := decodeFixed("productType", record.ProductType)
	if err != nil {
		return nil, err
	}
	condition, err := decodeFixed("condition", record.Condition)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(record.Description) {
		return nil, fmt.Errorf("%w: description", ErrMalformedText)
	}
	return &Product{
		ID:          index,
		Price:       new(big.Int).Set(record.Price),
		Stock:       stock,
		Name:        name,
		Description: string(record.Description),
		Image:       append([]byte(nil), record.Image...),
		ProductType: productType,
		Condition:   condition,
		Seller:      record.Seller,
	}, nil
}

// InStock reports whether at least one unit remains.
func (p *Product) InStock() bool {
	return p != nil && p.Stock > 0
}

// EncodeFixed packs s into a right-padded bytes32 value. Strings longer than 32 bytes are truncated.
func EncodeFixed(s string) [32]byte {
	var out [32]byte
	copy(out[:], s)
	return out
}

func decodeFixed(field string, raw [32]byte) (string, error) {
	trimmed := bytes.TrimRight(raw[:], "\x00")
	if !utf8.Valid(trimmed) {
		return "", fmt.Errorf("%w: %s", ErrMalformedText, field)
	}
	return string(trimmed), nil
}

func isZeroAddress(addr string) bool {
	addr = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(addr)), "0x")
	return strings.Trim(addr, "0") == ""
}
