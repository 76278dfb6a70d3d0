package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

// contract is a typed view over one deployed contract.
type contract struct {
	name    string
	address common.Address
	abi     abi.ABI
	backend Backend
	bound   *bind.BoundContract
	// opts is nil for read-only bindings.
	opts *bind.TransactOpts
}

func newContract(name string, address common.Address, parsed abi.ABI, backend Backend, opts *bind.TransactOpts) *contract {
	return &contract{
		name:    name,
		address: address,
		abi:     parsed,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		opts:    opts,
	}
}

func (c *contract) from() common.Address {
	if c.opts == nil {
		return common.Address{}
	}
	return c.opts.From
}

// call packs, executes and unpacks a read-only method. Unpack failures wrap
// ports.ErrMalformedRecord, transport failures wrap ports.ErrRemoteUnavailable.
func (c *contract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s.%s: %w", c.name, method, err)
	}
	to := c.address
	output, err := c.backend.CallContract(ctx, gethereum.CallMsg{From: c.from(), To: &to, Data: input}, nil)
	if err != nil {
		if revert, ok := asRevert(c.name, method, err); ok {
			return nil, revert
		}
		return nil, fmt.Errorf("%w: %s.%s: %w", ports.ErrRemoteUnavailable, c.name, method, err)
	}
	values, err := c.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %w", ports.ErrMalformedRecord, c.name, method, err)
	}
	return values, nil
}

func (c *contract) transact(ctx context.Context, gasLimit uint64, method string, args ...interface{}) (ports.PendingTransaction, error) {
	if c.opts == nil {
		return nil, fmt.Errorf("%w: %s.%s needs a signer", ports.ErrSignerUnavailable, c.name, method)
	}
	opts := *c.opts
	opts.Context = ctx
	opts.GasLimit = gasLimit
	// Payment moves through the token allowance; no call carries ether.
	opts.Value = new(big.Int)
	tx, err := c.bound.Transact(&opts, method, args...)
	if err != nil {
		if revert, ok := asRevert(c.name, method, err); ok {
			return nil, revert
		}
		return nil, fmt.Errorf("submit %s.%s: %w", c.name, method, err)
	}
	return &pendingTx{tx: tx, backend: c.backend}, nil
}

type pendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *pendingTx) Hash() string {
	return p.tx.Hash().Hex()
}

func (p *pendingTx) Wait(ctx context.Context) (*domain.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrRemoteUnavailable, err)
	}
	out := &domain.Receipt{
		TransactionHash: receipt.TxHash.Hex(),
		GasUsed:         receipt.GasUsed,
		Succeeded:       receipt.Status == types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out, nil
}

type marketplaceContract struct{ *contract }

func (m marketplaceContract) Address() string {
	return m.address.Hex()
}

func (m marketplaceContract) ProductCount(ctx context.Context) (uint64, error) {
	out, err := m.call(ctx, methodProductCount)
	if err != nil {
		return 0, err
	}
	count, err := singleBig(out)
	if err != nil {
		return 0, fmt.Errorf("%w: %s.%s: %w", ports.ErrMalformedRecord, m.name, methodProductCount, err)
	}
	if !count.IsUint64() {
		return 0, fmt.Errorf("%w: product count %s", domain.ErrIDOverflow, count)
	}
	return count.Uint64(), nil
}

// storeFields names positional store outputs when the schema leaves them unnamed.
var storeFields = []string{"id", "price", "stock", "name", "description", "image", "productType", "condition", "seller"}

func (m marketplaceContract) Product(ctx context.Context, id uint64) (*domain.ProductRecord, error) {
	out, err := m.call(ctx, methodStore, new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	method := m.abi.Methods[methodStore]
	values := make(map[string]interface{}, len(out))
	for i, arg := range method.Outputs {
		if i >= len(out) {
			break
		}
		key := arg.Name
		if key == "" && i < len(storeFields) {
			key = storeFields[i]
		}
		values[key] = out[i]
	}
	record, err := recordFromValues(values)
	if err != nil {
		return nil, fmt.Errorf("%w: store(%d): %w", ports.ErrMalformedRecord, id, err)
	}
	return record, nil
}

func (m marketplaceContract) BuyProduct(ctx context.Context, id uint64, prepaid bool) (ports.PendingTransaction, error) {
	return m.transact(ctx, domain.PurchaseGasLimit, methodBuyProduct, new(big.Int).SetUint64(id), prepaid)
}

type tokenContract struct{ *contract }

func (t tokenContract) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	ownerAddr, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := parseAddress("spender", spender)
	if err != nil {
		return nil, err
	}
	out, err := t.call(ctx, methodAllowance, ownerAddr, spenderAddr)
	if err != nil {
		return nil, err
	}
	allowance, err := singleBig(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %w", ports.ErrMalformedRecord, t.name, methodAllowance, err)
	}
	return allowance, nil
}

func (t tokenContract) Approve(ctx context.Context, spender string, amount *big.Int) (ports.PendingTransaction, error) {
	spenderAddr, err := parseAddress("spender", spender)
	if err != nil {
		return nil, err
	}
	return t.transact(ctx, 0, methodApprove, spenderAddr, amount)
}

type nameRegistryContract struct{ *contract }

func (n nameRegistryContract) NameTransfer(ctx context.Context, to string, tokenID *big.Int) (ports.PendingTransaction, error) {
	toAddr, err := parseAddress("recipient", to)
	if err != nil {
		return nil, err
	}
	return n.transact(ctx, domain.NameTransferGasLimit, methodNameTransfer, toAddr, tokenID)
}

func parseAddress(label, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %s %q", ports.ErrInvalidAddress, label, value)
	}
	return common.HexToAddress(value), nil
}

func singleBig(out []interface{}) (*big.Int, error) {
	if len(out) != 1 {
		return nil, fmt.Errorf("expected 1 value, got %d", len(out))
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected uint256, got %T", out[0])
	}
	return v, nil
}

func recordFromValues(values map[string]interface{}) (*domain.ProductRecord, error) {
	var (
		record domain.ProductRecord
		errs   []error
	)
	record.ID = bigValue(values, "id", &errs)
	record.Price = bigValue(values, "price", &errs)
	record.Stock = bigValue(values, "stock", &errs)
	record.Name = fixedValue(values, "name", &errs)
	record.Description = bytesValue(values, "description", &errs)
	record.Image = bytesValue(values, "image", &errs)
	record.ProductType = fixedValue(values, "productType", &errs)
	record.Condition = fixedValue(values, "condition", &errs)
	if v, ok := values["seller"].(common.Address); ok {
		record.Seller = v.Hex()
	} else {
		errs = append(errs, fmt.Errorf("field seller: unexpected %T", values["seller"]))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &record, nil
}

func bigValue(values map[string]interface{}, key string, errs *[]error) *big.Int {
	v, ok := values[key].(*big.Int)
	if !ok {
		*errs = append(*errs, fmt.Errorf("field %s: unexpected %T", key, values[key]))
	}
	return v
}

func fixedValue(values map[string]interface{}, key string, errs *[]error) [32]byte {
	v, ok := values[key].([32]byte)
	if !ok {
		*errs = append(*errs, fmt.Errorf("field %s: unexpected %T", key, values[key]))
	}
	return v
}

func bytesValue(values map[string]interface{}, key string, errs *[]error) []byte {
	v, ok := values[key].([]byte)
	if !ok {
		*errs = append(*errs, fmt.Errorf("field %s: unexpected %T", key, values[key]))
	}
	return v
}

var (
	_ ports.Marketplace  = marketplaceContract{}
	_ ports.Token        = tokenContract{}
	_ ports.NameRegistry = nameRegistryContract{}
)
