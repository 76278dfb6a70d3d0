package ethereum

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

const (
	testMarketplace = "0x00000000000000000000000000000000000000a1"
	testToken       = "0x00000000000000000000000000000000000000b2"
	testNFT         = "0x00000000000000000000000000000000000000c3"
	testSeller      = "0x00000000000000000000000000000000000000d4"
	// Well known development key; never holds funds.
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testKeyAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// fakeBackend answers eth_call by method selector. Unused backend methods are left nil.
type fakeBackend struct {
	Backend
	responses map[string][]byte
	err       error
	calls     []gethereum.CallMsg

	sent           []*types.Transaction
	revertReceipts bool
}

func (f *fakeBackend) CallContract(_ context.Context, msg gethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return nil, f.err
	}
	for selector, out := range f.responses {
		if bytes.HasPrefix(msg.Data, []byte(selector)) {
			return out, nil
		}
	}
	return nil, errors.New("unexpected call")
}

type dataError struct {
	msg  string
	data interface{}
}

func (e dataError) Error() string          { return e.msg }
func (e dataError) ErrorData() interface{} { return e.data }

type fixedChainID int64

func (c fixedChainID) ChainID(context.Context) (*big.Int, error) { return big.NewInt(int64(c)), nil }

func mustABI(t *testing.T, schema string) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(bytes.NewReader([]byte(schema)))
	require.NoError(t, err)
	return parsed
}

func selector(t *testing.T, parsed abi.ABI, method string) string {
	t.Helper()
	m, ok := parsed.Methods[method]
	require.True(t, ok)
	return string(m.ID)
}

func newTestResolver(t *testing.T, backend *fakeBackend, signer SignerSource) *Resolver {
	t.Helper()
	resolver, err := NewResolver(backend, DefaultDescriptors(testNFT, testToken, testMarketplace), signer)
	require.NoError(t, err)
	return resolver
}

func TestResolver_ReadsStoreRecord(t *testing.T) {
	market := mustABI(t, MarketplaceABI)
	storeOut, err := market.Methods["store"].Outputs.Pack(
		big.NewInt(2), big.NewInt(1000), big.NewInt(4),
		domain.EncodeFixed("Lamp"), []byte("brass desk lamp"), []byte("ipfs://bafy/lamp.png"),
		domain.EncodeFixed("physical"), domain.EncodeFixed("new"),
		common.HexToAddress(testSeller),
	)
	require.NoError(t, err)
	countOut, err := market.Methods["ProductCount"].Outputs.Pack(big.NewInt(3))
	require.NoError(t, err)

	backend := &fakeBackend{responses: map[string][]byte{
		selector(t, market, "store"):        storeOut,
		selector(t, market, "ProductCount"): countOut,
	}}
	bindings, err := newTestResolver(t, backend, nil).ResolveReadOnly(context.Background())
	require.NoError(t, err)
	require.Empty(t, bindings.Account)

	count, err := bindings.Marketplace.ProductCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), count)

	record, err := bindings.Marketplace.Product(context.Background(), 2)
	require.NoError(t, err)
	product, err := domain.DecodeProduct(2, record)
	require.NoError(t, err)
	require.Equal(t, "Lamp", product.Name)
	require.Equal(t, "brass desk lamp", product.Description)
	require.Equal(t, "new", product.Condition)
	require.Equal(t, int64(1000), product.Price.Int64())
	require.Equal(t, common.HexToAddress(testSeller).Hex(), product.Seller)
	require.Equal(t, common.HexToAddress(testMarketplace), *backend.calls[len(backend.calls)-1].To)
}

func TestResolver_MalformedOutput(t *testing.T) {
	market := mustABI(t, MarketplaceABI)
	backend := &fakeBackend{responses: map[string][]byte{
		selector(t, market, "store"): {0x01, 0x02},
	}}
	bindings, err := newTestResolver(t, backend, nil).ResolveReadOnly(context.Background())
	require.NoError(t, err)

	_, err = bindings.Marketplace.Product(context.Background(), 0)
	require.ErrorIs(t, err, ports.ErrMalformedRecord)
}

func TestResolver_TransportFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	bindings, err := newTestResolver(t, backend, nil).ResolveReadOnly(context.Background())
	require.NoError(t, err)

	_, err = bindings.Marketplace.ProductCount(context.Background())
	require.ErrorIs(t, err, ports.ErrRemoteUnavailable)
}

func TestResolver_RevertReason(t *testing.T) {
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	payload, err := abi.Arguments{{Type: stringType}}.Pack("paused")
	require.NoError(t, err)
	data := append([]byte{0x08, 0xc3, 0x79, 0xa0}, payload...)

	backend := &fakeBackend{err: dataError{msg: "execution reverted", data: hexutil.Encode(data)}}
	bindings, err := newTestResolver(t, backend, nil).ResolveReadOnly(context.Background())
	require.NoError(t, err)

	_, err = bindings.Token.Allowance(context.Background(), testSeller, testMarketplace)
	var revert *RevertError
	require.ErrorAs(t, err, &revert)
	require.Equal(t, "paused", revert.Reason)
	require.Equal(t, "ERC20", revert.Contract)
}

func TestResolver_InvalidContractAddress(t *testing.T) {
	descriptors := DefaultDescriptors(testNFT, "0xnot-an-address", testMarketplace)
	resolver, err := NewResolver(&fakeBackend{}, descriptors, nil)
	require.NoError(t, err)

	_, err = resolver.ResolveReadOnly(context.Background())
	require.ErrorIs(t, err, ports.ErrInvalidAddress)
	require.ErrorIs(t, err, ports.ErrInvalidDescriptor)
	require.Contains(t, err.Error(), "ERC20")
}

func TestResolver_InvalidAccountAddress(t *testing.T) {
	bindings, err := newTestResolver(t, &fakeBackend{}, nil).ResolveReadOnly(context.Background())
	require.NoError(t, err)

	_, err = bindings.Token.Allowance(context.Background(), "bob", testMarketplace)
	require.ErrorIs(t, err, ports.ErrInvalidAddress)
	_, err = bindings.NFT.NameTransfer(context.Background(), "0x123", big.NewInt(1))
	require.ErrorIs(t, err, ports.ErrInvalidAddress)
	require.NotErrorIs(t, err, ports.ErrInvalidDescriptor)
}

func TestResolver_WithoutSigner(t *testing.T) {
	resolver := newTestResolver(t, &fakeBackend{}, NoSigner{})

	_, err := resolver.Resolve(context.Background())
	require.ErrorIs(t, err, ports.ErrSignerUnavailable)

	bindings, err := resolver.ResolveReadOnly(context.Background())
	require.NoError(t, err)
	_, err = bindings.Marketplace.BuyProduct(context.Background(), 1, true)
	require.ErrorIs(t, err, ports.ErrSignerUnavailable)
}

func TestResolver_WithKeySigner(t *testing.T) {
	signer, err := NewKeySigner("0x"+testKey, fixedChainID(11155111))
	require.NoError(t, err)
	require.Equal(t, testKeyAddr, signer.Address())

	bindings, err := newTestResolver(t, &fakeBackend{}, signer).Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, testKeyAddr, bindings.Account)
	require.Equal(t, common.HexToAddress(testMarketplace).Hex(), bindings.Marketplace.Address())
}

func TestNewKeySigner_Rejects(t *testing.T) {
	_, err := NewKeySigner("", fixedChainID(1))
	require.ErrorIs(t, err, ports.ErrSignerUnavailable)
	_, err = NewKeySigner("zz", fixedChainID(1))
	require.ErrorIs(t, err, ports.ErrSignerUnavailable)
}

func TestParseDescriptors(t *testing.T) {
	dir := t.TempDir()
	artifact := `{"contractName":"NFT","abi":` + NameRegistryABI + `}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NFT.json"), []byte(artifact), 0o600))

	data := []byte(`
nft:
  address: "` + testNFT + `"
  abiFile: NFT.json
token:
  name: BRTX
  address: "` + testToken + `"
marketplace:
  address: "` + testMarketplace + `"
`)
	descriptors, err := ParseDescriptors(data, dir)
	require.NoError(t, err)
	require.Equal(t, "NFT", descriptors.NFT.Name)
	require.Equal(t, "BRTX", descriptors.Token.Name)
	require.Equal(t, TokenABI, descriptors.Token.ABI)
	require.Equal(t, MarketplaceABI, descriptors.Marketplace.ABI)

	parsed, err := descriptors.NFT.parse()
	require.NoError(t, err)
	require.Contains(t, parsed.Methods, "NameTransfer")
}

func TestParseDescriptors_MissingABIFile(t *testing.T) {
	_, err := ParseDescriptors([]byte("nft:\n  abiFile: missing.json\n"), t.TempDir())
	require.Error(t, err)
}
