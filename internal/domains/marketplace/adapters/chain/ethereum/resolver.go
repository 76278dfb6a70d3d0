package ethereum

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

// Backend is the node connection the contracts are bound against.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Resolver binds the marketplace, token and NFT contracts on every call.
type Resolver struct {
	backend     Backend
	signer      SignerSource
	descriptors Descriptors
	marketABI   abi.ABI
	tokenABI    abi.ABI
	nftABI      abi.ABI
}

// NewResolver parses the descriptor schemas. Addresses are checked per resolution.
func NewResolver(backend Backend, descriptors Descriptors, signer SignerSource) (*Resolver, error) {
	if backend == nil {
		return nil, errors.New("ethereum resolver: nil backend")
	}
	if signer == nil {
		signer = NoSigner{}
	}
	marketABI, err := descriptors.Marketplace.parse()
	if err != nil {
		return nil, err
	}
	tokenABI, err := descriptors.Token.parse()
	if err != nil {
		return nil, err
	}
	nftABI, err := descriptors.NFT.parse()
	if err != nil {
		return nil, err
	}
	return &Resolver{
		backend:     backend,
		signer:      signer,
		descriptors: descriptors,
		marketABI:   marketABI,
		tokenABI:    tokenABI,
		nftABI:      nftABI,
	}, nil
}

// Resolve binds all contracts to the configured signer.
func (r *Resolver) Resolve(ctx context.Context) (*ports.Bindings, error) {
	addrs, err := r.addresses()
	if err != nil {
		return nil, err
	}
	opts, err := r.signer.Transactor(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrSignerUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrSignerUnavailable, err)
	}
	return r.bind(addrs, opts), nil
}

// ResolveReadOnly binds all contracts without a signer.
func (r *Resolver) ResolveReadOnly(_ context.Context) (*ports.Bindings, error) {
	addrs, err := r.addresses()
	if err != nil {
		return nil, err
	}
	return r.bind(addrs, nil), nil
}

type resolvedAddresses struct {
	marketplace, token, nft common.Address
}

func (r *Resolver) addresses() (resolvedAddresses, error) {
	var out resolvedAddresses
	for _, item := range []struct {
		desc Descriptor
		dst  *common.Address
	}{
		{r.descriptors.Marketplace, &out.marketplace},
		{r.descriptors.Token, &out.token},
		{r.descriptors.NFT, &out.nft},
	} {
		if !common.IsHexAddress(item.desc.Address) {
			return resolvedAddresses{}, fmt.Errorf("%w: %w: %s contract address %q",
				ports.ErrInvalidDescriptor, ports.ErrInvalidAddress, item.desc.Name, item.desc.Address)
		}
		*item.dst = common.HexToAddress(item.desc.Address)
	}
	return out, nil
}

func (r *Resolver) bind(addrs resolvedAddresses, opts *bind.TransactOpts) *ports.Bindings {
	bindings := &ports.Bindings{
		Marketplace: marketplaceContract{newContract(r.descriptors.Marketplace.Name, addrs.marketplace, r.marketABI, r.backend, opts)},
		Token:       tokenContract{newContract(r.descriptors.Token.Name, addrs.token, r.tokenABI, r.backend, opts)},
		NFT:         nameRegistryContract{newContract(r.descriptors.NFT.Name, addrs.nft, r.nftABI, r.backend, opts)},
	}
	if opts != nil {
		bindings.Account = opts.From.Hex()
	}
	return bindings
}

var _ ports.Resolver = (*Resolver)(nil)
