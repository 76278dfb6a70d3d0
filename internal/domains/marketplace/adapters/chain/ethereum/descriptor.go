package ethereum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"gopkg.in/yaml.v3"
)

// Descriptor identifies a deployed contract by address and interface schema.
type Descriptor struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	// ABI holds the JSON schema inline; ABIFile points at a JSON ABI array or a
	// build artifact with an "abi" field, relative to the descriptor file.
	ABI     string `yaml:"abi"`
	ABIFile string `yaml:"abiFile"`
}

// Descriptors lists the three contracts the marketplace talks to.
type Descriptors struct {
	NFT         Descriptor `yaml:"nft"`
	Token       Descriptor `yaml:"token"`
	Marketplace Descriptor `yaml:"marketplace"`
}

// DefaultDescriptors returns descriptors using the embedded schemas and the given addresses.
func DefaultDescriptors(nftAddress, tokenAddress, marketplaceAddress string) Descriptors {
	return Descriptors{
		NFT:         Descriptor{Name: "NFT", Address: nftAddress, ABI: NameRegistryABI},
		Token:       Descriptor{Name: "ERC20", Address: tokenAddress, ABI: TokenABI},
		Marketplace: Descriptor{Name: "Marketplace", Address: marketplaceAddress, ABI: MarketplaceABI},
	}
}

// LoadDescriptors reads a YAML descriptor file.
func LoadDescriptors(path string) (Descriptors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptors{}, fmt.Errorf("read contracts file: %w", err)
	}
	return ParseDescriptors(data, filepath.Dir(path))
}

// ParseDescriptors decodes YAML descriptors, resolving ABI files against baseDir and
// falling back to the embedded schema for any contract without one.
func ParseDescriptors(data []byte, baseDir string) (Descriptors, error) {
	var d Descriptors
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptors{}, fmt.Errorf("decode contracts file: %w", err)
	}
	defaults := DefaultDescriptors("", "", "")
	for _, pair := range []struct {
		target   *Descriptor
		fallback Descriptor
	}{
		{&d.NFT, defaults.NFT},
		{&d.Token, defaults.Token},
		{&d.Marketplace, defaults.Marketplace},
	} {
		if err := pair.target.resolveABI(baseDir, pair.fallback); err != nil {
			return Descriptors{}, err
		}
	}
	return d, nil
}

func (d *Descriptor) resolveABI(baseDir string, fallback Descriptor) error {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = fallback.Name
	}
	if strings.TrimSpace(d.ABI) != "" {
		return nil
	}
	if strings.TrimSpace(d.ABIFile) == "" {
		d.ABI = fallback.ABI
		return nil
	}
	path := d.ABIFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s abi: %w", d.Name, err)
	}
	schema, err := extractABI(raw)
	if err != nil {
		return fmt.Errorf("%s abi: %w", d.Name, err)
	}
	d.ABI = schema
	return nil
}

func extractABI(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errors.New("empty abi file")
	}
	if trimmed[0] == '[' {
		return string(trimmed), nil
	}
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(trimmed, &artifact); err != nil {
		return "", err
	}
	if len(artifact.ABI) == 0 {
		return "", errors.New("artifact has no abi field")
	}
	return string(artifact.ABI), nil
}

func (d Descriptor) parse() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(d.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse %s abi: %w", d.Name, err)
	}
	return parsed, nil
}
