package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the legacy-tx CLI
const (
	EnvLegacyTxPrivateKey = "LEGACY_TX_PRIVATE_KEY"
	EnvLegacyTxChainID    = "LEGACY_TX_CHAIN_ID"
	EnvLegacyTxVerbose    = "LEGACY_TX_VERBOSE"
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumHolesky ChainId = 17000
	ChainId_EthereumAnvil   ChainId = 31337 // also the hardhat network default
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumHolesky ChainName = "holesky"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumHolesky: ChainName_EthereumHolesky,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumHolesky: ChainId_EthereumHolesky,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// IsDevelopmentChain reports whether impersonated (fake signed) transactions may be
// produced for the chain. Public networks never accept them.
func IsDevelopmentChain(chainId ChainId) bool {
	return chainId == ChainId_EthereumAnvil
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_EthereumMainnet,
		ChainId_EthereumSepolia,
		ChainId_EthereumHolesky,
		ChainId_EthereumAnvil,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (sepolia), %d (holesky), %d (devnet)",
		ChainId_EthereumMainnet, ChainId_EthereumSepolia, ChainId_EthereumHolesky, ChainId_EthereumAnvil)
}

// TransactionSignerConfig configures the signers in pkg/transactionSigner
type TransactionSignerConfig struct {
	// PrivateKey is a hex encoded secp256k1 key, optionally 0x prefixed
	PrivateKey string  `json:"privateKey" yaml:"privateKey"`
	ChainID    ChainId `json:"chainId" yaml:"chainId"`

	// ImpersonatedAccounts may be fake signed for; development chains only
	ImpersonatedAccounts []string `json:"impersonatedAccounts" yaml:"impersonatedAccounts"`
}

// Validate checks the configuration and returns all problems at once
func (c *TransactionSignerConfig) Validate() error {
	var allErrors field.ErrorList

	if c.PrivateKey == "" && len(c.ImpersonatedAccounts) == 0 {
		allErrors = append(allErrors, field.Required(field.NewPath("privateKey"), "privateKey or impersonatedAccounts is required"))
	}
	if c.PrivateKey != "" {
		key := strings.TrimPrefix(c.PrivateKey, "0x")
		if len(key) != 64 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("privateKey"), "<redacted>",
				fmt.Sprintf("must be 32 bytes (64 hex chars), got %d chars", len(key))))
		}
	}

	if _, ok := ChainIdToName[c.ChainID]; !ok {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("chainId"), c.ChainID, chainIdsAsStrings()))
	}

	if len(c.ImpersonatedAccounts) > 0 && !IsDevelopmentChain(c.ChainID) {
		allErrors = append(allErrors, field.Forbidden(field.NewPath("impersonatedAccounts"),
			fmt.Sprintf("impersonation is only allowed on development chains, got chain ID %d", c.ChainID)))
	}
	for i, account := range c.ImpersonatedAccounts {
		if !common.IsHexAddress(account) {
			allErrors = append(allErrors, field.Invalid(field.NewPath("impersonatedAccounts").Index(i), account, "invalid address"))
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// GetImpersonatedAddresses returns the impersonated accounts as addresses.
// Call Validate first; invalid entries become the zero address.
func (c *TransactionSignerConfig) GetImpersonatedAddresses() []common.Address {
	addresses := make([]common.Address, 0, len(c.ImpersonatedAccounts))
	for _, account := range c.ImpersonatedAccounts {
		addresses = append(addresses, common.HexToAddress(account))
	}
	return addresses
}

func chainIdsAsStrings() []string {
	ids := GetSupportedChainIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf("%d", id))
	}
	return out
}
