package transactionSigner

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/talentlessguy/hardhat/pkg/config"
	"github.com/talentlessguy/hardhat/pkg/transaction"
	"go.uber.org/zap"
)

// ITransactionSigner provides methods for signing legacy transactions
type ITransactionSigner interface {
	// SignTransaction consumes the request and returns the signed transaction
	SignTransaction(ctx context.Context, request *transaction.LegacyTransactionRequest) (*transaction.LegacySignedTransaction, error)

	// GetFromAddress returns the address that will be used for signing
	GetFromAddress() common.Address
}

// NewTransactionSigner returns a private key signer when a key is configured and an
// impersonating signer for the first impersonated account otherwise.
func NewTransactionSigner(cfg *config.TransactionSignerConfig, logger *zap.Logger) (ITransactionSigner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signer config: %w", err)
	}

	if cfg.PrivateKey != "" {
		return NewPrivateKeySigner(cfg.PrivateKey, logger)
	}
	return NewImpersonatingSigner(cfg.GetImpersonatedAddresses()[0], cfg.ChainID, logger)
}

// NewTransactionSignerForSender returns a signer that produces transactions from sender,
// preferring the configured private key over impersonation.
func NewTransactionSignerForSender(cfg *config.TransactionSignerConfig, sender common.Address, logger *zap.Logger) (ITransactionSigner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signer config: %w", err)
	}

	if cfg.PrivateKey != "" {
		signer, err := NewPrivateKeySigner(cfg.PrivateKey, logger)
		if err != nil {
			return nil, err
		}
		if signer.GetFromAddress() == sender {
			return signer, nil
		}
	}

	for _, impersonated := range cfg.GetImpersonatedAddresses() {
		if impersonated == sender {
			return NewImpersonatingSigner(sender, cfg.ChainID, logger)
		}
	}
	return nil, fmt.Errorf("no private key or impersonated account configured for sender %s", sender.Hex())
}
