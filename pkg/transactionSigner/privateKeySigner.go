package transactionSigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/talentlessguy/hardhat/pkg/transaction"
	"github.com/talentlessguy/hardhat/pkg/util"
	"go.uber.org/zap"
)

// PrivateKeySigner implements ITransactionSigner with an in-memory secp256k1 key
type PrivateKeySigner struct {
	privateKey  *ecdsa.PrivateKey
	fromAddress common.Address
	logger      *zap.Logger
}

// NewPrivateKeySigner creates a signer from a hex encoded private key
func NewPrivateKeySigner(privateKeyHex string, logger *zap.Logger) (*PrivateKeySigner, error) {
	privateKey, err := util.StringToECDSAPrivateKey(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return NewPrivateKeySignerFromKey(privateKey, logger)
}

func NewPrivateKeySignerFromKey(privateKey *ecdsa.PrivateKey, logger *zap.Logger) (*PrivateKeySigner, error) {
	fromAddress, err := util.DeriveAddressFromECDSAPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive address from private key: %w", err)
	}

	return &PrivateKeySigner{
		privateKey:  privateKey,
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SignTransaction signs the request with the configured key
func (pks *PrivateKeySigner) SignTransaction(ctx context.Context, request *transaction.LegacyTransactionRequest) (*transaction.LegacySignedTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signingHash := request.Hash()
	signed, err := request.Sign(pks.privateKey)
	if err != nil {
		pks.logger.Error("SignTransaction: failed to sign transaction",
			zap.String("from", pks.fromAddress.Hex()),
			zap.String("signingHash", signingHash.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	pks.logger.Debug("SignTransaction: signed transaction",
		zap.String("from", pks.fromAddress.Hex()),
		zap.String("signingHash", signingHash.Hex()),
		zap.String("txHash", signed.Hash().Hex()),
		zap.Uint64("nonce", signed.Nonce()),
	)
	return signed, nil
}

// GetFromAddress returns the address derived from the private key
func (pks *PrivateKeySigner) GetFromAddress() common.Address {
	return pks.fromAddress
}
