package transactionSigner

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/talentlessguy/hardhat/pkg/config"
	"github.com/talentlessguy/hardhat/pkg/transaction"
	"go.uber.org/zap"
)

// ImpersonatingSigner implements ITransactionSigner with fake signatures, for
// simulating accounts whose key is unavailable on development networks.
type ImpersonatingSigner struct {
	sender  common.Address
	chainId config.ChainId
	logger  *zap.Logger
}

func NewImpersonatingSigner(sender common.Address, chainId config.ChainId, logger *zap.Logger) (*ImpersonatingSigner, error) {
	if !config.IsDevelopmentChain(chainId) {
		return nil, fmt.Errorf("impersonation is not allowed on chain ID %d", chainId)
	}
	return &ImpersonatingSigner{
		sender:  sender,
		chainId: chainId,
		logger:  logger,
	}, nil
}

// SignTransaction fake signs the request; the result reports IsFake
func (is *ImpersonatingSigner) SignTransaction(ctx context.Context, request *transaction.LegacyTransactionRequest) (*transaction.LegacySignedTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signed := request.FakeSign(is.sender)

	is.logger.Sugar().Debugw("SignTransaction: fake signed transaction for impersonated account",
		zap.String("from", is.sender.Hex()),
		zap.String("txHash", signed.Hash().Hex()),
		zap.Uint64("nonce", signed.Nonce()),
		zap.Uint("chainId", uint(is.chainId)),
	)
	return signed, nil
}

// GetFromAddress returns the impersonated address
func (is *ImpersonatingSigner) GetFromAddress() common.Address {
	return is.sender
}
