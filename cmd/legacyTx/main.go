package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/talentlessguy/hardhat/pkg/config"
	"github.com/talentlessguy/hardhat/pkg/logger"
	"github.com/talentlessguy/hardhat/pkg/transaction"
	"github.com/talentlessguy/hardhat/pkg/transactionSigner"
	"github.com/talentlessguy/hardhat/pkg/util"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var requestFlags = []cli.Flag{
	&cli.Uint64Flag{
		Name:  "nonce",
		Usage: "Sender nonce",
	},
	&cli.StringFlag{
		Name:  "gas-price",
		Usage: "Gas price in wei (decimal or 0x hex)",
		Value: "0",
	},
	&cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "Gas limit",
		Value: 21000,
	},
	&cli.StringFlag{
		Name:  "to",
		Usage: "Recipient address; leave empty to create a contract",
	},
	&cli.StringFlag{
		Name:  "value",
		Usage: "Value in wei (decimal or 0x hex)",
		Value: "0",
	},
	&cli.StringFlag{
		Name:  "input",
		Usage: "Call data or init code (0x hex)",
		Value: "0x",
	},
}

func main() {
	app := &cli.App{
		Name:  "legacy-tx",
		Usage: "Encode, hash and sign legacy (pre-typed) Ethereum transactions",
		Description: `Builds legacy transactions and prints their canonical RLP encoding.

This tool can:
- Encode and hash an unsigned transaction
- Sign a transaction with a secp256k1 private key
- Fake sign a transaction for an impersonated account on a development chain`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvLegacyTxVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "encode",
				Usage:  "Print the RLP encoding of an unsigned transaction",
				Flags:  requestFlags,
				Action: encodeCommand,
			},
			{
				Name:   "hash",
				Usage:  "Print the signing hash of an unsigned transaction",
				Flags:  requestFlags,
				Action: hashCommand,
			},
			{
				Name:  "sign",
				Usage: "Sign a transaction with a private key",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "private-key",
						Usage:    "Hex encoded secp256k1 private key",
						EnvVars:  []string{config.EnvLegacyTxPrivateKey},
						Required: true,
					},
					&cli.Uint64Flag{
						Name:    "chain-id",
						Usage:   fmt.Sprintf("Chain ID: %s", config.GetSupportedChainIDsString()),
						EnvVars: []string{config.EnvLegacyTxChainID},
						Value:   uint64(config.ChainId_EthereumAnvil),
					},
				}, requestFlags...),
				Action: signCommand,
			},
			{
				Name:  "fake-sign",
				Usage: "Fake sign a transaction for an impersonated account",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "sender",
						Usage:    "Impersonated sender address",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:    "chain-id",
						Usage:   "Chain ID; must be a development chain",
						EnvVars: []string{config.EnvLegacyTxChainID},
						Value:   uint64(config.ChainId_EthereumAnvil),
					},
				}, requestFlags...),
				Action: fakeSignCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// parseRequest builds a request from the request flags
func parseRequest(c *cli.Context) (*transaction.LegacyTransactionRequest, error) {
	gasPrice, err := util.ParseUint256(c.String("gas-price"))
	if err != nil {
		return nil, fmt.Errorf("invalid gas price: %w", err)
	}
	value, err := util.ParseUint256(c.String("value"))
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	to, err := util.ParseAddress(c.String("to"))
	if err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	input, err := hexutil.Decode(c.String("input"))
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	kind := transaction.NewCreateKind()
	if to != nil {
		kind = transaction.NewCallKind(*to)
	}

	return &transaction.LegacyTransactionRequest{
		Nonce:    c.Uint64("nonce"),
		GasPrice: *gasPrice,
		GasLimit: c.Uint64("gas-limit"),
		Kind:     kind,
		Value:    *value,
		Input:    input,
	}, nil
}

func encodeCommand(c *cli.Context) error {
	request, err := parseRequest(c)
	if err != nil {
		return err
	}
	fmt.Println(hexutil.Encode(request.Encode()))
	return nil
}

func hashCommand(c *cli.Context) error {
	request, err := parseRequest(c)
	if err != nil {
		return err
	}
	fmt.Println(request.Hash().Hex())
	return nil
}

func signCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	signerConfig := &config.TransactionSignerConfig{
		PrivateKey: c.String("private-key"),
		ChainID:    config.ChainId(c.Uint64("chain-id")),
	}
	signer, err := transactionSigner.NewTransactionSigner(signerConfig, l)
	if err != nil {
		return fmt.Errorf("failed to create signer: %w", err)
	}

	return signAndPrint(c, signer, l)
}

func fakeSignCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	signerConfig := &config.TransactionSignerConfig{
		ChainID:              config.ChainId(c.Uint64("chain-id")),
		ImpersonatedAccounts: []string{c.String("sender")},
	}
	signer, err := transactionSigner.NewTransactionSignerForSender(signerConfig, common.HexToAddress(c.String("sender")), l)
	if err != nil {
		return fmt.Errorf("failed to create impersonating signer: %w", err)
	}

	return signAndPrint(c, signer, l)
}

func signAndPrint(c *cli.Context, signer transactionSigner.ITransactionSigner, l *zap.Logger) error {
	request, err := parseRequest(c)
	if err != nil {
		return err
	}

	signed, err := signer.SignTransaction(context.Background(), request)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	sender, err := signed.RecoverSender()
	if err != nil {
		return fmt.Errorf("failed to recover sender: %w", err)
	}

	l.Sugar().Infow("Signed legacy transaction",
		zap.String("txHash", signed.Hash().Hex()),
		zap.String("from", sender.Hex()),
		zap.Bool("isFake", signed.IsFake()),
	)

	sig := signed.Signature()
	fmt.Printf("raw:    %s\n", hexutil.Encode(signed.Encode()))
	fmt.Printf("hash:   %s\n", signed.Hash().Hex())
	fmt.Printf("from:   %s\n", sender.Hex())
	fmt.Printf("v:      %d\n", sig.V)
	fmt.Printf("r:      %s\n", sig.R.Hex())
	fmt.Printf("s:      %s\n", sig.S.Hex())
	fmt.Printf("isFake: %t\n", signed.IsFake())
	return nil
}
