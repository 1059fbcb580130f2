package util

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// StringToECDSAPrivateKey parses a hex encoded secp256k1 private key, with or without 0x
func StringToECDSAPrivateKey(pk string) (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return privateKey, nil
}

func DeriveAddressFromECDSAPrivateKey(pk *ecdsa.PrivateKey) (common.Address, error) {
	if pk == nil {
		return common.Address{}, fmt.Errorf("private key is nil")
	}
	return crypto.PubkeyToAddress(pk.PublicKey), nil
}

func DeriveAddressFromECDSAPrivateKeyString(pk string) (common.Address, error) {
	privateKey, err := StringToECDSAPrivateKey(pk)
	if err != nil {
		return common.Address{}, err
	}
	return DeriveAddressFromECDSAPrivateKey(privateKey)
}

// ParseUint256 parses a decimal or 0x prefixed hex string. An empty string is zero.
func ParseUint256(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			digits = "0"
		}
		value, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("invalid hex integer %q: %w", s, err)
		}
		return value, nil
	}
	value, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal integer %q: %w", s, err)
	}
	return value, nil
}

// ParseAddress parses an optional address. An empty string returns nil.
func ParseAddress(s string) (*common.Address, error) {
	if s == "" {
		return nil, nil
	}
	if !common.IsHexAddress(s) {
		return nil, fmt.Errorf("invalid address %q", s)
	}
	address := common.HexToAddress(s)
	return &address, nil
}
