package transaction

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/talentlessguy/hardhat/pkg/signature"
)

// LegacyTransactionRequest is an unsigned pre-typed transaction.
//
// The order of the fields is the RLP encoding order.
type LegacyTransactionRequest struct {
	Nonce    uint64
	GasPrice uint256.Int
	GasLimit uint64
	Kind     TransactionKind
	Value    uint256.Int
	Input    []byte
}

// legacyRequestRLP is the wire layout of an unsigned legacy transaction
type legacyRequestRLP struct {
	Nonce    uint64
	GasPrice *uint256.Int
	GasLimit uint64
	Kind     TransactionKind
	Value    *uint256.Int
	Input    []byte
}

// NewLegacyTransactionRequestFromSigned strips the signature from tx.
// The returned request does not share memory with tx.
func NewLegacyTransactionRequestFromSigned(tx *LegacySignedTransaction) *LegacyTransactionRequest {
	return &LegacyTransactionRequest{
		Nonce:    tx.nonce,
		GasPrice: tx.gasPrice,
		GasLimit: tx.gasLimit,
		Kind:     tx.kind,
		Value:    tx.value,
		Input:    common.CopyBytes(tx.input),
	}
}

// Encode returns the RLP encoding of the unsigned transaction
func (r *LegacyTransactionRequest) Encode() []byte {
	return mustEncode(&legacyRequestRLP{
		Nonce:    r.Nonce,
		GasPrice: &r.GasPrice,
		GasLimit: r.GasLimit,
		Kind:     r.Kind,
		Value:    &r.Value,
		Input:    r.Input,
	})
}

// Hash computes the hash of the unsigned transaction; this is the signing input.
func (r *LegacyTransactionRequest) Hash() common.Hash {
	return crypto.Keccak256Hash(r.Encode())
}

// Sign signs the transaction with key.
func (r *LegacyTransactionRequest) Sign(key *ecdsa.PrivateKey) (*LegacySignedTransaction, error) {
	sig, err := signature.NewSignature(r.Hash(), key)
	if err != nil {
		return nil, err
	}
	return newLegacySignedTransaction(r, sig, false), nil
}

// FakeSign creates a transaction that recovers to sender without knowing its key.
// Only meant for impersonated accounts on development networks.
func (r *LegacyTransactionRequest) FakeSign(sender common.Address) *LegacySignedTransaction {
	sig := signature.MakeFakeSignature(signature.FakeSignatureTagLegacy, sender)
	return newLegacySignedTransaction(r, sig, true)
}

func (r *LegacyTransactionRequest) String() string {
	return fmt.Sprintf("LegacyTransactionRequest{nonce: %d, gasPrice: %s, gasLimit: %d, kind: %s, value: %s, input: %d bytes}",
		r.Nonce, r.GasPrice.Dec(), r.GasLimit, r.Kind, r.Value.Dec(), len(r.Input))
}

func mustEncode(val interface{}) []byte {
	encoded, err := rlp.EncodeToBytes(val)
	if err != nil {
		// only reachable if a field type stops being RLP encodable
		panic(fmt.Sprintf("failed to RLP encode legacy transaction: %v", err))
	}
	return encoded
}
