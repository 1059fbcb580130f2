package transaction

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/talentlessguy/hardhat/pkg/signature"
)

// LegacySignedTransaction is an immutable signed pre-typed transaction.
// It must be handled by pointer; copying it would copy the hash cache guard.
type LegacySignedTransaction struct {
	nonce    uint64
	gasPrice uint256.Int
	gasLimit uint64
	kind     TransactionKind
	value    uint256.Int
	input    []byte

	signature signature.Signature
	isFake    bool

	hashOnce sync.Once
	hash     common.Hash
}

// legacySignedRLP is the wire layout of a signed legacy transaction
type legacySignedRLP struct {
	Nonce    uint64
	GasPrice *uint256.Int
	GasLimit uint64
	Kind     TransactionKind
	Value    *uint256.Int
	Input    []byte
	V        uint64
	R        *uint256.Int
	S        *uint256.Int
}

func newLegacySignedTransaction(r *LegacyTransactionRequest, sig *signature.Signature, isFake bool) *LegacySignedTransaction {
	return &LegacySignedTransaction{
		nonce:     r.Nonce,
		gasPrice:  r.GasPrice,
		gasLimit:  r.GasLimit,
		kind:      r.Kind,
		value:     r.Value,
		input:     common.CopyBytes(r.Input),
		signature: *sig,
		isFake:    isFake,
	}
}

func (tx *LegacySignedTransaction) Nonce() uint64 { return tx.nonce }

func (tx *LegacySignedTransaction) GasPrice() *uint256.Int { return tx.gasPrice.Clone() }

func (tx *LegacySignedTransaction) GasLimit() uint64 { return tx.gasLimit }

func (tx *LegacySignedTransaction) Kind() TransactionKind { return tx.kind }

func (tx *LegacySignedTransaction) Value() *uint256.Int { return tx.value.Clone() }

// Input returns a copy of the call data
func (tx *LegacySignedTransaction) Input() []byte { return common.CopyBytes(tx.input) }

// Signature returns a copy of the signature
func (tx *LegacySignedTransaction) Signature() signature.Signature { return tx.signature }

// IsFake reports whether the signature was made for an impersonated sender.
// Fake transactions must never be trusted outside development networks.
func (tx *LegacySignedTransaction) IsFake() bool { return tx.isFake }

// Encode returns the RLP encoding of the transaction including its signature
func (tx *LegacySignedTransaction) Encode() []byte {
	return mustEncode(&legacySignedRLP{
		Nonce:    tx.nonce,
		GasPrice: &tx.gasPrice,
		GasLimit: tx.gasLimit,
		Kind:     tx.kind,
		Value:    &tx.value,
		Input:    tx.input,
		V:        tx.signature.V,
		R:        &tx.signature.R,
		S:        &tx.signature.S,
	})
}

// Hash returns the transaction hash, computed over the signed encoding on first use.
// This is not the signing hash; see LegacyTransactionRequest.Hash.
func (tx *LegacySignedTransaction) Hash() common.Hash {
	tx.hashOnce.Do(func() {
		tx.hash = crypto.Keccak256Hash(tx.Encode())
	})
	return tx.hash
}

// ToRequest strips the signature. The request does not share memory with tx.
func (tx *LegacySignedTransaction) ToRequest() *LegacyTransactionRequest {
	return NewLegacyTransactionRequestFromSigned(tx)
}

// RecoverSender returns the address that signed the transaction.
// For fake transactions this is the impersonated address.
func (tx *LegacySignedTransaction) RecoverSender() (common.Address, error) {
	if tx.isFake {
		return signature.RecoverFakeSender(&tx.signature), nil
	}
	return tx.signature.RecoverAddress(tx.ToRequest().Hash())
}

func (tx *LegacySignedTransaction) String() string {
	return fmt.Sprintf("LegacySignedTransaction{hash: %s, nonce: %d, kind: %s, isFake: %t}",
		tx.Hash().Hex(), tx.nonce, tx.kind, tx.isFake)
}
