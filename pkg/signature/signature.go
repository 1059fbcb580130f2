package signature

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// recoveryIdOffset is added to the secp256k1 recovery id to form the legacy V value
const recoveryIdOffset = 27

// SignatureError is the only error produced while creating or recovering a signature
type SignatureError struct {
	err error
}

func newSignatureError(err error, message string) *SignatureError {
	return &SignatureError{err: errors.Wrap(err, message)}
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature error: %s", e.err.Error())
}

func (e *SignatureError) Unwrap() error {
	return e.err
}

// Cause returns the underlying failure reported by the crypto primitive
func (e *SignatureError) Cause() error {
	return errors.Cause(e.err)
}

// Signature is a recoverable secp256k1 signature in legacy transaction form
type Signature struct {
	R uint256.Int
	S uint256.Int
	V uint64
}

// NewSignature signs hash with key. The key is only used for the duration of the call.
func NewSignature(hash common.Hash, key *ecdsa.PrivateKey) (*Signature, error) {
	if key == nil || key.D == nil {
		return nil, newSignatureError(errors.New("private key is nil"), "failed to sign hash")
	}

	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return nil, newSignatureError(err, "failed to sign hash")
	}

	return fromRecoverableBytes(sig), nil
}

// fromRecoverableBytes converts the [R || S || recid] layout returned by crypto.Sign
func fromRecoverableBytes(sig []byte) *Signature {
	s := &Signature{
		V: uint64(sig[crypto.RecoveryIDOffset]) + recoveryIdOffset,
	}
	s.R.SetBytes(sig[:32])
	s.S.SetBytes(sig[32:64])
	return s
}

// Bytes returns the signature in the 65 byte [R || S || V] layout
func (s *Signature) Bytes() []byte {
	out := make([]byte, crypto.SignatureLength)
	r := s.R.Bytes32()
	sv := s.S.Bytes32()
	copy(out[:32], r[:])
	copy(out[32:64], sv[:])
	out[crypto.RecoveryIDOffset] = byte(s.V)
	return out
}

// RecoveryId returns the secp256k1 recovery id (0 or 1) encoded in V
func (s *Signature) RecoveryId() (byte, error) {
	if s.V != recoveryIdOffset && s.V != recoveryIdOffset+1 {
		return 0, newSignatureError(fmt.Errorf("v = %d", s.V), "invalid recovery id")
	}
	return byte(s.V - recoveryIdOffset), nil
}

// RecoverAddress recovers the address of the key that produced the signature over hash
func (s *Signature) RecoverAddress(hash common.Hash) (common.Address, error) {
	recoveryId, err := s.RecoveryId()
	if err != nil {
		return common.Address{}, err
	}

	sig := s.Bytes()
	sig[crypto.RecoveryIDOffset] = recoveryId

	pubKey, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, newSignatureError(err, "failed to recover public key")
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}

func (s *Signature) String() string {
	return fmt.Sprintf("Signature{r: %s, s: %s, v: %d}", s.R.Hex(), s.S.Hex(), s.V)
}
