package signature

import (
	"github.com/ethereum/go-ethereum/common"
)

// FakeSignatureTag separates the fake signatures of different transaction formats.
// The tag determines V, so a fake signature made for one format never matches another.
type FakeSignatureTag uint64

const (
	// FakeSignatureTagLegacy is used by pre-typed transactions without replay protection
	FakeSignatureTagLegacy FakeSignatureTag = 0
)

// V returns the V value used by fake signatures carrying this tag
func (t FakeSignatureTag) V() uint64 {
	if t == FakeSignatureTagLegacy {
		return recoveryIdOffset
	}
	// same parity offset EIP-155 applies to chain ids
	return uint64(t)*2 + 35
}

// MakeFakeSignature builds a signature for an impersonated sender.
//
// R and S both hold the sender address. The result is well formed but does not
// verify against any key; RecoverFakeSender is the matching recovery.
func MakeFakeSignature(tag FakeSignatureTag, sender common.Address) *Signature {
	s := &Signature{
		V: tag.V(),
	}
	s.R.SetBytes(sender.Bytes())
	s.S.SetBytes(sender.Bytes())
	return s
}

// RecoverFakeSender returns the sender embedded in a signature made by MakeFakeSignature
func RecoverFakeSender(s *Signature) common.Address {
	r := s.R.Bytes20()
	return common.Address(r)
}
