package transaction

import (
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// TransactionKind tells whether a transaction creates a contract or calls an address.
// The target is never modified after construction, so copies may share it.
type TransactionKind struct {
	to *common.Address
}

// NewCreateKind returns the kind of a contract creation
func NewCreateKind() TransactionKind {
	return TransactionKind{}
}

// NewCallKind returns the kind of a call to the given address
func NewCallKind(to common.Address) TransactionKind {
	return TransactionKind{to: &to}
}

// IsCreate reports whether the transaction creates a contract
func (k TransactionKind) IsCreate() bool {
	return k.to == nil
}

// To returns the call target, or nil for a contract creation
func (k TransactionKind) To() *common.Address {
	if k.to == nil {
		return nil
	}
	to := *k.to
	return &to
}

func (k TransactionKind) Equal(other TransactionKind) bool {
	if k.to == nil || other.to == nil {
		return k.to == nil && other.to == nil
	}
	return *k.to == *other.to
}

// EncodeRLP writes the empty string for a creation and the 20 address bytes for a call
func (k TransactionKind) EncodeRLP(w io.Writer) error {
	if k.to == nil {
		return rlp.Encode(w, []byte{})
	}
	return rlp.Encode(w, k.to.Bytes())
}

func (k TransactionKind) String() string {
	if k.to == nil {
		return "create"
	}
	return "call(" + k.to.Hex() + ")"
}
