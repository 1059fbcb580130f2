package transaction

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentlessguy/hardhat/pkg/signature"
)

func dummyRequest() *LegacyTransactionRequest {
	return &LegacyTransactionRequest{
		Nonce:    1,
		GasPrice: *uint256.NewInt(2),
		GasLimit: 3,
		Kind:     NewCallKind(common.HexToAddress("0xc014ba5ec014ba5ec014ba5ec014ba5ec014ba5e")),
		Value:    *uint256.NewInt(4),
		Input:    common.FromHex("0x1234"),
	}
}

func Test_LegacyTransactionRequest_Encode(t *testing.T) {
	t.Run("Should match the reference encoding", func(t *testing.T) {
		expected := "0xdc01020394c014ba5ec014ba5ec014ba5ec014ba5ec014ba5e04821234"
		assert.Equal(t, expected, hexutil.Encode(dummyRequest().Encode()))
	})

	t.Run("Should encode an empty slot for contract creation", func(t *testing.T) {
		request := &LegacyTransactionRequest{
			Nonce:    7,
			GasPrice: *uint256.NewInt(1_000_000_000),
			GasLimit: 100_000,
			Kind:     NewCreateKind(),
			Input:    common.FromHex("0x6080604052"),
		}
		assert.Equal(t, "0xd207843b9aca00830186a08080856080604052", hexutil.Encode(request.Encode()))
		assert.Equal(t,
			common.HexToHash("0x99f7396990614fe2d737ccff704c38a108c3e694951d47fe987a56374f39b863"),
			request.Hash(),
		)
	})

	t.Run("Should encode every field of a zero request", func(t *testing.T) {
		request := &LegacyTransactionRequest{}
		assert.Equal(t, "0xc6808080808080", hexutil.Encode(request.Encode()))
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		first := dummyRequest().Encode()
		second := dummyRequest().Encode()
		assert.Equal(t, first, second)

		request := dummyRequest()
		assert.Equal(t, request.Encode(), request.Encode())
	})

	t.Run("Should encode the fields in declared order", func(t *testing.T) {
		request := dummyRequest()
		to := request.Kind.To()

		ordered, err := rlp.EncodeToBytes([]interface{}{
			request.Nonce, &request.GasPrice, request.GasLimit, to.Bytes(), &request.Value, request.Input,
		})
		require.NoError(t, err)
		assert.Equal(t, ordered, request.Encode())

		permuted, err := rlp.EncodeToBytes([]interface{}{
			request.Nonce, request.GasLimit, &request.GasPrice, to.Bytes(), &request.Value, request.Input,
		})
		require.NoError(t, err)
		assert.NotEqual(t, permuted, request.Encode())

		moved, err := rlp.EncodeToBytes([]interface{}{
			request.Nonce, &request.GasPrice, request.GasLimit, &request.Value, to.Bytes(), request.Input,
		})
		require.NoError(t, err)
		assert.NotEqual(t, moved, request.Encode())
	})

	t.Run("Should encode a full width value", func(t *testing.T) {
		request := dummyRequest()
		request.Value = *new(uint256.Int).SetAllOne()

		encoded := request.Encode()
		var decoded []rlp.RawValue
		require.NoError(t, rlp.DecodeBytes(encoded, &decoded))
		require.Len(t, decoded, 6)

		var value uint256.Int
		require.NoError(t, rlp.DecodeBytes(decoded[4], &value))
		assert.Equal(t, request.Value, value)
	})
}

func Test_LegacyTransactionRequest_Hash(t *testing.T) {
	t.Run("Should match the reference hash", func(t *testing.T) {
		expected := common.HexToHash("0x41a46eddeeb251dc89bfe9d59ad27413909630a4c973dbdbbf23ab4aeed02818")
		assert.Equal(t, expected, dummyRequest().Hash())
	})

	t.Run("Should be the keccak of the encoding", func(t *testing.T) {
		request := dummyRequest()
		assert.Equal(t, crypto.Keccak256Hash(request.Encode()), request.Hash())
	})

	t.Run("Should change with any field", func(t *testing.T) {
		base := dummyRequest().Hash()

		mutations := []func(r *LegacyTransactionRequest){
			func(r *LegacyTransactionRequest) { r.Nonce++ },
			func(r *LegacyTransactionRequest) { r.GasPrice.AddUint64(&r.GasPrice, 1) },
			func(r *LegacyTransactionRequest) { r.GasLimit++ },
			func(r *LegacyTransactionRequest) { r.Kind = NewCreateKind() },
			func(r *LegacyTransactionRequest) { r.Value.AddUint64(&r.Value, 1) },
			func(r *LegacyTransactionRequest) { r.Input = append(r.Input, 0x56) },
		}
		for _, mutate := range mutations {
			request := dummyRequest()
			mutate(request)
			assert.NotEqual(t, base, request.Hash())
		}
	})
}

func Test_LegacyTransactionRequest_Sign(t *testing.T) {
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	expectedSender := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	t.Run("Should recover the signer", func(t *testing.T) {
		request := dummyRequest()
		signed, err := request.Sign(key)
		require.NoError(t, err)

		assert.False(t, signed.IsFake())

		sig := signed.Signature()
		recovered, err := sig.RecoverAddress(request.Hash())
		require.NoError(t, err)
		assert.Equal(t, expectedSender, recovered)

		sender, err := signed.RecoverSender()
		require.NoError(t, err)
		assert.Equal(t, expectedSender, sender)
	})

	t.Run("Should recover random signers", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			randomKey, err := crypto.GenerateKey()
			require.NoError(t, err)

			signed, err := dummyRequest().Sign(randomKey)
			require.NoError(t, err)

			sender, err := signed.RecoverSender()
			require.NoError(t, err)
			assert.Equal(t, crypto.PubkeyToAddress(randomKey.PublicKey), sender)
		}
	})

	t.Run("Should return a signature error for a nil key", func(t *testing.T) {
		signed, err := dummyRequest().Sign(nil)
		require.Error(t, err)
		assert.Nil(t, signed)

		var sigErr *signature.SignatureError
		assert.True(t, errors.As(err, &sigErr))
	})

	t.Run("Should not alias the request input", func(t *testing.T) {
		request := dummyRequest()
		signed, err := request.Sign(key)
		require.NoError(t, err)

		hash := signed.Hash()
		request.Input[0] = 0xff

		assert.Equal(t, common.FromHex("0x1234"), signed.Input())
		assert.Equal(t, hash, crypto.Keccak256Hash(signed.Encode()))
	})
}

func Test_LegacyTransactionRequest_FakeSign(t *testing.T) {
	t.Run("Should match the reference fake signed hash", func(t *testing.T) {
		request := &LegacyTransactionRequest{
			Nonce:    0,
			GasPrice: *uint256.NewInt(678_912),
			GasLimit: 30_000,
			Kind:     NewCallKind(common.HexToAddress("0xb5bc06d4548a3ac17d72b372ae1e416bf65b8ead")),
			Value:    *uint256.NewInt(1),
		}
		fakeSender := common.HexToAddress("0xa5bc06d4548a3ac17d72b372ae1e416bf65b8ead")

		signed := request.FakeSign(fakeSender)

		expected := common.HexToHash("0xe2fea338f86a021a90028336d380e030030ff98466f13a0367061729232df0ca")
		assert.Equal(t, expected, signed.Hash())
		assert.Equal(t,
			"0xf84a80830a5c0082753094b5bc06d4548a3ac17d72b372ae1e416bf65b8ead01801b94a5bc06d4548a3ac17d72b372ae1e416bf65b8ead94a5bc06d4548a3ac17d72b372ae1e416bf65b8ead",
			hexutil.Encode(signed.Encode()),
		)
	})

	t.Run("Should recover the impersonated sender", func(t *testing.T) {
		senders := []common.Address{
			{},
			common.HexToAddress("0xa5bc06d4548a3ac17d72b372ae1e416bf65b8ead"),
			common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"),
		}
		for _, sender := range senders {
			signed := dummyRequest().FakeSign(sender)
			assert.True(t, signed.IsFake())

			recovered, err := signed.RecoverSender()
			require.NoError(t, err)
			assert.Equal(t, sender, recovered)
		}
	})

	t.Run("Should differ from a real signature for the same sender", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		sender := crypto.PubkeyToAddress(key.PublicKey)

		realSigned, err := dummyRequest().Sign(key)
		require.NoError(t, err)
		fake := dummyRequest().FakeSign(sender)

		assert.NotEqual(t, realSigned.Hash(), fake.Hash())
		assert.NotEqual(t, realSigned.Signature(), fake.Signature())
	})
}

func FuzzLegacyTransactionRequestDeterminism(f *testing.F) {
	f.Add(uint64(1), uint64(2), uint64(3), []byte{0xc0, 0x14}, uint64(4), []byte{0x12, 0x34})
	f.Add(uint64(0), uint64(0), uint64(0), []byte{}, uint64(0), []byte{})

	f.Fuzz(func(t *testing.T, nonce, gasPrice, gasLimit uint64, to []byte, value uint64, input []byte) {
		build := func() *LegacyTransactionRequest {
			kind := NewCreateKind()
			if len(to) > 0 {
				kind = NewCallKind(common.BytesToAddress(to))
			}
			return &LegacyTransactionRequest{
				Nonce:    nonce,
				GasPrice: *uint256.NewInt(gasPrice),
				GasLimit: gasLimit,
				Kind:     kind,
				Value:    *uint256.NewInt(value),
				Input:    common.CopyBytes(input),
			}
		}

		first, second := build(), build()
		require.Equal(t, first.Encode(), second.Encode())
		require.Equal(t, crypto.Keccak256Hash(first.Encode()), second.Hash())

		var decoded []rlp.RawValue
		require.NoError(t, rlp.DecodeBytes(first.Encode(), &decoded))
		require.Len(t, decoded, 6)
	})
}
