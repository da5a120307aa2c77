package tx

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-codec-lceth/shared"
)

// MultiCodecType is the multicodec code for a single RLP encoded transaction
var MultiCodecType = uint64(cid.EthTx)

// Transaction is the 9 field signed transaction. Fields are encoded in declaration order.
// Big integer fields must be non-negative, nil encodes as zero.
type Transaction struct {
	Nonce     uint64
	GasPrice  *big.Int
	GasLimit  *big.Int
	Recipient Recipient
	Amount    *big.Int
	Payload   []byte

	// Signature values
	V *big.Int
	R *big.Int
	S *big.Int
}

// NewTransaction returns a zeroed contract-creation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		GasPrice: new(big.Int),
		GasLimit: new(big.Int),
		Amount:   new(big.Int),
		Payload:  []byte{},
		V:        new(big.Int),
		R:        new(big.Int),
		S:        new(big.Int),
	}
}

// Equal reports whether t and o hold the same values
func (t *Transaction) Equal(o *Transaction) bool {
	return t.Nonce == o.Nonce &&
		shared.BigEqual(t.GasPrice, o.GasPrice) &&
		shared.BigEqual(t.GasLimit, o.GasLimit) &&
		t.Recipient == o.Recipient &&
		shared.BigEqual(t.Amount, o.Amount) &&
		bytes.Equal(t.Payload, o.Payload) &&
		shared.BigEqual(t.V, o.V) &&
		shared.BigEqual(t.R, o.R) &&
		shared.BigEqual(t.S, o.S)
}

// Hash returns the keccak256 hash of the transaction encoding
func (t *Transaction) Hash() common.Hash {
	return crypto.Keccak256Hash(t.RLP())
}

// CID returns the content identifier of the transaction encoding
func (t *Transaction) CID() cid.Cid {
	return shared.Keccak256ToCid(MultiCodecType, t.Hash().Bytes())
}
