package header

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-codec-lceth/shared"
)

// MultiCodecType is the multicodec code for an RLP encoded header
var MultiCodecType = uint64(cid.EthBlock)

// Header is a block header. MixDigest and Nonce are the proof-of-work seal and
// only appear in the sealed encoding. Big integer fields must be non-negative,
// nil encodes as zero.
type Header struct {
	ParentHash       common.Hash
	Coinbase         common.Address
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptsRoot     common.Hash
	LogBloom         types.Bloom
	Difficulty       *big.Int
	Number           uint64
	GasLimit         *big.Int
	GasUsed          *big.Int
	Timestamp        uint64
	ExtraData        []byte

	MixDigest common.Hash
	Nonce     types.BlockNonce
}

// NewHeader returns an empty header whose tries are all empty
func NewHeader() *Header {
	return &Header{
		StateRoot:        shared.EmptyRootHash,
		TransactionsRoot: shared.EmptyRootHash,
		ReceiptsRoot:     shared.EmptyRootHash,
		Difficulty:       new(big.Int),
		GasLimit:         new(big.Int),
		GasUsed:          new(big.Int),
		ExtraData:        []byte{},
	}
}

// NonceUint64 returns the seal nonce as a big-endian integer
func (h *Header) NonceUint64() uint64 {
	return h.Nonce.Uint64()
}

// Sealed reports whether the header carries a non-zero seal
func (h *Header) Sealed() bool {
	return h.MixDigest != (common.Hash{}) || h.Nonce != (types.BlockNonce{})
}

// Equal reports whether h and o hold the same values
func (h *Header) Equal(o *Header) bool {
	return h.ParentHash == o.ParentHash &&
		h.Coinbase == o.Coinbase &&
		h.StateRoot == o.StateRoot &&
		h.TransactionsRoot == o.TransactionsRoot &&
		h.ReceiptsRoot == o.ReceiptsRoot &&
		h.LogBloom == o.LogBloom &&
		shared.BigEqual(h.Difficulty, o.Difficulty) &&
		h.Number == o.Number &&
		shared.BigEqual(h.GasLimit, o.GasLimit) &&
		shared.BigEqual(h.GasUsed, o.GasUsed) &&
		h.Timestamp == o.Timestamp &&
		bytes.Equal(h.ExtraData, o.ExtraData) &&
		h.MixDigest == o.MixDigest &&
		h.Nonce == o.Nonce
}

// Hash returns the keccak256 hash of the header encoding. This is the identity
// children use to link to their parent; the sealed form is the canonical one.
func (h *Header) Hash(withSeal bool) common.Hash {
	return crypto.Keccak256Hash(h.RLP(withSeal))
}

// CID returns the content identifier of the sealed header
func (h *Header) CID() cid.Cid {
	return shared.Keccak256ToCid(MultiCodecType, h.Hash(true).Bytes())
}
