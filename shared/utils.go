package shared

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// EmptyRootHash is the root of an empty trie, keccak256(rlp("")).
var EmptyRootHash = crypto.Keccak256Hash(rlp.EmptyString)

// RawToCid takes the desired codec and a slice of bytes
// and returns the proper cid of the object.
func RawToCid(codec uint64, rawdata []byte) (cid.Cid, error) {
	c, err := cid.Prefix{
		Codec:    codec,
		Version:  1,
		MhType:   multihash.KECCAK_256,
		MhLength: -1,
	}.Sum(rawdata)
	if err != nil {
		return cid.Cid{}, err
	}
	return c, nil
}

// Keccak256ToCid takes a keccak256 hash and returns its cid based on the codec given.
func Keccak256ToCid(codec uint64, h []byte) cid.Cid {
	buf, err := multihash.Encode(h, multihash.KECCAK_256)
	if err != nil {
		panic(err)
	}

	return cid.NewCidV1(codec, multihash.Multihash(buf))
}

// CidToKeccak256 extracts the keccak256 digest wrapped by c
func CidToKeccak256(c cid.Cid) (common.Hash, error) {
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return common.Hash{}, fmt.Errorf("unable to decode multihash: %v", err)
	}
	if decoded.Code != multihash.KECCAK_256 {
		return common.Hash{}, fmt.Errorf("expected KECCAK_256 multihash, got code 0x%x", decoded.Code)
	}
	if len(decoded.Digest) != common.HashLength {
		return common.Hash{}, fmt.Errorf("expected %d byte digest, got %d", common.HashLength, len(decoded.Digest))
	}
	return common.BytesToHash(decoded.Digest), nil
}

// BigOrZero returns i, or zero if i is nil, so in-memory values always encode
func BigOrZero(i *big.Int) *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return i
}

// BigEqual compares two big integers by value, treating nil as zero
func BigEqual(a, b *big.Int) bool {
	return BigOrZero(a).Cmp(BigOrZero(b)) == 0
}

// CheckNonNegative rejects negative big integer fields, which RLP cannot
// represent. Nil values are treated as zero.
func CheckNonNegative(fields ...Field) error {
	for _, f := range fields {
		if i, ok := f.Val.(*big.Int); ok && i != nil && i.Sign() < 0 {
			return fmt.Errorf("%s: %w", f.Name, rlp.ErrNegativeBigInt)
		}
	}
	return nil
}

// Uint64ToBytes returns the fixed 8 byte big-endian form of u
func Uint64ToBytes(u uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	return b
}

// BytesToUint64 is the inverse of Uint64ToBytes
func BytesToUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("expected 8 byte integer, got %d bytes", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

type WriteableByteSlice struct {
	enc *[]byte
}

func NewWriteableByteSlice(enc *[]byte) WriteableByteSlice {
	return WriteableByteSlice{enc: enc}
}

func (w WriteableByteSlice) Write(b []byte) (int, error) {
	*w.enc = append(*w.enc, b...)
	return len(b), nil
}
