package header

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipld/go-ipld-prime"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
)

// Encode provides an IPLD codec encode interface for eth header IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x90 when this package is invoked via init.
func Encode(node ipld.Node, w io.Writer) error {
	// 1KiB can be allocated on the stack, and covers most small nodes
	// without having to grow the buffer and cause allocations.
	enc := make([]byte, 0, 1024)

	enc, err := AppendEncode(enc, node)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// AppendEncode is like Encode, but it uses a destination buffer directly.
// This means less copying of bytes, and if the destination has enough capacity,
// fewer allocations.
// A node without MixDigest and Nonce encodes to the unsealed form.
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	header := new(Header)
	sealed, err := EncodeHeader(header, inNode)
	if err != nil {
		return enc, err
	}
	if err := header.StreamRLP(shared.NewWriteableByteSlice(&enc), sealed); err != nil {
		return enc, fmt.Errorf("invalid LC-ETH Header form (unable to RLP encode header: %v)", err)
	}
	return enc, nil
}

// EncodeHeader packs the node into the provided Header and reports whether the
// node carried the seal
func EncodeHeader(header *Header, inNode ipld.Node) (bool, error) {
	// Wrap in a typed node for some basic schema form checking
	node, err := lceth.Typed(lceth.Type.Header, inNode)
	if err != nil {
		return false, fmt.Errorf("invalid LC-ETH Header form (%v)", err)
	}
	for _, pFunc := range requiredPackFuncs {
		if err := pFunc(header, node); err != nil {
			return false, fmt.Errorf("invalid LC-ETH Header form (%v)", err)
		}
	}
	sealed, err := packSeal(header, node)
	if err != nil {
		return false, fmt.Errorf("invalid LC-ETH Header form (%v)", err)
	}
	return sealed, nil
}

var requiredPackFuncs = []func(*Header, ipld.Node) error{
	packParentCID,
	packCoinbase,
	packStateRootCID,
	packTxRootCID,
	packRctRootCID,
	packBloom,
	packDifficulty,
	packNumber,
	packGasLimit,
	packGasUsed,
	packTime,
	packExtra,
}

// packSeal fills MixDigest and Nonce when both are present; they must be
// present or absent together
func packSeal(header *Header, node ipld.Node) (bool, error) {
	mdNode, err := node.LookupByString("MixDigest")
	if err != nil {
		return false, err
	}
	nNode, err := node.LookupByString("Nonce")
	if err != nil {
		return false, err
	}
	if mdNode.IsAbsent() != nNode.IsAbsent() {
		return false, fmt.Errorf("MixDigest and Nonce must both be present or both be absent")
	}
	if mdNode.IsAbsent() {
		return false, nil
	}
	if err := packMixDigest(header, node); err != nil {
		return false, err
	}
	return true, packNonce(header, node)
}

func packNonce(header *Header, node ipld.Node) error {
	nBytes, err := shared.LookupFixedBytes(node, "Nonce", len(types.BlockNonce{}))
	if err != nil {
		return err
	}
	copy(header.Nonce[:], nBytes)
	return nil
}

func packMixDigest(header *Header, node ipld.Node) error {
	mdBytes, err := shared.LookupFixedBytes(node, "MixDigest", common.HashLength)
	if err != nil {
		return err
	}
	header.MixDigest = common.BytesToHash(mdBytes)
	return nil
}

func packExtra(header *Header, node ipld.Node) error {
	extra, err := shared.LookupBytes(node, "Extra")
	if err != nil {
		return err
	}
	header.ExtraData = extra
	return nil
}

func packTime(header *Header, node ipld.Node) error {
	t, err := shared.LookupUint64(node, "Time")
	if err != nil {
		return err
	}
	header.Timestamp = t
	return nil
}

func packGasUsed(header *Header, node ipld.Node) error {
	guBytes, err := shared.LookupBytes(node, "GasUsed")
	if err != nil {
		return err
	}
	header.GasUsed = new(big.Int).SetBytes(guBytes)
	return nil
}

func packGasLimit(header *Header, node ipld.Node) error {
	glBytes, err := shared.LookupBytes(node, "GasLimit")
	if err != nil {
		return err
	}
	header.GasLimit = new(big.Int).SetBytes(glBytes)
	return nil
}

func packNumber(header *Header, node ipld.Node) error {
	num, err := shared.LookupUint64(node, "Number")
	if err != nil {
		return err
	}
	header.Number = num
	return nil
}

func packDifficulty(header *Header, node ipld.Node) error {
	diffBytes, err := shared.LookupBytes(node, "Difficulty")
	if err != nil {
		return err
	}
	header.Difficulty = new(big.Int).SetBytes(diffBytes)
	return nil
}

func packBloom(header *Header, node ipld.Node) error {
	// prevent any chance of BytesToBloom panicing on wrong bytes length
	blmBytes, err := shared.LookupFixedBytes(node, "Bloom", types.BloomByteLength)
	if err != nil {
		return err
	}
	header.LogBloom = types.BytesToBloom(blmBytes)
	return nil
}

func packRctRootCID(header *Header, node ipld.Node) error {
	h, err := shared.LookupKeccakLink(node, "RctRootCID")
	if err != nil {
		return err
	}
	header.ReceiptsRoot = h
	return nil
}

func packTxRootCID(header *Header, node ipld.Node) error {
	h, err := shared.LookupKeccakLink(node, "TxRootCID")
	if err != nil {
		return err
	}
	header.TransactionsRoot = h
	return nil
}

func packStateRootCID(header *Header, node ipld.Node) error {
	h, err := shared.LookupKeccakLink(node, "StateRootCID")
	if err != nil {
		return err
	}
	header.StateRoot = h
	return nil
}

func packCoinbase(header *Header, node ipld.Node) error {
	coinbaseBytes, err := shared.LookupFixedBytes(node, "Coinbase", common.AddressLength)
	if err != nil {
		return err
	}
	header.Coinbase = common.BytesToAddress(coinbaseBytes)
	return nil
}

func packParentCID(header *Header, node ipld.Node) error {
	h, err := shared.LookupKeccakLink(node, "ParentCID")
	if err != nil {
		return err
	}
	header.ParentHash = h
	return nil
}
