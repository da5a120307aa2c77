package header

import (
	"fmt"
	"io"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-codec-lceth/shared"
)

// Decode provides an IPLD codec decode interface for ETH header IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x90 when this package is invoked via init.
func Decode(na ipld.NodeAssembler, in io.Reader) error {
	src, err := shared.ReadAll(in)
	if err != nil {
		return err
	}
	return DecodeBytes(na, src)
}

/*
	type Header struct {
		ParentCID &Header
		Coinbase Address
		StateRootCID &StateTrieNode
		TxRootCID &TxTrieNode
		RctRootCID &RctTrieNode
		Bloom Bloom
		Difficulty BigInt
		Number Uint
		GasLimit BigInt
		GasUsed BigInt
		Time Uint
		Extra Bytes
		MixDigest optional Hash
		Nonce optional BlockNonce
	}
*/

// DecodeBytes is like Decode, but it uses an input buffer directly.
// Decode will grab or read all the bytes from an io.Reader anyway, so this can
// save having to copy the bytes or create a bytes.Buffer.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	header, sealed, err := DecodeRLPBytesWithSeal(src)
	if err != nil {
		return err
	}
	return DecodeHeader(na, header, sealed)
}

// DecodeHeader unpacks a Header into the NodeAssembler. MixDigest and Nonce are
// only assembled when withSeal is set, so the node re-encodes to the same form.
func DecodeHeader(na ipld.NodeAssembler, header *Header, withSeal bool) error {
	ma, err := na.BeginMap(int64(FieldCount(withSeal)))
	if err != nil {
		return err
	}
	for _, upFunc := range requiredUnpackFuncs {
		if err := upFunc(ma, header); err != nil {
			return fmt.Errorf("invalid LC-ETH Header binary (%v)", err)
		}
	}
	if withSeal {
		if err := unpackMixDigest(ma, header); err != nil {
			return fmt.Errorf("invalid LC-ETH Header binary (%v)", err)
		}
		if err := unpackNonce(ma, header); err != nil {
			return fmt.Errorf("invalid LC-ETH Header binary (%v)", err)
		}
	}
	return ma.Finish()
}

var requiredUnpackFuncs = []func(ma ipld.MapAssembler, header *Header) error{
	unpackParentCID,
	unpackCoinbase,
	unpackStateRootCID,
	unpackTxRootCID,
	unpackRctRootCID,
	unpackBloom,
	unpackDifficulty,
	unpackNumber,
	unpackGasLimit,
	unpackGasUsed,
	unpackTime,
	unpackExtra,
}

func unpackNonce(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Nonce", header.Nonce[:])
}

func unpackMixDigest(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "MixDigest", header.MixDigest.Bytes())
}

func unpackExtra(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Extra", header.ExtraData)
}

func unpackTime(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Time", shared.Uint64ToBytes(header.Timestamp))
}

func unpackGasUsed(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "GasUsed", shared.BigOrZero(header.GasUsed).Bytes())
}

func unpackGasLimit(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "GasLimit", shared.BigOrZero(header.GasLimit).Bytes())
}

func unpackNumber(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Number", shared.Uint64ToBytes(header.Number))
}

func unpackDifficulty(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Difficulty", shared.BigOrZero(header.Difficulty).Bytes())
}

func unpackBloom(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Bloom", header.LogBloom.Bytes())
}

func unpackRctRootCID(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignKeccakLink(ma, "RctRootCID", cid.EthTxReceiptTrie, header.ReceiptsRoot)
}

func unpackTxRootCID(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignKeccakLink(ma, "TxRootCID", cid.EthTxTrie, header.TransactionsRoot)
}

func unpackStateRootCID(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignKeccakLink(ma, "StateRootCID", cid.EthStateTrie, header.StateRoot)
}

func unpackCoinbase(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignBytes(ma, "Coinbase", header.Coinbase.Bytes())
}

func unpackParentCID(ma ipld.MapAssembler, header *Header) error {
	return shared.AssignKeccakLink(ma, "ParentCID", MultiCodecType, header.ParentHash)
}
