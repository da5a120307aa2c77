package block

import (
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
	"github.com/vulcanize/go-codec-lceth/tx_list"
)

/*
	type Block struct {
		Header       Header
		Transactions Transactions
	}
*/

// Encode provides an IPLD codec encode interface for full eth block IPLDs.
// There is no multicodec for the full block form, so this is not registered with the plugin.
func Encode(node ipld.Node, w io.Writer) error {
	enc := make([]byte, 0, 1024)

	enc, err := AppendEncode(enc, node)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// AppendEncode is like Encode, but it uses a destination buffer directly.
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	blk := new(Block)
	sealed, err := EncodeBlock(blk, inNode)
	if err != nil {
		return enc, err
	}
	if err := blk.StreamRLP(shared.NewWriteableByteSlice(&enc), sealed); err != nil {
		return enc, fmt.Errorf("invalid LC-ETH Block form (unable to RLP encode block: %v)", err)
	}
	return enc, nil
}

// EncodeBlock packs the node into the provided Block and reports whether its
// header carried the seal
func EncodeBlock(blk *Block, inNode ipld.Node) (bool, error) {
	// Wrap in a typed node for some basic schema form checking
	node, err := lceth.Typed(lceth.Type.Block, inNode)
	if err != nil {
		return false, fmt.Errorf("invalid LC-ETH Block form (%v)", err)
	}
	headerNode, err := node.LookupByString("Header")
	if err != nil {
		return false, fmt.Errorf("invalid LC-ETH Block form (%v)", err)
	}
	blk.Header = new(header.Header)
	sealed, err := header.EncodeHeader(blk.Header, headerNode)
	if err != nil {
		return false, err
	}
	txsNode, err := node.LookupByString("Transactions")
	if err != nil {
		return false, fmt.Errorf("invalid LC-ETH Block form (%v)", err)
	}
	blk.Transactions = make([]*tx.Transaction, 0, txsNode.Length())
	return sealed, tx_list.EncodeTxs(&blk.Transactions, txsNode)
}
