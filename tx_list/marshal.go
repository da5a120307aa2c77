package tx_list

import (
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

// Encode provides an IPLD codec encode interface for eth transaction list IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x9c when this package is invoked via init.
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
func AppendEncode(enc []byte, inNode ipld.Node) ([]byte, error) {
	var txs []*tx.Transaction
	if err := EncodeTxs(&txs, inNode); err != nil {
		return enc, err
	}
	if err := StreamRLP(shared.NewWriteableByteSlice(&enc), txs); err != nil {
		return enc, fmt.Errorf("invalid LC-ETH Transactions form (unable to RLP encode transactions: %v)", err)
	}
	return enc, nil
}

// EncodeTxs packs the list node into Transactions
func EncodeTxs(txs *[]*tx.Transaction, inNode ipld.Node) error {
	// Wrap in a typed node for some basic schema form checking
	node, err := lceth.Typed(lceth.Type.Transactions, inNode)
	if err != nil {
		return fmt.Errorf("invalid LC-ETH Transactions form (%v)", err)
	}
	txsIt := node.ListIterator()
	for !txsIt.Done() {
		_, txNode, err := txsIt.Next()
		if err != nil {
			return err
		}
		t := new(tx.Transaction)
		if err := tx.EncodeTx(t, txNode); err != nil {
			return fmt.Errorf("invalid LC-ETH Transactions form (%v)", err)
		}
		*txs = append(*txs, t)
	}
	return nil
}
