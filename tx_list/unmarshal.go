package tx_list

import (
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

// Decode provides an IPLD codec decode interface for eth transaction list IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x9c when this package is invoked via init.
func Decode(na ipld.NodeAssembler, in io.Reader) error {
	src, err := shared.ReadAll(in)
	if err != nil {
		return err
	}
	return DecodeBytes(na, src)
}

// DecodeBytes is like Decode, but it uses an input buffer directly.
// Decode will grab or read all the bytes from an io.Reader anyway, so this can
// save having to copy the bytes or create a bytes.Buffer.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	txs, err := DecodeRLPBytes(src)
	if err != nil {
		return err
	}
	return DecodeTxs(na, txs)
}

// DecodeTxs unpacks a list of Transactions into the NodeAssembler
func DecodeTxs(na ipld.NodeAssembler, txs []*tx.Transaction) error {
	la, err := na.BeginList(int64(len(txs)))
	if err != nil {
		return err
	}
	for _, t := range txs {
		if err := tx.DecodeTx(la.AssembleValue(), t); err != nil {
			return fmt.Errorf("invalid LC-ETH Transactions binary (%v)", err)
		}
	}
	return la.Finish()
}
