package tx_list

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

// MultiCodecType is the multicodec code for an RLP encoded list of transactions
var MultiCodecType = uint64(0x9c)

const typeName = "transactions"

// StreamRLP writes txs as one RLP list, each transaction individually encoded.
// Order is preserved, duplicates are kept.
func StreamRLP(w io.Writer, txs []*tx.Transaction) error {
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	for _, t := range txs {
		if err := t.EncodeRLP(buf); err != nil {
			return err
		}
	}
	buf.ListEnd(l)
	return buf.Flush()
}

// RLP returns the encoded transaction list, or nil if any transaction fails to encode
func RLP(txs []*tx.Transaction) []byte {
	enc := make([]byte, 0, 128*len(txs)+8)
	if err := StreamRLP(shared.NewWriteableByteSlice(&enc), txs); err != nil {
		return nil
	}
	return enc
}

// DecodeRLPBytes decodes a list of transactions, failing on the first bad element
func DecodeRLPBytes(src []byte) ([]*tx.Transaction, error) {
	items, err := shared.SplitList(typeName, src)
	if err != nil {
		return nil, err
	}
	txs := make([]*tx.Transaction, 0, len(items))
	for i, item := range items {
		t, err := tx.DecodeRLPBytes(item)
		if err != nil {
			return nil, lceth.FieldError(typeName, "Transaction", i, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}
