package block

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/tx"
	"github.com/vulcanize/go-codec-lceth/tx_list"
)

// ErrTxRootMismatch is returned when a header's TransactionsRoot does not match its transactions
var ErrTxRootMismatch = errors.New("transactions root mismatch")

// Block is a header together with its ordered transactions. A nil Header is
// treated as NewHeader().
type Block struct {
	Header       *header.Header
	Transactions []*tx.Transaction
}

// NewBlock returns a block with an empty header and no transactions
func NewBlock() *Block {
	return &Block{
		Header:       header.NewHeader(),
		Transactions: []*tx.Transaction{},
	}
}

// Hash returns the sealed header hash, which identifies the block
func (b *Block) Hash() common.Hash {
	return b.headerOrEmpty().Hash(true)
}

// CID returns the content identifier of the block's header
func (b *Block) CID() cid.Cid {
	return b.headerOrEmpty().CID()
}

// Equal reports whether b and o hold the same header and transactions in the same order
func (b *Block) Equal(o *Block) bool {
	if !b.headerOrEmpty().Equal(o.headerOrEmpty()) || len(b.Transactions) != len(o.Transactions) {
		return false
	}
	for i := range b.Transactions {
		if !b.Transactions[i].Equal(o.Transactions[i]) {
			return false
		}
	}
	return true
}

// TxRoot derives the transaction trie root from the block's transactions
func (b *Block) TxRoot() common.Hash {
	return tx_list.DeriveRoot(b.Transactions)
}

// VerifyTxRoot checks that the header commits to the block's transactions
func (b *Block) VerifyTxRoot() error {
	h := b.headerOrEmpty()
	if root := b.TxRoot(); root != h.TransactionsRoot {
		return fmt.Errorf("%w: header has %s, transactions derive %s", ErrTxRootMismatch, h.TransactionsRoot.Hex(), root.Hex())
	}
	return nil
}

func (b *Block) headerOrEmpty() *header.Header {
	if b.Header == nil {
		return header.NewHeader()
	}
	return b.Header
}
