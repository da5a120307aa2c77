package tx_list

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/vulcanize/go-codec-lceth/tx"
)

// derivable adapts a transaction slice to types.DerivableList
type derivable []*tx.Transaction

func (d derivable) Len() int { return len(d) }

func (d derivable) EncodeIndex(i int, w *bytes.Buffer) {
	_ = d[i].EncodeRLP(w)
}

// DeriveRoot computes the transaction trie root committed to by a header's
// TransactionsRoot. An empty list yields shared.EmptyRootHash.
func DeriveRoot(txs []*tx.Transaction) common.Hash {
	return types.DeriveSha(derivable(txs), trie.NewStackTrie(nil))
}
