package tx

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipld/go-ipld-prime"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
)

// Encode provides an IPLD codec encode interface for eth transaction IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x93 when this package is invoked via init.
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
	tx := new(Transaction)
	if err := EncodeTx(tx, inNode); err != nil {
		return enc, err
	}
	if err := tx.EncodeRLP(shared.NewWriteableByteSlice(&enc)); err != nil {
		return enc, fmt.Errorf("invalid LC-ETH Transaction form (unable to RLP encode transaction: %v)", err)
	}
	return enc, nil
}

// EncodeTx packs the node into the provided Transaction
func EncodeTx(tx *Transaction, inNode ipld.Node) error {
	// Wrap in a typed node for some basic schema form checking
	node, err := lceth.Typed(lceth.Type.Transaction, inNode)
	if err != nil {
		return fmt.Errorf("invalid LC-ETH Transaction form (%v)", err)
	}
	for _, pFunc := range RequiredPackFuncs {
		if err := pFunc(tx, node); err != nil {
			return fmt.Errorf("invalid LC-ETH Transaction form (%v)", err)
		}
	}
	return nil
}

var RequiredPackFuncs = []func(*Transaction, ipld.Node) error{
	packAccountNonce,
	packGasPrice,
	packGasLimit,
	packRecipient,
	packAmount,
	packData,
	packV,
	packR,
	packS,
}

func packAccountNonce(tx *Transaction, node ipld.Node) error {
	nonce, err := shared.LookupUint64(node, "AccountNonce")
	if err != nil {
		return err
	}
	tx.Nonce = nonce
	return nil
}

func packGasPrice(tx *Transaction, node ipld.Node) error {
	gpBytes, err := shared.LookupBytes(node, "GasPrice")
	if err != nil {
		return err
	}
	tx.GasPrice = new(big.Int).SetBytes(gpBytes)
	return nil
}

func packGasLimit(tx *Transaction, node ipld.Node) error {
	glBytes, err := shared.LookupBytes(node, "GasLimit")
	if err != nil {
		return err
	}
	tx.GasLimit = new(big.Int).SetBytes(glBytes)
	return nil
}

func packRecipient(tx *Transaction, node ipld.Node) error {
	rNode, err := node.LookupByString("Recipient")
	if err != nil {
		return err
	}
	if rNode.IsNull() {
		tx.Recipient = ContractCreation()
		return nil
	}
	rBytes, err := rNode.AsBytes()
	if err != nil {
		return err
	}
	if len(rBytes) != common.AddressLength {
		return fmt.Errorf("transaction Recipient must be null or a %d byte address", common.AddressLength)
	}
	tx.Recipient = To(common.BytesToAddress(rBytes))
	return nil
}

func packAmount(tx *Transaction, node ipld.Node) error {
	aBytes, err := shared.LookupBytes(node, "Amount")
	if err != nil {
		return err
	}
	tx.Amount = new(big.Int).SetBytes(aBytes)
	return nil
}

func packData(tx *Transaction, node ipld.Node) error {
	dBytes, err := shared.LookupBytes(node, "Data")
	if err != nil {
		return err
	}
	tx.Payload = dBytes
	return nil
}

func packV(tx *Transaction, node ipld.Node) error {
	vBytes, err := shared.LookupBytes(node, "V")
	if err != nil {
		return err
	}
	tx.V = new(big.Int).SetBytes(vBytes)
	return nil
}

func packR(tx *Transaction, node ipld.Node) error {
	rBytes, err := shared.LookupBytes(node, "R")
	if err != nil {
		return err
	}
	tx.R = new(big.Int).SetBytes(rBytes)
	return nil
}

func packS(tx *Transaction, node ipld.Node) error {
	sBytes, err := shared.LookupBytes(node, "S")
	if err != nil {
		return err
	}
	tx.S = new(big.Int).SetBytes(sBytes)
	return nil
}
