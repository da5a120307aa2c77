package tx

import (
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-codec-lceth/shared"
)

// Decode provides an IPLD codec decode interface for ETH transaction IPLDs.
// This function is registered via the go-ipld-prime link loader for multicodec
// code 0x93 when this package is invoked via init.
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
	tx, err := DecodeRLPBytes(src)
	if err != nil {
		return err
	}
	return DecodeTx(na, tx)
}

// DecodeTx unpacks a Transaction into the NodeAssembler
func DecodeTx(na ipld.NodeAssembler, tx *Transaction) error {
	ma, err := na.BeginMap(FieldCount)
	if err != nil {
		return err
	}
	for _, upFunc := range RequiredUnpackFuncs {
		if err := upFunc(ma, tx); err != nil {
			return fmt.Errorf("invalid LC-ETH Transaction binary (%v)", err)
		}
	}
	return ma.Finish()
}

var RequiredUnpackFuncs = []func(ma ipld.MapAssembler, tx *Transaction) error{
	unpackAccountNonce,
	unpackGasPrice,
	unpackGasLimit,
	unpackRecipient,
	unpackAmount,
	unpackData,
	unpackSignatureValues,
}

func unpackAccountNonce(ma ipld.MapAssembler, tx *Transaction) error {
	return shared.AssignBytes(ma, "AccountNonce", shared.Uint64ToBytes(tx.Nonce))
}

func unpackGasPrice(ma ipld.MapAssembler, tx *Transaction) error {
	return shared.AssignBytes(ma, "GasPrice", shared.BigOrZero(tx.GasPrice).Bytes())
}

func unpackGasLimit(ma ipld.MapAssembler, tx *Transaction) error {
	return shared.AssignBytes(ma, "GasLimit", shared.BigOrZero(tx.GasLimit).Bytes())
}

func unpackRecipient(ma ipld.MapAssembler, tx *Transaction) error {
	if err := ma.AssembleKey().AssignString("Recipient"); err != nil {
		return err
	}
	// null recipient means the tx is a contract creation tx
	if tx.Recipient.IsContractCreation() {
		return ma.AssembleValue().AssignNull()
	}
	return ma.AssembleValue().AssignBytes(tx.Recipient.Bytes())
}

func unpackAmount(ma ipld.MapAssembler, tx *Transaction) error {
	return shared.AssignBytes(ma, "Amount", shared.BigOrZero(tx.Amount).Bytes())
}

func unpackData(ma ipld.MapAssembler, tx *Transaction) error {
	return shared.AssignBytes(ma, "Data", tx.Payload)
}

func unpackSignatureValues(ma ipld.MapAssembler, tx *Transaction) error {
	if err := shared.AssignBytes(ma, "R", shared.BigOrZero(tx.R).Bytes()); err != nil {
		return err
	}
	if err := shared.AssignBytes(ma, "S", shared.BigOrZero(tx.S).Bytes()); err != nil {
		return err
	}
	return shared.AssignBytes(ma, "V", shared.BigOrZero(tx.V).Bytes())
}
