package block

import (
	"io"

	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx_list"
)

// Decode provides an IPLD codec decode interface for full eth block IPLDs.
func Decode(na ipld.NodeAssembler, in io.Reader) error {
	src, err := shared.ReadAll(in)
	if err != nil {
		return err
	}
	return DecodeBytes(na, src)
}

// DecodeBytes is like Decode, but it uses an input buffer directly.
func DecodeBytes(na ipld.NodeAssembler, src []byte) error {
	blk, sealed, err := decodeRLPBytes(src)
	if err != nil {
		return err
	}
	return DecodeBlock(na, blk, sealed)
}

// DecodeBlock unpacks a Block into the NodeAssembler, with the header seal
// assembled only when withSeal is set
func DecodeBlock(na ipld.NodeAssembler, blk *Block, withSeal bool) error {
	ma, err := na.BeginMap(FieldCount)
	if err != nil {
		return err
	}
	if err := ma.AssembleKey().AssignString("Header"); err != nil {
		return err
	}
	if err := header.DecodeHeader(ma.AssembleValue(), blk.headerOrEmpty(), withSeal); err != nil {
		return err
	}
	if err := ma.AssembleKey().AssignString("Transactions"); err != nil {
		return err
	}
	if err := tx_list.DecodeTxs(ma.AssembleValue(), blk.Transactions); err != nil {
		return err
	}
	return ma.Finish()
}
