package block

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx_list"
)

const (
	typeName = "block"
	// FieldCount is the number of items in an encoded block
	FieldCount = 2
)

// StreamRLP writes [header, transactions], with the header sealed or not.
func (b *Block) StreamRLP(w io.Writer, seal bool) error {
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	if err := b.headerOrEmpty().StreamRLP(buf, seal); err != nil {
		return err
	}
	if err := tx_list.StreamRLP(buf, b.Transactions); err != nil {
		return err
	}
	buf.ListEnd(l)
	return buf.Flush()
}

// EncodeRLP implements rlp.Encoder. The header is always written sealed.
func (b *Block) EncodeRLP(w io.Writer) error {
	return b.StreamRLP(w, true)
}

// RLP returns the canonical block encoding
func (b *Block) RLP() []byte {
	return b.RawBytes(true)
}

// RawBytes returns the block encoding with the header sealed or not. Either way
// the result is a two item list. It returns nil if a big integer field is negative.
func (b *Block) RawBytes(seal bool) []byte {
	enc := make([]byte, 0, 1024)
	if err := b.StreamRLP(shared.NewWriteableByteSlice(&enc), seal); err != nil {
		return nil
	}
	return enc
}

// MarshalBinary implements encoding.BinaryMarshaler
func (b *Block) MarshalBinary() ([]byte, error) {
	enc := make([]byte, 0, 1024)
	if err := b.StreamRLP(shared.NewWriteableByteSlice(&enc), true); err != nil {
		return nil, err
	}
	return enc, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (b *Block) UnmarshalBinary(src []byte) error {
	dec, err := DecodeRLPBytes(src)
	if err != nil {
		return err
	}
	*b = *dec
	return nil
}

// DecodeRLP implements rlp.Decoder
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	raw, err := s.Raw()
	if err != nil {
		return lceth.EnvelopeError(typeName, lceth.ErrTruncatedOrOversized, err)
	}
	return b.UnmarshalBinary(raw)
}

// DecodeRLPBytes decodes a [header, transactions] block
func DecodeRLPBytes(src []byte) (*Block, error) {
	b, _, err := decodeRLPBytes(src)
	return b, err
}

func decodeRLPBytes(src []byte) (*Block, bool, error) {
	items, err := shared.SplitList(typeName, src)
	if err != nil {
		return nil, false, err
	}
	if len(items) != FieldCount {
		return nil, false, lceth.ListLengthError(typeName, len(items), FieldCount)
	}
	h, sealed, err := header.DecodeRLPBytesWithSeal(items[0])
	if err != nil {
		return nil, false, lceth.FieldError(typeName, "Header", 0, err)
	}
	txs, err := tx_list.DecodeRLPBytes(items[1])
	if err != nil {
		return nil, false, lceth.FieldError(typeName, "Transactions", 1, err)
	}
	return &Block{Header: h, Transactions: txs}, sealed, nil
}
