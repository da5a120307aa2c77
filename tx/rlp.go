package tx

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
)

const (
	typeName = "transaction"
	// FieldCount is the number of items in an encoded transaction
	FieldCount = 9
)

// EncodeRLP writes the 9 item transaction list. It fails on a negative big
// integer field or if w does.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	if err := shared.CheckNonNegative(
		shared.Field{Name: "GasPrice", Val: t.GasPrice},
		shared.Field{Name: "GasLimit", Val: t.GasLimit},
		shared.Field{Name: "Amount", Val: t.Amount},
		shared.Field{Name: "V", Val: t.V},
		shared.Field{Name: "R", Val: t.R},
		shared.Field{Name: "S", Val: t.S},
	); err != nil {
		return err
	}
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	buf.WriteUint64(t.Nonce)
	buf.WriteBigInt(shared.BigOrZero(t.GasPrice))
	buf.WriteBigInt(shared.BigOrZero(t.GasLimit))
	buf.WriteBytes(t.Recipient.Bytes())
	buf.WriteBigInt(shared.BigOrZero(t.Amount))
	buf.WriteBytes(t.Payload)
	buf.WriteBigInt(shared.BigOrZero(t.V))
	buf.WriteBigInt(shared.BigOrZero(t.R))
	buf.WriteBigInt(shared.BigOrZero(t.S))
	buf.ListEnd(l)
	return buf.Flush()
}

// RLP returns the encoded transaction, or nil if a big integer field is negative
func (t *Transaction) RLP() []byte {
	enc, err := t.MarshalBinary()
	if err != nil {
		return nil
	}
	return enc
}

// MarshalBinary implements encoding.BinaryMarshaler
func (t *Transaction) MarshalBinary() ([]byte, error) {
	enc := make([]byte, 0, 128)
	if err := t.EncodeRLP(shared.NewWriteableByteSlice(&enc)); err != nil {
		return nil, err
	}
	return enc, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (t *Transaction) UnmarshalBinary(src []byte) error {
	dec, err := DecodeRLPBytes(src)
	if err != nil {
		return err
	}
	*t = *dec
	return nil
}

// DecodeRLP implements rlp.Decoder so transactions can be nested in other values
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	raw, err := s.Raw()
	if err != nil {
		return lceth.EnvelopeError(typeName, lceth.ErrTruncatedOrOversized, err)
	}
	return t.UnmarshalBinary(raw)
}

// DecodeRLPBytes decodes exactly one transaction from src
func DecodeRLPBytes(src []byte) (*Transaction, error) {
	items, err := shared.SplitList(typeName, src)
	if err != nil {
		return nil, err
	}
	if len(items) != FieldCount {
		return nil, lceth.ListLengthError(typeName, len(items), FieldCount)
	}
	t := new(Transaction)
	fields := []shared.Field{
		{Name: "Nonce", Val: &t.Nonce},
		{Name: "GasPrice", Val: &t.GasPrice},
		{Name: "GasLimit", Val: &t.GasLimit},
		{Name: "Recipient", Val: &t.Recipient},
		{Name: "Amount", Val: &t.Amount},
		{Name: "Payload", Val: &t.Payload},
		{Name: "V", Val: &t.V},
		{Name: "R", Val: &t.R},
		{Name: "S", Val: &t.S},
	}
	if err := shared.DecodeFields(typeName, items, fields); err != nil {
		return nil, err
	}
	return t, nil
}
