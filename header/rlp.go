package header

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
)

const (
	typeName = "header"
	// CoreFieldCount is the number of items in an unsealed header
	CoreFieldCount = 12
	// SealFieldCount is the number of trailing seal items in a sealed header
	SealFieldCount = 2
)

// FieldCount returns the number of list items the header encodes to
func FieldCount(withSeal bool) int {
	if withSeal {
		return CoreFieldCount + SealFieldCount
	}
	return CoreFieldCount
}

// StreamRLP writes the header list, followed by the seal fields when withSeal is set.
func (h *Header) StreamRLP(w io.Writer, withSeal bool) error {
	if err := shared.CheckNonNegative(
		shared.Field{Name: "Difficulty", Val: h.Difficulty},
		shared.Field{Name: "GasLimit", Val: h.GasLimit},
		shared.Field{Name: "GasUsed", Val: h.GasUsed},
	); err != nil {
		return err
	}
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	buf.WriteBytes(h.ParentHash.Bytes())
	buf.WriteBytes(h.Coinbase.Bytes())
	buf.WriteBytes(h.StateRoot.Bytes())
	buf.WriteBytes(h.TransactionsRoot.Bytes())
	buf.WriteBytes(h.ReceiptsRoot.Bytes())
	buf.WriteBytes(h.LogBloom.Bytes())
	buf.WriteBigInt(shared.BigOrZero(h.Difficulty))
	buf.WriteUint64(h.Number)
	buf.WriteBigInt(shared.BigOrZero(h.GasLimit))
	buf.WriteBigInt(shared.BigOrZero(h.GasUsed))
	buf.WriteUint64(h.Timestamp)
	buf.WriteBytes(h.ExtraData)
	if withSeal {
		buf.WriteBytes(h.MixDigest.Bytes())
		buf.WriteBytes(h.Nonce[:])
	}
	buf.ListEnd(l)
	return buf.Flush()
}

// EncodeRLP implements rlp.Encoder, always writing the sealed form
func (h *Header) EncodeRLP(w io.Writer) error {
	return h.StreamRLP(w, true)
}

// RLP returns the header encoding, or nil if a big integer field is negative
func (h *Header) RLP(withSeal bool) []byte {
	enc := make([]byte, 0, 512+len(h.ExtraData))
	if err := h.StreamRLP(shared.NewWriteableByteSlice(&enc), withSeal); err != nil {
		return nil
	}
	return enc
}

// MarshalBinary implements encoding.BinaryMarshaler with the sealed form
func (h *Header) MarshalBinary() ([]byte, error) {
	enc := make([]byte, 0, 512+len(h.ExtraData))
	if err := h.StreamRLP(shared.NewWriteableByteSlice(&enc), true); err != nil {
		return nil, err
	}
	return enc, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (h *Header) UnmarshalBinary(src []byte) error {
	dec, err := DecodeRLPBytes(src)
	if err != nil {
		return err
	}
	*h = *dec
	return nil
}

// DecodeRLP implements rlp.Decoder so headers can be nested in other values
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	raw, err := s.Raw()
	if err != nil {
		return lceth.EnvelopeError(typeName, lceth.ErrTruncatedOrOversized, err)
	}
	return h.UnmarshalBinary(raw)
}

// DecodeRLPBytes decodes a sealed or unsealed header. An unsealed header leaves
// MixDigest and Nonce zeroed.
func DecodeRLPBytes(src []byte) (*Header, error) {
	h, _, err := DecodeRLPBytesWithSeal(src)
	return h, err
}

// DecodeRLPBytesWithSeal is like DecodeRLPBytes but also reports whether the
// encoding carried the seal fields.
func DecodeRLPBytesWithSeal(src []byte) (*Header, bool, error) {
	items, err := shared.SplitList(typeName, src)
	if err != nil {
		return nil, false, err
	}
	if len(items) != FieldCount(false) && len(items) != FieldCount(true) {
		return nil, false, lceth.ListLengthError(typeName, len(items), FieldCount(false), FieldCount(true))
	}
	h := new(Header)
	fields := []shared.Field{
		{Name: "ParentHash", Val: &h.ParentHash},
		{Name: "Coinbase", Val: &h.Coinbase},
		{Name: "StateRoot", Val: &h.StateRoot},
		{Name: "TransactionsRoot", Val: &h.TransactionsRoot},
		{Name: "ReceiptsRoot", Val: &h.ReceiptsRoot},
		{Name: "LogBloom", Val: &h.LogBloom},
		{Name: "Difficulty", Val: &h.Difficulty},
		{Name: "Number", Val: &h.Number},
		{Name: "GasLimit", Val: &h.GasLimit},
		{Name: "GasUsed", Val: &h.GasUsed},
		{Name: "Timestamp", Val: &h.Timestamp},
		{Name: "ExtraData", Val: &h.ExtraData},
	}
	sealed := len(items) == FieldCount(true)
	if sealed {
		// the nonce is a fixed 8 byte array, wider values are rejected rather than truncated
		fields = append(fields,
			shared.Field{Name: "MixDigest", Val: &h.MixDigest},
			shared.Field{Name: "Nonce", Val: &h.Nonce},
		)
	}
	if err := shared.DecodeFields(typeName, items, fields); err != nil {
		return nil, false, err
	}
	return h, sealed, nil
}
