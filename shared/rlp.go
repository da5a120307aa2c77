package shared

import (
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	lceth "github.com/vulcanize/go-codec-lceth"
)

// Field is a positional RLP list item and the value it decodes into.
type Field struct {
	Name string
	Val  interface{}
}

// SplitList splits src, which must be exactly one RLP list, into its raw items.
// The returned items alias src.
func SplitList(typ string, src []byte) ([][]byte, error) {
	content, rest, err := rlp.SplitList(src)
	if err != nil {
		return nil, lceth.EnvelopeError(typ, classify(err), err)
	}
	if len(rest) != 0 {
		return nil, lceth.EnvelopeError(typ, lceth.ErrTruncatedOrOversized,
			fmt.Errorf("%d trailing bytes after list", len(rest)))
	}
	var items [][]byte
	for len(content) > 0 {
		_, _, tail, err := rlp.Split(content)
		if err != nil {
			return nil, lceth.EnvelopeError(typ, classify(err), err)
		}
		items = append(items, content[:len(content)-len(tail)])
		content = tail
	}
	return items, nil
}

// DecodeFields decodes items[i] into fields[i].Val for every field. len(items) must
// already have been checked against the expected count.
func DecodeFields(typ string, items [][]byte, fields []Field) error {
	if len(items) < len(fields) {
		return lceth.ListLengthError(typ, len(items), len(fields))
	}
	for i, f := range fields {
		if err := rlp.DecodeBytes(items[i], f.Val); err != nil {
			return lceth.FieldError(typ, f.Name, i, err)
		}
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, rlp.ErrValueTooLarge), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return lceth.ErrTruncatedOrOversized
	default:
		return lceth.ErrMalformedField
	}
}
