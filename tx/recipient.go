package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Recipient is the destination of a transaction: either an address or nothing,
// the latter marking a contract creation. The zero value is the contract-creation
// recipient.
type Recipient struct {
	addr    common.Address
	present bool
}

// To returns a recipient for addr
func To(addr common.Address) Recipient {
	return Recipient{addr: addr, present: true}
}

// ContractCreation returns the absent recipient
func ContractCreation() Recipient {
	return Recipient{}
}

// Address returns the address and whether one is present
func (r Recipient) Address() (common.Address, bool) {
	return r.addr, r.present
}

// IsContractCreation reports whether the recipient is absent
func (r Recipient) IsContractCreation() bool {
	return !r.present
}

func (r Recipient) String() string {
	if !r.present {
		return "<contract creation>"
	}
	return r.addr.Hex()
}

// Bytes returns the encoded payload: the 20 address bytes, or nothing when absent
func (r Recipient) Bytes() []byte {
	if !r.present {
		return nil
	}
	return r.addr.Bytes()
}

// EncodeRLP writes the address as a byte string, or the empty string when absent.
// An absent recipient never encodes as an empty list.
func (r Recipient) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	buf.WriteBytes(r.Bytes())
	return buf.Flush()
}

// DecodeRLP reads an empty string as absent and a 20 byte string as an address.
func (r *Recipient) DecodeRLP(s *rlp.Stream) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	rec, err := RecipientFromBytes(b)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// RecipientFromBytes interprets a decoded payload: empty is absent, otherwise it
// must be exactly an address wide
func RecipientFromBytes(b []byte) (Recipient, error) {
	switch len(b) {
	case 0:
		return Recipient{}, nil
	case common.AddressLength:
		return To(common.BytesToAddress(b)), nil
	default:
		return Recipient{}, fmt.Errorf("malformed address: recipient must be empty or %d bytes, got %d", common.AddressLength, len(b))
	}
}
