package shared

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
)

// ReadAll grabs the bytes behind in without copying when in already holds them.
func ReadAll(in io.Reader) ([]byte, error) {
	if buf, ok := in.(interface{ Bytes() []byte }); ok {
		return buf.Bytes(), nil
	}
	return ioutil.ReadAll(in)
}

// AssignBytes assembles a key with a bytes value
func AssignBytes(ma ipld.MapAssembler, key string, b []byte) error {
	if err := ma.AssembleKey().AssignString(key); err != nil {
		return err
	}
	return ma.AssembleValue().AssignBytes(b)
}

// AssignKeccakLink assembles a key with a CID link built from the codec and hash
func AssignKeccakLink(ma ipld.MapAssembler, key string, codec uint64, h common.Hash) error {
	if err := ma.AssembleKey().AssignString(key); err != nil {
		return err
	}
	return ma.AssembleValue().AssignLink(cidlink.Link{Cid: Keccak256ToCid(codec, h.Bytes())})
}

// LookupBytes returns the bytes value stored under key
func LookupBytes(node ipld.Node, key string) ([]byte, error) {
	n, err := node.LookupByString(key)
	if err != nil {
		return nil, err
	}
	return n.AsBytes()
}

// LookupFixedBytes is like LookupBytes but requires exactly size bytes
func LookupFixedBytes(node ipld.Node, key string, size int) ([]byte, error) {
	b, err := LookupBytes(node, key)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%s must be %d bytes, got %d", key, size, len(b))
	}
	return b, nil
}

// LookupUint64 returns the 8 byte big-endian integer stored under key
func LookupUint64(node ipld.Node, key string) (uint64, error) {
	b, err := LookupBytes(node, key)
	if err != nil {
		return 0, err
	}
	u, err := BytesToUint64(b)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	return u, nil
}

// LookupKeccakLink returns the keccak256 digest behind the CID link stored under key
func LookupKeccakLink(node ipld.Node, key string) (common.Hash, error) {
	n, err := node.LookupByString(key)
	if err != nil {
		return common.Hash{}, err
	}
	l, err := n.AsLink()
	if err != nil {
		return common.Hash{}, err
	}
	cl, ok := l.(cidlink.Link)
	if !ok {
		return common.Hash{}, fmt.Errorf("%s must be a CID link", key)
	}
	h, err := CidToKeccak256(cl.Cid)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s: %v", key, err)
	}
	return h, nil
}
