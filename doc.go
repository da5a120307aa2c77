/*
Package lceth provides the canonical RLP codecs used by an Ethereum-style light client
for its three chain primitives: the block header, the transaction and the block.

Every node on the network must agree on these byte layouts, since the header hash is
computed over the encoded header and links each block to its parent. The sub-packages
carry the codecs:

	header   - 12 field header, plus mix digest and nonce when sealed
	tx       - 9 field transaction with an optional recipient
	tx_list  - ordered transaction sequence
	block    - [header, transactions]

Each package exposes a typed API (EncodeRLP/DecodeRLPBytes) and the go-ipld-prime codec
interface (Encode/Decode), and the plugin package registers the latter with kubo.
Nodes handed to Encode are checked against the LC-ETH schema first; use the lceth.Type
slab (e.g. lceth.Type.Header) to build nodes with the same strictness guarantees.

All decode entry points treat their input as untrusted and return a *DecodeError whose
kind can be tested with errors.Is against ErrIncorrectListLength, ErrMalformedField and
ErrTruncatedOrOversized.
*/
package lceth
