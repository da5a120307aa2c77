package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"github.com/vulcanize/go-codec-lceth/block"
	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

var seal bool

var hashCmd = &cobra.Command{
	Use:     "hash (header|tx|block) <hex>",
	Short:   "print the keccak256 hash and CID of an RLP encoding",
	Example: "lceth hash header --seal=false 0xf901d8...",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := parseHex(args[1])
		if err != nil {
			return err
		}
		h, c, err := hashOf(args[0], raw, seal)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "hash: %s\ncid:  %s\n", h.Hex(), c)
		return err
	},
}

func init() {
	hashCmd.Flags().BoolVar(&seal, "seal", true, "include the mix digest and nonce when hashing headers")
}

// hashOf decodes raw as the given kind and returns its identity. Transactions
// ignore withSeal.
func hashOf(kind string, raw []byte, withSeal bool) (common.Hash, cid.Cid, error) {
	switch kind {
	case "header":
		h, err := header.DecodeRLPBytes(raw)
		if err != nil {
			return common.Hash{}, cid.Undef, err
		}
		hash := h.Hash(withSeal)
		return hash, shared.Keccak256ToCid(header.MultiCodecType, hash.Bytes()), nil
	case "block":
		b, err := block.DecodeRLPBytes(raw)
		if err != nil {
			return common.Hash{}, cid.Undef, err
		}
		hash := b.Header.Hash(withSeal)
		return hash, shared.Keccak256ToCid(header.MultiCodecType, hash.Bytes()), nil
	case "tx":
		t, err := tx.DecodeRLPBytes(raw)
		if err != nil {
			return common.Hash{}, cid.Undef, err
		}
		return t.Hash(), t.CID(), nil
	default:
		return common.Hash{}, cid.Undef, fmt.Errorf("unknown kind %q, expected header, tx or block", kind)
	}
}
