package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/spf13/cobra"

	"github.com/vulcanize/go-codec-lceth/block"
	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/tx"
)

var decoders = map[string]func(ipld.NodeAssembler, []byte) error{
	"header": header.DecodeBytes,
	"tx":     tx.DecodeBytes,
	"block":  block.DecodeBytes,
}

var decodeCmd = &cobra.Command{
	Use:     "decode (header|tx|block) <hex>",
	Short:   "decode an RLP encoding and print it as dag-json",
	Example: "lceth decode tx 0xf86103018207d094...",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := parseHex(args[1])
		if err != nil {
			return err
		}
		log.Debugw("decoding", "kind", args[0], "bytes", len(raw))
		if err := decodeToJSON(args[0], raw, cmd.OutOrStdout()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout())
		return err
	},
}

// decodeToJSON decodes raw as the given kind and writes its dag-json form to w
func decodeToJSON(kind string, raw []byte, w io.Writer) error {
	decode, ok := decoders[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q, expected header, tx or block", kind)
	}
	builder := basicnode.Prototype.Any.NewBuilder()
	if err := decode(builder, raw); err != nil {
		return err
	}
	return dagjson.Encode(builder.Build(), w)
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %v", err)
	}
	return b, nil
}
