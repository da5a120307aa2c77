package lceth

import (
	"fmt"
	"strings"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
)

// TypeSystem holds the LC-ETH IPLD schema
var TypeSystem schema.TypeSystem

// Type is the slab of typed prototypes used to check node forms before they are packed
var Type struct {
	Header       schema.TypedPrototype
	Transaction  schema.TypedPrototype
	Transactions schema.TypedPrototype
	Block        schema.TypedPrototype
}

func init() {
	TypeSystem.Init()

	accumulateBasicTypes(&TypeSystem)
	accumulateChainTypes(&TypeSystem)

	if errs := TypeSystem.ValidateGraph(); errs != nil {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		panic(fmt.Sprintf("invalid LC-ETH schema: %s", strings.Join(msgs, "; ")))
	}

	Type.Header = bindnode.Prototype(nil, TypeSystem.TypeByName("Header"))
	Type.Transaction = bindnode.Prototype(nil, TypeSystem.TypeByName("Transaction"))
	Type.Transactions = bindnode.Prototype(nil, TypeSystem.TypeByName("Transactions"))
	Type.Block = bindnode.Prototype(nil, TypeSystem.TypeByName("Block"))
}

func accumulateBasicTypes(ts *schema.TypeSystem) {
	ts.Accumulate(schema.SpawnString("String"))
	ts.Accumulate(schema.SpawnLink("Link"))
	ts.Accumulate(schema.SpawnBytes("Bytes"))

	ts.Accumulate(schema.SpawnBytes("BigInt"))
	ts.Accumulate(schema.SpawnBytes("Uint"))
	ts.Accumulate(schema.SpawnBytes("BlockNonce"))
	ts.Accumulate(schema.SpawnBytes("Hash"))
	ts.Accumulate(schema.SpawnBytes("Address"))
	ts.Accumulate(schema.SpawnBytes("Bloom"))
}

func accumulateChainTypes(ts *schema.TypeSystem) {
	/*
		type Header struct {
			ParentCID &Header
			Coinbase Address
			StateRootCID &StateTrieNode
			TxRootCID &TxTrieNode
			RctRootCID &RctTrieNode
			Bloom Bloom
			Difficulty BigInt
			Number Uint
			GasLimit BigInt
			GasUsed BigInt
			Time Uint
			Extra Bytes
			# the seal, absent from unsealed headers
			MixDigest optional Hash
			Nonce optional BlockNonce
		}
	*/
	ts.Accumulate(schema.SpawnStruct("Header",
		[]schema.StructField{
			schema.SpawnStructField("ParentCID", "Link", false, false),
			schema.SpawnStructField("Coinbase", "Address", false, false),
			schema.SpawnStructField("StateRootCID", "Link", false, false),
			schema.SpawnStructField("TxRootCID", "Link", false, false),
			schema.SpawnStructField("RctRootCID", "Link", false, false),
			schema.SpawnStructField("Bloom", "Bloom", false, false),
			schema.SpawnStructField("Difficulty", "BigInt", false, false),
			schema.SpawnStructField("Number", "Uint", false, false),
			schema.SpawnStructField("GasLimit", "BigInt", false, false),
			schema.SpawnStructField("GasUsed", "BigInt", false, false),
			schema.SpawnStructField("Time", "Uint", false, false),
			schema.SpawnStructField("Extra", "Bytes", false, false),
			schema.SpawnStructField("MixDigest", "Hash", true, false),
			schema.SpawnStructField("Nonce", "BlockNonce", true, false),
		},
		schema.SpawnStructRepresentationMap(nil),
	))

	/*
		type Transaction struct {
			AccountNonce Uint
			GasPrice     BigInt
			GasLimit     BigInt
			Recipient    nullable Address # null recipient means the tx is a contract creation
			Amount       BigInt
			Data         Bytes

			# Signature values
			V            BigInt
			R            BigInt
			S            BigInt
		}

		type Transactions [Transaction]
	*/
	ts.Accumulate(schema.SpawnStruct("Transaction",
		[]schema.StructField{
			schema.SpawnStructField("AccountNonce", "Uint", false, false),
			schema.SpawnStructField("GasPrice", "BigInt", false, false),
			schema.SpawnStructField("GasLimit", "BigInt", false, false),
			schema.SpawnStructField("Recipient", "Address", false, true),
			schema.SpawnStructField("Amount", "BigInt", false, false),
			schema.SpawnStructField("Data", "Bytes", false, false),
			schema.SpawnStructField("V", "BigInt", false, false),
			schema.SpawnStructField("R", "BigInt", false, false),
			schema.SpawnStructField("S", "BigInt", false, false),
		},
		schema.SpawnStructRepresentationMap(nil),
	))
	ts.Accumulate(schema.SpawnList("Transactions", "Transaction", false))

	/*
		type Block struct {
			Header       Header
			Transactions Transactions
		}
	*/
	ts.Accumulate(schema.SpawnStruct("Block",
		[]schema.StructField{
			schema.SpawnStructField("Header", "Header", false, false),
			schema.SpawnStructField("Transactions", "Transactions", false, false),
		},
		schema.SpawnStructRepresentationMap(nil),
	))
}

// Typed checks node against the schema type of proto and returns the typed node.
// A node that already carries that type is returned as is.
func Typed(proto schema.TypedPrototype, node ipld.Node) (ipld.Node, error) {
	if tn, ok := node.(schema.TypedNode); ok && tn.Type().Name() == proto.Type().Name() {
		return node, nil
	}
	builder := proto.NewBuilder()
	if err := builder.AssignNode(node); err != nil {
		return nil, err
	}
	return builder.Build(), nil
}
