package tx_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/node/basicnode"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

var (
	testAddr = common.HexToAddress("b94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	testR, _ = new(big.Int).SetString("98ff921201554726367d2be8c804a7ff89ccf285ebc57dff8ae4c44b9c19ac4a", 16)
	testS, _ = new(big.Int).SetString("8887321be575c8095f789dd4c743dfe42c1820f9231f98a962b210e3ac2452a3", 16)

	expectedTx = &tx.Transaction{
		Nonce:     3,
		GasPrice:  big.NewInt(1),
		GasLimit:  big.NewInt(2000),
		Recipient: tx.To(testAddr),
		Amount:    big.NewInt(10),
		Payload:   common.FromHex("5544"),
		V:         big.NewInt(28),
		R:         testR,
		S:         testS,
	}

	contractCreationTx = &tx.Transaction{
		Nonce:     0,
		GasPrice:  big.NewInt(20000000000),
		GasLimit:  big.NewInt(3000000),
		Recipient: tx.ContractCreation(),
		Amount:    new(big.Int),
		Payload:   shared.RandomBytes(64),
		V:         big.NewInt(27),
		R:         new(big.Int).SetBytes(shared.RandomHash().Bytes()),
		S:         new(big.Int).SetBytes(shared.RandomHash().Bytes()),
	}
)

func TestTransactionDecode(t *testing.T) {
	decoded, err := tx.DecodeRLPBytes(shared.TxRLP)
	if err != nil {
		t.Fatalf("unable to decode transaction: %v", err)
	}
	if decoded.Nonce != 3 {
		t.Errorf("transaction nonce (%d) does not match expected nonce (%d)", decoded.Nonce, 3)
	}
	if decoded.GasPrice.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("transaction gas price (%d) does not match expected gas price (%d)", decoded.GasPrice, 1)
	}
	if decoded.GasLimit.Cmp(big.NewInt(2000)) != 0 {
		t.Errorf("transaction gas limit (%d) does not match expected gas limit (%d)", decoded.GasLimit, 2000)
	}
	addr, ok := decoded.Recipient.Address()
	if !ok || addr != testAddr {
		t.Errorf("transaction recipient (%s) does not match expected recipient (%s)", decoded.Recipient, testAddr.Hex())
	}
	if decoded.Amount.Cmp(big.NewInt(10)) != 0 {
		t.Errorf("transaction amount (%d) does not match expected amount (%d)", decoded.Amount, 10)
	}
	if !bytes.Equal(decoded.Payload, common.FromHex("5544")) {
		t.Errorf("transaction payload (%x) does not match expected payload (%x)", decoded.Payload, common.FromHex("5544"))
	}
	if decoded.V.Cmp(big.NewInt(28)) != 0 {
		t.Errorf("transaction v (%d) does not match expected v (%d)", decoded.V, 28)
	}
	if decoded.R.Cmp(testR) != 0 {
		t.Errorf("transaction r (%x) does not match expected r (%x)", decoded.R, testR)
	}
	if decoded.S.Cmp(testS) != 0 {
		t.Errorf("transaction s (%x) does not match expected s (%x)", decoded.S, testS)
	}
	if !decoded.Equal(expectedTx) {
		t.Errorf("decoded transaction %+v does not match expected transaction %+v", decoded, expectedTx)
	}
}

func TestTransactionEncode(t *testing.T) {
	enc := expectedTx.RLP()
	if !bytes.Equal(enc, shared.TxRLP) {
		t.Errorf("transaction encoding (%x) does not match the expected encoding (%x)", enc, shared.TxRLP)
	}
	viaGeth, err := rlp.EncodeToBytes(expectedTx)
	if err != nil {
		t.Fatalf("unable to RLP encode transaction: %v", err)
	}
	if !bytes.Equal(viaGeth, shared.TxRLP) {
		t.Errorf("rlp.EncodeToBytes output (%x) does not match the expected encoding (%x)", viaGeth, shared.TxRLP)
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	for _, want := range []*tx.Transaction{expectedTx, contractCreationTx, tx.NewTransaction()} {
		enc, err := want.MarshalBinary()
		if err != nil {
			t.Fatalf("unable to marshal transaction: %v", err)
		}
		got := new(tx.Transaction)
		if err := got.UnmarshalBinary(enc); err != nil {
			t.Fatalf("unable to unmarshal transaction (%x): %v", enc, err)
		}
		if !got.Equal(want) {
			t.Errorf("round tripped transaction %+v does not match %+v", got, want)
		}
		if got.Hash() != want.Hash() {
			t.Errorf("round tripped transaction hash (%x) does not match (%x)", got.Hash(), want.Hash())
		}
	}
}

func TestRecipient(t *testing.T) {
	enc, err := rlp.EncodeToBytes(tx.ContractCreation())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(enc, rlp.EmptyString) {
		t.Errorf("absent recipient encoding (%x) does not match the empty string (%x)", enc, rlp.EmptyString)
	}

	var r tx.Recipient
	if err := rlp.DecodeBytes(rlp.EmptyString, &r); err != nil {
		t.Fatalf("unable to decode empty recipient: %v", err)
	}
	if !r.IsContractCreation() {
		t.Errorf("empty string decoded to %s, expected contract creation", r)
	}

	enc, err = rlp.EncodeToBytes(tx.To(testAddr))
	if err != nil {
		t.Fatal(err)
	}
	if err := rlp.DecodeBytes(enc, &r); err != nil {
		t.Fatalf("unable to decode recipient: %v", err)
	}
	if addr, ok := r.Address(); !ok || addr != testAddr {
		t.Errorf("recipient (%s) does not match expected address (%s)", r, testAddr.Hex())
	}

	if err := rlp.DecodeBytes(rlp.EmptyList, &r); err == nil {
		t.Errorf("expected an empty list to be rejected as a recipient")
	}
	short, _ := rlp.EncodeToBytes(testAddr.Bytes()[1:])
	if err := rlp.DecodeBytes(short, &r); err == nil {
		t.Errorf("expected a 19 byte recipient to be rejected")
	}
}

func TestContractCreationEncoding(t *testing.T) {
	enc := contractCreationTx.RLP()
	items, err := shared.SplitList("transaction", enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(items[3], rlp.EmptyString) {
		t.Errorf("contract creation recipient item (%x) should be the empty string (%x)", items[3], rlp.EmptyString)
	}
}

func TestTransactionListLength(t *testing.T) {
	items, err := shared.SplitList("transaction", shared.TxRLP)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 8, 10} {
		var raw []rlp.RawValue
		for i := 0; i < n; i++ {
			raw = append(raw, items[i%len(items)])
		}
		enc, err := rlp.EncodeToBytes(raw)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tx.DecodeRLPBytes(enc); !errors.Is(err, lceth.ErrIncorrectListLength) {
			t.Errorf("decoding a %d item transaction returned %v, expected ErrIncorrectListLength", n, err)
		}
	}
}

func TestTransactionMalformed(t *testing.T) {
	// single zero byte nonce is not a canonical integer
	nonCanonical := common.CopyBytes(shared.TxRLP)
	nonCanonical[2] = 0x00
	_, err := tx.DecodeRLPBytes(nonCanonical)
	if !errors.Is(err, lceth.ErrMalformedField) {
		t.Errorf("non canonical nonce returned %v, expected ErrMalformedField", err)
	}
	var de *lceth.DecodeError
	if !errors.As(err, &de) || de.Field != "Nonce" || de.Index != 0 {
		t.Errorf("expected a Nonce field error at index 0, got %v", err)
	}

	if _, err := tx.DecodeRLPBytes(shared.TxRLP[:len(shared.TxRLP)-1]); !errors.Is(err, lceth.ErrTruncatedOrOversized) {
		t.Errorf("truncated transaction returned %v, expected ErrTruncatedOrOversized", err)
	}
	trailing := append(common.CopyBytes(shared.TxRLP), 0x01)
	if _, err := tx.DecodeRLPBytes(trailing); !errors.Is(err, lceth.ErrTruncatedOrOversized) {
		t.Errorf("oversized transaction returned %v, expected ErrTruncatedOrOversized", err)
	}
	if _, err := tx.DecodeRLPBytes(nil); !errors.Is(err, lceth.ErrTruncatedOrOversized) {
		t.Errorf("empty input returned %v, expected ErrTruncatedOrOversized", err)
	}
	if _, err := tx.DecodeRLPBytes(rlp.EmptyString); !errors.Is(err, lceth.ErrMalformedField) {
		t.Errorf("non list input returned %v, expected ErrMalformedField", err)
	}
}

func TestTransactionCodec(t *testing.T) {
	for _, want := range []*tx.Transaction{expectedTx, contractCreationTx} {
		enc := want.RLP()
		builder := basicnode.Prototype.Any.NewBuilder()
		if err := tx.Decode(builder, bytes.NewReader(enc)); err != nil {
			t.Fatalf("unable to decode transaction into an IPLD node: %v", err)
		}
		node := builder.Build()
		testTransactionNodeContent(t, node, want)

		w := new(bytes.Buffer)
		if err := tx.Encode(node, w); err != nil {
			t.Fatalf("unable to encode transaction node into writer: %v", err)
		}
		if !bytes.Equal(w.Bytes(), enc) {
			t.Errorf("transaction encoding (%x) does not match the expected consensus encoding (%x)", w.Bytes(), enc)
		}
	}
}

func testTransactionNodeContent(t *testing.T, node ipld.Node, want *tx.Transaction) {
	nonceBytes, err := shared.LookupBytes(node, "AccountNonce")
	if err != nil {
		t.Fatalf("transaction missing AccountNonce: %v", err)
	}
	if !bytes.Equal(nonceBytes, shared.Uint64ToBytes(want.Nonce)) {
		t.Errorf("transaction nonce (%x) does not match expected nonce (%d)", nonceBytes, want.Nonce)
	}

	recipientNode, err := node.LookupByString("Recipient")
	if err != nil {
		t.Fatalf("transaction missing Recipient: %v", err)
	}
	if want.Recipient.IsContractCreation() {
		if !recipientNode.IsNull() {
			t.Errorf("contract creation transaction should have a null Recipient")
		}
	} else {
		recipientBytes, err := recipientNode.AsBytes()
		if err != nil {
			t.Fatalf("transaction Recipient should be of type Bytes: %v", err)
		}
		if !bytes.Equal(recipientBytes, want.Recipient.Bytes()) {
			t.Errorf("transaction recipient (%x) does not match expected recipient (%x)", recipientBytes, want.Recipient.Bytes())
		}
	}

	dataBytes, err := shared.LookupBytes(node, "Data")
	if err != nil {
		t.Fatalf("transaction missing Data: %v", err)
	}
	if !bytes.Equal(dataBytes, want.Payload) {
		t.Errorf("transaction data bytes (%x) does not match expected bytes (%x)", dataBytes, want.Payload)
	}

	vBytes, err := shared.LookupBytes(node, "V")
	if err != nil {
		t.Fatalf("transaction missing V: %v", err)
	}
	if !bytes.Equal(vBytes, want.V.Bytes()) {
		t.Errorf("transaction v bytes (%x) does not match expected bytes (%x)", vBytes, want.V.Bytes())
	}
}

func TestTransactionNegativeBigInt(t *testing.T) {
	trx := tx.NewTransaction()
	trx.GasPrice = big.NewInt(-5)
	if _, err := trx.MarshalBinary(); !errors.Is(err, rlp.ErrNegativeBigInt) {
		t.Errorf("encoding a negative gas price returned %v, expected rlp.ErrNegativeBigInt", err)
	}
	if _, err := rlp.EncodeToBytes(trx); !errors.Is(err, rlp.ErrNegativeBigInt) {
		t.Errorf("rlp.EncodeToBytes of a negative gas price returned %v, expected rlp.ErrNegativeBigInt", err)
	}
	if enc := trx.RLP(); enc != nil {
		t.Errorf("RLP of a negative gas price should be nil, got %x", enc)
	}
}

func TestTransactionNodeForm(t *testing.T) {
	// Recipient is nullable but not optional
	nb := basicnode.Prototype.Map.NewBuilder()
	ma, err := nb.BeginMap(8)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"GasPrice", "GasLimit", "Amount", "Data", "V", "R", "S"} {
		if err := shared.AssignBytes(ma, key, []byte{1}); err != nil {
			t.Fatal(err)
		}
	}
	if err := shared.AssignBytes(ma, "AccountNonce", shared.Uint64ToBytes(1)); err != nil {
		t.Fatal(err)
	}
	if err := ma.Finish(); err != nil {
		t.Fatal(err)
	}
	if _, err := ipld.Encode(nb.Build(), tx.Encode); err == nil {
		t.Errorf("expected a transaction node without Recipient to be rejected")
	}

	if _, err := ipld.Encode(basicnode.NewString("tx"), tx.Encode); err == nil {
		t.Errorf("expected a string node to be rejected as a transaction")
	}
}
