package block_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipld/go-ipld-prime/node/basicnode"

	lceth "github.com/vulcanize/go-codec-lceth"
	"github.com/vulcanize/go-codec-lceth/block"
	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/shared"
	"github.com/vulcanize/go-codec-lceth/tx"
)

func TestBlockDecode(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatalf("unable to decode block: %v", err)
	}
	if len(blk.Transactions) != 1 {
		t.Fatalf("block transaction count (%d) does not match expected count (%d)", len(blk.Transactions), 1)
	}
	expectedHeader, err := header.DecodeRLPBytes(shared.HeaderRLP)
	if err != nil {
		t.Fatalf("unable to decode header: %v", err)
	}
	if !blk.Header.Equal(expectedHeader) {
		t.Errorf("block header %+v does not match expected header %+v", blk.Header, expectedHeader)
	}
	if blk.Hash() != expectedHeader.Hash(true) {
		t.Errorf("block hash (%x) does not match header hash (%x)", blk.Hash(), expectedHeader.Hash(true))
	}

	got := blk.Transactions[0]
	expectedTx := &tx.Transaction{
		Nonce:     0,
		GasPrice:  big.NewInt(10),
		GasLimit:  big.NewInt(50000),
		Recipient: tx.To(common.HexToAddress("095e7baea6a6c7c4c2dfeb977efac326af552d87")),
		Amount:    big.NewInt(10),
		Payload:   []byte{},
		V:         big.NewInt(27),
		R:         new(big.Int).SetBytes(common.FromHex("9bea4c4daac7c7c52e093e6a4c35dbbcf8856f1af7b059ba20253e70848d094f")),
		S:         new(big.Int).SetBytes(common.FromHex("8a8fae537ce25ed8cb5af9adac3f141af69bd515bd2ba031522df09b97dd72b1")),
	}
	if !got.Equal(expectedTx) {
		t.Errorf("block transaction %+v does not match expected transaction %+v", got, expectedTx)
	}
}

func TestBlockEncode(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatalf("unable to decode block: %v", err)
	}
	enc := blk.RLP()
	if !bytes.Equal(enc, shared.BlockRLP) {
		t.Errorf("block encoding (%x) does not match the expected encoding (%x)", enc, shared.BlockRLP)
	}
	viaGeth, err := rlp.EncodeToBytes(blk)
	if err != nil {
		t.Fatalf("unable to RLP encode block: %v", err)
	}
	if !bytes.Equal(viaGeth, shared.BlockRLP) {
		t.Errorf("rlp.EncodeToBytes output (%x) does not match the expected encoding (%x)", viaGeth, shared.BlockRLP)
	}
}

func TestBlockFromParts(t *testing.T) {
	h, err := header.DecodeRLPBytes(shared.HeaderRLP)
	if err != nil {
		t.Fatal(err)
	}
	standalone, err := tx.DecodeRLPBytes(shared.TxRLP)
	if err != nil {
		t.Fatal(err)
	}
	blk := &block.Block{Header: h, Transactions: []*tx.Transaction{standalone}}
	decoded, err := block.DecodeRLPBytes(blk.RLP())
	if err != nil {
		t.Fatalf("unable to decode block: %v", err)
	}
	if len(decoded.Transactions) != 1 {
		t.Fatalf("block transaction count (%d) does not match expected count (%d)", len(decoded.Transactions), 1)
	}
	got := decoded.Transactions[0]
	if got.Nonce != 3 || got.GasPrice.Cmp(big.NewInt(1)) != 0 || got.GasLimit.Cmp(big.NewInt(2000)) != 0 ||
		got.Amount.Cmp(big.NewInt(10)) != 0 || got.V.Cmp(big.NewInt(28)) != 0 {
		t.Errorf("block transaction %+v does not match the standalone transaction fixture", got)
	}
	if !bytes.Equal(got.Payload, common.FromHex("5544")) {
		t.Errorf("block transaction payload (%x) does not match expected payload (%x)", got.Payload, common.FromHex("5544"))
	}
	addr, ok := got.Recipient.Address()
	if !ok || addr != common.HexToAddress("b94f5374fce5edbc8e2a8697c15331677e6ebf0b") {
		t.Errorf("block transaction recipient (%s) does not match the fixture recipient", got.Recipient)
	}
	if decoded.Header.Number != 1 || decoded.Header.Timestamp != 1426516743 {
		t.Errorf("block header number (%d) and timestamp (%d) do not match the fixture", decoded.Header.Number, decoded.Header.Timestamp)
	}
	if !decoded.Equal(blk) {
		t.Errorf("round tripped block does not match the original")
	}
}

func TestBlockRoundTrip(t *testing.T) {
	contractCreation := tx.NewTransaction()
	contractCreation.Payload = shared.RandomBytes(33)
	blocks := []*block.Block{
		block.NewBlock(),
		{Header: header.NewHeader(), Transactions: []*tx.Transaction{contractCreation, contractCreation}},
	}
	for _, want := range blocks {
		enc, err := want.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		got := new(block.Block)
		if err := got.UnmarshalBinary(enc); err != nil {
			t.Fatalf("unable to unmarshal block (%x): %v", enc, err)
		}
		if !got.Equal(want) {
			t.Errorf("round tripped block %+v does not match %+v", got, want)
		}
	}
}

func TestBlockRawBytes(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blk.RawBytes(true), shared.BlockRLP) {
		t.Errorf("sealed raw bytes (%x) do not match the canonical encoding (%x)", blk.RawBytes(true), shared.BlockRLP)
	}
	items, err := shared.SplitList("block", blk.RawBytes(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("unsealed raw bytes hold %d items, expected 2", len(items))
	}
	if !bytes.Equal(items[0], blk.Header.RLP(false)) {
		t.Errorf("unsealed raw header (%x) does not match the unsealed header encoding (%x)", items[0], blk.Header.RLP(false))
	}
	decoded, err := block.DecodeRLPBytes(blk.RawBytes(false))
	if err != nil {
		t.Fatalf("unable to decode unsealed raw bytes: %v", err)
	}
	if decoded.Header.Sealed() {
		t.Errorf("block decoded from unsealed raw bytes should have no seal")
	}
}

func TestBlockListLength(t *testing.T) {
	items, err := shared.SplitList("block", shared.BlockRLP)
	if err != nil {
		t.Fatal(err)
	}
	for _, raw := range [][]rlp.RawValue{
		{items[0]},
		{items[0], items[1], items[1]},
	} {
		enc, err := rlp.EncodeToBytes(raw)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := block.DecodeRLPBytes(enc); !errors.Is(err, lceth.ErrIncorrectListLength) {
			t.Errorf("decoding a %d item block returned %v, expected ErrIncorrectListLength", len(raw), err)
		}
	}
}

func TestBlockElementFailure(t *testing.T) {
	items, err := shared.SplitList("block", shared.BlockRLP)
	if err != nil {
		t.Fatal(err)
	}
	// transactions in place of the header
	enc, err := rlp.EncodeToBytes([]rlp.RawValue{items[1], items[1]})
	if err != nil {
		t.Fatal(err)
	}
	_, err = block.DecodeRLPBytes(enc)
	var de *lceth.DecodeError
	if !errors.As(err, &de) || de.Field != "Header" {
		t.Errorf("expected a Header field error, got %v", err)
	}
	if !errors.Is(err, lceth.ErrIncorrectListLength) {
		t.Errorf("expected the header failure to propagate as ErrIncorrectListLength, got %v", err)
	}
}

func TestBlockCodec(t *testing.T) {
	builder := basicnode.Prototype.Any.NewBuilder()
	if err := block.Decode(builder, bytes.NewReader(shared.BlockRLP)); err != nil {
		t.Fatalf("unable to decode block into an IPLD node: %v", err)
	}
	blockNode := builder.Build()
	txsNode, err := blockNode.LookupByString("Transactions")
	if err != nil {
		t.Fatalf("block is missing Transactions: %v", err)
	}
	if txsNode.Length() != 1 {
		t.Errorf("block transactions length (%d) does not match expected length (%d)", txsNode.Length(), 1)
	}
	headerNode, err := blockNode.LookupByString("Header")
	if err != nil {
		t.Fatalf("block is missing Header: %v", err)
	}
	number, err := shared.LookupUint64(headerNode, "Number")
	if err != nil {
		t.Fatalf("block header Number: %v", err)
	}
	if number != 1 {
		t.Errorf("block header number (%d) does not match expected number (%d)", number, 1)
	}

	w := new(bytes.Buffer)
	if err := block.Encode(blockNode, w); err != nil {
		t.Fatalf("unable to encode block node into writer: %v", err)
	}
	if !bytes.Equal(w.Bytes(), shared.BlockRLP) {
		t.Errorf("block encoding (%x) does not match the expected consensus encoding (%x)", w.Bytes(), shared.BlockRLP)
	}
}

func TestBlockTxRoot(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatalf("unable to decode block: %v", err)
	}
	expectedRoot := common.HexToHash("5fe50b260da6308036625b850b5d6ced6d0a9f814c0688bc91ffb7b7a3a54b67")
	if blk.TxRoot() != expectedRoot {
		t.Errorf("derived transactions root (%x) does not match expected root (%x)", blk.TxRoot(), expectedRoot)
	}
	if err := blk.VerifyTxRoot(); err != nil {
		t.Errorf("unexpected verification error: %v", err)
	}

	blk.Transactions[0].Nonce++
	if err := blk.VerifyTxRoot(); !errors.Is(err, block.ErrTxRootMismatch) {
		t.Errorf("expected ErrTxRootMismatch after altering a transaction, got %v", err)
	}
	blk.Transactions = nil
	if blk.TxRoot() != shared.EmptyRootHash {
		t.Errorf("empty block root (%x) does not match the empty trie root (%x)", blk.TxRoot(), shared.EmptyRootHash)
	}
}

func TestBlockCodecUnsealed(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatal(err)
	}
	unsealed := blk.RawBytes(false)
	builder := basicnode.Prototype.Any.NewBuilder()
	if err := block.DecodeBytes(builder, unsealed); err != nil {
		t.Fatalf("unable to decode unsealed block into an IPLD node: %v", err)
	}
	blockNode := builder.Build()
	headerNode, err := blockNode.LookupByString("Header")
	if err != nil {
		t.Fatalf("block is missing Header: %v", err)
	}
	if _, err := headerNode.LookupByString("Nonce"); err == nil {
		t.Errorf("unsealed block header node should not hold Nonce")
	}

	w := new(bytes.Buffer)
	if err := block.Encode(blockNode, w); err != nil {
		t.Fatalf("unable to encode unsealed block node: %v", err)
	}
	if !bytes.Equal(w.Bytes(), unsealed) {
		t.Errorf("unsealed block encoding (%x) does not match the input (%x)", w.Bytes(), unsealed)
	}
}

func TestBlockNilHeader(t *testing.T) {
	blk := &block.Block{}
	want := block.NewBlock()
	if !blk.Equal(want) {
		t.Errorf("a block without a header should equal an empty block")
	}
	enc, err := blk.MarshalBinary()
	if err != nil {
		t.Fatalf("unable to encode a block without a header: %v", err)
	}
	if !bytes.Equal(enc, want.RLP()) {
		t.Errorf("block without a header encoding (%x) does not match the empty block encoding (%x)", enc, want.RLP())
	}
	if blk.Hash() != want.Hash() {
		t.Errorf("block without a header hash (%x) does not match the empty block hash (%x)", blk.Hash(), want.Hash())
	}
	if err := blk.VerifyTxRoot(); err != nil {
		t.Errorf("an empty block should commit to the empty transactions root: %v", err)
	}
}

func TestBlockNegativeBigInt(t *testing.T) {
	blk, err := block.DecodeRLPBytes(shared.BlockRLP)
	if err != nil {
		t.Fatal(err)
	}
	blk.Transactions[0].Amount = big.NewInt(-1)
	if _, err := blk.MarshalBinary(); !errors.Is(err, rlp.ErrNegativeBigInt) {
		t.Errorf("encoding a block with a negative amount returned %v, expected rlp.ErrNegativeBigInt", err)
	}
	if enc := blk.RLP(); enc != nil {
		t.Errorf("RLP of a block with a negative amount should be nil, got %x", enc)
	}
}
