// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
)

// fakeIndex is a minimal linkable blocktree.BlockIndex for exercising the
// facade without pulling in the real blocktree.Tree bookkeeping.
type fakeIndex struct {
	height        int32
	blockTime     int64
	hash          chainhash.Hash
	stakeModifier uint64
	generated     bool
	prev          *fakeIndex
	next          *fakeIndex
}

func (n *fakeIndex) Height() int32                  { return n.height }
func (n *fakeIndex) BlockTime() int64                { return n.blockTime }
func (n *fakeIndex) Hash() chainhash.Hash            { return n.hash }
func (n *fakeIndex) HashProof() chainhash.Hash       { return chainhash.Hash{} }
func (n *fakeIndex) StakeModifier() uint64           { return n.stakeModifier }
func (n *fakeIndex) GeneratedStakeModifier() bool    { return n.generated }
func (n *fakeIndex) StakeEntropyBit() uint8          { return 0 }
func (n *fakeIndex) IsProofOfStake() bool            { return false }
func (n *fakeIndex) StakeModifierChecksum() uint32   { return 0 }

func (n *fakeIndex) Prev() blocktree.BlockIndex {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *fakeIndex) Next() blocktree.BlockIndex {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *fakeIndex) AncestorAt(height int32) blocktree.BlockIndex {
	walk := n
	for walk != nil && walk.height > height {
		walk = walk.prev
	}
	if walk == nil || walk.height != height {
		return nil
	}
	return walk
}

// chainOf builds a linear chain of n blocks, each spacing seconds apart,
// with every block marked as a fresh stake-modifier generation so a V1
// forward walk stops at the first block timestamped at least one selection
// interval past blockFrom; the chain must span that interval for the walk
// to resolve. Returns the tip. Real chains only roll over once per modifier
// interval, but nothing in the facade cares how often a test chain rolls
// over.
func chainOf(n int, spacing int64) *fakeIndex {
	var prev *fakeIndex
	var head *fakeIndex
	t := int64(1_700_000_000)
	for i := 0; i < n; i++ {
		node := &fakeIndex{height: int32(i), blockTime: t, prev: prev, generated: true, stakeModifier: 0x1122334455667788}
		if prev != nil {
			prev.next = node
		}
		prev = node
		head = node
		t += spacing
	}
	return head
}

type fakeUTXO map[OutPoint]Coin

func (u fakeUTXO) GetCoin(op OutPoint) (Coin, bool) {
	c, ok := u[op]
	return c, ok
}

type fakeBlockStore struct{}

func (fakeBlockStore) ReadBlock(index blocktree.BlockIndex) (int64, bool) {
	return index.BlockTime(), true
}

type fakeTxStore map[chainhash.Hash]*Tx

func (s fakeTxStore) GetTransaction(hash chainhash.Hash) (*Tx, chainhash.Hash, bool) {
	tx, ok := s[hash]
	return tx, chainhash.Hash{}, ok
}

type fakeTreeDB struct{ offset uint32 }

func (f fakeTreeDB) ReadTxOffsetIndex(int32) (uint32, error) { return f.offset, nil }

type fakeVerifier struct{ ok bool }

func (f fakeVerifier) Verify(Coin, chainhash.Hash, *Tx, int) (bool, error) { return f.ok, nil }

func TestCheckProofOfStakeRejectsNonCoinstake(t *testing.T) {
	f := &Facade{}
	_, _, err := f.CheckProofOfStake(nil, &Tx{IsCoinstake: false}, 0, consensus.UnitTest())
	if !errors.Is(err, ErrNotCoinstake) {
		t.Fatalf("expected ErrNotCoinstake, got %v", err)
	}
}

func TestCheckProofOfStakeRejectsMissingCoin(t *testing.T) {
	f := &Facade{UTXO: fakeUTXO{}}
	tx := &Tx{IsCoinstake: true, Inputs: []TxIn{{PrevOut: OutPoint{Index: 0}}}}
	_, _, err := f.CheckProofOfStake(nil, tx, 0, consensus.UnitTest())
	if !errors.Is(err, ErrCoinNotFound) {
		t.Fatalf("expected ErrCoinNotFound, got %v", err)
	}
}

func TestCheckProofOfStakeHappyPathV1(t *testing.T) {
	params := consensus.UnitTest()
	chain := chainOf(15, 1800)

	prevoutHash := chainhash.Hash{0x01}
	prevout := OutPoint{Hash: prevoutHash, Index: 0}

	txPrevTime := uint32(chain.AncestorAt(0).BlockTime())
	txPrev := &Tx{
		Hash:    prevoutHash,
		Time:    txPrevTime,
		Outputs: []TxOut{{Value: 50 * consensus.Coin}},
	}

	f := &Facade{
		UTXO:   fakeUTXO{prevout: {Height: 0, Value: 50 * consensus.Coin}},
		Blocks: fakeBlockStore{},
		Txs:    fakeTxStore{prevoutHash: txPrev},
		TreeDB: fakeTreeDB{offset: 80},
		Script: fakeVerifier{ok: true},
	}

	tx := &Tx{
		IsCoinstake: true,
		Time:        uint32(int64(txPrevTime) + params.StakeMinAge + 3600),
		Inputs:      []TxIn{{PrevOut: prevout}},
	}

	hashProof, target, err := f.CheckProofOfStake(chain, tx, 0x207fffff, params)
	if err != nil {
		t.Fatalf("CheckProofOfStake: %v", err)
	}
	if hashProof == (chainhash.Hash{}) {
		t.Error("expected a non-zero proof hash")
	}
	if target == nil || target.Sign() <= 0 {
		t.Error("expected a positive target")
	}
}

func TestCheckProofOfStakeBadSignatureIsFatal(t *testing.T) {
	params := consensus.UnitTest()
	chain := chainOf(1, 60)

	prevoutHash := chainhash.Hash{0x02}
	prevout := OutPoint{Hash: prevoutHash, Index: 0}
	txPrev := &Tx{Hash: prevoutHash, Time: uint32(chain.BlockTime()), Outputs: []TxOut{{Value: consensus.Coin}}}

	f := &Facade{
		UTXO:   fakeUTXO{prevout: {Height: 0, Value: consensus.Coin}},
		Blocks: fakeBlockStore{},
		Txs:    fakeTxStore{prevoutHash: txPrev},
		TreeDB: fakeTreeDB{},
		Script: fakeVerifier{ok: false},
	}

	tx := &Tx{IsCoinstake: true, Time: uint32(chain.BlockTime()) + uint32(params.StakeMinAge) + 3600, Inputs: []TxIn{{PrevOut: prevout}}}

	_, _, err := f.CheckProofOfStake(chain, tx, 0x207fffff, params)
	var verr *VerificationError
	if !errors.As(err, &verr) || verr.Severity != SeverityFatal {
		t.Fatalf("expected a fatal VerificationError, got %v", err)
	}
}

func TestCheckKernelFailsSoftlyOnMissingCoin(t *testing.T) {
	params := consensus.UnitTest()
	chain := chainOf(1, 60)
	f := &Facade{UTXO: fakeUTXO{}}

	ok, err := f.CheckKernel(chain, 0x207fffff, OutPoint{Index: 0}, chain.BlockTime()+params.StakeMinAge, params)
	if err != nil {
		t.Fatalf("CheckKernel: %v", err)
	}
	if ok {
		t.Error("expected CheckKernel to fail softly on an unknown coin")
	}
}

func TestCheckKernelEnforcesCoinbaseMaturity(t *testing.T) {
	params := consensus.UnitTest()
	params.CoinbaseMaturity = 10
	chain := chainOf(1, 60)

	prevout := OutPoint{Hash: chainhash.Hash{0x03}, Index: 0}
	f := &Facade{UTXO: fakeUTXO{prevout: {Height: chain.Height(), Value: consensus.Coin}}}

	ok, err := f.CheckKernel(chain, 0x207fffff, prevout, chain.BlockTime()+params.StakeMinAge, params)
	if err != nil {
		t.Fatalf("CheckKernel: %v", err)
	}
	if ok {
		t.Error("expected CheckKernel to reject an immature coin")
	}
}
