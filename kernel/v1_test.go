// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
)

func baseV1Input(params *consensus.Params) V1Input {
	return V1Input{
		Bits:          0x207fffff, // an enormous target: any coin-day weighted hash passes
		StakeModifier: 0x1122334455667788,
		BlockFromTime: 1000,
		TxPrevOffset:  80,
		PrevTxTime:    1000,
		Prevout:       wire.OutPoint{Index: 0},
		PrevOutValue:  50 * consensus.Coin,
		TxTime:        1000 + params.StakeMinAge + 3600,
	}
}

func TestCheckStakeKernelHashV1MinAgeViolation(t *testing.T) {
	params := consensus.UnitTest()
	in := baseV1Input(params)
	in.TxTime = in.BlockFromTime + params.StakeMinAge - 1

	_, _, err := CheckStakeKernelHashV1(params, in)
	if err == nil {
		t.Fatal("expected a minimum-age violation error")
	}
}

func TestCheckStakeKernelHashV1TimestampViolation(t *testing.T) {
	params := consensus.UnitTest()
	in := baseV1Input(params)
	in.TxTime = in.PrevTxTime - 1

	_, _, err := CheckStakeKernelHashV1(params, in)
	if err == nil {
		t.Fatal("expected a transaction timestamp violation error")
	}
}

func TestCheckStakeKernelHashV1PassesUnderHugeTarget(t *testing.T) {
	params := consensus.UnitTest()
	in := baseV1Input(params)

	hash, ok, err := CheckStakeKernelHashV1(params, in)
	if err != nil {
		t.Fatalf("CheckStakeKernelHashV1: %v", err)
	}
	if !ok {
		t.Errorf("expected the kernel to pass under an enormous target")
	}
	if hash == (chainhash.Hash{}) {
		t.Errorf("expected a non-zero proof hash")
	}
}

func TestCheckStakeKernelHashV1FailsUnderZeroTarget(t *testing.T) {
	params := consensus.UnitTest()
	in := baseV1Input(params)
	in.Bits = 0x01003456 // compact-encodes to 0

	_, ok, err := CheckStakeKernelHashV1(params, in)
	if err != nil {
		t.Fatalf("CheckStakeKernelHashV1: %v", err)
	}
	if ok {
		t.Errorf("expected the kernel to fail under a zero target")
	}
}

func TestCheckStakeKernelHashV1Deterministic(t *testing.T) {
	params := consensus.UnitTest()
	in := baseV1Input(params)

	h1, ok1, err := CheckStakeKernelHashV1(params, in)
	if err != nil {
		t.Fatalf("CheckStakeKernelHashV1: %v", err)
	}
	h2, ok2, err := CheckStakeKernelHashV1(params, in)
	if err != nil {
		t.Fatalf("CheckStakeKernelHashV1 (repeat): %v", err)
	}
	if h1 != h2 || ok1 != ok2 {
		t.Errorf("CheckStakeKernelHashV1 is not deterministic for identical inputs")
	}
}

// fakeChain is a minimal linear blocktree.BlockIndex chain for exercising
// GetKernelStakeModifier's forward walk.
type fakeChain struct {
	height    int32
	blockTime int64
	generated bool
	modifier  uint64
	next      *fakeChain
	prev      *fakeChain
}

func (n *fakeChain) Height() int32                    { return n.height }
func (n *fakeChain) BlockTime() int64                 { return n.blockTime }
func (n *fakeChain) Hash() chainhash.Hash             { return chainhash.Hash{} }
func (n *fakeChain) HashProof() chainhash.Hash        { return chainhash.Hash{} }
func (n *fakeChain) StakeModifier() uint64            { return n.modifier }
func (n *fakeChain) GeneratedStakeModifier() bool     { return n.generated }
func (n *fakeChain) StakeEntropyBit() uint8           { return 0 }
func (n *fakeChain) IsProofOfStake() bool             { return false }
func (n *fakeChain) StakeModifierChecksum() uint32    { return 0 }

func (n *fakeChain) Prev() blocktree.BlockIndex {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *fakeChain) Next() blocktree.BlockIndex {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *fakeChain) AncestorAt(height int32) blocktree.BlockIndex {
	walk := n
	for walk != nil && walk.height > height {
		walk = walk.prev
	}
	if walk == nil || walk.height != height {
		return nil
	}
	return walk
}

func buildFakeChain(times []int64, generated []bool, modifiers []uint64) *fakeChain {
	var prev *fakeChain
	var head *fakeChain
	for i, t := range times {
		node := &fakeChain{
			height:    int32(i),
			blockTime: t,
			generated: generated[i],
			modifier:  modifiers[i],
			prev:      prev,
		}
		if prev != nil {
			prev.next = node
		}
		prev = node
		head = node
	}
	_ = head
	return headOf(prev)
}

func headOf(tail *fakeChain) *fakeChain {
	walk := tail
	for walk.prev != nil {
		walk = walk.prev
	}
	return walk
}

func TestGetKernelStakeModifierWalksForward(t *testing.T) {
	params := consensus.UnitTest()
	selectionInterval := int64(0)
	for n := 0; n < 64; n++ {
		selectionInterval += params.ModifierInterval * 63 / (63 + int64(63-n)*(consensus.ModifierIntervalRatio-1))
	}

	blockFromTime := int64(1000)
	farEnoughTime := blockFromTime + selectionInterval

	chain := buildFakeChain(
		[]int64{blockFromTime, blockFromTime + 10, farEnoughTime + 5},
		[]bool{true, false, true},
		[]uint64{0xaaaa, 0, 0xbbbb},
	)

	stakeModifier, modifierHeight, _, err := GetKernelStakeModifier(params, chain, farEnoughTime+100)
	if err != nil {
		t.Fatalf("GetKernelStakeModifier: %v", err)
	}
	if stakeModifier != 0xbbbb {
		t.Errorf("stakeModifier = %#x, want 0xbbbb (from the third block)", stakeModifier)
	}
	if modifierHeight != 2 {
		t.Errorf("modifierHeight = %d, want 2", modifierHeight)
	}
}

func TestGetKernelStakeModifierErrorsWhenChainTooShort(t *testing.T) {
	params := consensus.UnitTest()
	chain := buildFakeChain([]int64{1000}, []bool{true}, []uint64{0x1})

	if _, _, _, err := GetKernelStakeModifier(params, chain, 1000); err == nil {
		t.Fatal("expected an error when the chain has not grown past blockFrom")
	}
}
