// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
	"github.com/WikiMin3R/ClamsE/modifier"
	"github.com/WikiMin3R/ClamsE/pos256"
)

// V1Input bundles everything the coin-age-weighted kernel hash needs beyond
// the consensus parameters themselves.
type V1Input struct {
	// Bits is the target encoded in the staking block's header.
	Bits uint32

	// StakeModifier is the modifier value selected for this kernel by
	// GetKernelStakeModifier.
	StakeModifier uint64

	// BlockFromTime is the timestamp of the block holding the source
	// output.
	BlockFromTime int64

	// TxPrevOffset is the byte offset of the source transaction within
	// its block, folded into the hash to spread out candidate kernels
	// that would otherwise collide on identical timestamps.
	TxPrevOffset uint32

	// PrevTxTime is the source transaction's own timestamp; if it is
	// zero (no per-transaction timestamp recorded), callers should pass
	// BlockFromTime instead.
	PrevTxTime int64

	// Prevout identifies the source output being staked.
	Prevout wire.OutPoint

	// PrevOutValue is the source output's value, in base units.
	PrevOutValue int64

	// TxTime is the coinstake's own timestamp, the value under test.
	TxTime int64
}

// CheckStakeKernelHashV1 evaluates the coin-age-weighted kernel predicate:
// a SHA256d hash built from the stake modifier and the source output's
// identity must fall under a target scaled by the coin's age-weighted
// value. It returns the computed proof hash regardless of outcome, so a
// caller can stamp it on a newly connected block either way is useful for
// diagnostics; ok reports whether the hash actually met target.
func CheckStakeKernelHashV1(params *consensus.Params, in V1Input) (hashProof chainhash.Hash, ok bool, err error) {
	prevTxTime := in.PrevTxTime
	if prevTxTime == 0 {
		prevTxTime = in.BlockFromTime
	}
	if in.TxTime < prevTxTime {
		return chainhash.Hash{}, false, fmt.Errorf("kernel: v1: coinstake time %d precedes source transaction time %d: %w", in.TxTime, prevTxTime, ErrNTimeViolation)
	}
	if in.BlockFromTime+params.StakeMinAge > in.TxTime {
		return chainhash.Hash{}, false, fmt.Errorf("kernel: v1: %w", ErrMinAge)
	}

	timeWeight := GetWeight(prevTxTime, in.TxTime, params)

	coinDayWeight := new(big.Int).Mul(big.NewInt(in.PrevOutValue), big.NewInt(timeWeight))
	coinDayWeight.Div(coinDayWeight, big.NewInt(consensus.Coin))
	coinDayWeight.Div(coinDayWeight, big.NewInt(24*60*60))

	buf := new(bytes.Buffer)
	for _, el := range []interface{}{
		in.StakeModifier,
		uint32(in.BlockFromTime),
		in.TxPrevOffset,
		uint32(prevTxTime),
		in.Prevout.Index,
		uint32(in.TxTime),
	} {
		if err := pos256.WriteElement(buf, el); err != nil {
			return chainhash.Hash{}, false, fmt.Errorf("kernel: v1: serialize kernel hash input: %w", err)
		}
	}

	hash := pos256.DoubleHash(buf.Bytes())

	target := new(big.Int).Mul(coinDayWeight, pos256.CompactToBig(in.Bits))
	if pos256.HashToBig(&hash).Cmp(target) > 0 {
		log.Debugf("CheckStakeKernelHashV1: hash above target for prevout %v", in.Prevout)
		return hash, false, nil
	}

	return hash, true, nil
}

// GetKernelStakeModifier locates the stake modifier a V1 kernel staked from
// blockFrom must use: the modifier generated at the earliest block on the
// active chain whose generation time is at least one selection interval
// past blockFrom's own time. That look-ahead is what makes it infeasible
// for the source output's owner to precompute which modifier their kernel
// will be judged against at the moment the output confirms.
//
// stakingTime is accepted for diagnostics only: it appears in the error
// message, and the walk never compares block times against it.
func GetKernelStakeModifier(params *consensus.Params, blockFrom blocktree.BlockIndex, stakingTime int64) (stakeModifier uint64, modifierHeight int32, modifierTime int64, err error) {
	target := blockFrom.BlockTime() + modifier.TotalSelectionInterval(params)

	walk := blockFrom
	modifierHeight = walk.Height()
	modifierTime = walk.BlockTime()

	for modifierTime < target {
		next := walk.Next()
		if next == nil {
			return 0, 0, 0, fmt.Errorf("kernel: v1: cannot stake at time %d from height %d: %w", stakingTime, blockFrom.Height(), ErrChainNotExtended)
		}
		walk = next
		if walk.GeneratedStakeModifier() {
			modifierHeight = walk.Height()
			modifierTime = walk.BlockTime()
		}
	}

	return walk.StakeModifier(), modifierHeight, modifierTime, nil
}
