// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
	"github.com/WikiMin3R/ClamsE/kernel"
	"github.com/WikiMin3R/ClamsE/modifier"
	"github.com/WikiMin3R/ClamsE/pos256"
)

// Facade wires the external collaborators of §6 into the public
// verification entry points (Component E). It holds no chain state of its
// own; every call reads whatever it needs through the collaborator
// interfaces and returns a verdict.
type Facade struct {
	UTXO    UTXOView
	Blocks  BlockStore
	Txs     TxStore
	TreeDB  BlockTreeDB
	Script  ScriptVerifier
	Clock   Clock
	Verbose bool
}

// CheckProofOfStake answers the question the whole engine exists for: is tx,
// staked at the given consensus params, a valid proof of stake against
// prevIndex (the block the new block would extend)? It resolves the kernel
// input through the UTXO view and block/tx stores, then dispatches to the
// V1 or V2 predicate by height.
//
// Historical quirk carried over from pos.cpp's CheckProofOfStake: the
// on-disk transaction offset used by the V1 predicate is read from the
// block-tree index keyed by prevIndex's height (the block the staking block
// extends), not by tx_prev's own containing block's height. That is reproduced here
// unchanged rather than silently corrected, since existing V1-era chain
// data was produced under it.
func (f *Facade) CheckProofOfStake(prevIndex blocktree.BlockIndex, tx *Tx, bits uint32, params *consensus.Params) (hashProof chainhash.Hash, target *big.Int, err error) {
	if !tx.IsCoinstake {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: %s", ErrNotCoinstake, tx.Hash)
	}
	if len(tx.Inputs) == 0 {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "coinstake %s carries no inputs", tx.Hash)
	}

	prevout := tx.Inputs[0].PrevOut

	coin, ok := f.UTXO.GetCoin(prevout)
	if !ok {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: %s", ErrCoinNotFound, prevout.Hash)
	}
	if coin.IsSpent {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: %s", ErrCoinSpent, prevout.Hash)
	}

	blockFrom := prevIndex.AncestorAt(coin.Height)
	if blockFrom == nil {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: height %d", ErrAncestorNotFound, coin.Height)
	}

	if _, ok := f.Blocks.ReadBlock(blockFrom); !ok {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: %s", ErrBlockNotFound, blockFrom.Hash())
	}

	txPrev, containingBlock, ok := f.Txs.GetTransaction(prevout.Hash)
	if !ok {
		return chainhash.Hash{}, nil, recoverablef("CheckProofOfStake", 1, "%w: %s", ErrTxNotInChain, prevout.Hash)
	}
	_ = containingBlock

	if int(prevout.Index) >= len(txPrev.Outputs) {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "prevout index %d out of range for tx %s", prevout.Index, prevout.Hash)
	}

	// The historical quirk: keyed by prevIndex's height, not tx_prev's
	// own confirmation height.
	txPrevOffset, err := f.TreeDB.ReadTxOffsetIndex(prevIndex.Height())
	if err != nil {
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "read tx offset index: %v", err)
	}

	if ok, verr := f.Script.Verify(coin, prevout.Hash, tx, 0); verr != nil || !ok {
		if verr == nil {
			verr = ErrBadSignature
		}
		return chainhash.Hash{}, nil, fatalf("CheckProofOfStake", 100, "%w: %v", ErrBadSignature, verr)
	}

	hashProof, target, ok, err = f.checkStakeKernelHash(prevIndex, bits, blockFrom, txPrevOffset, txPrev, prevout, int64(tx.Time), params, f.Verbose)
	if err != nil {
		return chainhash.Hash{}, nil, err
	}
	if !ok {
		return hashProof, target, recoverablef("CheckProofOfStake", 1, "kernel check failed on coinstake %s, hashProof=%s", tx.Hash, hashProof)
	}

	log.Debugf("CheckProofOfStake: coinstake %s satisfies kernel, hashProof=%s", tx.Hash, hashProof)
	return hashProof, target, nil
}

// checkStakeKernelHash routes to the V1 or V2 predicate by comparing the
// staking height (prevIndex.Height()+1) against params.ProtocolV2Height,
// per spec.md §4.E's CheckStakeKernelHash.
func (f *Facade) checkStakeKernelHash(prevIndex blocktree.BlockIndex, bits uint32, blockFrom blocktree.BlockIndex, txPrevOffset uint32, txPrev *Tx, prevout OutPoint, txTime int64, params *consensus.Params, verbose bool) (hashProof chainhash.Hash, target *big.Int, ok bool, err error) {
	var stakingHeight int32
	if prevIndex != nil {
		stakingHeight = prevIndex.Height() + 1
	}

	prevOutValue := txPrev.Outputs[prevout.Index].Value

	if params.IsProtocolV2(stakingHeight) {
		if prevIndex == nil {
			return chainhash.Hash{}, nil, false, fatalf("CheckStakeKernelHash", 100, "V2 kernel requires a non-nil chain tip")
		}
		hashProof, ok, err = kernel.CheckStakeKernelHashV2(params, kernel.V2Input{
			Bits:             bits,
			TipStakeModifier: prevIndex.StakeModifier(),
			BlockFromTime:    blockFrom.BlockTime(),
			PrevTxTime:       int64(txPrev.Time),
			Prevout:          wire.OutPoint{Hash: prevout.Hash, Index: prevout.Index},
			PrevOutValue:     prevOutValue,
			TxTime:           txTime,
		})
		if err != nil {
			return chainhash.Hash{}, nil, false, classifyKernelError("CheckStakeKernelHash", err)
		}
		target = new(big.Int).Mul(pos256.CompactToBig(bits), big.NewInt(prevOutValue))
		return hashProof, target, ok, nil
	}

	stakeModifier, _, _, merr := kernel.GetKernelStakeModifier(params, blockFrom, txTime)
	if merr != nil {
		if errors.Is(merr, kernel.ErrChainNotExtended) {
			if verbose || f.tooFarBehind(blockFrom, params) {
				return chainhash.Hash{}, nil, false, fatalf("CheckStakeKernelHash", 100, "get kernel stake modifier: %v", merr)
			}
			// Soft-false: this node itself has not caught up far
			// enough to resolve the V1 committee yet. No error, no
			// DoS score; the caller is expected to retry later.
			return chainhash.Hash{}, nil, false, nil
		}
		return chainhash.Hash{}, nil, false, fatalf("CheckStakeKernelHash", 100, "get kernel stake modifier: %v", merr)
	}

	hashProof, ok, err = kernel.CheckStakeKernelHashV1(params, kernel.V1Input{
		Bits:          bits,
		StakeModifier: stakeModifier,
		BlockFromTime: blockFrom.BlockTime(),
		TxPrevOffset:  txPrevOffset,
		PrevTxTime:    int64(txPrev.Time),
		Prevout:       wire.OutPoint{Hash: prevout.Hash, Index: prevout.Index},
		PrevOutValue:  prevOutValue,
		TxTime:        txTime,
	})
	if err != nil {
		return chainhash.Hash{}, nil, false, classifyKernelError("CheckStakeKernelHash", err)
	}

	weight := kernel.GetWeight(int64(txPrev.Time), txTime, params)
	coinDayWeight := new(big.Int).Div(
		new(big.Int).Div(new(big.Int).Mul(big.NewInt(prevOutValue), big.NewInt(weight)), big.NewInt(consensus.Coin)),
		big.NewInt(24*60*60))
	target = new(big.Int).Mul(coinDayWeight, pos256.CompactToBig(bits))

	return hashProof, target, ok, nil
}

// tooFarBehind reproduces spec.md §4.D's soft-false threshold for V1's
// forward-walk edge case: report a hard error (rather than a soft retry)
// when blockFrom's time plus StakeMinAge minus the total selection interval
// is still later than this node's adjusted time.
func (f *Facade) tooFarBehind(blockFrom blocktree.BlockIndex, params *consensus.Params) bool {
	if f.Clock == nil {
		return false
	}
	threshold := blockFrom.BlockTime() + params.StakeMinAge - modifier.TotalSelectionInterval(params)
	return threshold > f.Clock.AdjustedTime()
}

// CheckKernel is the lighter entry point mining loops use to probe whether
// a candidate UTXO would currently satisfy the kernel at txTime, without a
// full coinstake transaction or signature check. It fails softly (ok=false,
// err=nil) if the coin is unknown or already spent, and enforces coinbase
// maturity before ever calling the predicate — pos.cpp's CheckKernel guard,
// absent from the teacher's retrieved kernel.go slice but present upstream.
func (f *Facade) CheckKernel(prevIndex blocktree.BlockIndex, bits uint32, prevout OutPoint, txTime int64, params *consensus.Params) (ok bool, err error) {
	coin, found := f.UTXO.GetCoin(prevout)
	if !found || coin.IsSpent {
		return false, nil
	}

	var stakingHeight int32
	if prevIndex != nil {
		stakingHeight = prevIndex.Height() + 1
	}
	if stakingHeight-coin.Height < params.CoinbaseMaturity {
		return false, nil
	}

	blockFrom := prevIndex.AncestorAt(coin.Height)
	if blockFrom == nil {
		return false, fatalf("CheckKernel", 100, "%w: height %d", ErrAncestorNotFound, coin.Height)
	}

	txPrev, _, found := f.Txs.GetTransaction(prevout.Hash)
	if !found {
		return false, nil
	}
	if int(prevout.Index) >= len(txPrev.Outputs) {
		return false, fatalf("CheckKernel", 100, "prevout index %d out of range for tx %s", prevout.Index, prevout.Hash)
	}

	var txPrevOffset uint32
	if f.TreeDB != nil {
		txPrevOffset, err = f.TreeDB.ReadTxOffsetIndex(prevIndex.Height())
		if err != nil {
			return false, fatalf("CheckKernel", 100, "read tx offset index: %v", err)
		}
	}

	_, _, ok, err = f.checkStakeKernelHash(prevIndex, bits, blockFrom, txPrevOffset, txPrev, prevout, txTime, params, false)
	return ok, err
}

// classifyKernelError promotes a min-age or nTime violation from the
// kernel package (a caller-side invariant violation, not a consensus
// fault caused by an untrustworthy peer) to a recoverable VerificationError,
// and anything else to fatal.
func classifyKernelError(op string, err error) error {
	if errors.Is(err, kernel.ErrMinAge) || errors.Is(err, kernel.ErrNTimeViolation) {
		return recoverablef(op, 1, "%v", err)
	}
	return fatalf(op, 100, "%v", err)
}
