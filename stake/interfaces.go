// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/WikiMin3R/ClamsE/blocktree"
)

// UTXOView is the external collaborator holding the current unspent-output
// set. The engine never mutates it; it only ever reads a single coin at a
// time to locate and validate a kernel candidate.
type UTXOView interface {
	// GetCoin returns the Coin backing outpoint, and false if it is
	// unknown to the view (already spent and pruned, or never existed).
	GetCoin(outpoint OutPoint) (Coin, bool)
}

// BlockStore reads full blocks from disk given a block-index entry. The
// facade uses it only to confirm the source block is actually available
// before trusting its header fields; the engine never inspects the block's
// transactions itself, since the data it needs (BlockTime) already lives on
// the index entry.
type BlockStore interface {
	// ReadBlock returns true and the source block's own header timestamp
	// if index's block is present on disk, false if it could not be
	// read.
	ReadBlock(index blocktree.BlockIndex) (blockTime int64, ok bool)
}

// TxStore resolves a transaction by hash, the way a node's transaction
// index (or mempool-plus-index) does, returning also the hash of the block
// that contains it.
type TxStore interface {
	GetTransaction(hash chainhash.Hash) (tx *Tx, containingBlock chainhash.Hash, ok bool)
}

// BlockTreeDB exposes the on-disk byte offset of a transaction within its
// containing block, as recorded by the block-tree index. It backs the V1
// kernel's nTxPrevOffset term only; V2 has no equivalent field.
//
// Historical quirk carried over from pos.cpp's CheckProofOfStake: the
// original reads this index keyed by the height of the block the staking
// block extends (pindexPrev.Height()), not by tx_prev's own containing
// block's height.
// ReadTxOffsetIndex exposes the clean per-height interface described in
// spec.md §6 and leaves the choice of which height to pass to the caller;
// CheckProofOfStake below reproduces the historical quirk explicitly rather
// than silently "fixing" it, since legacy chain data was produced under it.
type BlockTreeDB interface {
	ReadTxOffsetIndex(height int32) (uint32, error)
}

// ScriptVerifier checks that a coinstake's kernel input actually spends the
// claimed previous output, i.e. that the scriptSig satisfies the
// scriptPubKey being spent. The facade always calls it with no verification
// flags, matching the source's SCRIPT_VERIFY_NONE.
type ScriptVerifier interface {
	Verify(coin Coin, prevTxHash chainhash.Hash, tx *Tx, inputIndex int) (bool, error)
}

// Clock supplies network-adjusted time, used only by the V1 kernel's
// forward-walk edge case: when kernel.GetKernelStakeModifier returns
// kernel.ErrChainNotExtended, the facade uses it to choose between a hard
// error and a soft false.
type Clock interface {
	AdjustedTime() int64
}
