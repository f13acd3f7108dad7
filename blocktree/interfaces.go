// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blocktree defines the minimal read-only view of the active chain
// the kernel and modifier engines need: per-block entropy, stake modifiers,
// and ancestor/descendant navigation. It owns no storage; a caller's real
// block index is expected to satisfy BlockIndex directly, the way the
// teacher's blockNode does for the wider chain package.
package blocktree

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// BlockIndex is the view the kernel and modifier engines hold of one block
// on the active chain. Implementations are expected to be cheap, in-memory
// nodes backed by a real block tree; nothing here touches disk.
type BlockIndex interface {
	// Height is the block's height, with the genesis block at 0.
	Height() int32

	// BlockTime is the block header's timestamp.
	BlockTime() int64

	// Hash is the block's own hash.
	Hash() chainhash.Hash

	// HashProof is the block's own proof hash: the kernel hash that
	// proved its stake for a PoS block, or its PoW hash for a PoW
	// block. It is always populated, never the zero hash, and feeds
	// both the stake modifier checksum and stake-modifier candidate
	// selection the same way the teacher's hashProofOfStake field does.
	HashProof() chainhash.Hash

	// StakeModifier is the 64-bit value stamped on this block by the
	// modifier engine when it was connected.
	StakeModifier() uint64

	// GeneratedStakeModifier reports whether this block's StakeModifier
	// was freshly derived (its modifier interval rolled over here)
	// rather than inherited unchanged from an ancestor.
	GeneratedStakeModifier() bool

	// StakeEntropyBit is the one bit of entropy this block contributes
	// to any stake modifier computed from a window containing it.
	StakeEntropyBit() uint8

	// IsProofOfStake reports whether this block's coinbase carries an
	// empty output vector and a staking coinstake as its second
	// transaction, i.e. whether it is a PoS block rather than a PoW one.
	IsProofOfStake() bool

	// StakeModifierChecksum is the top 32 bits (reading the digest as a
	// little-endian 256-bit integer) of the double-SHA256 of this block's
	// parent checksum, flags, HashProof and StakeModifier,
	// used to pin known-good modifiers at checkpoint heights.
	StakeModifierChecksum() uint32

	// Prev is the block's parent on the active chain, or nil for
	// genesis.
	Prev() BlockIndex

	// Next is the block's canonical child on the active chain, or nil
	// at the tip. Only meaningful for blocks currently on the active
	// chain; the V1 kernel's forward walk relies on it.
	Next() BlockIndex

	// AncestorAt returns the active-chain ancestor of this block at the
	// given height, or nil if height is out of range.
	AncestorAt(height int32) BlockIndex
}
