// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocktree

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/WikiMin3R/ClamsE/pos256"
)

const (
	flagProofOfStake        = uint32(1 << 0)
	flagStakeEntropyBit     = uint32(1 << 1)
	flagStakeModifierGen    = uint32(1 << 2)
)

// Node is a concrete, in-memory BlockIndex. It carries exactly the fields
// the kernel and modifier engines consult; a real block tree is free to
// embed Node in a richer type or implement BlockIndex on its own.
type Node struct {
	height        int32
	blockTime     int64
	hash          chainhash.Hash
	hashProof     chainhash.Hash
	stakeModifier uint64
	checksum      uint32
	flags         uint32

	prev *Node
	next *Node
}

var _ BlockIndex = (*Node)(nil)

func (n *Node) Height() int32                  { return n.height }
func (n *Node) BlockTime() int64                { return n.blockTime }
func (n *Node) Hash() chainhash.Hash            { return n.hash }
func (n *Node) HashProof() chainhash.Hash       { return n.hashProof }
func (n *Node) StakeModifier() uint64           { return n.stakeModifier }
func (n *Node) StakeModifierChecksum() uint32   { return n.checksum }
func (n *Node) IsProofOfStake() bool            { return n.flags&flagProofOfStake != 0 }
func (n *Node) GeneratedStakeModifier() bool    { return n.flags&flagStakeModifierGen != 0 }

func (n *Node) StakeEntropyBit() uint8 {
	if n.flags&flagStakeEntropyBit != 0 {
		return 1
	}
	return 0
}

func (n *Node) Prev() BlockIndex {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *Node) Next() BlockIndex {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *Node) AncestorAt(height int32) BlockIndex {
	if height < 0 || height > n.height {
		return nil
	}
	walk := n
	for walk != nil && walk.height > height {
		walk = walk.prev
	}
	if walk == nil || walk.height != height {
		return nil
	}
	return walk
}

// Tree indexes Nodes by hash and tracks the active chain's tip, maintaining
// the canonical child pointer (Next) that the teacher's global block index
// never kept but the V1 kernel's forward walk needs.
type Tree struct {
	nodes map[chainhash.Hash]*Node
	tip   *Node
}

// NewTree returns an empty block tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[chainhash.Hash]*Node)}
}

// LookupNode returns the node with the given hash, or nil if unknown.
func (t *Tree) LookupNode(hash *chainhash.Hash) *Node {
	return t.nodes[*hash]
}

// Tip returns the current active-chain tip, or nil for an empty tree.
func (t *Tree) Tip() *Node {
	return t.tip
}

// NewBlockTemplate describes the fields Connect needs to build the next
// node on top of the tree's current tip.
type NewBlockTemplate struct {
	Hash          chainhash.Hash
	PrevHash      chainhash.Hash
	BlockTime     int64
	IsProofOfStake bool
	StakeEntropyBit uint8
	HashProof     chainhash.Hash
}

// Modifier is the subset of the stake modifier engine Connect calls to stamp
// a new node. It is satisfied by *modifier.Engine (its ComputeNext method), kept
// here as an interface so this package does not import the modifier
// package and create a cycle (the modifier engine itself accepts a
// BlockIndex).
type Modifier interface {
	ComputeNext(prev BlockIndex, blockTime int64, isProofOfStake bool) (stakeModifier uint64, generated bool, err error)
}

// Connect extends the active chain with a new block, computing and stamping
// its stake modifier and checksum the way the teacher's addToBlockIndex
// does, then linking it as the tip's new canonical child. It returns an
// error if a stake-modifier checkpoint at this height rejects the computed
// checksum.
func (t *Tree) Connect(tmpl NewBlockTemplate, mod Modifier, checkpoints map[int32]uint32) (*Node, error) {
	var prev *Node
	var height int32
	if t.tip == nil {
		height = 0
	} else {
		prev = t.LookupNode(&tmpl.PrevHash)
		if prev == nil {
			return nil, fmt.Errorf("blocktree: connect %s: unknown parent %s", tmpl.Hash, tmpl.PrevHash)
		}
		height = prev.height + 1
	}

	node := &Node{
		height:    height,
		blockTime: tmpl.BlockTime,
		hash:      tmpl.Hash,
		hashProof: tmpl.HashProof,
		prev:      prev,
	}
	if tmpl.IsProofOfStake {
		node.flags |= flagProofOfStake
	}
	if tmpl.StakeEntropyBit != 0 {
		node.flags |= flagStakeEntropyBit
	}

	var prevIndex BlockIndex
	if prev != nil {
		prevIndex = prev
	}
	stakeModifier, generated, err := mod.ComputeNext(prevIndex, tmpl.BlockTime, tmpl.IsProofOfStake)
	if err != nil {
		return nil, fmt.Errorf("blocktree: connect %s: compute stake modifier: %w", tmpl.Hash, err)
	}
	node.stakeModifier = stakeModifier
	if generated {
		node.flags |= flagStakeModifierGen
	}

	node.checksum, err = stakeModifierChecksum(prev, node)
	if err != nil {
		return nil, fmt.Errorf("blocktree: connect %s: stake modifier checksum: %w", tmpl.Hash, err)
	}
	if want, ok := checkpoints[height]; ok && want != node.checksum {
		return nil, fmt.Errorf("blocktree: connect %s: stake modifier checkpoint mismatch at height %d: got %d want %d",
			tmpl.Hash, height, node.checksum, want)
	}

	if prev != nil {
		prev.next = node
	}
	t.nodes[tmpl.Hash] = node
	t.tip = node

	return node, nil
}

// stakeModifierChecksum hashes the parent's checksum together with this
// node's flags, proof hash and stake modifier, then keeps the top 32 bits
// of the digest read as a little-endian 256-bit integer.
func stakeModifierChecksum(prev *Node, node *Node) (uint32, error) {
	buf := new(bytes.Buffer)

	var parentChecksum uint32
	if prev != nil {
		parentChecksum = prev.checksum
	}
	if err := pos256.WriteElement(buf, parentChecksum); err != nil {
		return 0, err
	}
	if err := pos256.WriteElement(buf, node.flags); err != nil {
		return 0, err
	}
	if _, err := buf.Write(node.hashProof[:]); err != nil {
		return 0, err
	}
	if err := pos256.WriteElement(buf, node.stakeModifier); err != nil {
		return 0, err
	}

	digest := pos256.DoubleHash(buf.Bytes())
	n := pos256.HashToBig(&digest)
	n.Rsh(n, 256-32)
	return uint32(n.Uint64()), nil
}
