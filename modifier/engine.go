// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
	"github.com/WikiMin3R/ClamsE/pos256"
)

// Engine derives stake modifiers for one chain's consensus parameters. It
// holds no state of its own; every call is a pure function of the block
// index passed in.
type Engine struct {
	Params *consensus.Params
}

// NewEngine returns an Engine bound to params.
func NewEngine(params *consensus.Params) *Engine {
	return &Engine{Params: params}
}

var _ blocktree.Modifier = (*Engine)(nil)

// candidate is one block eligible to contribute to a modifier rollover.
type candidate struct {
	blockTime int64
	hash      chainhash.Hash
	node      blocktree.BlockIndex
}

// byTimeThenHash orders candidates the way the committee selection requires:
// ascending by timestamp, and on a timestamp tie, ascending by the block
// hash's big-endian byte order.
type byTimeThenHash []candidate

func (s byTimeThenHash) Len() int      { return len(s) }
func (s byTimeThenHash) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byTimeThenHash) Less(i, j int) bool {
	if s[i].blockTime != s[j].blockTime {
		return s[i].blockTime < s[j].blockTime
	}
	bi, bj := s[i].hash[:], s[j].hash[:]
	for k := chainhash.HashSize - 1; k >= 0; k-- {
		if bi[k] != bj[k] {
			return bi[k] < bj[k]
		}
	}
	return false
}

// lastGeneratedModifier walks from node back toward genesis until it finds
// a block whose stake modifier was freshly derived there, returning that
// modifier and the block time it was generated at. node itself qualifies.
func lastGeneratedModifier(node blocktree.BlockIndex) (modifier uint64, modifierTime int64, err error) {
	if node == nil {
		return 0, 0, fmt.Errorf("modifier: lastGeneratedModifier: nil block index")
	}

	walk := node
	for walk.Prev() != nil && !walk.GeneratedStakeModifier() {
		walk = walk.Prev()
	}
	if !walk.GeneratedStakeModifier() {
		return 0, 0, ErrNoGeneratingAncestor
	}
	return walk.StakeModifier(), walk.BlockTime(), nil
}

// ComputeNext derives the stake modifier a block extending prev at blockTime
// should carry. prev is nil for the genesis block, which always generates
// the zero modifier. isProofOfStake is accepted to satisfy blocktree.Modifier
// but does not affect the result: a block's own kind never changes what
// modifier it inherits or generates.
func (e *Engine) ComputeNext(prev blocktree.BlockIndex, blockTime int64, isProofOfStake bool) (uint64, bool, error) {
	if prev == nil {
		return 0, true, nil
	}

	lastModifier, lastModifierTime, err := lastGeneratedModifier(prev)
	if err != nil {
		return 0, false, err
	}

	interval := e.Params.ModifierInterval
	if lastModifierTime/interval >= prev.BlockTime()/interval {
		log.Debugf("ComputeNext: no new interval, keeping modifier %#016x", lastModifier)
		return lastModifier, false, nil
	}

	selectionInterval := TotalSelectionInterval(e.Params)
	selectionStart := (prev.BlockTime()/interval)*interval - selectionInterval

	var candidates []candidate
	for walk := prev; walk != nil && walk.BlockTime() >= selectionStart; walk = walk.Prev() {
		candidates = append(candidates, candidate{
			blockTime: walk.BlockTime(),
			hash:      walk.Hash(),
			node:      walk,
		})
	}
	sort.Stable(byTimeThenHash(candidates))

	var newModifier uint64
	intervalStop := selectionStart
	selected := make(map[chainhash.Hash]struct{}, 64)

	rounds := 64
	if len(candidates) < rounds {
		rounds = len(candidates)
	}
	for round := 0; round < rounds; round++ {
		intervalStop += SelectionIntervalSection(round, e.Params)

		winner, err := selectBlockFromCandidates(candidates, selected, intervalStop, lastModifier)
		if err != nil {
			return 0, false, fmt.Errorf("modifier: compute next: round %d: %w", round, err)
		}

		newModifier |= uint64(winner.node.StakeEntropyBit()) << uint(round)
		selected[winner.hash] = struct{}{}

		log.Debugf("ComputeNext: round %d selected height=%d bit=%d modifier=%#016x",
			round, winner.node.Height(), winner.node.StakeEntropyBit(), newModifier)
	}

	log.Debugf("ComputeNext: new modifier=%#016x from %d rounds", newModifier, rounds)

	return newModifier, true, nil
}

// selectBlockFromCandidates picks the single winner of one selection round:
// the not-yet-selected candidate, timestamped no later than
// intervalStop once at least one candidate has been accepted, whose
// selection hash is lowest. A proof-of-stake candidate's selection hash is
// right-shifted by 32 bits before comparison so it is always preferred over
// a proof-of-work candidate with an otherwise lower raw hash, preserving
// the energy-efficiency property of favoring PoS blocks.
func selectBlockFromCandidates(candidates []candidate, selected map[chainhash.Hash]struct{}, intervalStop int64, prevModifier uint64) (candidate, error) {
	var best candidate
	var bestHash *chainhash.Hash
	haveBest := false

	for _, c := range candidates {
		if haveBest && c.blockTime > intervalStop {
			break
		}
		if _, ok := selected[c.hash]; ok {
			continue
		}

		hashProof := c.node.HashProof()

		buf := new(bytes.Buffer)
		buf.Write(hashProof[:])
		if err := pos256.WriteElement(buf, prevModifier); err != nil {
			return candidate{}, err
		}
		selectionHash := pos256.DoubleHash(buf.Bytes())

		if c.node.IsProofOfStake() {
			n := pos256.HashToBig(&selectionHash)
			n.Rsh(n, 32)
			shifted, err := pos256.BigToHash(n)
			if err != nil {
				return candidate{}, err
			}
			selectionHash = *shifted
		}

		if !haveBest {
			haveBest = true
			best = c
			bestHash = &selectionHash
			continue
		}
		if pos256.HashToBig(&selectionHash).Cmp(pos256.HashToBig(bestHash)) < 0 {
			best = c
			bestHash = &selectionHash
		}
	}

	if !haveBest {
		return candidate{}, fmt.Errorf("%w %d", ErrEmptyCandidateWindow, intervalStop)
	}
	return best, nil
}
