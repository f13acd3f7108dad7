// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command kernelcheck loads a JSON test-vector file describing a block
// index, a UTXO set, and a candidate coinstake, runs it through
// stake.Facade.CheckProofOfStake, and prints the verdict. It exists only to
// exercise the verification facade end to end the way a node's
// block-connection pipeline would; it is explicitly not part of the
// consensus core itself.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
	"github.com/WikiMin3R/ClamsE/stake"
)

// vectorFile is the on-disk JSON shape of a test vector.
type vectorFile struct {
	Params    string          `json:"params"`
	Chain     []vectorBlock   `json:"chain"`
	UTXO      []vectorCoin    `json:"utxo"`
	TxPrev    []vectorTx      `json:"tx_prev"`
	Coinstake vectorTx        `json:"coinstake"`
	Bits      string          `json:"bits"`
	TipHeight int32           `json:"tip_height"`
	Now       int64           `json:"now"`
}

type vectorBlock struct {
	Height        int32  `json:"height"`
	Time          int64  `json:"time"`
	Hash          string `json:"hash"`
	HashProof     string `json:"hash_proof"`
	StakeModifier uint64 `json:"stake_modifier"`
	Generated     bool   `json:"generated"`
	EntropyBit    uint8  `json:"entropy_bit"`
	IsProofOfStake bool  `json:"is_proof_of_stake"`
}

type vectorCoin struct {
	Hash    string `json:"hash"`
	Index   uint32 `json:"index"`
	Height  int32  `json:"height"`
	Value   int64  `json:"value"`
	IsSpent bool   `json:"is_spent"`
}

type vectorTx struct {
	Hash        string          `json:"hash"`
	Time        uint32          `json:"time"`
	IsCoinstake bool            `json:"is_coinstake"`
	Inputs      []vectorTxIn    `json:"inputs"`
	Outputs     []vectorTxOut   `json:"outputs"`
}

type vectorTxIn struct {
	PrevoutHash  string `json:"prevout_hash"`
	PrevoutIndex uint32 `json:"prevout_index"`
}

type vectorTxOut struct {
	Value int64 `json:"value"`
}

func parseHash(s string) (chainhash.Hash, error) {
	if s == "" {
		return chainhash.Hash{}, nil
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

func parseBits(s string) (uint32, error) {
	if len(s) > 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 4 {
		return 0, fmt.Errorf("kernelcheck: bits %q must be 4 hex bytes", s)
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// vectorNode is a standalone blocktree.BlockIndex built directly from a
// vector file, independent of blocktree.Tree's bookkeeping (which would
// require re-deriving every modifier rather than reading it from the
// vector).
type vectorNode struct {
	height        int32
	blockTime     int64
	hash          chainhash.Hash
	hashProof     chainhash.Hash
	stakeModifier uint64
	generated     bool
	entropyBit    uint8
	isPoS         bool
	prev          *vectorNode
	next          *vectorNode
}

var _ blocktree.BlockIndex = (*vectorNode)(nil)

func (n *vectorNode) Height() int32                { return n.height }
func (n *vectorNode) BlockTime() int64             { return n.blockTime }
func (n *vectorNode) Hash() chainhash.Hash         { return n.hash }
func (n *vectorNode) HashProof() chainhash.Hash    { return n.hashProof }
func (n *vectorNode) StakeModifier() uint64        { return n.stakeModifier }
func (n *vectorNode) GeneratedStakeModifier() bool { return n.generated }
func (n *vectorNode) StakeEntropyBit() uint8       { return n.entropyBit }
func (n *vectorNode) IsProofOfStake() bool         { return n.isPoS }
func (n *vectorNode) StakeModifierChecksum() uint32 { return 0 }

func (n *vectorNode) Prev() blocktree.BlockIndex {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

func (n *vectorNode) Next() blocktree.BlockIndex {
	if n.next == nil {
		return nil
	}
	return n.next
}

func (n *vectorNode) AncestorAt(height int32) blocktree.BlockIndex {
	walk := n
	for walk != nil && walk.height > height {
		walk = walk.prev
	}
	if walk == nil || walk.height != height {
		return nil
	}
	return walk
}

// buildChain links vector blocks into a doubly-linked active chain sorted
// by height, and returns a lookup by height.
func buildChain(blocks []vectorBlock) (map[int32]*vectorNode, error) {
	byHeight := make(map[int32]*vectorNode, len(blocks))
	for _, b := range blocks {
		hash, err := parseHash(b.Hash)
		if err != nil {
			return nil, fmt.Errorf("kernelcheck: block %d: parse hash: %w", b.Height, err)
		}
		hashProof, err := parseHash(b.HashProof)
		if err != nil {
			return nil, fmt.Errorf("kernelcheck: block %d: parse hash_proof: %w", b.Height, err)
		}
		byHeight[b.Height] = &vectorNode{
			height:        b.Height,
			blockTime:     b.Time,
			hash:          hash,
			hashProof:     hashProof,
			stakeModifier: b.StakeModifier,
			generated:     b.Generated,
			entropyBit:    b.EntropyBit,
			isPoS:         b.IsProofOfStake,
		}
	}
	for h, node := range byHeight {
		if prev, ok := byHeight[h-1]; ok {
			node.prev = prev
			prev.next = node
		}
	}
	return byHeight, nil
}

type memUTXO map[stake.OutPoint]stake.Coin

func (u memUTXO) GetCoin(op stake.OutPoint) (stake.Coin, bool) {
	c, ok := u[op]
	return c, ok
}

type memBlockStore struct{}

func (memBlockStore) ReadBlock(index blocktree.BlockIndex) (int64, bool) {
	return index.BlockTime(), true
}

type memTxStore map[chainhash.Hash]*stake.Tx

func (s memTxStore) GetTransaction(hash chainhash.Hash) (*stake.Tx, chainhash.Hash, bool) {
	tx, ok := s[hash]
	return tx, chainhash.Hash{}, ok
}

type zeroOffsetDB struct{}

func (zeroOffsetDB) ReadTxOffsetIndex(int32) (uint32, error) { return 0, nil }

type acceptAllVerifier struct{}

func (acceptAllVerifier) Verify(stake.Coin, chainhash.Hash, *stake.Tx, int) (bool, error) {
	return true, nil
}

type fixedClock struct{ now int64 }

func (c fixedClock) AdjustedTime() int64 { return c.now }

func toStakeTx(v vectorTx) (*stake.Tx, error) {
	hash, err := parseHash(v.Hash)
	if err != nil {
		return nil, fmt.Errorf("kernelcheck: tx %s: parse hash: %w", v.Hash, err)
	}
	tx := &stake.Tx{
		Hash:        hash,
		Time:        v.Time,
		IsCoinstake: v.IsCoinstake,
	}
	for _, in := range v.Inputs {
		prevHash, err := parseHash(in.PrevoutHash)
		if err != nil {
			return nil, fmt.Errorf("kernelcheck: tx %s: parse input prevout: %w", v.Hash, err)
		}
		tx.Inputs = append(tx.Inputs, stake.TxIn{PrevOut: stake.OutPoint{Hash: prevHash, Index: in.PrevoutIndex}})
	}
	for _, out := range v.Outputs {
		tx.Outputs = append(tx.Outputs, stake.TxOut{Value: out.Value})
	}
	return tx, nil
}

// loadVector parses r into everything CheckProofOfStake needs: a Facade
// wired to in-memory collaborators, the chain tip to verify against, the
// coinstake under test, and its claimed bits.
func loadVector(r io.Reader) (*stake.Facade, *consensus.Params, blocktree.BlockIndex, *stake.Tx, uint32, error) {
	var v vectorFile
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, nil, nil, nil, 0, fmt.Errorf("kernelcheck: decode vector: %w", err)
	}

	var params *consensus.Params
	switch v.Params {
	case "mainnet":
		params = consensus.Mainnet()
	case "testnet":
		params = consensus.Testnet()
	case "", "unittest":
		params = consensus.UnitTest()
	default:
		return nil, nil, nil, nil, 0, fmt.Errorf("kernelcheck: unknown params preset %q", v.Params)
	}

	chain, err := buildChain(v.Chain)
	if err != nil {
		return nil, nil, nil, nil, 0, err
	}
	tip, ok := chain[v.TipHeight]
	if !ok {
		return nil, nil, nil, nil, 0, fmt.Errorf("kernelcheck: no chain entry at tip_height %d", v.TipHeight)
	}

	utxo := make(memUTXO, len(v.UTXO))
	for _, c := range v.UTXO {
		hash, err := parseHash(c.Hash)
		if err != nil {
			return nil, nil, nil, nil, 0, fmt.Errorf("kernelcheck: utxo entry: parse hash: %w", err)
		}
		utxo[stake.OutPoint{Hash: hash, Index: c.Index}] = stake.Coin{Height: c.Height, IsSpent: c.IsSpent, Value: c.Value}
	}

	txs := make(memTxStore, len(v.TxPrev))
	for _, t := range v.TxPrev {
		tx, err := toStakeTx(t)
		if err != nil {
			return nil, nil, nil, nil, 0, err
		}
		txs[tx.Hash] = tx
	}

	coinstake, err := toStakeTx(v.Coinstake)
	if err != nil {
		return nil, nil, nil, nil, 0, err
	}

	bits, err := parseBits(v.Bits)
	if err != nil {
		return nil, nil, nil, nil, 0, err
	}

	facade := &stake.Facade{
		UTXO:   utxo,
		Blocks: memBlockStore{},
		Txs:    txs,
		TreeDB: zeroOffsetDB{},
		Script: acceptAllVerifier{},
		Clock:  fixedClock{now: v.Now},
	}

	return facade, params, tip, coinstake, bits, nil
}
