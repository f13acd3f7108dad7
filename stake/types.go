// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stake is the public verification facade (Component E): it wires
// the selection-interval, stake-modifier and kernel-predicate packages
// against the external collaborators a real node provides (a UTXO set, a
// block store, a transaction index, a script verifier, a clock) and answers
// the one question the whole engine exists for: is this coinstake, at this
// instant, a valid proof of stake against this chain tip.
package stake

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Coin is the UTXO-set view of one output: enough for the facade to locate
// the block that confirmed it, check its maturity, and read its value.
// Collaborators populate this from their own coin database; the engine
// never mutates it.
type Coin struct {
	// Height is the height of the block that created this output.
	Height int32

	// IsSpent reports whether the output has already been spent on the
	// active chain.
	IsSpent bool

	// Value is the output's value in base units.
	Value int64
}

// OutPoint identifies one transaction output: the transaction's hash and
// the output's index within it.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxOut is one output of a transaction, carrying only the fields the kernel
// predicate reads.
type TxOut struct {
	Value int64
}

// TxIn is one input of a transaction, carrying only the prevout it spends.
type TxIn struct {
	PrevOut OutPoint
}

// Tx is the read-only view of a transaction the kernel predicate and the
// facade need: its own timestamp, its inputs and outputs, whether it is a
// coinstake, and its own hash for error reporting and tx-store lookups.
type Tx struct {
	Hash        chainhash.Hash
	Time        uint32
	IsCoinstake bool
	Inputs      []TxIn
	Outputs     []TxOut
}
