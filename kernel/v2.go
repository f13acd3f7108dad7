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

	"github.com/WikiMin3R/ClamsE/consensus"
	"github.com/WikiMin3R/ClamsE/pos256"
)

// V2Input bundles everything the value-weighted kernel hash needs beyond
// the consensus parameters and the active tip's current stake modifier.
type V2Input struct {
	// Bits is the target encoded in the staking block's header.
	Bits uint32

	// TipStakeModifier is the current chain tip's stake modifier,
	// used directly rather than looked up through a forward walk: V2
	// dropped the look-ahead committee search V1 required.
	TipStakeModifier uint64

	// BlockFromTime is the timestamp of the block holding the source
	// output.
	BlockFromTime int64

	// PrevTxTime is the source transaction's own timestamp.
	PrevTxTime int64

	// Prevout identifies the source output being staked.
	Prevout wire.OutPoint

	// PrevOutValue is the source output's value, in base units.
	PrevOutValue int64

	// TxTime is the coinstake's own timestamp, the value under test.
	TxTime int64
}

// CheckStakeKernelHashV2 evaluates the value-weighted kernel predicate: a
// SHA256d hash built from the tip's current stake modifier and the source
// output's identity must fall under a target scaled by the coin's raw
// value. Unlike V1, no coin-age weighting and no forward-looking modifier
// search are involved.
func CheckStakeKernelHashV2(params *consensus.Params, in V2Input) (hashProof chainhash.Hash, ok bool, err error) {
	if in.TxTime < in.PrevTxTime {
		return chainhash.Hash{}, false, fmt.Errorf("kernel: v2: coinstake time %d precedes source transaction time %d: %w", in.TxTime, in.PrevTxTime, ErrNTimeViolation)
	}
	if in.BlockFromTime+params.StakeMinAge > in.TxTime {
		return chainhash.Hash{}, false, fmt.Errorf("kernel: v2: %w", ErrMinAge)
	}

	target := new(big.Int).Mul(pos256.CompactToBig(in.Bits), big.NewInt(in.PrevOutValue))

	buf := new(bytes.Buffer)
	for _, el := range []interface{}{
		in.TipStakeModifier,
		uint32(in.BlockFromTime),
		uint32(in.PrevTxTime),
		&in.Prevout.Hash,
		in.Prevout.Index,
		uint32(in.TxTime),
	} {
		if err := pos256.WriteElement(buf, el); err != nil {
			return chainhash.Hash{}, false, fmt.Errorf("kernel: v2: serialize kernel hash input: %w", err)
		}
	}

	hash := pos256.DoubleHash(buf.Bytes())

	if pos256.HashToBig(&hash).Cmp(target) > 0 {
		log.Debugf("CheckStakeKernelHashV2: hash above target for prevout %v", in.Prevout)
		return hash, false, nil
	}

	return hash, true, nil
}
