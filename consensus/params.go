// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus carries the immutable tunables the PoS kernel engine
// reads on every call. Callers are responsible for holding a Params value
// frozen for the duration of a verification call; the engine never mutates
// one.
package consensus

// ModifierIntervalRatio is the ratio of the last selection section's length
// to the first's when a modifier interval is split into 64 selection
// sections. Peercoin-derived chains have
// never made this configurable per-chain; it is embedded in code exactly as
// the teacher's nModifierIntervalRatio is.
const ModifierIntervalRatio int64 = 3

// Params is the set of consensus-critical constants the kernel engine and
// the stake modifier engine read. All fields must be held fixed for the
// duration of any single verification call.
type Params struct {
	// Name identifies this parameter set, e.g. "mainnet", "testnet".
	Name string

	// StakeMinAge is the minimum age, in seconds, a staked output must
	// have reached before it can satisfy the kernel.
	StakeMinAge int64

	// StakeMaxAge is the age, in seconds, beyond which additional coin
	// age no longer increases a V1 kernel's weight.
	StakeMaxAge int64

	// ModifierInterval is the wall-clock window, in seconds, over which
	// one stake modifier is authoritative.
	ModifierInterval int64

	// TargetSpacing is the intended average time, in seconds, between
	// blocks. The kernel and modifier engines do not read it, so it has no
	// effect on verdicts.
	TargetSpacing int64

	// ProtocolV2Height is the height at which the chain switches from
	// the V1 (coin-age weighted) kernel to the V2 (value-weighted)
	// kernel. A coinstake's V1/V2 routing is decided by comparing the
	// staking block's height (prevIndex.Height()+1) against this value.
	ProtocolV2Height int32

	// CoinbaseMaturity is the number of confirmations a coin must have
	// before it is eligible to stake.
	CoinbaseMaturity int32

	// StakeTimestampMask is the bitmask a V2 coinstake's timestamp must
	// clear.
	StakeTimestampMask uint32

	// StakeModifierCheckpoints hard-pins the expected stake modifier
	// checksum at specific heights, the way PPCoin-derived chains guard
	// against a modifier-derivation bug silently forking the chain. Not
	// required by any height is fine; an empty map disables the check.
	StakeModifierCheckpoints map[int32]uint32
}

// IsProtocolV2 reports whether a coinstake staked at stakingHeight is
// subject to the V2 kernel. stakingHeight is prevIndex.Height()+1, i.e. the
// height of the block the coinstake would be included in.
func (p *Params) IsProtocolV2(stakingHeight int32) bool {
	return stakingHeight > p.ProtocolV2Height
}
