// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

// Coin is the number of base units in one coin (spec.md §3's COIN = 10^8),
// matching Bitcoin/Peercoin-derived chains' satoshi scaling.
const Coin int64 = 100000000

const secondsPerDay = 24 * 60 * 60

// Mainnet returns a production-shaped parameter set in the spirit of the
// teacher's hardcoded peercoin mainnet constants: a 30-day minimum age, a
// 90-day maximum weighting age (StakeMaxAge in blockchain/kernel.go), and a
// six-hour modifier interval.
func Mainnet() *Params {
	return &Params{
		Name:               "mainnet",
		StakeMinAge:        30 * secondsPerDay,
		StakeMaxAge:        90 * secondsPerDay,
		ModifierInterval:   6 * 60 * 60,
		TargetSpacing:      10 * 60,
		ProtocolV2Height:   420000,
		CoinbaseMaturity:   500,
		StakeTimestampMask: 0x0000000f,
	}
}

// Testnet returns a looser parameter set intended for integration tests
// against a long-running chain: shorter ages and an earlier V2 switchover
// so both kernel versions are easy to exercise.
func Testnet() *Params {
	return &Params{
		Name:               "testnet",
		StakeMinAge:        60 * 60,
		StakeMaxAge:        90 * secondsPerDay,
		ModifierInterval:   10 * 60,
		TargetSpacing:      10 * 60,
		ProtocolV2Height:   1000,
		CoinbaseMaturity:   10,
		StakeTimestampMask: 0x0000000f,
	}
}

// UnitTest returns the parameter set used by the boundary scenarios in
// spec.md §8: StakeMinAge=3600, StakeMaxAge=90 days, a 10-minute modifier
// interval, and V2 disabled (a height no real test chain will reach) unless
// a test overrides ProtocolV2Height directly.
func UnitTest() *Params {
	return &Params{
		Name:               "unittest",
		StakeMinAge:        3600,
		StakeMaxAge:        90 * secondsPerDay,
		ModifierInterval:   10 * 60,
		TargetSpacing:      10 * 60,
		ProtocolV2Height:   1 << 30,
		CoinbaseMaturity:   1,
		StakeTimestampMask: 0x0000000f,
	}
}
