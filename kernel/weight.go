// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kernel implements the two proof-of-stake kernel hash tests: the
// coin-age-weighted predicate used before a chain's V2 switchover, and the
// value-weighted predicate used after it.
package kernel

import "github.com/WikiMin3R/ClamsE/consensus"

// GetWeight returns the coin-age weight of a stake between fromTime (the
// source output's own timestamp) and toTime (the candidate kernel's
// timestamp): StakeMinAge is subtracted first so a coin starts contributing
// weight from zero the moment it matures rather than all at once, then the
// result is capped at StakeMaxAge so very old coins stop accruing extra
// weight.
//
// The result is not clamped at zero. A coin younger than StakeMinAge
// produces a negative weight; callers that have not already rejected such
// a coin via the minimum-age check will see a negative coin-day weight
// propagate into the target comparison, which simply makes the kernel
// target smaller and the hash test correspondingly harder to satisfy.
func GetWeight(fromTime, toTime int64, params *consensus.Params) int64 {
	age := toTime - fromTime - params.StakeMinAge
	if age > params.StakeMaxAge {
		age = params.StakeMaxAge
	}
	return age
}
