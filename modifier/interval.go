// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modifier derives the 64-bit stake modifier that anchors a chain's
// proof-of-stake kernel: it is recomputed once per modifier interval from a
// pseudo-random "committee" of the 64 blocks preceding the rollover, so an
// attacker cannot bias it by choosing which blocks to produce.
package modifier

import "github.com/WikiMin3R/ClamsE/consensus"

// SelectionIntervalSection returns the length, in seconds, of the n'th of
// the 64 selection rounds a modifier interval is split into. The sections
// grow with n: round 0 is the shortest, round 63 the longest (ModifierInterval
// itself), so that later (more recent) blocks carry more weight toward
// selection.
func SelectionIntervalSection(n int, params *consensus.Params) int64 {
	return params.ModifierInterval * 63 /
		(63 + int64(63-n)*(consensus.ModifierIntervalRatio-1))
}

// TotalSelectionInterval returns the sum of all 64 section lengths: the
// total look-back window of blocks eligible to contribute to a stake
// modifier rollover.
func TotalSelectionInterval(params *consensus.Params) int64 {
	var total int64
	for n := 0; n < 64; n++ {
		total += SelectionIntervalSection(n, params)
	}
	return total
}
