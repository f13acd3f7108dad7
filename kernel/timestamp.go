// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import "github.com/WikiMin3R/ClamsE/consensus"

// CheckCoinstakeTimestamp reports whether a coinstake's own timestamp is
// acceptable for a block at the given height. Before the V2 switchover the
// block and transaction timestamps must match exactly; from the switchover
// height on, the timestamp must additionally clear StakeTimestampMask,
// quantizing coinstake timestamps to reduce kernel search granularity.
func CheckCoinstakeTimestamp(params *consensus.Params, height int32, blockTime, txTime int64) bool {
	if blockTime != txTime {
		return false
	}
	if params.IsProtocolV2(height) {
		return txTime&int64(params.StakeTimestampMask) == 0
	}
	return true
}
