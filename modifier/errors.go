// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import "errors"

// Sentinel errors ComputeNext wraps. Both are fatal per spec.md §7: neither
// has a recoverable path, since either means the caller handed the engine a
// block index that is not actually connected to the active chain.
var (
	// ErrNoGeneratingAncestor means the backward walk for the current
	// modifier's generating block reached genesis without finding one.
	ErrNoGeneratingAncestor = errors.New("modifier: no generated modifier found back to genesis")

	// ErrEmptyCandidateWindow means a selection round found no eligible
	// candidate block at or before its interval stop.
	ErrEmptyCandidateWindow = errors.New("modifier: no eligible candidate before interval stop")
)
