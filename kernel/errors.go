// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import "errors"

// Sentinel errors the V1 and V2 predicates wrap, so a caller can
// errors.Is against a specific failure rather than parsing message text.
var (
	// ErrNTimeViolation means a coinstake's own timestamp precedes the
	// timestamp of the transaction holding its kernel input.
	ErrNTimeViolation = errors.New("kernel: coinstake time precedes source transaction time")

	// ErrMinAge means the kernel input has not yet reached StakeMinAge
	// as of the candidate coinstake's timestamp.
	ErrMinAge = errors.New("kernel: source output has not reached the minimum stake age")

	// ErrChainNotExtended means GetKernelStakeModifier's forward walk
	// reached the active-chain tip before finding a block timestamped
	// one selection interval past blockFrom.
	ErrChainNotExtended = errors.New("kernel: chain has not extended one selection interval past the source block yet")
)
