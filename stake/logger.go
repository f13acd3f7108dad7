// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import "github.com/btcsuite/btclog"

// log is the package-level logger the facade writes diagnostic detail to
// (each coinstake that satisfies the kernel, with its proof hash).
// It defaults to disabled output until a caller wires in a real backend
// with UseLogger.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by the verification facade.
func UseLogger(logger btclog.Logger) {
	log = logger
}
