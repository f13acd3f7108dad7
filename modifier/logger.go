// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import "github.com/btcsuite/btclog"

// log is the package-level logger modifier derivation writes round-by-round
// selection detail to. It defaults to disabled output until a caller wires
// in a real backend with UseLogger, following the convention the rest of
// the btcsuite ecosystem uses for libraries that do not want to force a
// particular logging backend on their importers.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by the stake modifier engine.
func UseLogger(logger btclog.Logger) {
	log = logger
}
