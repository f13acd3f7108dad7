// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/WikiMin3R/ClamsE/consensus"
)

func TestInstrumentedFacadeRecordsRejection(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst := NewInstrumentedFacade(&Facade{}, reg)

	before := testutil.ToFloat64(inst.m.checksTotal.WithLabelValues("check_proof_of_stake", "fatal"))

	_, _, err := inst.CheckProofOfStake(nil, &Tx{IsCoinstake: false}, 0, consensus.UnitTest())
	if err == nil {
		t.Fatal("expected an error for a non-coinstake transaction")
	}

	after := testutil.ToFloat64(inst.m.checksTotal.WithLabelValues("check_proof_of_stake", "fatal"))
	if after-before != 1 {
		t.Errorf("checksTotal did not increment for a fatal rejection: before=%v after=%v", before, after)
	}
}

func TestInstrumentedFacadeSharesUnderlyingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := NewInstrumentedFacade(&Facade{}, reg)
	b := NewInstrumentedFacade(&Facade{}, reg)
	if a.m != b.m {
		t.Error("expected Metrics to return the same lazily-initialized instance regardless of caller")
	}
}
