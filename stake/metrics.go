// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"math/big"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/WikiMin3R/ClamsE/blocktree"
	"github.com/WikiMin3R/ClamsE/consensus"
)

// metrics holds the facade's Prometheus collectors. It is constructed once,
// lazily, the first time a caller asks for it: importing this package (or
// even calling the facade) never forces a metrics registration a caller
// hasn't asked for, so the engine stays a pure library for callers that
// never scrape it.
type metrics struct {
	checksTotal      *prometheus.CounterVec
	checkDuration    *prometheus.HistogramVec
	modifierRollover prometheus.Counter
}

var (
	metricsOnce sync.Once
	metricsInst *metrics
)

// Metrics returns the package's Prometheus collectors, registering them
// with reg on first call. Subsequent calls (even with a different
// registry) return the same collector set; a caller that wants metrics
// exposed must call this once at startup with its chosen registry.
func Metrics(reg prometheus.Registerer) *metrics {
	metricsOnce.Do(func() {
		metricsInst = &metrics{
			checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "pos_kernel",
				Subsystem: "stake",
				Name:      "checks_total",
				Help:      "Count of stake verification calls by operation and result.",
			}, []string{"operation", "result"}),
			checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "pos_kernel",
				Subsystem: "stake",
				Name:      "check_duration_seconds",
				Help:      "Duration of stake verification calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
			modifierRollover: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "pos_kernel",
				Subsystem: "stake",
				Name:      "modifier_rollovers_total",
				Help:      "Count of stake modifier rollovers reported via ObserveModifierRollover.",
			}),
		}
		reg.MustRegister(metricsInst.checksTotal, metricsInst.checkDuration, metricsInst.modifierRollover)
	})
	return metricsInst
}

func (m *metrics) observe(operation string, err error, started time.Time) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "reject"
		if verr, ok := err.(*VerificationError); ok {
			result = verr.Severity.String()
		}
	}
	m.checksTotal.WithLabelValues(operation, result).Inc()
	m.checkDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// InstrumentedFacade wraps a Facade so every call also records Prometheus
// metrics under m. The facade itself never touches Prometheus directly, so
// a caller that doesn't want metrics can use Facade unwrapped.
type InstrumentedFacade struct {
	*Facade
	m *metrics
}

// NewInstrumentedFacade returns f wrapped with metrics registered against
// reg.
func NewInstrumentedFacade(f *Facade, reg prometheus.Registerer) *InstrumentedFacade {
	return &InstrumentedFacade{Facade: f, m: Metrics(reg)}
}

// CheckProofOfStake calls the wrapped Facade's CheckProofOfStake and
// records its outcome and latency under the "check_proof_of_stake" label.
func (i *InstrumentedFacade) CheckProofOfStake(prevIndex blocktree.BlockIndex, tx *Tx, bits uint32, params *consensus.Params) (chainhash.Hash, *big.Int, error) {
	started := time.Now()
	hashProof, target, err := i.Facade.CheckProofOfStake(prevIndex, tx, bits, params)
	i.m.observe("check_proof_of_stake", err, started)
	return hashProof, target, err
}

// CheckKernel calls the wrapped Facade's CheckKernel and records its
// outcome and latency under the "check_kernel" label.
func (i *InstrumentedFacade) CheckKernel(prevIndex blocktree.BlockIndex, bits uint32, prevout OutPoint, txTime int64, params *consensus.Params) (bool, error) {
	started := time.Now()
	ok, err := i.Facade.CheckKernel(prevIndex, bits, prevout, txTime, params)
	i.m.observe("check_kernel", err, started)
	return ok, err
}

// ObserveModifierRollover records one stake-modifier rollover. Callers
// that stamp a newly connected block (e.g. blocktree.Tree.Connect's
// caller) invoke this whenever modifier.Engine.ComputeNext reports
// generated=true, so the counter tracks rollovers actually applied to the
// active chain rather than every speculative ComputeNext call.
func (i *InstrumentedFacade) ObserveModifierRollover() {
	i.m.modifierRollover.Inc()
}
