// Package metrics exposes the Prometheus counters the round pacemaker
// advances as it runs, grounded directly on the original Rust source's
// eagerly-initialized counters::QC_ROUNDS_COUNT, counters::TIMEOUT_ROUNDS_COUNT,
// and counters::TIMEOUT_COUNT (RoundState::new), and on the
// Prometheus-based metrics style flow-go's module/metrics package and the
// rest of the retrieved corpus (tendermint, prysm, luxfi-consensus) all
// depend on github.com/prometheus/client_golang for.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "consensus"
const subsystem = "round_pacemaker"

// Collector tracks round-pacemaker liveness counters. Registered lazily by
// the caller (via MustRegister on a *prometheus.Registry) so importing
// this package never has global registration side effects.
type Collector struct {
	qcRounds      prometheus.Counter
	timeoutRounds prometheus.Counter
	timeouts      prometheus.Counter
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a Collector with fresh, unregistered metrics.
func NewCollector() *Collector {
	return &Collector{
		qcRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "qc_rounds_total",
			Help:      "Number of new rounds entered via a fresh quorum certificate.",
		}),
		timeoutRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "timeout_rounds_total",
			Help:      "Number of new rounds entered via a timeout certificate.",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "local_timeouts_total",
			Help:      "Number of local round-timeout expirations processed.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.qcRounds.Describe(ch)
	c.timeoutRounds.Describe(ch)
	c.timeouts.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.qcRounds.Collect(ch)
	c.timeoutRounds.Collect(ch)
	c.timeouts.Collect(ch)
}

// QCRoundStarted records a round entered via QCReady.
func (c *Collector) QCRoundStarted() {
	c.qcRounds.Inc()
}

// TimeoutRoundStarted records a round entered via a TC.
func (c *Collector) TimeoutRoundStarted() {
	c.timeoutRounds.Inc()
}

// LocalTimeout records a local round-timeout expiration.
func (c *Collector) LocalTimeout() {
	c.timeouts.Inc()
}
