package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the engine's observability counters via Prometheus.
type Recorder struct {
	framesTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	reconnects     prometheus.Counter
	refreshTotal   *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	watchedGauge   prometheus.Gauge
	contractsGauge prometheus.Gauge
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		framesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memeflow_frames_total",
				Help: "Push frames received, by message type",
			},
			[]string{"type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memeflow_errors_total",
				Help: "Recoverable errors, by kind",
			},
			[]string{"kind"},
		),
		reconnects: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "memeflow_stream_reconnects_total",
				Help: "Reconnect attempts made by the push stream client",
			},
		),
		refreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memeflow_catalog_refresh_total",
				Help: "Catalog refresh outcomes",
			},
			[]string{"outcome"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "memeflow_last_price",
				Help: "Last pushed price for a watched symbol",
			},
			[]string{"symbol"},
		),
		watchedGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "memeflow_watched_instruments",
				Help: "Number of instruments with an active watch",
			},
		),
		contractsGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "memeflow_catalog_contracts",
				Help: "Aggregate contract count reported upstream",
			},
		),
	}
}

// RecordFrame counts one received push frame of the given type.
// Unrecognized discriminants arrive as "unknown".
func (r *Recorder) RecordFrame(msgType string) {
	r.framesTotal.WithLabelValues(msgType).Inc()
}

// RecordError counts a recoverable error.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordReconnect counts a stream reconnect attempt.
func (r *Recorder) RecordReconnect() {
	r.reconnects.Inc()
}

// RecordRefresh counts a catalog refresh by outcome ("ok" or "error").
func (r *Recorder) RecordRefresh(outcome string) {
	r.refreshTotal.WithLabelValues(outcome).Inc()
}

// RecordLastPrice records the last pushed price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// SetWatchedCount tracks active watch count.
func (r *Recorder) SetWatchedCount(n int) {
	r.watchedGauge.Set(float64(n))
}

// SetContractCount tracks the upstream aggregate contract count.
func (r *Recorder) SetContractCount(n int) {
	r.contractsGauge.Set(float64(n))
}
