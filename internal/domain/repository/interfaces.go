package repository

// Metrics abstracts the observability recorder so core packages stay
// testable without a live Prometheus registry.
type Metrics interface {
	RecordFrame(msgType string)
	RecordError(kind string)
	RecordReconnect()
	RecordRefresh(outcome string)
	RecordLastPrice(symbol string, price float64)
	SetWatchedCount(n int)
	SetContractCount(n int)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordFrame(string)              {}
func (NopMetrics) RecordError(string)              {}
func (NopMetrics) RecordReconnect()                {}
func (NopMetrics) RecordRefresh(string)            {}
func (NopMetrics) RecordLastPrice(string, float64) {}
func (NopMetrics) SetWatchedCount(int)             {}
func (NopMetrics) SetContractCount(int)            {}
