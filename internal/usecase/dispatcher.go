package usecase

import (
	"encoding/json"

	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/pkg/logger"
)

// Dispatcher routes decoded push frames into the owned stores. Dispatch
// reports whether the frame changed state that the view model reflects,
// so the caller knows when to re-derive.
type Dispatcher struct {
	registry *registry.Registry
	ledger   *ledger.Ledger
	catalog  *catalog.Catalog
	log      *logger.Logger
	metrics  repository.Metrics
}

// NewDispatcher creates a dispatcher over the session's stores.
func NewDispatcher(reg *registry.Registry, led *ledger.Ledger, cat *catalog.Catalog, log *logger.Logger, metrics repository.Metrics) *Dispatcher {
	return &Dispatcher{registry: reg, ledger: led, catalog: cat, log: log, metrics: metrics}
}

// Dispatch decodes and routes one raw frame. Decode failures are logged
// and dropped without touching any store or the connection.
func (d *Dispatcher) Dispatch(frame []byte) bool {
	var env models.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		d.log.Warn("dropping undecodable frame", logger.Error(err))
		d.metrics.RecordError("frame_decode")
		return false
	}

	switch env.Type {
	case models.MsgInit:
		d.metrics.RecordFrame(env.Type)
		return d.handleInit(env)
	case models.MsgStats:
		d.metrics.RecordFrame(env.Type)
		return d.handleStats(env)
	case models.MsgAlert:
		d.metrics.RecordFrame(env.Type)
		return d.handleAlert(env)
	case models.MsgHeartbeat:
		// Liveness only; no state, no recompute.
		d.metrics.RecordFrame(env.Type)
		return false
	default:
		d.log.Debug("unhandled message type", logger.String("type", env.Type))
		d.metrics.RecordFrame("unknown")
		return false
	}
}

// handleInit wholesale-replaces the watch list with the server's view.
func (d *Dispatcher) handleInit(env models.Envelope) bool {
	d.registry.ReplaceAll(env.Watching)
	if env.ContractCount > 0 {
		d.catalog.SetCount(env.ContractCount)
		d.metrics.SetContractCount(env.ContractCount)
	}
	if len(env.Watching) == 0 {
		// Nothing watched means nothing to pin alerts to.
		d.ledger.ClearAll()
	}
	d.metrics.SetWatchedCount(len(env.Watching))
	d.log.Info("watch list initialized", logger.Int("watching", len(env.Watching)))
	return true
}

// handleStats merges a partial update onto the watched entry. A key no
// longer watched (unwatch racing an in-flight push) is dropped silently
// and triggers nothing.
func (d *Dispatcher) handleStats(env models.Envelope) bool {
	if env.Key == "" || len(env.Data) == 0 {
		d.metrics.RecordError("stats_malformed")
		return false
	}
	var u models.StatsUpdate
	if err := json.Unmarshal(env.Data, &u); err != nil {
		d.log.Warn("dropping undecodable stats payload", logger.String("key", env.Key), logger.Error(err))
		d.metrics.RecordError("frame_decode")
		return false
	}

	if !d.registry.Merge(env.Key, u) {
		return false
	}
	if u.LastPrice != nil {
		if id, ok := models.ParseKey(env.Key); ok {
			d.metrics.RecordLastPrice(id.Symbol, *u.LastPrice)
		}
	}
	return true
}

// handleAlert records the alert regardless of watch membership; the
// ledger is keyed independently. Alerts render inside every watch card's
// recent-alert slots, so any alert refreshes the whole panel.
func (d *Dispatcher) handleAlert(env models.Envelope) bool {
	var a models.Alert
	if err := json.Unmarshal(env.Data, &a); err != nil {
		d.log.Warn("dropping undecodable alert payload", logger.Error(err))
		d.metrics.RecordError("frame_decode")
		return false
	}
	if a.Symbol == "" {
		d.metrics.RecordError("alert_no_symbol")
		return false
	}
	d.ledger.Record(a)
	return true
}
