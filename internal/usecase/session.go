package usecase

import (
	"context"
	"sync"
	"time"

	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/internal/service/stream"
	"MemeFlow/internal/view"
	"MemeFlow/pkg/logger"
)

// Upstream is the control-plane side of the backend: watch toggles go
// over REST while state flows back on the push stream.
type Upstream interface {
	Watch(ctx context.Context, id models.Identity) error
	Unwatch(ctx context.Context, id models.Identity) error
}

// SessionConfig holds the session-level knobs.
type SessionConfig struct {
	RefreshInterval time.Duration
}

// Status is a point-in-time snapshot of session health.
type Status struct {
	Connection    string `json:"connection"`
	ContractCount int    `json:"contract_count"`
	Watching      int    `json:"watching"`
	CatalogStale  bool   `json:"catalog_stale"`
	CatalogError  string `json:"catalog_error,omitempty"`
}

// Session owns the live dashboard state. A single event loop consumes
// push frames, periodic catalog refreshes and recompute requests, so
// view publication is serialized even though the stores themselves are
// individually locked. The published model is an immutable snapshot;
// readers never see a half-applied update.
type Session struct {
	cfg        SessionConfig
	registry   *registry.Registry
	ledger     *ledger.Ledger
	catalog    *catalog.Catalog
	stream     *stream.Client
	upstream   Upstream
	dispatcher *Dispatcher
	log        *logger.Logger
	metrics    repository.Metrics

	mu     sync.RWMutex
	model  view.Model
	mode   catalog.FilterMode
	search string

	recompute chan struct{}
	baseCtx   context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewSession wires a session over its stores and transports.
func NewSession(
	cfg SessionConfig,
	reg *registry.Registry,
	led *ledger.Ledger,
	cat *catalog.Catalog,
	str *stream.Client,
	up Upstream,
	disp *Dispatcher,
	log *logger.Logger,
	metrics repository.Metrics,
) *Session {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}
	return &Session{
		cfg:        cfg,
		registry:   reg,
		ledger:     led,
		catalog:    cat,
		stream:     str,
		upstream:   up,
		dispatcher: disp,
		log:        log,
		metrics:    metrics,
		mode:       catalog.FilterNew,
		recompute:  make(chan struct{}, 1),
	}
}

// Start connects the stream, kicks off the first catalog refresh and
// launches the event loop.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.baseCtx = ctx
	s.stream.Start(ctx)
	s.refreshAsync()

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop tears the session down: stream first so the frame channel
// closes, then the loop.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.stream.Stop()
	s.wg.Wait()
	s.log.Info("session stopped")
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-s.stream.Frames():
			if !ok {
				return
			}
			if s.dispatcher.Dispatch(frame) {
				s.publish()
			}
		case <-ticker.C:
			s.refreshAsync()
		case <-s.recompute:
			s.publish()
		}
	}
}

// View returns the last published model.
func (s *Session) View() view.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Status reports connection and data health.
func (s *Session) Status() Status {
	st := Status{
		Connection:    s.stream.State().String(),
		ContractCount: s.catalog.Count(),
		Watching:      s.registry.Len(),
	}
	if err := s.catalog.Err(); err != nil {
		st.CatalogStale = true
		st.CatalogError = err.Error()
	}
	return st
}

// Mode returns the active catalog filter mode.
func (s *Session) Mode() catalog.FilterMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the listing view and triggers a refresh under the
// new mode. The current snapshot stays on screen until the fetch
// lands.
func (s *Session) SetMode(mode catalog.FilterMode) {
	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.mu.Unlock()
	s.refreshAsync()
}

// SetSearch narrows the coin list by symbol or base coin. Purely
// local, no upstream round trip.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	changed := s.search != text
	s.search = text
	s.mu.Unlock()
	if changed {
		s.requestRecompute()
	}
}

// ToggleWatch flips the watch state of one instrument. The upstream
// call goes first; local state only changes once the backend accepted
// the toggle, so a failed request leaves the dashboard untouched.
// Returns the resulting watch state.
func (s *Session) ToggleWatch(ctx context.Context, id models.Identity) (bool, error) {
	if s.registry.Watching(id) {
		if err := s.upstream.Unwatch(ctx, id); err != nil {
			return true, err
		}
		s.registry.Remove(id)
		s.ledger.Clear(id.Symbol)
		if s.registry.Len() == 0 {
			s.ledger.ClearAll()
		}
		s.metrics.SetWatchedCount(s.registry.Len())
		s.log.Info("unwatched", logger.String("key", id.Key()))
		s.requestRecompute()
		return false, nil
	}

	if err := s.upstream.Watch(ctx, id); err != nil {
		return false, err
	}
	s.registry.Upsert(models.WatchEntry{Exchange: id.Exchange, Symbol: id.Symbol})
	s.metrics.SetWatchedCount(s.registry.Len())
	s.log.Info("watching", logger.String("key", id.Key()))
	s.requestRecompute()
	return true, nil
}

// Watch ensures the instrument is watched. A no-op when it already is.
func (s *Session) Watch(ctx context.Context, id models.Identity) error {
	if s.registry.Watching(id) {
		return nil
	}
	_, err := s.ToggleWatch(ctx, id)
	return err
}

// Unwatch ensures the instrument is not watched. A no-op when it
// already is not.
func (s *Session) Unwatch(ctx context.Context, id models.Identity) error {
	if !s.registry.Watching(id) {
		return nil
	}
	_, err := s.ToggleWatch(ctx, id)
	return err
}

// Watched returns the current watch list in insertion order.
func (s *Session) Watched() []models.WatchEntry {
	return s.registry.List()
}

// Coins applies the requested mode and search and returns the matching
// contracts. A mode change kicks off a refresh; until it lands the
// result comes from the previous snapshot.
func (s *Session) Coins(mode catalog.FilterMode, search string) []models.Contract {
	if mode != "" {
		s.SetMode(mode)
	}
	s.SetSearch(search)
	return s.catalog.Filter(search)
}

// Refresh forces a catalog reload outside the periodic schedule.
func (s *Session) Refresh() {
	s.refreshAsync()
}

// refreshAsync fetches the listing off the loop so a slow backend
// never stalls frame processing; the completion flows back through the
// recompute channel. The fetch runs under the session's own context,
// never a caller's: an HTTP request context dies the moment its
// handler returns and would abort the fetch it asked for.
func (s *Session) refreshAsync() {
	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	mode := s.Mode()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.catalog.Refresh(ctx, mode); err != nil {
			s.log.Warn("catalog refresh failed, keeping last snapshot",
				logger.String("mode", string(mode)), logger.Error(err))
			s.metrics.RecordRefresh("error")
		} else {
			s.metrics.RecordRefresh("ok")
			s.metrics.SetContractCount(s.catalog.Count())
		}
		s.requestRecompute()
	}()
}

func (s *Session) requestRecompute() {
	select {
	case s.recompute <- struct{}{}:
	default:
	}
}

// publish derives a fresh model from the stores and swaps it in.
func (s *Session) publish() {
	s.mu.RLock()
	search := s.search
	s.mu.RUnlock()

	model := view.Derive(s.catalog.Filter(search), s.registry.List(), s.ledger, s.catalog.Count())

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}
