package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/internal/service/stream"
	"MemeFlow/pkg/logger"
)

type fakeUpstream struct {
	watched   []string
	unwatched []string
	err       error
}

func (f *fakeUpstream) Watch(_ context.Context, id models.Identity) error {
	if f.err != nil {
		return f.err
	}
	f.watched = append(f.watched, id.Key())
	return nil
}

func (f *fakeUpstream) Unwatch(_ context.Context, id models.Identity) error {
	if f.err != nil {
		return f.err
	}
	f.unwatched = append(f.unwatched, id.Key())
	return nil
}

type listingSource struct {
	contracts []models.Contract
	count     int
	err       error
}

func (s *listingSource) Contracts(context.Context, int, string) ([]models.Contract, error) {
	return s.contracts, s.err
}

func (s *listingSource) NewListings(context.Context, int) ([]models.Contract, error) {
	return s.contracts, s.err
}

func (s *listingSource) ContractCount(context.Context) (int, error) {
	return s.count, s.err
}

func newSession(up Upstream, src catalog.Source) *Session {
	reg := registry.New()
	led := ledger.New()
	cat := catalog.New(catalog.Config{NewLimit: 150, AllLimit: 500}, src)
	log := logger.Nop()
	met := repository.NopMetrics{}
	return NewSession(
		SessionConfig{},
		reg, led, cat,
		stream.New(stream.Config{URL: "ws://unused"}, log, met),
		up,
		NewDispatcher(reg, led, cat, log, met),
		log, met,
	)
}

func TestToggleWatchRoundTrip(t *testing.T) {
	up := &fakeUpstream{}
	s := newSession(up, &listingSource{})
	id := models.Identity{Exchange: "bingx", Symbol: "WIF-USDT"}

	watching, err := s.ToggleWatch(context.Background(), id)
	if err != nil || !watching {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", watching, err)
	}
	if !s.registry.Watching(id) {
		t.Fatal("registry missing entry after watch")
	}
	if len(up.watched) != 1 || up.watched[0] != "bingx:WIF-USDT" {
		t.Fatalf("upstream watch calls = %v", up.watched)
	}

	watching, err = s.ToggleWatch(context.Background(), id)
	if err != nil || watching {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", watching, err)
	}
	if s.registry.Len() != 0 {
		t.Fatal("entry survived unwatch")
	}
	if len(up.unwatched) != 1 {
		t.Fatalf("upstream unwatch calls = %v", up.unwatched)
	}
}

func TestToggleWatchUpstreamFailure(t *testing.T) {
	up := &fakeUpstream{err: errors.New("backend down")}
	s := newSession(up, &listingSource{})
	id := models.Identity{Exchange: "bingx", Symbol: "WIF-USDT"}

	if _, err := s.ToggleWatch(context.Background(), id); err == nil {
		t.Fatal("expected error from failed watch call")
	}
	if s.registry.Len() != 0 {
		t.Fatal("local state changed despite upstream failure")
	}
}

func TestUnwatchClearsAlerts(t *testing.T) {
	up := &fakeUpstream{}
	s := newSession(up, &listingSource{})
	a := models.Identity{Exchange: "bingx", Symbol: "WIF-USDT"}
	b := models.Identity{Exchange: "blofin", Symbol: "PEPE-USDT"}

	for _, id := range []models.Identity{a, b} {
		if _, err := s.ToggleWatch(context.Background(), id); err != nil {
			t.Fatal(err)
		}
	}
	s.ledger.Record(models.Alert{Symbol: a.Symbol, Side: models.SideBuy, ValueUSD: 20000})
	s.ledger.Record(models.Alert{Symbol: b.Symbol, Side: models.SideSell, ValueUSD: 15000})

	if _, err := s.ToggleWatch(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if got := s.ledger.Read(a.Symbol, 10); len(got) != 0 {
		t.Errorf("alerts for unwatched symbol survived: %v", got)
	}
	if got := s.ledger.Read(b.Symbol, 10); len(got) != 1 {
		t.Errorf("unrelated alerts lost: %v", got)
	}

	// Removing the last watch drains the whole ledger.
	if _, err := s.ToggleWatch(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if got := s.ledger.Feed(10); len(got) != 0 {
		t.Errorf("feed not drained after last unwatch: %v", got)
	}
}

func TestSearchNarrowsPublishedView(t *testing.T) {
	src := &listingSource{contracts: []models.Contract{
		{Symbol: "WIF-USDT", BaseCoin: "WIF", Exchange: "bingx"},
		{Symbol: "PEPE-USDT", BaseCoin: "PEPE", Exchange: "blofin"},
	}}
	s := newSession(&fakeUpstream{}, src)

	if err := s.catalog.Refresh(context.Background(), catalog.FilterNew); err != nil {
		t.Fatal(err)
	}
	s.publish()
	if got := len(s.View().Coins); got != 2 {
		t.Fatalf("unfiltered coins = %d, want 2", got)
	}

	s.search = "pepe"
	s.publish()
	coins := s.View().Coins
	if len(coins) != 1 || coins[0].Symbol != "PEPE-USDT" {
		t.Fatalf("filtered coins = %v", coins)
	}
}

type gaugeMetrics struct {
	repository.NopMetrics

	mu            sync.Mutex
	contractCount int
}

func (m *gaugeMetrics) SetContractCount(n int) {
	m.mu.Lock()
	m.contractCount = n
	m.mu.Unlock()
}

func (m *gaugeMetrics) value() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contractCount
}

func TestRefreshPublishesAggregateCount(t *testing.T) {
	src := &listingSource{
		contracts: []models.Contract{{Symbol: "WIF-USDT"}, {Symbol: "PEPE-USDT"}},
		count:     777,
	}
	met := &gaugeMetrics{}
	reg := registry.New()
	led := ledger.New()
	cat := catalog.New(catalog.Config{NewLimit: 150, AllLimit: 500}, src)
	log := logger.Nop()
	s := NewSession(
		SessionConfig{},
		reg, led, cat,
		stream.New(stream.Config{URL: "ws://unused"}, log, met),
		&fakeUpstream{},
		NewDispatcher(reg, led, cat, log, met),
		log, met,
	)

	s.Refresh()
	deadline := time.Now().Add(2 * time.Second)
	for met.value() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// The gauge carries the upstream aggregate, not the page-limited
	// snapshot size.
	if got := met.value(); got != 777 {
		t.Fatalf("contract count gauge = %d, want 777", got)
	}
}

func TestStatusReportsStaleCatalog(t *testing.T) {
	src := &listingSource{err: errors.New("upstream 502")}
	s := newSession(&fakeUpstream{}, src)

	_ = s.catalog.Refresh(context.Background(), catalog.FilterAll)
	st := s.Status()
	if !st.CatalogStale {
		t.Fatal("expected stale catalog status")
	}
	if st.Connection != "disconnected" {
		t.Errorf("connection = %q", st.Connection)
	}
}
