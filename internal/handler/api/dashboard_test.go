package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/internal/service/stream"
	"MemeFlow/internal/usecase"
	"MemeFlow/pkg/logger"

	"github.com/labstack/echo/v4"
)

type noopUpstream struct{}

func (noopUpstream) Watch(context.Context, models.Identity) error   { return nil }
func (noopUpstream) Unwatch(context.Context, models.Identity) error { return nil }

// slowSource answers after a delay and records whether its context was
// still alive when the fetch completed.
type slowSource struct {
	delay time.Duration

	mu      sync.Mutex
	fetched bool
	ctxErr  error
}

func (s *slowSource) serve(ctx context.Context) ([]models.Contract, error) {
	time.Sleep(s.delay)
	s.mu.Lock()
	s.fetched = true
	s.ctxErr = ctx.Err()
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.Contract{{Symbol: "WIF-USDT", BaseCoin: "WIF", Exchange: "bingx"}}, nil
}

func (s *slowSource) Contracts(ctx context.Context, _ int, _ string) ([]models.Contract, error) {
	return s.serve(ctx)
}

func (s *slowSource) NewListings(ctx context.Context, _ int) ([]models.Contract, error) {
	return s.serve(ctx)
}

func (s *slowSource) ContractCount(context.Context) (int, error) { return 42, nil }

func (s *slowSource) result() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched, s.ctxErr
}

func newTestServer(t *testing.T, src catalog.Source) (*httptest.Server, *usecase.Session, *catalog.Catalog) {
	t.Helper()
	reg := registry.New()
	led := ledger.New()
	cat := catalog.New(catalog.Config{NewLimit: 150, AllLimit: 500}, src)
	log := logger.Nop()
	met := repository.NopMetrics{}
	session := usecase.NewSession(
		usecase.SessionConfig{},
		reg, led, cat,
		stream.New(stream.Config{URL: "ws://unused"}, log, met),
		noopUpstream{},
		usecase.NewDispatcher(reg, led, cat, log, met),
		log, met,
	)

	e := echo.New()
	NewDashboardHandler(log, session).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, session, cat
}

func waitFetch(t *testing.T, src *slowSource) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if done, ctxErr := src.result(); done {
			return ctxErr
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("fetch never completed")
	return nil
}

func TestRefreshOutlivesRequest(t *testing.T) {
	src := &slowSource{delay: 120 * time.Millisecond}
	srv, _, cat := newTestServer(t, src)

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if ctxErr := waitFetch(t, src); ctxErr != nil {
		t.Fatalf("fetch context dead after handler returned: %v", ctxErr)
	}
	deadline := time.Now().Add(time.Second)
	for cat.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if cat.Len() != 1 {
		t.Fatalf("catalog len = %d, want 1", cat.Len())
	}
	if err := cat.Err(); err != nil {
		t.Fatalf("catalog reported stale after successful refresh: %v", err)
	}
}

func TestModeChangeLoadsNewListing(t *testing.T) {
	src := &slowSource{delay: 120 * time.Millisecond}
	srv, session, cat := newTestServer(t, src)

	resp, err := http.Get(srv.URL + "/api/coins?mode=all")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if ctxErr := waitFetch(t, src); ctxErr != nil {
		t.Fatalf("mode-change fetch aborted: %v", ctxErr)
	}
	if session.Mode() != catalog.FilterAll {
		t.Fatalf("mode = %q", session.Mode())
	}
	deadline := time.Now().Add(time.Second)
	for cat.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if cat.Err() != nil || cat.Len() != 1 {
		t.Fatalf("listing not loaded after mode change: len=%d err=%v", cat.Len(), cat.Err())
	}
}
