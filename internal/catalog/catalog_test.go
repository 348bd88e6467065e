package catalog

import (
	"context"
	"errors"
	"testing"

	"MemeFlow/internal/domain/models"
)

type fakeSource struct {
	contracts []models.Contract
	newOnes   []models.Contract
	count     int
	err       error

	lastExchange string
	lastLimit    int
	newCalled    bool
}

func (f *fakeSource) Contracts(_ context.Context, limit int, exchange string) ([]models.Contract, error) {
	f.lastLimit = limit
	f.lastExchange = exchange
	if f.err != nil {
		return nil, f.err
	}
	return f.contracts, nil
}

func (f *fakeSource) NewListings(_ context.Context, limit int) ([]models.Contract, error) {
	f.newCalled = true
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.newOnes, nil
}

func (f *fakeSource) ContractCount(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func contract(exchange, symbol, base string) models.Contract {
	return models.Contract{Exchange: exchange, Symbol: symbol, BaseCoin: base}
}

func TestRefreshNewMode(t *testing.T) {
	src := &fakeSource{
		newOnes: []models.Contract{contract("bingx", "WIF-USDT", "WIF")},
		count:   1234,
	}
	c := New(Config{NewLimit: 150, AllLimit: 500}, src)

	if err := c.Refresh(context.Background(), FilterNew); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !src.newCalled || src.lastLimit != 150 {
		t.Errorf("new listings not fetched with page size: called=%v limit=%d", src.newCalled, src.lastLimit)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
	if c.Count() != 1234 {
		t.Errorf("count = %d, want 1234", c.Count())
	}
}

func TestRefreshExchangeScope(t *testing.T) {
	src := &fakeSource{contracts: []models.Contract{contract("blofin", "PEPE-USDT", "PEPE")}}
	c := New(Config{NewLimit: 150, AllLimit: 500}, src)

	if err := c.Refresh(context.Background(), FilterMode("blofin")); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if src.lastExchange != "blofin" || src.lastLimit != 500 {
		t.Errorf("scope = %q limit = %d", src.lastExchange, src.lastLimit)
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	src := &fakeSource{contracts: []models.Contract{contract("bingx", "DOGE-USDT", "DOGE")}}
	c := New(Config{NewLimit: 150, AllLimit: 500}, src)

	if err := c.Refresh(context.Background(), FilterAll); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}

	src.err = errors.New("boom")
	if err := c.Refresh(context.Background(), FilterAll); err == nil {
		t.Fatal("expected refresh error")
	}
	if c.Len() != 1 {
		t.Errorf("snapshot cleared on failed refresh: len = %d", c.Len())
	}
	if c.Err() == nil {
		t.Error("stale status not surfaced")
	}

	src.err = nil
	if err := c.Refresh(context.Background(), FilterAll); err != nil {
		t.Fatalf("recovery refresh: %v", err)
	}
	if c.Err() != nil {
		t.Errorf("status not cleared after recovery: %v", c.Err())
	}
}

func TestFilter(t *testing.T) {
	src := &fakeSource{contracts: []models.Contract{
		contract("bingx", "BTC-USDT", "BTC"),
		contract("bingx", "WIF-USDT", "WIF"),
		contract("blofin", "1000PEPE-USDT", "PEPE"),
	}}
	c := New(Config{NewLimit: 150, AllLimit: 500}, src)
	if err := c.Refresh(context.Background(), FilterAll); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := c.Filter(""); len(got) != 3 {
		t.Errorf("empty search len = %d, want full catalog", len(got))
	}
	if got := c.Filter("zzz"); len(got) != 0 {
		t.Errorf("no-match search = %v, want empty", got)
	}

	upper := c.Filter("BTC")
	lower := c.Filter("btc")
	if len(upper) != 1 || len(lower) != 1 || upper[0].Symbol != lower[0].Symbol {
		t.Errorf("case sensitivity: %v vs %v", upper, lower)
	}

	// Base coin matches too.
	if got := c.Filter("pepe"); len(got) != 1 || got[0].Symbol != "1000PEPE-USDT" {
		t.Errorf("base coin search = %v", got)
	}
}
