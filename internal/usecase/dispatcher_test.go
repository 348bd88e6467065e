package usecase

import (
	"testing"

	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/models"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/pkg/logger"
)

type fixture struct {
	reg  *registry.Registry
	led  *ledger.Ledger
	cat  *catalog.Catalog
	disp *Dispatcher
}

func newFixture() *fixture {
	reg := registry.New()
	led := ledger.New()
	cat := catalog.New(catalog.Config{NewLimit: 150, AllLimit: 500}, nil)
	return &fixture{
		reg:  reg,
		led:  led,
		cat:  cat,
		disp: NewDispatcher(reg, led, cat, logger.Nop(), repository.NopMetrics{}),
	}
}

func TestDispatchInit(t *testing.T) {
	f := newFixture()
	f.reg.Upsert(models.WatchEntry{Exchange: "bingx", Symbol: "STALE"})

	frame := []byte(`{"type":"init","contract_count":321,"watching":[
		{"exchange":"bingx","symbol":"WIF-USDT","last_price":1.5},
		{"exchange":"blofin","symbol":"PEPE-USDT"}
	]}`)
	if !f.disp.Dispatch(frame) {
		t.Fatal("init must trigger recompute")
	}
	if f.reg.Len() != 2 {
		t.Errorf("registry len = %d, want 2", f.reg.Len())
	}
	if _, ok := f.reg.Get("bingx:STALE"); ok {
		t.Error("stale entry survived init")
	}
	if f.cat.Count() != 321 {
		t.Errorf("contract count = %d", f.cat.Count())
	}
}

func TestDispatchInitEmptyClearsAlerts(t *testing.T) {
	f := newFixture()
	f.led.Record(models.Alert{Symbol: "WIF-USDT", Side: models.SideBuy, ValueUSD: 20000})

	if !f.disp.Dispatch([]byte(`{"type":"init","watching":[]}`)) {
		t.Fatal("init must trigger recompute")
	}
	if got := f.led.Feed(10); len(got) != 0 {
		t.Errorf("alerts survived empty init: %v", got)
	}
}

func TestDispatchStatsMergesWatchedKey(t *testing.T) {
	f := newFixture()
	f.reg.Upsert(models.WatchEntry{Exchange: "bingx", Symbol: "DOGEUSDT", BidVolumeUSD: 900})

	frame := []byte(`{"type":"stats","key":"bingx:DOGEUSDT","data":{"last_price":0.123}}`)
	if !f.disp.Dispatch(frame) {
		t.Fatal("applied merge must trigger recompute")
	}

	got, _ := f.reg.Get("bingx:DOGEUSDT")
	if got.LastPrice != 0.123 {
		t.Errorf("LastPrice = %v", got.LastPrice)
	}
	if got.BidVolumeUSD != 900 {
		t.Errorf("omitted field overwritten: %v", got.BidVolumeUSD)
	}
}

func TestDispatchStatsUnwatchedKeyDropped(t *testing.T) {
	f := newFixture()

	frame := []byte(`{"type":"stats","key":"bingx:GONE","data":{"last_price":9.9}}`)
	if f.disp.Dispatch(frame) {
		t.Fatal("merge on unwatched key must not trigger recompute")
	}
	if f.reg.Len() != 0 {
		t.Error("entry resurrected by stats push")
	}
}

func TestDispatchAlertWithoutWatch(t *testing.T) {
	f := newFixture()

	frame := []byte(`{"type":"alert","key":"bingx:WIF-USDT","data":{"symbol":"WIF-USDT","side":"buy","value_usd":25000,"price":1.5,"time":"10:30:00"}}`)
	if !f.disp.Dispatch(frame) {
		t.Fatal("alert must trigger panel recompute")
	}
	if got := f.led.Read("WIF-USDT", 10); len(got) != 1 {
		t.Errorf("ledger = %v, alert should record independently of watch state", got)
	}
}

func TestDispatchHeartbeatNoChange(t *testing.T) {
	f := newFixture()
	if f.disp.Dispatch([]byte(`{"type":"heartbeat"}`)) {
		t.Error("heartbeat must not trigger recompute")
	}
}

func TestDispatchUnknownTypeIgnored(t *testing.T) {
	f := newFixture()
	f.reg.Upsert(models.WatchEntry{Exchange: "bingx", Symbol: "A"})

	if f.disp.Dispatch([]byte(`{"type":"mystery","key":"bingx:A"}`)) {
		t.Error("unknown type must not trigger recompute")
	}
	if f.reg.Len() != 1 {
		t.Error("unknown type mutated state")
	}
}

func TestDispatchMalformedFrameDiscarded(t *testing.T) {
	f := newFixture()
	if f.disp.Dispatch([]byte(`{not json`)) {
		t.Error("malformed frame must be dropped")
	}
	if f.disp.Dispatch([]byte(`{"type":"stats","key":"x:y","data":"nope"}`)) {
		t.Error("malformed stats payload must be dropped")
	}
}
