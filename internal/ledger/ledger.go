package ledger

import (
	"sync"

	"MemeFlow/internal/domain/models"
)

const (
	// PerSymbolCap bounds each symbol's ring of recent alerts.
	PerSymbolCap = 10
	// FeedCap bounds the flat cross-symbol feed shown on the dashboard.
	FeedCap = 50
)

// Ledger keeps bounded, newest-first alert history. Per-symbol rings back
// the watch cards; the flat feed backs the global alert list. Membership
// is independent of the watch registry: alerts for unwatched symbols are
// still recorded.
type Ledger struct {
	mu       sync.Mutex
	bySymbol map[string][]models.Alert
	feed     []models.Alert
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{bySymbol: make(map[string][]models.Alert)}
}

// Record inserts the alert at the head of its symbol's ring and of the
// flat feed, evicting the oldest entries beyond capacity.
func (l *Ledger) Record(a models.Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ring := l.bySymbol[a.Symbol]
	ring = append([]models.Alert{a}, ring...)
	if len(ring) > PerSymbolCap {
		ring = ring[:PerSymbolCap]
	}
	l.bySymbol[a.Symbol] = ring

	l.feed = append([]models.Alert{a}, l.feed...)
	if len(l.feed) > FeedCap {
		l.feed = l.feed[:FeedCap]
	}
}

// Read returns up to n alerts for the symbol, newest first. An unknown
// symbol yields an empty result.
func (l *Ledger) Read(symbol string, n int) []models.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	ring := l.bySymbol[symbol]
	if n > len(ring) {
		n = len(ring)
	}
	out := make([]models.Alert, n)
	copy(out, ring[:n])
	return out
}

// Feed returns up to n alerts across all symbols, newest first.
func (l *Ledger) Feed(n int) []models.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.feed) {
		n = len(l.feed)
	}
	out := make([]models.Alert, n)
	copy(out, l.feed[:n])
	return out
}

// Clear drops all alerts recorded for one symbol, including its entries
// in the flat feed.
func (l *Ledger) Clear(symbol string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.bySymbol, symbol)
	kept := l.feed[:0]
	for _, a := range l.feed {
		if a.Symbol != symbol {
			kept = append(kept, a)
		}
	}
	l.feed = kept
}

// ClearAll drops everything. Used when the watch list empties out.
func (l *Ledger) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bySymbol = make(map[string][]models.Alert)
	l.feed = nil
}
