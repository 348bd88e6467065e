package catalog

import (
	"context"
	"strings"
	"sync"

	"MemeFlow/internal/domain/models"
)

// FilterMode selects which listing view the catalog mirrors.
type FilterMode string

const (
	// FilterNew shows only recently listed contracts.
	FilterNew FilterMode = "new"
	// FilterAll shows the general listing across exchanges.
	FilterAll FilterMode = "all"
	// Any other value is treated as an exchange name scoping the
	// general listing.
)

// Source fetches contract listings. Implemented by flowapi.Client.
type Source interface {
	Contracts(ctx context.Context, limit int, exchange string) ([]models.Contract, error)
	NewListings(ctx context.Context, limit int) ([]models.Contract, error)
	ContractCount(ctx context.Context) (int, error)
}

// Config bounds the listing page sizes.
type Config struct {
	NewLimit int
	AllLimit int
}

// Catalog mirrors the upstream contract listing. Refresh replaces the
// snapshot wholesale; a failed refresh keeps the last-good snapshot and
// records the error so the presentation layer can show a stale-data
// status instead of an empty list.
type Catalog struct {
	cfg    Config
	source Source

	mu        sync.Mutex
	contracts []models.Contract
	count     int
	lastErr   error
}

// New creates an empty catalog backed by the given source.
func New(cfg Config, source Source) *Catalog {
	return &Catalog{cfg: cfg, source: source}
}

// Refresh fetches the listing for the filter mode plus the aggregate
// count and swaps the snapshot in. On fetch error the existing snapshot
// is retained and the error reported.
func (c *Catalog) Refresh(ctx context.Context, mode FilterMode) error {
	var (
		contracts []models.Contract
		err       error
	)
	switch mode {
	case FilterNew:
		contracts, err = c.source.NewListings(ctx, c.cfg.NewLimit)
	case FilterAll, "":
		contracts, err = c.source.Contracts(ctx, c.cfg.AllLimit, "")
	default:
		contracts, err = c.source.Contracts(ctx, c.cfg.AllLimit, string(mode))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err
		return err
	}
	c.contracts = contracts
	c.lastErr = nil

	// The count comes from a separate endpoint and is not bound by the
	// listing page size. Its failure alone does not spoil the refresh.
	if n, cerr := c.source.ContractCount(ctx); cerr == nil {
		c.count = n
	}
	return nil
}

// Filter returns catalog entries whose symbol or base coin contains the
// search text, case-insensitive. Empty text yields the full snapshot.
func (c *Catalog) Filter(searchText string) []models.Contract {
	c.mu.Lock()
	defer c.mu.Unlock()

	if searchText == "" {
		out := make([]models.Contract, len(c.contracts))
		copy(out, c.contracts)
		return out
	}

	needle := strings.ToLower(searchText)
	out := make([]models.Contract, 0, len(c.contracts))
	for _, ct := range c.contracts {
		if strings.Contains(strings.ToLower(ct.Symbol), needle) ||
			strings.Contains(strings.ToLower(ct.BaseCoin), needle) {
			out = append(out, ct)
		}
	}
	return out
}

// Count returns the upstream aggregate contract count.
func (c *Catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// SetCount records a count learned out of band (the init push frame
// carries one).
func (c *Catalog) SetCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = n
}

// Err returns the last refresh error, nil after a successful refresh.
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Len returns the size of the current snapshot.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.contracts)
}
