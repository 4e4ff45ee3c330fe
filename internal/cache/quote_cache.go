package cache

import (
	"sync"
	"time"

	"github.com/anushv/investments/internal/models"
)

// QuoteCache is an in-memory TTL cache for live quotes, keyed by security id.
// It bounds call volume against the market data provider; a stale-but-valid
// quote within the expiry window is acceptable to concurrent readers.
type QuoteCache struct {
	options  map[int64]optionEntry
	shares   map[int64]shareEntry
	optionMu sync.RWMutex
	shareMu  sync.RWMutex
	ttl      time.Duration
}

type optionEntry struct {
	quote     models.OptionQuote
	fetchedAt time.Time
}

type shareEntry struct {
	mid       float64
	fetchedAt time.Time
}

// NewQuoteCache creates a new quote cache with the given expiry window
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		options: make(map[int64]optionEntry),
		shares:  make(map[int64]shareEntry),
		ttl:     ttl,
	}
}

// GetOption retrieves a cached option quote if fresh
func (c *QuoteCache) GetOption(securityID int64) (models.OptionQuote, bool) {
	c.optionMu.RLock()
	defer c.optionMu.RUnlock()

	entry, exists := c.options[securityID]
	if !exists || time.Since(entry.fetchedAt) > c.ttl {
		return models.OptionQuote{}, false
	}
	return entry.quote, true
}

// SetOption caches an option quote
func (c *QuoteCache) SetOption(securityID int64, quote models.OptionQuote) {
	c.optionMu.Lock()
	defer c.optionMu.Unlock()

	c.options[securityID] = optionEntry{
		quote:     quote,
		fetchedAt: time.Now(),
	}
}

// GetShare retrieves a cached share mid price if fresh
func (c *QuoteCache) GetShare(securityID int64) (float64, bool) {
	c.shareMu.RLock()
	defer c.shareMu.RUnlock()

	entry, exists := c.shares[securityID]
	if !exists || time.Since(entry.fetchedAt) > c.ttl {
		return 0, false
	}
	return entry.mid, true
}

// SetShare caches a share mid price
func (c *QuoteCache) SetShare(securityID int64, mid float64) {
	c.shareMu.Lock()
	defer c.shareMu.Unlock()

	c.shares[securityID] = shareEntry{
		mid:       mid,
		fetchedAt: time.Now(),
	}
}

// Clear removes all cached quotes
func (c *QuoteCache) Clear() {
	c.optionMu.Lock()
	c.options = make(map[int64]optionEntry)
	c.optionMu.Unlock()

	c.shareMu.Lock()
	c.shares = make(map[int64]shareEntry)
	c.shareMu.Unlock()
}
