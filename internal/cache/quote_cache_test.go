package cache

import (
	"testing"
	"time"

	"github.com/anushv/investments/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestQuoteCacheHit(t *testing.T) {
	c := NewQuoteCache(time.Minute)

	c.SetOption(10, models.OptionQuote{UnderlyingPrice: 240, Mid: 3.1, Theta: -0.04})
	c.SetShare(1, 271.33)

	quote, ok := c.GetOption(10)
	assert.True(t, ok)
	assert.Equal(t, 3.1, quote.Mid)

	mid, ok := c.GetShare(1)
	assert.True(t, ok)
	assert.Equal(t, 271.33, mid)
}

func TestQuoteCacheMiss(t *testing.T) {
	c := NewQuoteCache(time.Minute)

	_, ok := c.GetOption(99)
	assert.False(t, ok)

	_, ok = c.GetShare(99)
	assert.False(t, ok)
}

func TestQuoteCacheExpiry(t *testing.T) {
	c := NewQuoteCache(10 * time.Millisecond)

	c.SetOption(10, models.OptionQuote{Mid: 3.1})
	c.SetShare(1, 100)

	time.Sleep(25 * time.Millisecond)

	_, ok := c.GetOption(10)
	assert.False(t, ok)

	_, ok = c.GetShare(1)
	assert.False(t, ok)
}

func TestQuoteCacheClear(t *testing.T) {
	c := NewQuoteCache(time.Minute)
	c.SetOption(10, models.OptionQuote{Mid: 3.1})
	c.SetShare(1, 100)

	c.Clear()

	_, ok := c.GetOption(10)
	assert.False(t, ok)

	_, ok = c.GetShare(1)
	assert.False(t, ok)
}
