package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionLabel(t *testing.T) {
	opt := &Option{
		Position:  Position{Ticker: Ticker{Symbol: "TSLA"}},
		Strike:    250,
		Direction: DirectionCall,
	}
	assert.Equal(t, "TSLA 250c", opt.Label())

	opt.Strike = 182.5
	opt.Direction = DirectionPut
	assert.Equal(t, "TSLA 182.5p", opt.Label())
}

func TestShareLabelAndMultiplier(t *testing.T) {
	share := &Share{Position: Position{Ticker: Ticker{Symbol: "VTI"}}}

	assert.Equal(t, "VTI", share.Label())
	assert.Equal(t, 1.0, share.Multiplier())
	assert.Equal(t, SecurityTypeShare, share.Type())
}

func TestOptionPredicates(t *testing.T) {
	opt := &Option{Position: Position{NumOpen: -2}}
	assert.True(t, opt.IsShort())
	assert.False(t, opt.IsLong())
	assert.True(t, opt.IsOpen())
	assert.Equal(t, 100.0, opt.Multiplier())

	opt.NumOpen = 3
	assert.True(t, opt.IsLong())
	assert.False(t, opt.IsShort())

	opt.NumOpen = 0
	assert.False(t, opt.IsOpen())
}

func TestExpiresToday(t *testing.T) {
	now := time.Now()
	opt := &Option{Expiration: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())}
	assert.True(t, opt.ExpiresToday())

	opt.Expiration = opt.Expiration.AddDate(0, 0, 7)
	assert.False(t, opt.ExpiresToday())
}

func TestFlexibleDateUnmarshal(t *testing.T) {
	var d FlexibleDate
	assert.NoError(t, json.Unmarshal([]byte(`"2025-06-20"`), &d))
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), d.Time)

	assert.NoError(t, json.Unmarshal([]byte(`"2025-06-20T14:30:00Z"`), &d))
	assert.Equal(t, 14, d.Hour())

	assert.Error(t, json.Unmarshal([]byte(`"June 20"`), &d))
}
