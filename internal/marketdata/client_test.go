package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anushv/investments/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOptionQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/options/chain/TSLA/", r.URL.Path)
		assert.Equal(t, "2025-06-20", r.URL.Query().Get("expiration"))
		assert.Equal(t, "call", r.URL.Query().Get("side"))
		assert.Equal(t, "250", r.URL.Query().Get("strike"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"s":"ok","underlyingPrice":[242.5],"mid":[3.15],"theta":[-0.042]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	expiration := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetOptionQuote(context.Background(), "TSLA", expiration, models.DirectionCall, 250)

	require.NoError(t, err)
	assert.Equal(t, 242.5, quote.UnderlyingPrice)
	assert.Equal(t, 3.15, quote.Mid)
	assert.Equal(t, -0.042, quote.Theta)
}

func TestGetOptionQuotePutSide(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "put", r.URL.Query().Get("side"))
		w.Write([]byte(`{"s":"ok","underlyingPrice":[180.0],"mid":[2.4],"theta":[-0.03]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	expiration := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	_, err := client.GetOptionQuote(context.Background(), "AAPL", expiration, models.DirectionPut, 175)
	assert.NoError(t, err)
}

func TestGetStockQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stocks/quotes/VTI/", r.URL.Path)
		w.Write([]byte(`{"s":"ok","mid":[271.33]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	mid, err := client.GetStockQuote(context.Background(), "VTI")

	require.NoError(t, err)
	assert.Equal(t, 271.33, mid)
}

func TestCachedFeedStatusAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte(`{"s":"ok","mid":[100.5]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	mid, err := client.GetStockQuote(context.Background(), "VTI")

	require.NoError(t, err)
	assert.Equal(t, 100.5, mid)
}

func TestDataFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"s":"error","errmsg":"rate limited"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GetStockQuote(context.Background(), "VTI")

	require.Error(t, err)
	var fetchErr *DataFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "VTI", fetchErr.Ticker)
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.ResponseText, "rate limited")
	assert.Contains(t, fetchErr.Error(), "HTTP 429")
}

func TestEmptyChainIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data","underlyingPrice":[],"mid":[],"theta":[]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	expiration := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	_, err := client.GetOptionQuote(context.Background(), "TSLA", expiration, models.DirectionCall, 250)
	assert.Error(t, err)
}
