package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arb-scanner-go/exchange"
	"arb-scanner-go/rates"
)

func feedWithBook(t *testing.T, book TopOfBook) *BinanceFeed {
	t.Helper()
	f := NewBinanceFeed([]string{book.Symbol}, zap.NewNop())
	f.mu.Lock()
	f.books[book.Symbol] = book
	f.mu.Unlock()
	return f
}

func TestAdapterFetchFromCache(t *testing.T) {
	f := feedWithBook(t, TopOfBook{Symbol: "BTCUSDT", Bid: 99.5, Ask: 100.5, UpdatedAt: time.Now()})
	a := &Adapter{Feed: f, ID: "binance", FeeRate: 0.001}

	conv := rates.Conversion{Base: "USD", Quote: "AUD", Rate: 1.5}
	q, err := a.Fetch(context.Background(), "btcusdt", conv)
	require.NoError(t, err)
	require.Equal(t, "binance", q.Exchange)
	require.InDelta(t, 150.75, q.Ask, 1e-9)
	require.InDelta(t, 149.25, q.Bid, 1e-9)
	require.Equal(t, 0.001, q.FeeRate)
	require.Equal(t, "AUD", q.Currency)
}

func TestAdapterFetchStaleCache(t *testing.T) {
	f := feedWithBook(t, TopOfBook{Symbol: "BTCUSDT", Bid: 99.5, Ask: 100.5, UpdatedAt: time.Now().Add(-time.Minute)})
	a := &Adapter{Feed: f, ID: "binance", FeeRate: 0.001}

	_, err := a.Fetch(context.Background(), "BTCUSDT", rates.Identity("AUD"))
	var fe *exchange.FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, exchange.KindValidate, fe.Kind)
}

func TestAdapterFetchNonPositivePrice(t *testing.T) {
	f := feedWithBook(t, TopOfBook{Symbol: "BTCUSDT", Bid: 0, Ask: 100.5, UpdatedAt: time.Now()})
	a := &Adapter{Feed: f, ID: "binance", FeeRate: 0.001}

	_, err := a.Fetch(context.Background(), "BTCUSDT", rates.Identity("AUD"))
	var fe *exchange.FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, exchange.KindValidate, fe.Kind)
}
