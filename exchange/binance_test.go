package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"arb-scanner-go/rates"
)

func TestBinanceFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "BTCUSDT" {
			t.Fatalf("unexpected symbol %q", got)
		}
		io.WriteString(w, `{"symbol":"BTCUSDT","bidPrice":"64000.10","askPrice":"64001.20"}`)
	}))
	defer ts.Close()

	b := NewBinance(Options{BaseURL: ts.URL, Client: ts.Client()})
	conv := rates.Conversion{Base: "USD", Quote: "AUD", Rate: 1.5}
	q, err := b.Fetch(context.Background(), "BTCUSDT", conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Exchange != "binance" || q.Currency != "AUD" {
		t.Fatalf("unexpected quote meta: %+v", q)
	}
	require.InDelta(t, 64001.20*1.5, q.Ask, 1e-6)
	require.InDelta(t, 64000.10*1.5, q.Bid, 1e-6)
	if q.FeeRate != 0.001 {
		t.Fatalf("default fee expected, got %v", q.FeeRate)
	}
}

func TestBinanceZeroPriceIsValidateError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"symbol":"BTCUSDT","bidPrice":"0","askPrice":"64001.20"}`)
	}))
	defer ts.Close()

	b := NewBinance(Options{BaseURL: ts.URL, Client: ts.Client()})
	_, err := b.Fetch(context.Background(), "BTCUSDT", rates.Identity("AUD"))
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindValidate {
		t.Fatalf("expected validate error, got %v", err)
	}
}

func TestBinanceHTTPStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	b := NewBinance(Options{BaseURL: ts.URL, Client: ts.Client()})
	_, err := b.Fetch(context.Background(), "BTCUSDT", rates.Identity("AUD"))
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindHTTP {
		t.Fatalf("expected http error, got %v", err)
	}
}

func TestBinanceTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	b := NewBinance(Options{BaseURL: ts.URL, Client: ts.Client()})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := b.Fetch(ctx, "BTCUSDT", rates.Identity("AUD"))
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}
