package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"arb-scanner-go/rates"
)

func TestCoinSpotFetchNativeAUD(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"status":"ok","prices":{"btc":{"bid":"95000.5","ask":"95100.7"},"eth":{"bid":"5000","ask":"5010"}}}`)
	}))
	defer ts.Close()

	c := NewCoinSpot(Options{BaseURL: ts.URL, Client: ts.Client()})
	// 原生 AUD 计价：忽略折算快照
	q, err := c.Fetch(context.Background(), "BTC", rates.Conversion{Base: "USD", Quote: "AUD", Rate: 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Ask != 95100.7 || q.Bid != 95000.5 {
		t.Fatalf("conversion must not apply to AUD-native venue: %+v", q)
	}
	if q.Currency != "AUD" {
		t.Fatalf("unexpected currency %s", q.Currency)
	}
}

func TestCoinSpotMissingCoin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"status":"ok","prices":{"eth":{"bid":"5000","ask":"5010"}}}`)
	}))
	defer ts.Close()

	c := NewCoinSpot(Options{BaseURL: ts.URL, Client: ts.Client()})
	_, err := c.Fetch(context.Background(), "BTC", rates.Identity("AUD"))
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindDecode {
		t.Fatalf("expected decode error for missing coin, got %v", err)
	}
}
