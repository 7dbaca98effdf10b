package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"arb-scanner-go/rates"
)

func TestKrakenFetchAliasKey(t *testing.T) {
	// result 的键是 kraken 自己的 pair 别名，与请求的不同
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pair"); got != "XBTUSDT" {
			t.Fatalf("unexpected pair %q", got)
		}
		io.WriteString(w, `{"error":[],"result":{"XXBTZUSD":{"a":["64001.2","1","1.0"],"b":["64000.1","2","2.0"]}}}`)
	}))
	defer ts.Close()

	k := NewKraken(Options{BaseURL: ts.URL, Client: ts.Client()})
	q, err := k.Fetch(context.Background(), "XBTUSDT", rates.Conversion{Base: "USD", Quote: "AUD", Rate: 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 折算结果是运行期乘法，不能与常量折叠后的字面量按位比较
	require.InDelta(t, 64001.2*1.5, q.Ask, 1e-6)
	require.InDelta(t, 64000.1*1.5, q.Bid, 1e-6)
	if q.FeeRate != 0.0026 {
		t.Fatalf("default fee expected, got %v", q.FeeRate)
	}
}

func TestKrakenAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"error":["EQuery:Unknown asset pair"],"result":{}}`)
	}))
	defer ts.Close()

	k := NewKraken(Options{BaseURL: ts.URL, Client: ts.Client()})
	_, err := k.Fetch(context.Background(), "NOPE", rates.Identity("AUD"))
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}
