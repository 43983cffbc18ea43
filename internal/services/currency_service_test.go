package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestResolveDestinationCurrency(t *testing.T) {
	cases := []struct {
		destination string
		want        string
		ok          bool
	}{
		{"Paris, France", "EUR", true},
		{"Kandy, Central Province, Sri Lanka", "LKR", true},
		{"Japan", "JPY", true},
		{"Dubai,  United Arab Emirates ", "AED", true},
		{"Atlantis", "", false},
		{"Lima, Peru", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveDestinationCurrency(tc.destination)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: expected (%q, %v), got (%q, %v)", tc.destination, tc.want, tc.ok, got, ok)
		}
	}
}

func newRateServer(t *testing.T, hits *int32, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if !strings.HasPrefix(r.URL.Path, "/test-key/pair/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConvertSameCurrencySkipsLookup(t *testing.T) {
	var hits int32
	srv := newRateServer(t, &hits, http.StatusOK, `{}`)
	svc := NewCurrencyService("test-key", srv.URL, time.Second, zap.NewNop())

	got := svc.Convert(context.Background(), 1200, "USD", "USD")
	if !got.Converted || got.Amount != 1200 || got.Currency != "USD" {
		t.Fatalf("unexpected result %+v", got)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no rate lookup, got %d", hits)
	}
}

func TestConvertRoundsResult(t *testing.T) {
	var hits int32
	srv := newRateServer(t, &hits, http.StatusOK, `{"result": "success", "conversion_result": 1102.62}`)
	svc := NewCurrencyService("test-key", srv.URL, time.Second, zap.NewNop())

	got := svc.Convert(context.Background(), 1200, "USD", "EUR")
	if !got.Converted || got.Amount != 1103 || got.Currency != "EUR" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.OriginalAmount != 1200 || got.OriginalCurrency != "USD" {
		t.Fatalf("original amount not kept: %+v", got)
	}
}

func TestConvertFallsBackOnFailure(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"api error", http.StatusOK, `{"result": "error", "error-type": "unsupported-code"}`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			srv := newRateServer(t, &hits, tc.status, tc.body)
			svc := NewCurrencyService("test-key", srv.URL, time.Second, zap.NewNop())

			got := svc.Convert(context.Background(), 500, "GBP", "JPY")
			if got.Converted || got.Amount != 500 || got.Currency != "GBP" || got.Reason == "" {
				t.Fatalf("expected unconverted fallback, got %+v", got)
			}
		})
	}
}

func TestConvertWithoutKey(t *testing.T) {
	svc := NewCurrencyService("", "http://127.0.0.1:1", time.Second, zap.NewNop())
	got := svc.Convert(context.Background(), 10, "USD", "INR")
	if got.Converted || got.Currency != "USD" {
		t.Fatalf("expected unconverted result, got %+v", got)
	}
}
