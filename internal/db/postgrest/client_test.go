package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{URL: srv.URL + "/", APIKey: "anon-key", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing url", Config{APIKey: "k"}},
		{"relative url", Config{URL: "localhost", APIKey: "k"}},
		{"missing key", Config{URL: "http://localhost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSelect_SendsFilterAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/staging_services" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer anon-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if got := r.URL.Query().Get("or"); got != "(suburb.ilike.*carlton*,state.ilike.*carlton*)" {
			t.Errorf("or = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})

	params := url.Values{
		"or":    {"(suburb.ilike.*carlton*,state.ilike.*carlton*)"},
		"limit": {"5"},
	}
	data, err := c.Select(context.Background(), "staging_services", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[{"id":1}]` {
		t.Errorf("body = %s", data)
	}
}

func TestRPC_PostsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/rpc/search_staging_services" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var args map[string]any
		if err := json.Unmarshal(body, &args); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if args["match_count"] != float64(30) {
			t.Errorf("match_count = %v", args["match_count"])
		}
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.RPC(context.Background(), "search_staging_services", map[string]any{"match_count": 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_ErrorResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"PGRST100","message":"failed to parse filter","details":null,"hint":null}`))
	})

	_, err := c.Select(context.Background(), "t", nil)
	var pgErr *Error
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if pgErr.Status != http.StatusBadRequest || pgErr.Code != "PGRST100" {
		t.Errorf("error = %+v", pgErr)
	}
	if pgErr.Temporary() {
		t.Error("4xx should not be temporary")
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.Select(context.Background(), "t", nil)
	var pgErr *Error
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if pgErr.Message != "upstream down" || !pgErr.Temporary() {
		t.Errorf("error = %+v", pgErr)
	}
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Select(context.Background(), "t", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDo_ObservesDuration(t *testing.T) {
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_directory_duration"},
		[]string{"operation", "status"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, APIKey: "k"}, hist)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Select(context.Background(), "t", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := testutil.CollectAndCount(hist); n != 1 {
		t.Errorf("expected 1 observed series, got %d", n)
	}
}

func TestDo_TransportErrorOmitsURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := New(Config{URL: addr, APIKey: "k", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	params := url.Values{"notes": {"ilike.*i want to end my life*"}}
	_, err = c.Select(context.Background(), "staging_services", params)
	if err == nil {
		t.Fatal("expected connection error")
	}
	msg := err.Error()
	for _, leak := range []string{"end my life", "end+my+life", "staging_services?", addr} {
		if strings.Contains(msg, leak) {
			t.Errorf("error %q contains %q", msg, leak)
		}
	}
}
