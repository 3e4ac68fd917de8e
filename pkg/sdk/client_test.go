package carefinder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_NoDirectory(t *testing.T) {
	_, err := New(context.Background(), WithOpenAI("sk-test", "", 0))
	if err == nil || !strings.Contains(err.Error(), "directory url required") {
		t.Fatalf("err = %v, want directory error", err)
	}
}

func TestNew_NoEmbedder(t *testing.T) {
	_, err := New(context.Background(), WithDirectory("http://localhost:3000", "anon"))
	if err == nil || !strings.Contains(err.Error(), "embedding provider required") {
		t.Fatalf("err = %v, want embedder error", err)
	}
}

func TestNew_InvalidDirectoryURL(t *testing.T) {
	_, err := New(context.Background(),
		WithDirectory("://bad", "anon"),
		WithOpenAI("sk-test", "", 0),
	)
	if err == nil {
		t.Fatal("expected error for malformed directory url")
	}
}

func TestNew_CustomEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	emb := &mockEmbedder{fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
		return EmbeddingResult{Embedding: []float32{1, 0}, TotalTokens: 2}, nil
	}}
	c, err := New(context.Background(),
		WithDirectory(srv.URL, "anon"),
		WithEmbedder(emb, 2),
		WithPrometheus(prometheus.NewRegistry()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	resp, err := c.Search(context.Background(), "counselling", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
	if !resp.EmbeddingUsed || resp.EmbeddingTokens != 2 {
		t.Errorf("usage = (%v, %d), want (true, 2)", resp.EmbeddingUsed, resp.EmbeddingTokens)
	}
}

func TestBuildConfig_Defaults(t *testing.T) {
	cc := &clientConfig{}
	WithDirectory("http://db", "anon").apply(cc)
	WithOpenAI("sk-test", "", 0).apply(cc)

	cfg := buildConfig(cc)
	if cfg.Directory.Table != "staging_services" {
		t.Errorf("table = %q", cfg.Directory.Table)
	}
	if cfg.Directory.MatchFunction != "search_staging_services" {
		t.Errorf("match function = %q", cfg.Directory.MatchFunction)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" || cfg.Embedding.Dimensions != 1536 {
		t.Errorf("embedding = %s/%d", cfg.Embedding.Model, cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Embedding.Provider)
	}
	if cfg.Ranking.Threshold != 0.40 || cfg.Ranking.Candidates != 30 {
		t.Errorf("ranking = %v/%d", cfg.Ranking.Threshold, cfg.Ranking.Candidates)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache should be disabled without WithCache")
	}
}

func TestBuildConfig_Options(t *testing.T) {
	cc := &clientConfig{}
	for _, o := range []Option{
		WithDirectory("http://db", "anon"),
		WithTable("services", "match_services"),
		WithEmbedder(&mockEmbedder{}, 768),
		WithQueryInstruction("query: "),
		WithCache("localhost:6379", "secret", 2*time.Hour),
		WithRanking(0.5, 20),
		WithTimeout(1500 * time.Millisecond),
	} {
		o.apply(cc)
	}

	cfg := buildConfig(cc)
	if cfg.Directory.Table != "services" || cfg.Directory.MatchFunction != "match_services" {
		t.Errorf("directory = %+v", cfg.Directory)
	}
	if cfg.Embedding.Dimensions != 768 || cfg.Embedding.Provider != "custom" {
		t.Errorf("embedding = %+v", cfg.Embedding)
	}
	if cfg.Embedding.QueryInstruction != "query: " {
		t.Errorf("instruction = %q", cfg.Embedding.QueryInstruction)
	}
	if !cfg.Cache.Enabled() || cfg.Cache.Password != "secret" || cfg.Cache.TTLSec != 7200 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Ranking.Threshold != 0.5 || cfg.Ranking.Candidates != 20 {
		t.Errorf("ranking = %+v", cfg.Ranking)
	}
	if cfg.Directory.TimeoutSec != 1 || cfg.Embedding.TimeoutSec != 1 {
		t.Errorf("timeouts = %d/%d, want 1/1", cfg.Directory.TimeoutSec, cfg.Embedding.TimeoutSec)
	}
}

func TestEmbedderAdapter(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{Embedding: []float32{1, 2, 3}, PromptTokens: 5, TotalTokens: 10}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	res, err := adapter.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 3 || res.PromptTokens != 5 || res.TotalTokens != 10 {
		t.Errorf("result = %+v", res)
	}
}

func TestEmbedderAdapter_Error(t *testing.T) {
	sentinel := errors.New("provider down")
	adapter := &embedderAdapter{inner: &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, sentinel
		},
	}}
	_, err := adapter.Embed(context.Background(), "hello")
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
}

func TestClient_Close_Idempotent(t *testing.T) {
	calls := 0
	c := &Client{closer: func() { calls++ }}
	c.Close()
	c.Close()
	if calls != 1 {
		t.Errorf("closer called %d times, want 1", calls)
	}

	(&Client{}).Close() // nil closer must not panic
}
