package carefinder

import (
	"context"

	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/carefinder/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]result.Result, error)
	lastReq  *request.Request
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	m.lastReq = req
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- helpers ---

func testClient(searchSvc searchUseCase, healthSvc healthUseCase) *Client {
	return &Client{searchSvc: searchSvc, healthSvc: healthSvc}
}

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}
