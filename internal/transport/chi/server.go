package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/carefinder/internal/usecase/health"
)

// maxBodyBytes bounds the POST /v1/search body.
const maxBodyBytes = 64 << 10

// Searcher runs a validated search.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search API.
type Server struct {
	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, ErrorCodeSearchUnavailable),
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, ErrorCodeQueryTooLong),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusInternalServerError, ErrorCodeVectorDimMismatch),
	}
	return s
}

// SearchPost handles POST /v1/search.
func (s *Server) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, req.Query, derefInt(req.Limit), derefBool(req.PreferLocation))
}

// SearchGet handles GET /v1/search?q=&limit=&prefer_location=.
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "q", query, &params.Q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter(
		"form", true, false, "prefer_location", query, &params.PreferLocation,
	); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			"Invalid format for parameter prefer_location: "+err.Error())
		return
	}
	s.runSearch(w, r, params.Q, derefInt(params.Limit), derefBool(params.PreferLocation))
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, q string, limit int, preferLocation bool) {
	if limit < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "limit must not be negative")
		return
	}
	req, err := request.New(q, limit, preferLocation)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.search.Search(ctx, &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToItem(&results[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, SearchResultListResponse{
		Items: items,
		Limit: req.Limit(),
		Total: len(items),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.Tokens()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSearchUnavailable,
		domain.ErrQueryTooLong,
		domain.ErrVectorDimMismatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func searchResultToItem(r *result.Result) SearchResultItem {
	rec := r.Record()
	return SearchResultItem{
		Service:   serviceToItem(&rec),
		Score:     r.Score(),
		BaseScore: r.BaseScore(),
		Boost:     r.Boost(),
		Source:    string(r.Source()),
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
