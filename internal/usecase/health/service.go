package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the directory itself is unreachable, so neither
	// search path can answer.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentDirectory = "directory"
	ComponentCache     = "cache"
	ComponentEmbedding = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	directory Pinger
	cache     Pinger
	embedding ProviderChecker
}

// New creates a Service. cache and embedding can be nil.
func New(directory, cache Pinger, embedding ProviderChecker) *Service {
	return &Service{directory: directory, cache: cache, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	log := logger.FromContext(ctx)
	checks := make(map[string]CheckResult)

	run := func(name string, check func(context.Context) error) {
		if err := check(ctx); err != nil {
			log.Warn("health check failed", zap.String("component", name), zap.Error(err))
			checks[name] = CheckError
			return
		}
		checks[name] = CheckOK
	}

	run(ComponentDirectory, s.directory.Ping)
	if s.cache != nil {
		run(ComponentCache, s.cache.Ping)
	}
	if s.embedding != nil {
		run(ComponentEmbedding, s.embedding.HealthCheck)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[ComponentDirectory] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
