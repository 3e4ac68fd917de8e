package carefinder

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/carefinder/internal/usecase/health"
)

// HealthStatus is a point-in-time view of the client's dependencies.
// Status is "ok", "degraded" or "error"; Checks maps "directory", "cache"
// and "embedding" to "ok" or "error". Components not configured are absent.
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Serving reports whether Search can still return results. Only a
// directory outage makes it false; a degraded client falls back to keywords.
func (h HealthStatus) Serving() bool {
	return h.Status != string(healthuc.Unhealthy)
}

// Health probes every configured dependency.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	out := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		out.Checks[name] = string(res)
	}
	c.obs.observe("health", start, nil)
	return out
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
