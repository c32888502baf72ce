package app

import (
	"context"

	"splc/internal/shared/observability"
)

// Health reports "up" until a run fails, and again once a later run
// succeeds.
func (a *App) Health(ctx context.Context) observability.HealthStatus {
	u, ok := a.LastUpdate()
	if !ok {
		return observability.HealthStatus{Status: "up"}
	}
	status := observability.HealthStatus{
		Status:   "up",
		LastRun:  u.At.UTC(),
		LastFile: u.Path,
	}
	if u.Err != nil {
		status.Status = "degraded"
		status.Error = u.Err.Error()
	}
	return status
}
