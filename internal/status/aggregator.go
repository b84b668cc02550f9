package status

import (
	"context"
	"fmt"
	"time"

	"agentboard/internal/types"
)

// Aggregator produces an on-demand health snapshot of the supporting
// infrastructure. Snapshots are regenerated per request, never cached.
type Aggregator interface {
	Snapshot(ctx context.Context) types.SystemStatus
}

// Static reports fixed health values plus real process uptime. The
// dashboard has always presented a simulated snapshot here; live checks
// against the log store and process table belong behind this same
// interface when they land.
type Static struct {
	startedAt time.Time
}

// NewStatic creates an aggregator with uptime counted from now.
func NewStatic() *Static {
	return &Static{startedAt: time.Now()}
}

// Snapshot returns the fixed snapshot with the current uptime.
func (s *Static) Snapshot(ctx context.Context) types.SystemStatus {
	return types.SystemStatus{
		Redis:        "connected",
		Webserver:    "running",
		Orchestrator: "active",
		Uptime:       formatUptime(time.Since(s.startedAt)),
	}
}

// formatUptime renders a duration as a coarse human string.
func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
