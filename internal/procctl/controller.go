package procctl

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agentboard/internal/types"
)

// gracePeriod is how long a worker gets to exit after the graceful
// signal before it is killed.
const gracePeriod = 500 * time.Millisecond

// WorkerClass identifies a category of external worker process by a
// substring of its command line.
type WorkerClass struct {
	Name    string
	Pattern string
}

// DefaultClasses are the two long-running orchestrator-side processes
// the dashboard knows how to stop.
var DefaultClasses = []WorkerClass{
	{Name: "task monitor", Pattern: "task_monitor"},
	{Name: "orchestrator", Pattern: "auto_orchestrator"},
}

// Process is the slice of a live OS process the controller needs.
type Process interface {
	ID() int32
	Cmdline(ctx context.Context) (string, error)
	Terminate(ctx context.Context) error
	Kill(ctx context.Context) error
}

// Lister enumerates live processes. The production implementation wraps
// gopsutil; tests inject a fake table.
type Lister interface {
	Processes(ctx context.Context) ([]Process, error)
}

// Controller stops external worker processes with a graceful-then-
// forceful protocol.
type Controller struct {
	lister  Lister
	classes []WorkerClass
	selfPID int32
	grace   time.Duration
}

// NewController creates a controller over the default worker classes.
func NewController(lister Lister) *Controller {
	return &Controller{
		lister:  lister,
		classes: DefaultClasses,
		selfPID: int32(os.Getpid()),
		grace:   gracePeriod,
	}
}

// StopWorkers signals each known worker class: SIGTERM first, then a
// kill if the process still shows up after the grace period. Only the
// first matching process per class is targeted. A run where nothing
// matched is a non-error outcome with Success=false.
func (c *Controller) StopWorkers(ctx context.Context) (types.StopResult, error) {
	stopped := make([]string, 0, len(c.classes))

	for _, class := range c.classes {
		ok, err := c.stopClass(ctx, class)
		if err != nil {
			return types.StopResult{}, fmt.Errorf("stop %s: %w", class.Name, err)
		}
		if ok {
			stopped = append(stopped, class.Name)
		}
	}

	if len(stopped) == 0 {
		return types.StopResult{
			Success: false,
			Message: "no agent processes were running",
		}, nil
	}

	return types.StopResult{
		Success: true,
		Message: "stopped " + strings.Join(stopped, ", "),
		Stopped: stopped,
	}, nil
}

// stopClass terminates the first process matching the class pattern.
// Returns false when nothing matched.
func (c *Controller) stopClass(ctx context.Context, class WorkerClass) (bool, error) {
	proc, err := c.findWorker(ctx, class.Pattern, 0)
	if err != nil {
		return false, err
	}
	if proc == nil {
		return false, nil
	}

	pid := proc.ID()
	log.Printf("procctl: sending SIGTERM to %s (pid %d)", class.Name, pid)
	if err := proc.Terminate(ctx); err != nil {
		return false, fmt.Errorf("terminate pid %d: %w", pid, err)
	}

	select {
	case <-time.After(c.grace):
	case <-ctx.Done():
		return false, ctx.Err()
	}

	// Escalate only if the same pid still matches after the grace
	// window; a fresh process under the same pattern is left alone.
	survivor, err := c.findWorker(ctx, class.Pattern, pid)
	if err != nil {
		return false, err
	}
	if survivor != nil {
		log.Printf("procctl: %s (pid %d) survived SIGTERM, killing", class.Name, pid)
		if err := survivor.Kill(ctx); err != nil {
			return false, fmt.Errorf("kill pid %d: %w", pid, err)
		}
	}

	return true, nil
}

// findWorker returns the first live process whose command line contains
// the pattern, excluding this process itself. With wantPID non-zero,
// only that exact pid is considered a match.
func (c *Controller) findWorker(ctx context.Context, pattern string, wantPID int32) (Process, error) {
	procs, err := c.lister.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	for _, proc := range procs {
		if proc.ID() == c.selfPID {
			continue
		}
		if wantPID != 0 && proc.ID() != wantPID {
			continue
		}
		cmdline, err := proc.Cmdline(ctx)
		if err != nil {
			// Processes can exit between enumeration and inspection.
			continue
		}
		if strings.Contains(cmdline, pattern) {
			return proc, nil
		}
	}

	return nil, nil
}
