package procctl

import (
	"context"
	"testing"
	"time"
)

type fakeProcess struct {
	pid        int32
	cmdline    string
	terminated bool
	killed     bool
	// exitsOnTerm removes the process from the table after SIGTERM.
	exitsOnTerm bool
}

func (f *fakeProcess) ID() int32 { return f.pid }

func (f *fakeProcess) Cmdline(ctx context.Context) (string, error) { return f.cmdline, nil }

func (f *fakeProcess) Terminate(ctx context.Context) error {
	f.terminated = true
	return nil
}

func (f *fakeProcess) Kill(ctx context.Context) error {
	f.killed = true
	return nil
}

type fakeLister struct {
	procs []*fakeProcess
}

func (f *fakeLister) Processes(ctx context.Context) ([]Process, error) {
	out := make([]Process, 0, len(f.procs))
	for _, p := range f.procs {
		if p.terminated && p.exitsOnTerm {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newTestController(lister Lister) *Controller {
	c := NewController(lister)
	c.grace = time.Millisecond
	return c
}

func TestStopWorkersNothingRunning(t *testing.T) {
	lister := &fakeLister{procs: []*fakeProcess{
		{pid: 10, cmdline: "/usr/bin/unrelated --daemon"},
	}}

	result, err := newTestController(lister).StopWorkers(context.Background())
	if err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}
	if result.Success {
		t.Error("no matching processes should report success=false")
	}
	if result.Message == "" {
		t.Error("nothing-running outcome should carry a message")
	}
}

func TestStopWorkersGraceful(t *testing.T) {
	monitor := &fakeProcess{pid: 20, cmdline: "python3 task_monitor.py", exitsOnTerm: true}
	lister := &fakeLister{procs: []*fakeProcess{monitor}}

	result, err := newTestController(lister).StopWorkers(context.Background())
	if err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}

	if !monitor.terminated {
		t.Error("worker should receive the graceful signal")
	}
	if monitor.killed {
		t.Error("worker that exits on SIGTERM must not be killed")
	}
	if !result.Success {
		t.Error("stopping a worker should report success")
	}
	if len(result.Stopped) != 1 || result.Stopped[0] != "task monitor" {
		t.Errorf("stopped classes = %v, want [task monitor]", result.Stopped)
	}
}

func TestStopWorkersEscalates(t *testing.T) {
	stubborn := &fakeProcess{pid: 30, cmdline: "python3 auto_orchestrator.py --loop"}
	lister := &fakeLister{procs: []*fakeProcess{stubborn}}

	result, err := newTestController(lister).StopWorkers(context.Background())
	if err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}

	if !stubborn.terminated {
		t.Error("worker should receive the graceful signal first")
	}
	if !stubborn.killed {
		t.Error("worker surviving the grace period should be killed")
	}
	if !result.Success {
		t.Error("escalated stop should still report success")
	}
}

func TestStopWorkersBothClasses(t *testing.T) {
	monitor := &fakeProcess{pid: 40, cmdline: "python3 task_monitor.py", exitsOnTerm: true}
	orch := &fakeProcess{pid: 41, cmdline: "python3 auto_orchestrator.py", exitsOnTerm: true}
	lister := &fakeLister{procs: []*fakeProcess{monitor, orch}}

	result, err := newTestController(lister).StopWorkers(context.Background())
	if err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}
	if len(result.Stopped) != 2 {
		t.Errorf("expected both classes stopped, got %v", result.Stopped)
	}
}

func TestStopWorkersTargetsFirstMatchOnly(t *testing.T) {
	first := &fakeProcess{pid: 50, cmdline: "python3 task_monitor.py", exitsOnTerm: true}
	second := &fakeProcess{pid: 51, cmdline: "python3 task_monitor.py --replica"}
	lister := &fakeLister{procs: []*fakeProcess{first, second}}

	if _, err := newTestController(lister).StopWorkers(context.Background()); err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}

	if !first.terminated {
		t.Error("first matching process should be signalled")
	}
	if second.terminated || second.killed {
		t.Error("only the first matching process is targeted")
	}
}

func TestStopWorkersIgnoresSelf(t *testing.T) {
	c := newTestController(nil)

	self := &fakeProcess{pid: c.selfPID, cmdline: "agentboard stop task_monitor"}
	lister := &fakeLister{procs: []*fakeProcess{self}}
	c.lister = lister

	result, err := c.StopWorkers(context.Background())
	if err != nil {
		t.Fatalf("StopWorkers error: %v", err)
	}
	if result.Success || self.terminated {
		t.Error("the controller must never match its own process")
	}
}
