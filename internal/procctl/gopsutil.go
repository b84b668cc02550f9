package procctl

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// SystemLister enumerates the live process table via gopsutil.
type SystemLister struct{}

// Processes returns handles for every live process.
func (SystemLister) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	handles := make([]Process, 0, len(procs))
	for _, p := range procs {
		handles = append(handles, systemProcess{p})
	}
	return handles, nil
}

type systemProcess struct {
	p *process.Process
}

func (s systemProcess) ID() int32 { return s.p.Pid }

func (s systemProcess) Cmdline(ctx context.Context) (string, error) {
	return s.p.CmdlineWithContext(ctx)
}

func (s systemProcess) Terminate(ctx context.Context) error {
	return s.p.TerminateWithContext(ctx)
}

func (s systemProcess) Kill(ctx context.Context) error {
	return s.p.KillWithContext(ctx)
}
