package tracker

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/process"
)

// ProcessNamer resolves a PID to its executable name.
type ProcessNamer func(ctx context.Context, pid int) (string, error)

// ProcessName looks pid up with gopsutil.
func ProcessName(ctx context.Context, pid int) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("finding process %d: %w", pid, err)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("reading name of process %d: %w", pid, err)
	}
	return name, nil
}
