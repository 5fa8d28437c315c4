// Package sysmon samples system-wide CPU and memory usage for the studio
// status bar.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of host resource usage. Both fields are
// percentages in the 0..100 range.
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// Warm primes the CPU usage baseline. cpu.Percent with interval=0
// measures the delta since the previous call, so the first Sample after
// process start reports 0. Call Warm once before the sampling loop.
func Warm() {
	_, _ = cpu.Percent(0, false)
}

// Sample takes one host-wide snapshot. A probe that fails leaves its
// field at zero rather than surfacing the error; the status bar simply
// shows 0% until the next tick.
func Sample() Stats {
	return Stats{
		CPUPercent: cpuPercent(),
		MemPercent: memPercent(),
	}
}

func cpuPercent() float64 {
	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		return 0
	}
	return pcts[0]
}

func memPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.UsedPercent
}
